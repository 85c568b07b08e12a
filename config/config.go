// Package config loads the service configuration from environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Arango holds the connection settings for the document store.
type Arango struct {
	Host     string `env:"ARANGO_HOST" envDefault:"localhost"`
	Port     string `env:"ARANGO_PORT" envDefault:"8529"`
	User     string `env:"ARANGO_USER" envDefault:"root"`
	Password string `env:"ARANGO_PASS" envDefault:"mypassword"`
	URL      string `env:"ARANGO_URL"`
	Database string `env:"ARANGO_DATABASE" envDefault:"secretsdb"`
}

// OAuthProvider holds the client credentials for one identity provider.
type OAuthProvider struct {
	ClientID     string
	ClientSecret string
}

// Config is the full runtime configuration of the service.
type Config struct {
	Port    string `env:"MS_PORT" envDefault:"3000"`
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:3000"`

	Arango Arango

	SessionSecret string        `env:"SESSION_SECRET" envDefault:"your-secret-key-change-this-in-production"`
	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"24h"`

	GoogleClientID       string `env:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret   string `env:"GOOGLE_CLIENT_SECRET"`
	FacebookClientID     string `env:"FACEBOOK_CLIENT_ID"`
	FacebookClientSecret string `env:"FACEBOOK_CLIENT_SECRET"`

	KafkaBrokers []string `env:"KAFKA_BROKERS"`
	KafkaTopic   string   `env:"KAFKA_TOPIC" envDefault:"secrets.events"`
}

// Load parses the configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.Arango.URL == "" {
		cfg.Arango.URL = "http://" + cfg.Arango.Host + ":" + cfg.Arango.Port
	}
	return cfg, nil
}

// Google returns the Google OAuth client credentials.
func (c Config) Google() OAuthProvider {
	return OAuthProvider{ClientID: c.GoogleClientID, ClientSecret: c.GoogleClientSecret}
}

// Facebook returns the Facebook OAuth client credentials.
func (c Config) Facebook() OAuthProvider {
	return OAuthProvider{ClientID: c.FacebookClientID, ClientSecret: c.FacebookClientSecret}
}
