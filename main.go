// Package main wires together the secrets service: configuration, the
// ArangoDB stores, session management, the OAuth providers, and the Fiber
// HTTP surface.
package main

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	fiberrecover "github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"github.com/whisperboard/secrets-backend/config"
	"github.com/whisperboard/secrets-backend/database"
	secretevents "github.com/whisperboard/secrets-backend/events/modules/secrets"
	gqlschema "github.com/whisperboard/secrets-backend/graphql"
	"github.com/whisperboard/secrets-backend/restapi"
	"github.com/whisperboard/secrets-backend/restapi/modules/auth"
	"github.com/whisperboard/secrets-backend/store"
)

func main() {
	log := database.InitLogger()

	cfg, err := config.Load()
	if err != nil {
		log.Sugar().Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database connection
	db := database.InitializeDatabase(cfg.Arango)

	users := store.NewArangoUserStore(db)
	sessions := store.NewArangoSessionStore(db)
	manager := auth.NewSessionManager(sessions, users, cfg.SessionSecret, cfg.SessionTTL, log)

	googleCreds := cfg.Google()
	facebookCreds := cfg.Facebook()
	google := auth.NewGoogleProvider(googleCreds.ClientID, googleCreds.ClientSecret, cfg.BaseURL)
	facebook := auth.NewFacebookProvider(facebookCreds.ClientID, facebookCreds.ClientSecret, cfg.BaseURL)

	// Nil when no brokers are configured; publishing then becomes a no-op.
	producer := secretevents.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
	defer func() {
		if err := producer.Close(); err != nil {
			log.Warn("failed to close event producer", zap.Error(err))
		}
	}()

	schema, err := gqlschema.CreateSchema(users)
	if err != nil {
		log.Sugar().Fatalf("Failed to create GraphQL schema: %v", err)
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName: "secrets-backend API v1.0",
	})

	// Middleware
	app.Use(fiberrecover.New())
	app.Use(fiberlogger.New())
	app.Use(cors.New())

	restapi.SetupRoutes(app, restapi.Deps{
		Users:    users,
		Sessions: manager,
		Google:   google,
		Facebook: facebook,
		Producer: producer,
		Schema:   schema,
		Log:      log,
	})

	// Start server
	log.Sugar().Infof("Starting server on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Sugar().Fatalf("Failed to start server: %v", err)
	}
}
