// Package secrets handles Kafka event production for secret submissions.
package secrets

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// SecretSubmittedEvent is the contract published when a user stores a
// secret. The secret text itself is never published.
type SecretSubmittedEvent struct {
	EventType     string    `json:"event_type"`
	EventID       string    `json:"event_id"`
	EventTime     time.Time `json:"event_time"`
	SchemaVersion string    `json:"schema_version"`
	UserKey       string    `json:"user_key"`
}

// Producer handles sending secret submission events to Kafka. A nil
// Producer is valid and publishes nothing, so wiring stays unconditional
// when no brokers are configured.
type Producer struct {
	writer *kafka.Writer
}

// NewProducer initializes a new Kafka writer for secret events. Returns nil
// when no brokers are given.
func NewProducer(brokers []string, topic string) *Producer {
	if len(brokers) == 0 {
		return nil
	}
	return &Producer{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

// PublishSecretSubmitted sends the event to the Kafka topic.
func (p *Producer) PublishSecretSubmitted(ctx context.Context, userKey string) error {
	if p == nil {
		return nil
	}

	event := SecretSubmittedEvent{
		EventType:     "secret.submitted",
		EventID:       uuid.New().String(),
		EventTime:     time.Now().UTC(),
		SchemaVersion: "v1",
		UserKey:       userKey,
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(userKey),
		Value: payload,
	})
}

// Close shuts down the underlying writer.
func (p *Producer) Close() error {
	if p == nil {
		return nil
	}
	return p.writer.Close()
}
