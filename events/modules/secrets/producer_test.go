package secrets

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewProducerWithoutBrokers(t *testing.T) {
	p := NewProducer(nil, "secrets.events")
	assert.Nil(t, p)

	// A nil producer is a safe no-op so handlers need no configuration
	// checks.
	assert.NoError(t, p.PublishSecretSubmitted(context.Background(), "user-1"))
	assert.NoError(t, p.Close())
}

func TestNewProducerWithBrokers(t *testing.T) {
	p := NewProducer([]string{"broker-1:9092"}, "secrets.events")
	assert.NotNil(t, p)
	assert.NoError(t, p.Close())
}
