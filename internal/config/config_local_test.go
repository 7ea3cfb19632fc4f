//go:build !gcloud

package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KasumiMercury/primind-task-reminder/internal/config"
)

func TestPubSubValidateSuccess(t *testing.T) {
	for _, url := range []string{"", "nats://localhost:4222"} {
		cfg := config.PubSubConfig{NatsURL: url}

		assert.NoError(t, cfg.Validate(), url)
	}
}

func TestPubSubValidateError(t *testing.T) {
	cfg := config.PubSubConfig{NatsURL: "localhost"}

	assert.Error(t, cfg.Validate())
}
