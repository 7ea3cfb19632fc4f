//go:build !gcloud

package main

import (
	"context"
	"log/slog"

	"github.com/joho/godotenv"

	"github.com/KasumiMercury/primind-task-reminder/internal/config"
	"github.com/KasumiMercury/primind-task-reminder/internal/infra/pubsub"
	"github.com/KasumiMercury/primind-task-reminder/internal/infra/push"
)

func loadEnv() {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}
}

func initPublisher(ctx context.Context, cfg *config.Config) (pubsub.Publisher, error) {
	if cfg.PubSub.NatsURL == "" {
		slog.Warn("NATS_URL not set, event publishing disabled")
		return nil, nil
	}

	publisher, err := pubsub.NewNATSPublisherWithStream(ctx, pubsub.NATSPublisherConfig{
		URL: cfg.PubSub.NatsURL,
	})
	if err != nil {
		return nil, err
	}

	slog.Info("NATS publisher initialized", "url", cfg.PubSub.NatsURL)
	return publisher, nil
}

func initDispatcher(ctx context.Context, cfg *config.Config) (push.Dispatcher, error) {
	if !cfg.Push.FCMEnabled() {
		slog.Warn("FCM not configured, notifications are only logged")
		return push.NewLogDispatcher(), nil
	}

	dispatcher, err := push.NewFCMDispatcher(ctx, push.FCMConfig{
		ProjectID:       cfg.Push.ProjectID,
		CredentialsFile: cfg.Push.CredentialsFile,
	})
	if err != nil {
		return nil, err
	}

	slog.Info("FCM dispatcher initialized", "project_id", cfg.Push.ProjectID)
	return dispatcher, nil
}
