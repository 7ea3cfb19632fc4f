//go:build gcloud

package main

import (
	"context"
	"log/slog"

	"github.com/KasumiMercury/primind-task-reminder/internal/config"
	"github.com/KasumiMercury/primind-task-reminder/internal/infra/pubsub"
	"github.com/KasumiMercury/primind-task-reminder/internal/infra/push"
)

// loadEnv is a no-op on Cloud Run, where configuration comes from the service.
func loadEnv() {}

func initPublisher(ctx context.Context, cfg *config.Config) (pubsub.Publisher, error) {
	publisher, err := pubsub.NewGCloudPublisher(ctx, pubsub.GCloudPublisherConfig{
		ProjectID: cfg.PubSub.GCloudProjectID,
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Google Cloud Pub/Sub publisher initialized",
		"project_id", cfg.PubSub.GCloudProjectID,
	)

	return publisher, nil
}

func initDispatcher(ctx context.Context, cfg *config.Config) (push.Dispatcher, error) {
	projectID := cfg.Push.ProjectID
	if projectID == "" {
		projectID = cfg.PubSub.GCloudProjectID
	}

	dispatcher, err := push.NewFCMDispatcher(ctx, push.FCMConfig{
		ProjectID:       projectID,
		CredentialsFile: cfg.Push.CredentialsFile,
	})
	if err != nil {
		return nil, err
	}

	slog.Info("FCM dispatcher initialized", "project_id", projectID)
	return dispatcher, nil
}
