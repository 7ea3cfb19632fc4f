//go:build gcloud

package pubsub

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-googlecloud/pkg/googlecloud"
	"github.com/ThreeDotsLabs/watermill/message"
)

type GCloudPublisher struct {
	publisher message.Publisher
	logger    watermill.LoggerAdapter
}

type GCloudPublisherConfig struct {
	ProjectID string
}

func NewGCloudPublisher(ctx context.Context, cfg GCloudPublisherConfig) (*GCloudPublisher, error) {
	logger := watermill.NewSlogLogger(slog.Default())

	publisher, err := googlecloud.NewPublisher(
		googlecloud.PublisherConfig{
			ProjectID: cfg.ProjectID,
		},
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Google Cloud publisher: %w", err)
	}

	return &GCloudPublisher{
		publisher: publisher,
		logger:    logger,
	}, nil
}

func (p *GCloudPublisher) PublishTaskReminded(ctx context.Context, event TaskRemindedEvent) error {
	msg, err := newTaskRemindedMessage(ctx, event)
	if err != nil {
		return err
	}

	if err := p.publisher.Publish(TopicTaskReminded, msg); err != nil {
		slog.ErrorContext(ctx, "failed to publish task reminded event",
			slog.String("task_id", event.TaskID),
			slog.String("error", err.Error()),
		)

		return fmt.Errorf("failed to publish event: %w", err)
	}

	slog.DebugContext(ctx, "published task reminded event",
		slog.String("task_id", event.TaskID),
		slog.String("message_id", msg.UUID),
	)

	return nil
}

func (p *GCloudPublisher) Close() error {
	return p.publisher.Close()
}
