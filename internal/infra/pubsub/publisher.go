package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/KasumiMercury/primind-task-reminder/internal/observability/tracing"
)

//go:generate mockgen -source=publisher.go -destination=publisher_mock.go -package=pubsub

const (
	TopicTaskReminded = "task.reminded"

	eventTypeTaskReminded = "task.reminded"
)

type Publisher interface {
	PublishTaskReminded(ctx context.Context, event TaskRemindedEvent) error
	io.Closer
}

// TaskRemindedEvent is emitted once a due-task notification reached at least
// one device.
type TaskRemindedEvent struct {
	TaskID       string    `json:"task_id"`
	UserID       string    `json:"user_id"`
	Priority     string    `json:"priority"`
	NextRemindAt time.Time `json:"next_remind_at"`
	SuccessCount int       `json:"success_count"`
	FailureCount int       `json:"failure_count"`
	RemindedAt   time.Time `json:"reminded_at"`
}

func newTaskRemindedMessage(ctx context.Context, event TaskRemindedEvent) (*message.Message, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("event_type", eventTypeTaskReminded)
	msg.Metadata.Set("task_id", event.TaskID)
	msg.Metadata.Set("user_id", event.UserID)

	tracing.InjectToMap(ctx, msg.Metadata)

	return msg, nil
}

// NopPublisher drops every event. It is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishTaskReminded(context.Context, TaskRemindedEvent) error {
	return nil
}

func (NopPublisher) Close() error {
	return nil
}
