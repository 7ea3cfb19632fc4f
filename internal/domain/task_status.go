package domain

import "fmt"

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

func NewStatus(s string) (Status, error) {
	switch s {
	case string(StatusPending), string(StatusCompleted):
		return Status(s), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrInvalidTaskStatus, s)
	}
}
