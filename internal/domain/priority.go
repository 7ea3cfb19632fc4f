package domain

import "fmt"

// Priority travels with the notification payload. It has no effect on when a
// task is reminded.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// NewPriority treats an empty string as medium.
func NewPriority(p string) (Priority, error) {
	switch p {
	case "":
		return PriorityMedium, nil
	case string(PriorityLow), string(PriorityMedium), string(PriorityHigh):
		return Priority(p), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrInvalidPriority, p)
	}
}
