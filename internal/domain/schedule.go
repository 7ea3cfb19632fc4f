package domain

import (
	"fmt"
	"time"
)

const (
	DueDateLayout = "2006-01-02"
	DueTimeLayout = "15:04"
)

func ValidateDueDate(s string) error {
	if s == "" {
		return nil
	}

	if _, err := time.Parse(DueDateLayout, s); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidDueDate, s)
	}

	return nil
}

func ValidateDueTime(s string) error {
	if s == "" {
		return nil
	}

	if _, err := time.Parse(DueTimeLayout, s); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidDueTime, s)
	}

	return nil
}

// ComputeNextRemindAt combines a local calendar date and time of day in loc
// into an absolute instant. It returns nil unless both parts are set.
func ComputeNextRemindAt(dueDate, dueTime string, loc *time.Location) (*time.Time, error) {
	if err := ValidateDueDate(dueDate); err != nil {
		return nil, err
	}

	if err := ValidateDueTime(dueTime); err != nil {
		return nil, err
	}

	if dueDate == "" || dueTime == "" {
		return nil, nil //nolint:nilnil
	}

	if loc == nil {
		loc = time.UTC
	}

	at, err := time.ParseInLocation(DueDateLayout+" "+DueTimeLayout, dueDate+" "+dueTime, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s", ErrInvalidDueTime, dueDate, dueTime)
	}

	at = at.UTC()

	return &at, nil
}
