package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrTaskNotFound = errors.New("task not found")
	ErrUserNotFound = errors.New("user not found")

	ErrInvalidTaskStatus = errors.New("invalid task status")
	ErrInvalidPriority   = errors.New("invalid task priority")
	ErrEmptyTaskTitle    = errors.New("task title cannot be empty")

	ErrInvalidDueDate  = errors.New("invalid due date: must be YYYY-MM-DD")
	ErrInvalidDueTime  = errors.New("invalid due time: must be HH:MM")
	ErrInvalidTimezone = errors.New("invalid timezone")

	// ErrMalformedTask marks a stored task row that cannot be read back into
	// a Task. It concerns that row only.
	ErrMalformedTask = errors.New("stored task is malformed")

	ErrMissingIndex = errors.New("required composite index is missing")
)

// MissingIndexError reports that the due-task query cannot run because the
// store lacks the composite index it depends on.
type MissingIndexError struct {
	Index  string
	Table  string
	Fields []string
}

func (e *MissingIndexError) Error() string {
	return fmt.Sprintf("missing composite index %s on %s(%s)",
		e.Index, e.Table, strings.Join(e.Fields, ", "))
}

func (e *MissingIndexError) Is(target error) bool {
	return target == ErrMissingIndex
}

func (e *MissingIndexError) Remediation() string {
	return fmt.Sprintf("create index %s on %s (%s) or start the service with DB_AUTO_MIGRATE=true",
		e.Index, e.Table, strings.Join(e.Fields, ", "))
}
