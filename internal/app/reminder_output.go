package app

import "time"

type TriggerTaskCheckOutput struct {
	WindowStart       time.Time
	WindowEnd         time.Time
	Processed         int
	NotificationsSent int
	Failures          int
	Skipped           int
	Errors            int
}

func (o TriggerTaskCheckOutput) IsEmpty() bool {
	return o.Processed == 0
}
