package handler

import "github.com/KasumiMercury/primind-task-reminder/internal/app"

type TriggerEmptyResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Count   int    `json:"count"`
}

type TriggerResponse struct {
	Status            string `json:"status"`
	Message           string `json:"message"`
	Processed         int    `json:"processed"`
	NotificationsSent int    `json:"notificationsSent"`
	Failures          int    `json:"failures"`
	Skipped           int    `json:"skipped"`
	Errors            int    `json:"errors"`
}

// FromTriggerOutput picks the short form when nothing was due.
func FromTriggerOutput(output app.TriggerTaskCheckOutput) any {
	if output.IsEmpty() {
		return TriggerEmptyResponse{
			Status:  "success",
			Message: "No tasks due in the current window",
			Count:   0,
		}
	}

	return TriggerResponse{
		Status:            "success",
		Message:           "Task check completed",
		Processed:         output.Processed,
		NotificationsSent: output.NotificationsSent,
		Failures:          output.Failures,
		Skipped:           output.Skipped,
		Errors:            output.Errors,
	}
}
