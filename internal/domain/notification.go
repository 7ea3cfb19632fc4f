package domain

import (
	"fmt"
	"strings"
)

const DueTaskNotificationTitle = "Task Due Now"

type Notification struct {
	Title string
	Body  string
	Link  string
	Data  map[string]string
}

// NewDueTaskNotification builds the push payload for a task whose reminder
// instant has arrived. linkBase is the web client origin.
func NewDueTaskNotification(task *Task, linkBase string) Notification {
	link := strings.TrimRight(linkBase, "/") + "/tasks/" + task.ID().String()

	return Notification{
		Title: DueTaskNotificationTitle,
		Body:  fmt.Sprintf("%q is due now", task.Title()),
		Link:  link,
		Data: map[string]string{
			"type":     "task_due",
			"taskId":   task.ID().String(),
			"priority": string(task.Priority()),
			"link":     link,
		},
	}
}
