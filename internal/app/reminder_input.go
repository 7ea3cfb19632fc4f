package app

import "time"

type TriggerTaskCheckInput struct {
	// At is the reference instant; zero means now.
	At time.Time
}
