package domain

import "time"

const DueWindowWidth = time.Minute

// DueWindow is the half-open interval [start, end) of reminder instants that
// count as due for one trigger run.
type DueWindow struct {
	start time.Time
	end   time.Time
}

// NewDueWindow returns the minute-aligned window containing ref.
func NewDueWindow(ref time.Time) DueWindow {
	start := ref.UTC().Truncate(DueWindowWidth)

	return DueWindow{
		start: start,
		end:   start.Add(DueWindowWidth),
	}
}

func (w DueWindow) Start() time.Time {
	return w.start
}

func (w DueWindow) End() time.Time {
	return w.end
}

func (w DueWindow) StartMillis() int64 {
	return w.start.UnixMilli()
}

func (w DueWindow) EndMillis() int64 {
	return w.end.UnixMilli()
}

func (w DueWindow) Contains(t time.Time) bool {
	return !t.Before(w.start) && t.Before(w.end)
}
