package domain

import "time"

// EventKind classifies a discrete input to the timer.
type EventKind int

const (
	EventUnknown EventKind = iota
	EventEnableTimer
	EventTogglePause
	EventResetTimer
	EventStopRinging
	EventSetDuration
)

// String returns a human-readable event kind.
func (k EventKind) String() string {
	switch k {
	case EventEnableTimer:
		return "enable_timer"
	case EventTogglePause:
		return "toggle_pause"
	case EventResetTimer:
		return "reset_timer"
	case EventStopRinging:
		return "stop_ringing"
	case EventSetDuration:
		return "set_duration"
	default:
		return "unknown"
	}
}

// Event is a user-triggered transition request. Duration is only read
// for EventSetDuration.
type Event struct {
	Kind     EventKind
	Duration time.Duration
}
