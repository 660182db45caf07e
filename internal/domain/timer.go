// Package domain defines the core types and interfaces for the timer.
// All other packages depend on domain; domain depends on nothing.
package domain

import "time"

// DefaultDuration is the configured wait time at process start.
const DefaultDuration = 5 * time.Minute

// Phase is the lifecycle state of the countdown.
type Phase int

const (
	// PhaseStopped means no countdown is active.
	PhaseStopped Phase = iota
	// PhaseRunning means the countdown is ticking.
	PhaseRunning
	// PhasePaused means the countdown is frozen.
	PhasePaused
	// PhaseRinging means the countdown reached zero and waits for a reset.
	PhaseRinging
)

// String returns a human-readable phase.
func (p Phase) String() string {
	switch p {
	case PhaseStopped:
		return "stopped"
	case PhaseRunning:
		return "running"
	case PhasePaused:
		return "paused"
	case PhaseRinging:
		return "ringing"
	default:
		return "unknown"
	}
}

// Snapshot is a read-only view of the timer, taken after a transition.
type Snapshot struct {
	Phase        Phase
	Configured   time.Duration // wait time used by the next start
	Total        time.Duration // wait time of the active countdown
	Remaining    time.Duration // zero unless running or paused
	Silenced     bool          // ringing, but the sound was stopped
	RingingSince time.Time
}

// Active reports whether a countdown is in progress (running or paused).
func (s Snapshot) Active() bool {
	return s.Phase == PhaseRunning || s.Phase == PhasePaused
}
