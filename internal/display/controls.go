package display

import "github.com/hammamikhairi/ottotimer/internal/domain"

// Button is one of the two on-screen controls.
type Button struct {
	Label   string
	Enabled bool
}

// ControlsFor returns the primary and secondary buttons for a state.
// Reset is disabled while stopped; Okay is disabled once the alarm has
// been silenced.
func ControlsFor(snap domain.Snapshot) [2]Button {
	reset := Button{Label: "reset", Enabled: snap.Phase != domain.PhaseStopped}

	switch snap.Phase {
	case domain.PhaseRunning:
		return [2]Button{{Label: "pause", Enabled: true}, reset}
	case domain.PhasePaused:
		return [2]Button{{Label: "resume", Enabled: true}, reset}
	case domain.PhaseRinging:
		return [2]Button{{Label: "okay", Enabled: !snap.Silenced}, reset}
	default:
		return [2]Button{{Label: "start", Enabled: true}, reset}
	}
}
