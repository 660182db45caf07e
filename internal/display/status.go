package display

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"

	"github.com/hammamikhairi/ottotimer/internal/domain"
	"github.com/hammamikhairi/ottotimer/internal/humanize"
)

// StatusText is the one-line plain description of a snapshot used by the
// headless mode.
func StatusText(snap domain.Snapshot) string {
	switch snap.Phase {
	case domain.PhaseRunning:
		return humanize.StringRounded(snap.Remaining) + " left"
	case domain.PhasePaused:
		return humanize.StringRounded(snap.Remaining) + " left (paused)"
	case domain.PhaseRinging:
		if snap.Silenced {
			return "time's up (silenced)"
		}
		return "time's up!"
	default:
		return "stopped at " + humanize.String(snap.Configured)
	}
}

// RenderStatus returns the styled status line centred for the given
// terminal width. A width of zero or less disables centring.
func RenderStatus(snap domain.Snapshot, width int) string {
	style := stoppedStyle
	switch snap.Phase {
	case domain.PhaseRunning:
		style = runningStyle
	case domain.PhasePaused:
		style = pausedStyle
	case domain.PhaseRinging:
		style = ringingStyle
	}

	line := style.Render(StatusText(snap))
	if pad := (width - lipgloss.Width(line)) / 2; pad > 0 {
		line = strings.Repeat(" ", pad) + line
	}
	return line
}

// TermWidth returns the current terminal column count, or 80 as fallback.
func TermWidth() int {
	if w, _, err := term.GetSize(os.Stdout.Fd()); err == nil && w > 0 {
		return w
	}
	return 80
}
