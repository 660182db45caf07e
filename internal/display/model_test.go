package display

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/ottotimer/internal/domain"
	"github.com/hammamikhairi/ottotimer/internal/logger"
	"github.com/hammamikhairi/ottotimer/internal/notify"
	"github.com/hammamikhairi/ottotimer/internal/timeinput"
	"github.com/hammamikhairi/ottotimer/internal/timer"
)

type recordingAlarm struct {
	mu    sync.Mutex
	plays int
	stops int
}

func (a *recordingAlarm) Play() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.plays++
	return nil
}

func (a *recordingAlarm) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.stops++
}

type fixture struct {
	clock   *clockwork.FakeClock
	alarm   *recordingAlarm
	machine *timer.Machine
	model   Model
}

func newFixture(t *testing.T, opts ...timer.Option) *fixture {
	t.Helper()
	log := logger.New(logger.LevelOff, nil)
	f := &fixture{
		clock: clockwork.NewFakeClock(),
		alarm: &recordingAlarm{},
	}
	opts = append([]timer.Option{timer.WithClock(f.clock)}, opts...)
	f.machine = timer.New(f.alarm, notify.NewDiscard(log), log, opts...)
	f.model = New(context.Background(), f.machine, log)
	return f
}

func (f *fixture) send(t *testing.T, msg tea.Msg) tea.Cmd {
	t.Helper()
	next, cmd := f.model.Update(msg)
	m, ok := next.(Model)
	require.True(t, ok)
	f.model = m
	return cmd
}

// typeKeys presses each key and feeds back the edit message produced by
// digit capture.
func (f *fixture) typeKeys(t *testing.T, keys string) {
	t.Helper()
	for _, r := range keys {
		cmd := f.send(t, runes(string(r)))
		if !f.model.Editing() || cmd == nil {
			continue
		}
		switch msg := cmd().(type) {
		case digitMsg, backspaceMsg:
			f.send(t, msg)
		}
	}
}

// backspace presses backspace and feeds back the edit message.
func (f *fixture) backspace(t *testing.T) {
	t.Helper()
	cmd := f.send(t, tea.KeyMsg{Type: tea.KeyBackspace})
	require.NotNil(t, cmd)
	f.send(t, cmd())
}

// tick advances the clock by d and delivers the current tick.
func (f *fixture) tick(t *testing.T, d time.Duration) {
	t.Helper()
	f.clock.Advance(d)
	f.send(t, tickMsg{gen: f.model.tickGen})
}

var enter = tea.KeyMsg{Type: tea.KeyEnter}

func TestStartPauseResume(t *testing.T) {
	f := newFixture(t, timer.WithDuration(10*time.Second))

	assert.Contains(t, f.model.View(), "start")

	f.send(t, enter)
	require.Equal(t, domain.PhaseRunning, f.machine.Phase())
	assert.Equal(t, 1, f.model.tickGen)

	f.tick(t, 3*time.Second)
	assert.Equal(t, 7*time.Second, f.machine.Snapshot().Remaining)
	assert.Equal(t, "7s", f.model.timeText())
	assert.Contains(t, f.model.title(), "7s")

	f.send(t, enter)
	require.Equal(t, domain.PhasePaused, f.machine.Phase())
	assert.Contains(t, f.model.View(), "resume")

	// A tick scheduled before the pause must not move the countdown.
	stale := f.model.tickGen
	f.clock.Advance(time.Minute)
	f.send(t, tickMsg{gen: stale})
	assert.Equal(t, 7*time.Second, f.machine.Snapshot().Remaining)

	f.send(t, enter)
	require.Equal(t, domain.PhaseRunning, f.machine.Phase())
	assert.Equal(t, stale+1, f.model.tickGen)
	f.send(t, tickMsg{gen: stale})
	f.tick(t, 2*time.Second)
	assert.Equal(t, 5*time.Second, f.machine.Snapshot().Remaining)
}

func TestZeroDurationRingsOnFirstTick(t *testing.T) {
	f := newFixture(t, timer.WithDuration(0))

	f.send(t, enter)
	f.tick(t, 100*time.Millisecond)
	require.Equal(t, domain.PhaseRinging, f.machine.Phase())
	assert.Equal(t, 1, f.alarm.plays)
	assert.Equal(t, 1, f.model.ringGen)
	assert.Equal(t, "Time's up! - Timer", f.model.title())
	assert.Contains(t, f.model.View(), "okay")

	f.send(t, runes("o"))
	assert.True(t, f.machine.Snapshot().Silenced)
	assert.Equal(t, 1, f.alarm.stops)

	f.send(t, runes("r"))
	assert.Equal(t, domain.PhaseStopped, f.machine.Phase())
	assert.Equal(t, 2, f.alarm.stops)
}

func TestRingCheckSilencesAfterTimeout(t *testing.T) {
	f := newFixture(t, timer.WithDuration(time.Second), timer.WithRingTimeout(3*time.Second))

	f.send(t, enter)
	f.tick(t, time.Second)
	require.Equal(t, domain.PhaseRinging, f.machine.Phase())

	f.clock.Advance(time.Second)
	f.send(t, ringCheckMsg{gen: f.model.ringGen})
	assert.False(t, f.machine.Snapshot().Silenced)

	f.clock.Advance(2 * time.Second)
	f.send(t, ringCheckMsg{gen: f.model.ringGen})
	assert.True(t, f.machine.Snapshot().Silenced)
	assert.Equal(t, 1, f.alarm.stops)
}

func TestResetDisabledWhileStopped(t *testing.T) {
	f := newFixture(t)

	f.send(t, runes("r"))
	assert.Equal(t, domain.PhaseStopped, f.machine.Phase())
	assert.Zero(t, f.alarm.stops)
}

func TestDigitsIgnoredOutsideEditMode(t *testing.T) {
	f := newFixture(t)

	f.typeKeys(t, "12")
	assert.False(t, f.model.Editing())
	assert.Equal(t, domain.DefaultDuration, f.machine.Configured())
}

func TestEditStartsFromConfiguredDuration(t *testing.T) {
	f := newFixture(t)

	f.send(t, runes("e"))
	require.True(t, f.model.Editing())
	assert.Equal(t, timeinput.Fields{Hours: timeinput.None, Minutes: timeinput.Some(5), Seconds: timeinput.Some(0)},
		f.model.EditFields())
	assert.Equal(t, "5", f.model.Editor().Typed(timeinput.FieldMinutes))
	assert.Contains(t, f.model.View(), "--", "hours are unset")
}

func TestEditUpdatesDurationLive(t *testing.T) {
	f := newFixture(t)

	f.send(t, runes("e"))
	f.backspace(t)
	f.typeKeys(t, "2")
	assert.Equal(t, 2*time.Minute, f.machine.Configured(), "each digit applies at once")

	f.send(t, tea.KeyMsg{Type: tea.KeyTab})
	f.backspace(t)
	f.typeKeys(t, "39")
	f.backspace(t)
	f.typeKeys(t, "0")
	assert.Equal(t, 2*time.Minute+30*time.Second, f.machine.Configured())

	f.send(t, runes("e"))
	assert.False(t, f.model.Editing())
	assert.Equal(t, 2*time.Minute+30*time.Second, f.machine.Configured())
}

func TestStartClearsEdit(t *testing.T) {
	f := newFixture(t)

	f.send(t, runes("e"))
	f.backspace(t)
	f.typeKeys(t, "1")
	f.send(t, enter)

	assert.False(t, f.model.Editing())
	assert.Equal(t, domain.PhaseRunning, f.machine.Phase())
	assert.Equal(t, time.Minute, f.machine.Snapshot().Total)

	f.send(t, runes("e"))
	assert.False(t, f.model.Editing(), "editing is only possible while stopped")
}

func TestCancelEditRestoresDuration(t *testing.T) {
	f := newFixture(t)

	f.send(t, runes("e"))
	f.backspace(t)
	f.typeKeys(t, "9")
	require.Equal(t, 9*time.Minute, f.machine.Configured())

	f.send(t, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, f.model.Editing())
	assert.Equal(t, domain.DefaultDuration, f.machine.Configured())
}

func TestEmptyEditKeepsDuration(t *testing.T) {
	f := newFixture(t)

	f.send(t, runes("e"))
	f.send(t, tea.KeyMsg{Type: tea.KeyDelete})
	assert.True(t, f.model.EditFields().Empty())
	assert.Equal(t, domain.DefaultDuration, f.machine.Configured())

	// Typing an hour and deleting it leaves nothing typed, so the
	// duration goes back to the one from before the edit.
	f.send(t, tea.KeyMsg{Type: tea.KeyShiftTab})
	f.typeKeys(t, "1")
	require.Equal(t, time.Hour, f.machine.Configured())
	f.backspace(t)
	assert.True(t, f.model.EditFields().Empty())
	assert.Equal(t, domain.DefaultDuration, f.machine.Configured())

	f.send(t, runes("e"))
	assert.Equal(t, domain.DefaultDuration, f.machine.Configured())
}

func TestExtraInterceptorsRunAfterDigitCapture(t *testing.T) {
	f := newFixture(t)
	swallow := &countingInterceptor{verdict: Handled}
	f.model = New(context.Background(), f.machine, logger.New(logger.LevelOff, nil), WithInterceptors(swallow))

	f.send(t, runes("?"))
	assert.Equal(t, 1, swallow.calls)
	assert.False(t, f.model.help.ShowAll, "a handled key skips the default bindings")

	f.send(t, enter)
	assert.Equal(t, domain.PhaseStopped, f.machine.Phase())
	assert.Equal(t, 2, swallow.calls)

	// Digit capture comes first while editing.
	f.model.editing = true
	cmd := f.send(t, runes("4"))
	require.NotNil(t, cmd)
	assert.Equal(t, digitMsg{n: 4}, cmd())
	assert.Equal(t, 2, swallow.calls)
}

func TestQuit(t *testing.T) {
	f := newFixture(t)

	cmd := f.send(t, runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestViewCentresInWindow(t *testing.T) {
	f := newFixture(t)
	f.model = New(context.Background(), f.machine, logger.New(logger.LevelOff, nil),
		WithFonts(LoadFonts(logger.New(logger.LevelOff, nil))))

	f.send(t, tea.WindowSizeMsg{Width: 100, Height: 30})
	view := f.model.View()
	assert.Len(t, strings.Split(view, "\n"), 30)
	assert.NotContains(t, view, "5m 00s", "the block font replaces plain text")
}

func TestControlsFor(t *testing.T) {
	tests := []struct {
		snap    domain.Snapshot
		primary Button
		reset   bool
	}{
		{domain.Snapshot{Phase: domain.PhaseStopped}, Button{"start", true}, false},
		{domain.Snapshot{Phase: domain.PhaseRunning}, Button{"pause", true}, true},
		{domain.Snapshot{Phase: domain.PhasePaused}, Button{"resume", true}, true},
		{domain.Snapshot{Phase: domain.PhaseRinging}, Button{"okay", true}, true},
		{domain.Snapshot{Phase: domain.PhaseRinging, Silenced: true}, Button{"okay", false}, true},
	}

	for _, tt := range tests {
		got := ControlsFor(tt.snap)
		assert.Equal(t, tt.primary, got[0], tt.snap.Phase.String())
		assert.Equal(t, tt.reset, got[1].Enabled, tt.snap.Phase.String())
	}
}

func TestStatusText(t *testing.T) {
	assert.Equal(t, "stopped at 5m 00s", StatusText(domain.Snapshot{Configured: 5 * time.Minute}))
	assert.Equal(t, "1m 05s left", StatusText(domain.Snapshot{Phase: domain.PhaseRunning, Remaining: 65 * time.Second}))
	assert.Equal(t, "time's up!", StatusText(domain.Snapshot{Phase: domain.PhaseRinging}))

	line := RenderStatus(domain.Snapshot{Phase: domain.PhasePaused, Remaining: time.Second}, 60)
	assert.Contains(t, line, "1s left (paused)")
}

func TestKeypadEditing(t *testing.T) {
	f := newFixture(t)
	f.model = New(context.Background(), f.machine, logger.New(logger.LevelOff, nil), WithKeypad())

	f.send(t, runes("e"))
	assert.True(t, f.model.EditFields().Empty(), "the keypad starts empty")
	f.typeKeys(t, "130")
	assert.Equal(t, 90*time.Second, f.machine.Configured())
	fields := f.model.EditFields()
	assert.False(t, fields.Hours.IsSet())
	assert.Equal(t, 1, fields.Minutes.Or(-1))
	assert.Equal(t, 30, fields.Seconds.Or(-1))

	f.typeKeys(t, "05")
	fields = f.model.EditFields()
	assert.Equal(t, 1, fields.Hours.Or(-1))
	assert.Equal(t, 30, fields.Minutes.Or(-1))
	assert.Equal(t, 5, fields.Seconds.Or(-1))

	// Field navigation only applies to the per-field editor.
	f.send(t, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, timeinput.FieldMinutes, f.model.Editor().Active())

	f.send(t, enter)
	assert.Equal(t, domain.PhaseRunning, f.machine.Phase())
	assert.Equal(t, time.Hour+30*time.Minute+5*time.Second, f.machine.Snapshot().Total)
}
