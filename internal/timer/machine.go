// Package timer implements the countdown state machine and the loop that
// drives it with periodic ticks.
package timer

import (
	"context"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/hammamikhairi/ottotimer/internal/domain"
	"github.com/hammamikhairi/ottotimer/internal/humanize"
	"github.com/hammamikhairi/ottotimer/internal/logger"
)

// Defaults for a new machine.
const (
	DefaultTickInterval = 100 * time.Millisecond
	DefaultRingTimeout  = time.Minute
)

// Option configures the machine.
type Option func(*Machine)

// WithClock sets the clock used for all elapsed-time arithmetic.
func WithClock(c clockwork.Clock) Option {
	return func(m *Machine) {
		m.clock = c
	}
}

// WithDuration sets the initial configured wait time.
func WithDuration(d time.Duration) Option {
	return func(m *Machine) {
		m.configured = clampDuration(d)
	}
}

// WithTickInterval sets how often front-ends should call Tick while the
// countdown runs. It bounds how late expiry can be noticed.
func WithTickInterval(d time.Duration) Option {
	return func(m *Machine) {
		if d > 0 {
			m.tickInterval = d
		}
	}
}

// WithRingTimeout sets how long the alarm rings before it silences
// itself. Zero rings until acknowledged.
func WithRingTimeout(d time.Duration) Option {
	return func(m *Machine) {
		m.ringTimeout = clampDuration(d)
	}
}

// state is the tagged union of lifecycle states. Only transition methods
// replace Machine.state.
type state interface {
	phase() domain.Phase
}

type stopped struct{}

type running struct {
	start time.Time
	total time.Duration
	left  time.Duration
}

type paused struct {
	start    time.Time
	total    time.Duration
	left     time.Duration
	pausedAt time.Time
}

type ringing struct {
	since    time.Time
	total    time.Duration
	silenced bool
}

func (*stopped) phase() domain.Phase { return domain.PhaseStopped }
func (*running) phase() domain.Phase { return domain.PhaseRunning }
func (*paused) phase() domain.Phase  { return domain.PhasePaused }
func (*ringing) phase() domain.Phase { return domain.PhaseRinging }

// Machine is the single countdown timer. It is not safe for concurrent
// use: each front-end drives it from its own event loop.
type Machine struct {
	alarm        domain.Alarm
	notifier     domain.Notifier
	log          *logger.Logger
	clock        clockwork.Clock
	tickInterval time.Duration
	ringTimeout  time.Duration

	configured time.Duration
	state      state
}

// New creates a stopped machine with the default five-minute duration.
func New(alarm domain.Alarm, notifier domain.Notifier, log *logger.Logger, opts ...Option) *Machine {
	m := &Machine{
		alarm:        alarm,
		notifier:     notifier,
		log:          log,
		clock:        clockwork.NewRealClock(),
		tickInterval: DefaultTickInterval,
		ringTimeout:  DefaultRingTimeout,
		configured:   domain.DefaultDuration,
		state:        &stopped{},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Apply dispatches a user event to the matching transition.
func (m *Machine) Apply(ctx context.Context, ev domain.Event) error {
	switch ev.Kind {
	case domain.EventEnableTimer:
		return m.Enable(ctx)
	case domain.EventTogglePause:
		return m.TogglePause(ctx)
	case domain.EventResetTimer:
		m.Reset(ctx)
		return nil
	case domain.EventStopRinging:
		return m.StopRinging(ctx)
	case domain.EventSetDuration:
		return m.SetDuration(ev.Duration)
	default:
		return fmt.Errorf("%w: unknown event %s", domain.ErrInvalidTransition, ev.Kind)
	}
}

// Enable starts the countdown from the configured duration. Only valid
// while stopped.
func (m *Machine) Enable(ctx context.Context) error {
	if _, ok := m.state.(*stopped); !ok {
		return m.invalid("enable")
	}

	m.state = &running{
		start: m.clock.Now(),
		total: m.configured,
		left:  m.configured,
	}
	m.log.Info("countdown started (%s)", humanize.String(m.configured))
	m.notify(ctx, "Timer started: %s.", humanize.Spoken(m.configured))
	return nil
}

// Tick recomputes the remaining time from the wall clock. Reaching zero
// starts the alarm and enters the ringing phase. While ringing, Tick
// silences the alarm once the ring timeout has passed. It does nothing in
// other phases.
func (m *Machine) Tick(ctx context.Context) {
	switch s := m.state.(type) {
	case *running:
		s.left = remaining(s.total, m.clock.Since(s.start))
		if s.left == 0 {
			m.ring(ctx, s.total)
		}
	case *ringing:
		if !s.silenced && m.ringTimeout > 0 && m.clock.Since(s.since) >= m.ringTimeout {
			m.log.Info("alarm unanswered for %s, silencing", m.ringTimeout)
			m.alarm.Stop()
			s.silenced = true
		}
	}
}

// ring starts the alarm and notifies the user. Audio failures are logged;
// the machine rings silently rather than failing.
func (m *Machine) ring(ctx context.Context, total time.Duration) {
	m.state = &ringing{since: m.clock.Now(), total: total}
	m.log.Info("countdown finished")

	if err := m.alarm.Play(); err != nil {
		m.log.Error("starting alarm: %v (ringing silently)", err)
	}

	msg := fmt.Sprintf("Time's up! %s elapsed.", humanize.Spoken(total))
	if err := m.notifier.NotifyUrgent(ctx, msg); err != nil {
		m.log.Error("notifying expiry: %v", err)
	}
}

// TogglePause freezes a running countdown or resumes a paused one.
// Resuming shifts the start instant forward by the time spent paused, so
// the remaining time is unchanged across the pause.
func (m *Machine) TogglePause(ctx context.Context) error {
	now := m.clock.Now()

	switch s := m.state.(type) {
	case *running:
		left := remaining(s.total, now.Sub(s.start))
		m.state = &paused{start: s.start, total: s.total, left: left, pausedAt: now}
		m.log.Debug("paused with %s left", left)
		m.notify(ctx, "Paused with %s left.", humanize.StringRounded(left))
	case *paused:
		m.state = &running{
			start: s.start.Add(now.Sub(s.pausedAt)),
			total: s.total,
			left:  s.left,
		}
		m.log.Debug("resumed after %s", now.Sub(s.pausedAt))
		m.notify(ctx, "Resumed with %s left.", humanize.StringRounded(s.left))
	default:
		return m.invalid("toggle pause")
	}
	return nil
}

// Reset returns to the stopped phase from any phase and stops the alarm.
func (m *Machine) Reset(ctx context.Context) {
	prev := m.state.phase()
	m.alarm.Stop()
	m.state = &stopped{}
	m.log.Debug("reset from %s", prev)
	if prev != domain.PhaseStopped {
		m.notify(ctx, "Timer reset to %s.", humanize.String(m.configured))
	}
}

// StopRinging silences the alarm. The machine stays in the ringing phase
// until Reset.
func (m *Machine) StopRinging(ctx context.Context) error {
	s, ok := m.state.(*ringing)
	if !ok {
		return m.invalid("stop ringing")
	}
	m.alarm.Stop()
	s.silenced = true
	m.log.Debug("alarm acknowledged")
	return nil
}

// SetDuration changes the configured wait time. Only valid while stopped.
func (m *Machine) SetDuration(d time.Duration) error {
	if _, ok := m.state.(*stopped); !ok {
		return m.invalid("set duration")
	}
	m.configured = clampDuration(d)
	return nil
}

// Phase returns the current lifecycle phase.
func (m *Machine) Phase() domain.Phase { return m.state.phase() }

// Configured returns the wait time used by the next Enable.
func (m *Machine) Configured() time.Duration { return m.configured }

// Ticking reports whether the countdown needs periodic ticks: running
// and not paused.
func (m *Machine) Ticking() bool {
	_, ok := m.state.(*running)
	return ok
}

// Alerting reports whether the alarm is sounding and may still time out.
func (m *Machine) Alerting() bool {
	s, ok := m.state.(*ringing)
	return ok && !s.silenced && m.ringTimeout > 0
}

// TickInterval returns how often Tick should be called while Ticking.
func (m *Machine) TickInterval() time.Duration { return m.tickInterval }

// Clock returns the machine's clock.
func (m *Machine) Clock() clockwork.Clock { return m.clock }

// Snapshot returns a view of the current state.
func (m *Machine) Snapshot() domain.Snapshot {
	snap := domain.Snapshot{Phase: m.state.phase(), Configured: m.configured}
	switch s := m.state.(type) {
	case *running:
		snap.Total, snap.Remaining = s.total, s.left
	case *paused:
		snap.Total, snap.Remaining = s.total, s.left
	case *ringing:
		snap.Total = s.total
		snap.Silenced = s.silenced
		snap.RingingSince = s.since
	}
	return snap
}

// notify sends a non-urgent notice. Failures are logged only.
func (m *Machine) notify(ctx context.Context, format string, args ...any) {
	if err := m.notifier.Notify(ctx, fmt.Sprintf(format, args...)); err != nil {
		m.log.Warn("notifying: %v", err)
	}
}

func (m *Machine) invalid(action string) error {
	return fmt.Errorf("%w: %s while %s", domain.ErrInvalidTransition, action, m.state.phase())
}

// remaining is total minus elapsed, saturating at zero.
func remaining(total, elapsed time.Duration) time.Duration {
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed >= total {
		return 0
	}
	return total - elapsed
}

func clampDuration(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	return d
}
