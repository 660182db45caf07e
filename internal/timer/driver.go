package timer

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/hammamikhairi/ottotimer/internal/domain"
	"github.com/hammamikhairi/ottotimer/internal/logger"
)

// ErrDriverStopped is returned by Send once the driver loop has exited.
var ErrDriverStopped = errors.New("timer driver stopped")

// DriverOption configures the driver.
type DriverOption func(*Driver)

// WithOnChange registers a callback invoked from the driver goroutine
// after every processed event or tick, and once at start.
func WithOnChange(fn func(domain.Snapshot)) DriverOption {
	return func(d *Driver) {
		d.onChange = fn
	}
}

// WithRingCheckInterval sets how often a ringing alarm is checked for
// its timeout.
func WithRingCheckInterval(iv time.Duration) DriverOption {
	return func(d *Driver) {
		if iv > 0 {
			d.ringCheck = iv
		}
	}
}

type request struct {
	ev    domain.Event
	reply chan error
}

// Driver owns a Machine and runs it on a single goroutine. Events sent
// through Send and periodic ticks are processed strictly one at a time.
// The ticker only exists while the machine is ticking or alerting.
type Driver struct {
	machine   *Machine
	log       *logger.Logger
	onChange  func(domain.Snapshot)
	ringCheck time.Duration

	requests chan request

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewDriver creates a driver for m. Call Start to run it; a driver runs
// once and cannot be restarted after Stop.
func NewDriver(m *Machine, log *logger.Logger, opts ...DriverOption) *Driver {
	d := &Driver{
		machine:   m,
		log:       log,
		onChange:  func(domain.Snapshot) {},
		ringCheck: time.Second,
		requests:  make(chan request),
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Start begins the event loop. Non-blocking.
func (d *Driver) Start(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.running {
		d.log.Warn("timer driver already running")
		return
	}

	childCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel
	d.running = true

	go d.loop(childCtx)

	d.log.Info("timer driver started (tick=%s)", d.machine.TickInterval())
}

// Stop shuts the loop down and waits for it to exit.
func (d *Driver) Stop() {
	d.mu.Lock()
	if !d.running {
		d.mu.Unlock()
		return
	}
	d.cancel()
	d.running = false
	d.mu.Unlock()

	<-d.done
	d.log.Info("timer driver stopped")
}

// Done is closed when the loop exits.
func (d *Driver) Done() <-chan struct{} { return d.done }

// Send delivers an event to the loop and returns the transition result.
func (d *Driver) Send(ctx context.Context, ev domain.Event) error {
	req := request{ev: ev, reply: make(chan error, 1)}

	select {
	case d.requests <- req:
	case <-d.done:
		return ErrDriverStopped
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-req.reply:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// loop is the single event loop.
func (d *Driver) loop(ctx context.Context) {
	defer close(d.done)

	var (
		ticker   clockwork.Ticker
		interval time.Duration
	)
	defer func() {
		if ticker != nil {
			ticker.Stop()
		}
	}()

	d.onChange(d.machine.Snapshot())

	for {
		// Re-register the ticker to match the phase. Leaving the running
		// phase drops it, which is the only cancellation ticks need.
		want := d.wantInterval()
		if want != interval {
			if ticker != nil {
				ticker.Stop()
				ticker = nil
			}
			if want > 0 {
				ticker = d.machine.Clock().NewTicker(want)
			}
			interval = want
		}

		var tickC <-chan time.Time
		if ticker != nil {
			tickC = ticker.Chan()
		}

		select {
		case <-ctx.Done():
			return
		case req := <-d.requests:
			err := d.machine.Apply(ctx, req.ev)
			if err != nil {
				d.log.Debug("driver: %s rejected: %v", req.ev.Kind, err)
			}
			req.reply <- err
			d.onChange(d.machine.Snapshot())
		case <-tickC:
			d.machine.Tick(ctx)
			d.onChange(d.machine.Snapshot())
		}
	}
}

func (d *Driver) wantInterval() time.Duration {
	switch {
	case d.machine.Ticking():
		return d.machine.TickInterval()
	case d.machine.Alerting():
		return d.ringCheck
	default:
		return 0
	}
}
