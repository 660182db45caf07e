package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/hammamikhairi/ottotimer/internal/display"
	"github.com/hammamikhairi/ottotimer/internal/notify"
)

// TuiCmd runs the interactive view.
type TuiCmd struct {
	Duration string `short:"d" help:"Initial wait time, e.g. 5m, 1:30 or 130." env:"OTTOTIMER_DURATION"`
	Keypad   bool   `help:"Type the duration as one digit string instead of separate fields."`
}

func (c *TuiCmd) Run(g *Globals) error {
	a, err := setup(g)
	if err != nil {
		return err
	}
	defer a.shutdown()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// The screen already shows expiry; the base notifier only logs.
	notifier := a.notifier(notify.NewDiscard(a.log.Named("notify")))
	m, err := a.machine(notifier, c.Duration)
	if err != nil {
		return err
	}

	opts := []display.Option{
		display.WithFonts(display.LoadFonts(a.log.Named("fonts"))),
		display.WithRingCheckInterval(a.ringCheckInterval()),
	}
	if c.Keypad {
		opts = append(opts, display.WithKeypad())
	}

	a.log.Info("interactive view started")
	if err := display.Run(ctx, display.New(ctx, m, a.log.Named("display"), opts...)); err != nil {
		a.log.Error("display: %v", err)
		return err
	}
	return nil
}
