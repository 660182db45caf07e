package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/hammamikhairi/ottotimer/internal/command"
	"github.com/hammamikhairi/ottotimer/internal/display"
	"github.com/hammamikhairi/ottotimer/internal/domain"
	"github.com/hammamikhairi/ottotimer/internal/notify"
	"github.com/hammamikhairi/ottotimer/internal/timer"
)

// RunCmd counts down without the full-screen view. Commands typed on
// stdin control the timer.
type RunCmd struct {
	Duration   string `arg:"" optional:"" help:"Wait time, e.g. 5m, 1:30 or 130. Defaults to the configured duration."`
	ExitOnRing bool   `help:"Exit once the alarm has been acknowledged or has timed out."`
}

func (c *RunCmd) Run(g *Globals) error {
	a, err := setup(g)
	if err != nil {
		return err
	}
	defer a.shutdown()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	con := newConsole(os.Stdout, display.TermWidth())
	notifier := a.notifier(notify.NewTerminal(a.log.Named("notify"), con.Printf))
	m, err := a.machine(notifier, c.Duration)
	if err != nil {
		return err
	}

	finished := make(chan struct{})
	var once sync.Once
	driver := timer.NewDriver(m, a.log.Named("driver"),
		timer.WithRingCheckInterval(a.ringCheckInterval()),
		timer.WithOnChange(func(snap domain.Snapshot) {
			con.Status(snap)
			if c.ExitOnRing && snap.Phase == domain.PhaseRinging && snap.Silenced {
				once.Do(func() { close(finished) })
			}
		}),
	)
	driver.Start(ctx)
	defer driver.Stop()

	if err := driver.Send(ctx, domain.Event{Kind: domain.EventEnableTimer}); err != nil {
		return err
	}
	con.Printf("%s", "type 'help' for commands, 'quit' to exit")

	lines := readLines(ctx, os.Stdin)
	parser := command.NewParser(a.log.Named("command"))

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-finished:
			return nil
		case line, ok := <-lines:
			if !ok {
				// Input closed; keep counting until interrupted.
				lines = nil
				continue
			}
			if quit := c.handle(ctx, driver, parser, con, line); quit {
				return nil
			}
		}
	}
}

// handle runs one typed command and reports whether to quit.
func (c *RunCmd) handle(ctx context.Context, d *timer.Driver, p *command.Parser, con *console, line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}

	cmd, err := p.Parse(line)
	if err != nil {
		con.Printf("%v", err)
		return false
	}

	switch cmd.Action {
	case command.ActionQuit:
		return true
	case command.ActionHelp:
		for _, h := range command.Help() {
			con.Printf("  %s", h)
		}
	case command.ActionStatus:
		con.Printf("%s", display.StatusText(con.Last()))
	case command.ActionEvent:
		err := d.Send(ctx, cmd.Event)
		switch {
		case errors.Is(err, domain.ErrInvalidTransition):
			con.Printf("can't %s while %s", line, con.Last().Phase)
		case err != nil:
			con.Printf("%v", err)
		}
	default:
		con.Printf("unknown command %q, type 'help'", line)
	}
	return false
}

// readLines sends each stdin line on the returned channel and closes it
// at EOF.
func readLines(ctx context.Context, r io.Reader) <-chan string {
	out := make(chan string)
	go func() {
		defer close(out)
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			select {
			case out <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// console keeps a live status line at the bottom of the output and
// prints messages above it.
type console struct {
	mu     sync.Mutex
	out    io.Writer
	width  int
	last   domain.Snapshot
	status string
}

func newConsole(out io.Writer, width int) *console {
	return &console{out: out, width: width}
}

// Status redraws the status line when its text changes.
func (c *console) Status(snap domain.Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.last = snap
	line := display.RenderStatus(snap, c.width)
	if line == c.status {
		return
	}
	c.status = line
	fmt.Fprint(c.out, "\r\033[K"+line)
}

// Printf prints one line above the status line.
func (c *console) Printf(format string, a ...interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, "\r\033[K"+format+"\n", a...)
	fmt.Fprint(c.out, c.status)
}

// Last returns the most recent snapshot.
func (c *console) Last() domain.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}
