// Package notify delivers timer notifications to the terminal and the
// desktop.
package notify

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/hammamikhairi/ottotimer/internal/domain"
	"github.com/hammamikhairi/ottotimer/internal/logger"
)

// Compile-time interface check.
var _ domain.Notifier = (*Terminal)(nil)

var (
	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bae6fd"))

	urgentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fca5a5")).
			Bold(true)
)

// PrintFunc is a function used to print one line of output.
// Matches the signature of fmt.Printf-style helpers.
type PrintFunc func(format string, a ...interface{})

// Terminal writes notifications as styled lines.
type Terminal struct {
	log     *logger.Logger
	printFn PrintFunc
}

// NewTerminal creates a terminal notifier.
// If printFn is nil, each message is printed to stdout on its own line.
func NewTerminal(log *logger.Logger, printFn PrintFunc) *Terminal {
	if printFn == nil {
		printFn = func(format string, a ...interface{}) {
			fmt.Printf(format+"\n", a...)
		}
	}
	return &Terminal{log: log, printFn: printFn}
}

// Notify prints a normal notification.
func (n *Terminal) Notify(ctx context.Context, message string) error {
	n.log.Debug("notify: %s", message)
	n.printFn("%s", infoStyle.Render(message))
	return nil
}

// NotifyUrgent prints an urgent notification in bold red.
func (n *Terminal) NotifyUrgent(ctx context.Context, message string) error {
	n.log.Debug("notify-urgent: %s", message)
	n.printFn("%s", urgentStyle.Render(message))
	return nil
}

// Discard is a notifier that only logs. The interactive view uses it
// because the view itself shows the ringing state.
type Discard struct {
	log *logger.Logger
}

// NewDiscard creates a notifier that drops messages after logging them.
func NewDiscard(log *logger.Logger) *Discard {
	return &Discard{log: log}
}

// Notify logs the message.
func (n *Discard) Notify(ctx context.Context, message string) error {
	n.log.Debug("notify: %s", message)
	return nil
}

// NotifyUrgent logs the message.
func (n *Discard) NotifyUrgent(ctx context.Context, message string) error {
	n.log.Info("notify-urgent: %s", message)
	return nil
}
