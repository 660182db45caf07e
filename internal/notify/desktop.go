package notify

import (
	"context"

	"github.com/gen2brain/beeep"

	"github.com/hammamikhairi/ottotimer/internal/domain"
	"github.com/hammamikhairi/ottotimer/internal/logger"
)

// Compile-time interface check.
var _ domain.Notifier = (*Desktop)(nil)

// AppName is shown as the sender of desktop notifications.
const AppName = "Timers"

// Desktop wraps another notifier and also raises a desktop notification
// for urgent messages. Desktop failures are logged, never returned: a
// missing notification daemon must not break the timer.
type Desktop struct {
	inner  domain.Notifier
	log    *logger.Logger
	notify func(title, message string) error
}

// NewDesktop creates a notifier that forwards to inner and pops up urgent
// messages on the desktop.
func NewDesktop(inner domain.Notifier, log *logger.Logger) *Desktop {
	beeep.AppName = AppName
	return &Desktop{
		inner: inner,
		log:   log,
		notify: func(title, message string) error {
			return beeep.Notify(title, message, "")
		},
	}
}

// Notify forwards to the wrapped notifier only.
func (n *Desktop) Notify(ctx context.Context, message string) error {
	return n.inner.Notify(ctx, message)
}

// NotifyUrgent forwards to the wrapped notifier and raises a desktop
// notification.
func (n *Desktop) NotifyUrgent(ctx context.Context, message string) error {
	if err := n.inner.NotifyUrgent(ctx, message); err != nil {
		return err
	}
	if err := n.notify(AppName, message); err != nil {
		n.log.Warn("desktop notification failed: %v", err)
	}
	return nil
}
