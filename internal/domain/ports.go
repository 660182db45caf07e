package domain

import "context"

// Alarm plays the looping notification sound. Play starts (or restarts)
// the sound; Stop halts it and waits for the output to drain. Stop must
// be safe to call when nothing is playing.
type Alarm interface {
	Play() error
	Stop()
}

// Notifier delivers messages to the user. Implementations can write to
// a terminal, a log, or raise desktop notifications.
type Notifier interface {
	Notify(ctx context.Context, message string) error
	NotifyUrgent(ctx context.Context, message string) error
}
