package audio

import (
	"github.com/hammamikhairi/ottotimer/internal/domain"
	"github.com/hammamikhairi/ottotimer/internal/logger"
)

// Compile-time interface check.
var _ domain.Alarm = (*NoOp)(nil)

// NoOp is an alarm that makes no sound. Used when audio is muted.
type NoOp struct {
	log *logger.Logger
}

// NewNoOp creates a silent alarm.
func NewNoOp(log *logger.Logger) *NoOp {
	return &NoOp{log: log}
}

// Play does nothing.
func (n *NoOp) Play() error {
	n.log.Debug("muted: would play alarm")
	return nil
}

// Stop does nothing.
func (n *NoOp) Stop() {}
