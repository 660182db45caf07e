package domain

import "errors"

// Sentinel errors used across layers.
var (
	ErrInvalidTransition = errors.New("invalid transition")
	ErrInvalidDuration   = errors.New("invalid duration")
	ErrAudioUnavailable  = errors.New("audio unavailable")
)
