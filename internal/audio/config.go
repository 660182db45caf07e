// Package audio plays the looping alarm through the system audio output.
package audio

import "time"

// Output format of the audio device. Sounds with other sample rates are
// resampled before playback.
const (
	SampleRate   = 44100
	ChannelCount = 2
	BitDepth     = 16
)

// Defaults for a new Alarm.
const (
	DefaultLeadIn       = 50 * time.Millisecond
	DefaultDrainTimeout = 500 * time.Millisecond
	DefaultCacheSize    = 4
)

// DefaultSoundName is the cache key of the bundled alarm.
const DefaultSoundName = "builtin:alarm.wav"

// bytesPerFrame is one int16 sample for each channel.
const bytesPerFrame = ChannelCount * BitDepth / 8
