package audio

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/faiface/beep"

	"github.com/hammamikhairi/ottotimer/internal/domain"
	"github.com/hammamikhairi/ottotimer/internal/logger"
)

// Compile-time interface check.
var _ domain.Alarm = (*Alarm)(nil)

// player is the subset of *oto.Player the alarm drives.
type player interface {
	Play()
	Pause()
	IsPlaying() bool
	Close() error
}

// sink creates players on an open output device.
type sink interface {
	NewPlayer(r io.Reader) player
}

// otoSink adapts *oto.Context to sink.
type otoSink struct {
	ctx *oto.Context
}

func (s otoSink) NewPlayer(r io.Reader) player { return s.ctx.NewPlayer(r) }

// openOto opens the default output device. oto allows a single context
// per process, so the alarm calls this at most once.
func openOto() (sink, error) {
	op := &oto.NewContextOptions{
		SampleRate:   SampleRate,
		ChannelCount: ChannelCount,
		Format:       oto.FormatSignedInt16LE,
	}

	ctx, readyChan, err := oto.NewContext(op)
	if err != nil {
		return nil, err
	}
	<-readyChan
	return otoSink{ctx: ctx}, nil
}

// Option configures the alarm.
type Option func(*Alarm)

// WithSoundFile plays the WAV or Ogg Vorbis file at path instead of the
// bundled sound.
func WithSoundFile(path string) Option {
	return func(a *Alarm) {
		a.path = path
	}
}

// WithVolume sets the volume in log2 steps: -1 halves the level, 1
// doubles it.
func WithVolume(v float64) Option {
	return func(a *Alarm) {
		a.volume = v
	}
}

// WithLeadIn sets the silence played before the first loop.
func WithLeadIn(d time.Duration) Option {
	return func(a *Alarm) {
		if d >= 0 {
			a.leadIn = d
		}
	}
}

// WithDrainTimeout bounds how long Stop waits for playback to cease.
func WithDrainTimeout(d time.Duration) Option {
	return func(a *Alarm) {
		a.drainTimeout = d
	}
}

// WithCache shares a decoded-sound cache between alarms.
func WithCache(c *SoundCache) Option {
	return func(a *Alarm) {
		a.cache = c
	}
}

// withSink replaces the device opener. Used by tests.
func withSink(open func() (sink, error)) Option {
	return func(a *Alarm) {
		a.open = open
	}
}

// Alarm plays a looping sound on the default output device.
//
// The device is opened lazily on the first Play and kept for the life of
// the process. If opening fails the error is remembered and every later
// Play returns it, so the timer keeps working without sound.
type Alarm struct {
	log          *logger.Logger
	cache        *SoundCache
	path         string
	volume       float64
	leadIn       time.Duration
	drainTimeout time.Duration
	open         func() (sink, error)

	mu      sync.Mutex
	sink    sink
	openErr error
	active  player // currently playing, nil when idle
}

// NewAlarm creates an alarm. No device is opened until Play.
func NewAlarm(log *logger.Logger, opts ...Option) *Alarm {
	a := &Alarm{
		log:          log,
		leadIn:       DefaultLeadIn,
		drainTimeout: DefaultDrainTimeout,
		open:         openOto,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.cache == nil {
		a.cache = NewSoundCache(DefaultCacheSize, log.Named("cache"))
	}
	return a
}

// Play starts the alarm sound, replacing any sound already playing.
func (a *Alarm) Play() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.ensureSinkLocked(); err != nil {
		return err
	}

	snd, err := a.loadSound()
	if err != nil {
		return err
	}

	a.stopLocked()

	p := a.sink.NewPlayer(newPCMReader(snd.Loop(beep.SampleRate(SampleRate), a.leadIn, a.volume)))
	p.Play()
	a.active = p
	a.log.Debug("playing %s (%s loop, lead-in %s)", snd.Name, snd.Duration(), a.leadIn)
	return nil
}

// Stop halts playback and waits, up to the drain timeout, until the
// device reports it has stopped. Safe to call when nothing is playing.
func (a *Alarm) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.stopLocked()
}

// Playing reports whether the alarm sound is currently active.
func (a *Alarm) Playing() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.active != nil && a.active.IsPlaying()
}

// Preload decodes the configured sound ahead of the first alarm, so a
// bad file is reported at startup rather than when the timer expires.
// It does not open the device.
func (a *Alarm) Preload() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	_, err := a.loadSound()
	return err
}

// stopLocked must be called with a.mu held.
func (a *Alarm) stopLocked() {
	if a.active == nil {
		return
	}
	p := a.active
	a.active = nil

	p.Pause()
	deadline := time.Now().Add(a.drainTimeout)
	for p.IsPlaying() && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if err := p.Close(); err != nil {
		a.log.Warn("closing player: %v", err)
	}
	a.log.Debug("stopped")
}

// ensureSinkLocked opens the output device once. Must be called with a.mu held.
func (a *Alarm) ensureSinkLocked() error {
	if a.sink != nil {
		return nil
	}
	if a.openErr != nil {
		return a.openErr
	}

	s, err := a.open()
	if err != nil {
		a.openErr = fmt.Errorf("%w: %v", domain.ErrAudioUnavailable, err)
		a.log.Error("opening output device: %v", err)
		return a.openErr
	}
	a.sink = s
	a.log.Debug("output device opened (rate=%d, channels=%d)", SampleRate, ChannelCount)
	return nil
}

// loadSound returns the configured sound, falling back to the bundled one
// when the configured file cannot be read or decoded.
func (a *Alarm) loadSound() (*Sound, error) {
	if a.path != "" {
		snd, err := a.cache.Load(a.path, func() (*Sound, error) {
			data, err := os.ReadFile(a.path)
			if err != nil {
				return nil, fmt.Errorf("reading alarm sound: %w", err)
			}
			return Decode(a.path, data)
		})
		if err == nil {
			return snd, nil
		}
		a.log.Warn("%v (using bundled sound)", err)
	}
	return a.cache.Load(DefaultSoundName, DefaultSound)
}
