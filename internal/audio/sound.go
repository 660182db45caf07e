package audio

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/vorbis"
	"github.com/faiface/beep/wav"
)

//go:embed assets/alarm.wav
var defaultAlarm []byte

// resampleQuality is beep's interpolation quality, 1 to 64.
const resampleQuality = 4

// ErrUnsupportedFormat is returned for data that is neither WAV nor Ogg Vorbis.
var ErrUnsupportedFormat = errors.New("unsupported audio format")

// Sound is a fully decoded audio clip. It is immutable and can feed any
// number of streams.
type Sound struct {
	Name   string
	Format beep.Format
	buf    *beep.Buffer
}

// Decode decodes WAV or Ogg Vorbis data into memory. The format is picked
// from the file magic, not the name.
func Decode(name string, data []byte) (*Sound, error) {
	var (
		stream beep.StreamSeekCloser
		format beep.Format
		err    error
	)

	switch {
	case bytes.HasPrefix(data, []byte("RIFF")):
		stream, format, err = wav.Decode(bytes.NewReader(data))
	case bytes.HasPrefix(data, []byte("OggS")):
		stream, format, err = vorbis.Decode(io.NopCloser(bytes.NewReader(data)))
	default:
		return nil, fmt.Errorf("%s: %w", name, ErrUnsupportedFormat)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}
	defer stream.Close()

	buf := beep.NewBuffer(format)
	buf.Append(stream)
	if err := stream.Err(); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}
	if buf.Len() == 0 {
		return nil, fmt.Errorf("decoding %s: no samples", name)
	}

	return &Sound{Name: name, Format: format, buf: buf}, nil
}

// DefaultSound decodes the bundled alarm.
func DefaultSound() (*Sound, error) {
	return Decode(DefaultSoundName, defaultAlarm)
}

// Len returns the clip length in samples.
func (s *Sound) Len() int { return s.buf.Len() }

// Duration returns the clip length.
func (s *Sound) Duration() time.Duration { return s.Format.SampleRate.D(s.buf.Len()) }

// Loop returns an endless stream of the clip at the given sample rate,
// preceded by leadIn of silence. volume is in beep's log2 steps; zero
// leaves the level unchanged.
func (s *Sound) Loop(rate beep.SampleRate, leadIn time.Duration, volume float64) beep.Streamer {
	var st beep.Streamer = beep.Loop(-1, s.buf.Streamer(0, s.buf.Len()))
	if n := s.Format.SampleRate.N(leadIn); n > 0 {
		st = beep.Seq(beep.Silence(n), st)
	}
	if s.Format.SampleRate != rate {
		st = beep.Resample(resampleQuality, s.Format.SampleRate, rate, st)
	}
	if volume != 0 {
		st = &effects.Volume{Streamer: st, Base: 2, Volume: volume}
	}
	return st
}
