package audio

import (
	"encoding/binary"
	"io"

	"github.com/faiface/beep"
)

// pcmReader turns a beep stream into the interleaved signed 16-bit
// little-endian PCM the output context expects.
type pcmReader struct {
	stream  beep.Streamer
	samples [][2]float64
	done    bool
}

func newPCMReader(s beep.Streamer) *pcmReader {
	return &pcmReader{stream: s}
}

// Read fills p with whole frames. It returns io.EOF once the stream is
// drained; an endless loop never drains.
func (r *pcmReader) Read(p []byte) (int, error) {
	if r.done {
		return 0, io.EOF
	}
	frames := len(p) / bytesPerFrame
	if frames == 0 {
		return 0, io.ErrShortBuffer
	}
	if cap(r.samples) < frames {
		r.samples = make([][2]float64, frames)
	}
	buf := r.samples[:frames]

	n, ok := r.stream.Stream(buf)
	if !ok && n == 0 {
		r.done = true
		return 0, io.EOF
	}

	for i := 0; i < n; i++ {
		for c := 0; c < ChannelCount; c++ {
			off := i*bytesPerFrame + c*2
			binary.LittleEndian.PutUint16(p[off:], uint16(toInt16(buf[i][c])))
		}
	}
	return n * bytesPerFrame, nil
}

func toInt16(v float64) int16 {
	switch {
	case v >= 1:
		return 32767
	case v <= -1:
		return -32767
	default:
		return int16(v * 32767)
	}
}
