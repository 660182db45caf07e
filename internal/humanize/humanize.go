// Package humanize converts durations into hour/minute/second parts and
// into the segment lists shown by the timer display.
package humanize

import (
	"fmt"
	"strings"
	"time"
)

// roundUpThreshold is the sub-second remainder above which SplitRounded
// rounds up. A countdown that just started shows its full value instead
// of dropping a second right away.
const roundUpThreshold = 100 * time.Millisecond

// Unit labels used in segments.
const (
	UnitHours   = "h"
	UnitMinutes = "m"
	UnitSeconds = "s"
)

// Segment is one "value unit" pair of a formatted duration.
type Segment struct {
	Value string
	Unit  string
}

// String returns the segment as "05s".
func (s Segment) String() string { return s.Value + s.Unit }

// Split decomposes d into whole hours, minutes and seconds, dropping any
// fractional second. Negative durations are treated as zero.
func Split(d time.Duration) (hours, minutes, seconds int) {
	return splitSeconds(int64(clamp(d) / time.Second))
}

// SplitRounded is Split, but rounds up to the next whole second when the
// fractional remainder exceeds 100ms.
func SplitRounded(d time.Duration) (hours, minutes, seconds int) {
	d = clamp(d)
	total := int64(d / time.Second)
	if d%time.Second > roundUpThreshold {
		total++
	}
	return splitSeconds(total)
}

// Segments formats d for display. The hours segment is omitted when zero,
// the minutes segment when hours and minutes are both zero. Seconds are
// always present. The leading segment is unpadded, later ones are padded
// to two digits.
func Segments(d time.Duration) []Segment {
	return segments(Split(d))
}

// SegmentsRounded is Segments built on SplitRounded.
func SegmentsRounded(d time.Duration) []Segment {
	return segments(SplitRounded(d))
}

// String joins the segments of d with spaces: "1h 01m 05s".
func String(d time.Duration) string {
	return join(Segments(d))
}

// StringRounded is String built on SplitRounded.
func StringRounded(d time.Duration) string {
	return join(SegmentsRounded(d))
}

// Spoken returns a phrase for notifications, e.g. "1 hour 30 seconds".
func Spoken(d time.Duration) string {
	h, m, s := Split(d)
	var parts []string
	if h > 0 {
		parts = append(parts, plural(h, "hour"))
	}
	if m > 0 {
		parts = append(parts, plural(m, "minute"))
	}
	if s > 0 || len(parts) == 0 {
		parts = append(parts, plural(s, "second"))
	}
	return strings.Join(parts, " ")
}

func segments(h, m, s int) []Segment {
	out := make([]Segment, 0, 3)
	lead := true
	add := func(v int, unit string) {
		if lead {
			out = append(out, Segment{Value: fmt.Sprintf("%d", v), Unit: unit})
			lead = false
			return
		}
		out = append(out, Segment{Value: fmt.Sprintf("%02d", v), Unit: unit})
	}

	if h > 0 {
		add(h, UnitHours)
	}
	if h > 0 || m > 0 {
		add(m, UnitMinutes)
	}
	add(s, UnitSeconds)
	return out
}

func splitSeconds(total int64) (hours, minutes, seconds int) {
	hours = int(total / 3600)
	minutes = int(total % 3600 / 60)
	seconds = int(total % 60)
	return hours, minutes, seconds
}

func clamp(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	return d
}

func join(segs []Segment) string {
	parts := make([]string, len(segs))
	for i, s := range segs {
		parts[i] = s.String()
	}
	return strings.Join(parts, " ")
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
