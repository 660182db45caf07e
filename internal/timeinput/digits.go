package timeinput

import "strconv"

// MaxDigits is the longest digit string a DigitBuffer accepts: hhmmss.
const MaxDigits = 6

// ParseDigits splits a compact digit string into fields. The trailing two
// characters are seconds, the two before them minutes, and anything left
// over is hours. Only the last MaxDigits characters are read. Parts that
// are absent are None; parts that are not made of digits are None too, so
// the function is total.
//
// Splitting is purely positional: "1305" is 13m05s with hours unset, and
// reaching hours takes a fifth digit ("13005" is 1h30m05s).
func ParseDigits(s string) Fields {
	if len(s) > MaxDigits {
		s = s[len(s)-MaxDigits:]
	}

	rest, secs := splitTail(s)
	hours, mins := splitTail(rest)

	return Fields{
		Hours:   parsePart(hours),
		Minutes: parsePart(mins),
		Seconds: parsePart(secs),
	}
}

// splitTail returns s without its last two bytes, and those bytes.
func splitTail(s string) (head, tail string) {
	if len(s) <= 2 {
		return "", s
	}
	return s[:len(s)-2], s[len(s)-2:]
}

func parsePart(s string) Value {
	if s == "" || !isDigits(s) {
		return None
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return None
	}
	return Some(n)
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return len(s) > 0
}

// DigitBuffer is an append-only digit string, re-parsed on every read.
type DigitBuffer struct {
	digits []byte
}

// NewDigitBuffer returns a buffer seeded with s. Non-digit bytes are
// dropped and at most MaxDigits are kept.
func NewDigitBuffer(s string) *DigitBuffer {
	b := &DigitBuffer{}
	for i := 0; i < len(s); i++ {
		if c := s[i]; c >= '0' && c <= '9' {
			b.Push(int(c - '0'))
		}
	}
	return b
}

// Push appends a digit. It returns false when d is not a digit or the
// buffer is full.
func (b *DigitBuffer) Push(d int) bool {
	if d < 0 || d > 9 || len(b.digits) >= MaxDigits {
		return false
	}
	b.digits = append(b.digits, byte('0'+d))
	return true
}

// Backspace drops the last digit. It returns false when the buffer is empty.
func (b *DigitBuffer) Backspace() bool {
	if len(b.digits) == 0 {
		return false
	}
	b.digits = b.digits[:len(b.digits)-1]
	return true
}

// Clear empties the buffer.
func (b *DigitBuffer) Clear() { b.digits = b.digits[:0] }

// Len returns the number of buffered digits.
func (b *DigitBuffer) Len() int { return len(b.digits) }

// String returns the buffered digits.
func (b *DigitBuffer) String() string { return string(b.digits) }

// Fields parses the buffer.
func (b *DigitBuffer) Fields() Fields { return ParseDigits(b.String()) }
