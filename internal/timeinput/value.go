// Package timeinput turns typed digits into hour/minute/second fields.
//
// Two models are provided. DigitBuffer is the compact keypad form: digits
// are appended to a single string and re-split on every change. Editor is
// the per-field form used by the interactive view, where hours, minutes
// and seconds are edited independently and an unset field is kept
// distinct from a zero one.
package timeinput

import (
	"strconv"
	"time"
)

// Value is an optional non-negative field value.
type Value struct {
	n   int
	set bool
}

// None is the unset value.
var None = Value{}

// Some returns a set value.
func Some(n int) Value { return Value{n: n, set: true} }

// Get returns the value and whether it is set.
func (v Value) Get() (int, bool) { return v.n, v.set }

// IsSet reports whether the value is set.
func (v Value) IsSet() bool { return v.set }

// Or returns the value, or def when unset.
func (v Value) Or(def int) int {
	if !v.set {
		return def
	}
	return v.n
}

// String returns the decimal value, or "-" when unset.
func (v Value) String() string {
	if !v.set {
		return "-"
	}
	return strconv.Itoa(v.n)
}

// Fields holds the hour, minute and second parts of a typed duration.
type Fields struct {
	Hours   Value
	Minutes Value
	Seconds Value
}

// Duration sums the set fields. Unset fields count as zero.
func (f Fields) Duration() time.Duration {
	return time.Duration(f.Hours.Or(0))*time.Hour +
		time.Duration(f.Minutes.Or(0))*time.Minute +
		time.Duration(f.Seconds.Or(0))*time.Second
}

// Empty reports whether no field is set.
func (f Fields) Empty() bool {
	return !f.Hours.set && !f.Minutes.set && !f.Seconds.set
}
