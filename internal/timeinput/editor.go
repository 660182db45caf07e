package timeinput

import (
	"strconv"
	"time"
)

// Field identifies one part of the edited duration, highest order first.
type Field int

const (
	FieldHours Field = iota
	FieldMinutes
	FieldSeconds
)

const fieldCount = 3

// String returns the unit label of the field.
func (f Field) String() string {
	switch f {
	case FieldHours:
		return "h"
	case FieldMinutes:
		return "m"
	case FieldSeconds:
		return "s"
	default:
		return "?"
	}
}

// maxFieldDigits caps typing per field. Minutes and seconds also reject
// values above 59.
const maxFieldDigits = 2

// part is the digits typed into one field. The zero fill below a typed
// field is never stored; Fields derives it, so clearing the typed field
// takes the fill away with it.
type part struct {
	digits string
}

// value returns the field's value. filled reports that a higher-order
// field has typed digits.
func (p part) value(filled bool) Value {
	if p.digits == "" {
		if filled {
			return Some(0)
		}
		return None
	}
	n, err := strconv.Atoi(p.digits)
	if err != nil {
		return None
	}
	return Some(n)
}

// Editor edits hours, minutes and seconds as separate optional fields.
//
// A field may only be None while every higher-order field is None too:
// typing into hours fills untyped minutes and seconds with zero, and
// clearing a field below a typed one leaves it at zero instead of None.
// Clearing the typed field itself takes the fill away again.
type Editor struct {
	parts  [fieldCount]part
	active Field
}

// NewEditor returns an empty editor with the minutes field active.
func NewEditor() *Editor {
	return &Editor{active: FieldMinutes}
}

// Active returns the field receiving digits.
func (e *Editor) Active() Field { return e.active }

// Focus makes f the active field.
func (e *Editor) Focus(f Field) {
	if f < FieldHours || f > FieldSeconds {
		return
	}
	e.active = f
}

// Next moves focus to the next lower-order field, wrapping around.
func (e *Editor) Next() { e.active = (e.active + 1) % fieldCount }

// Prev moves focus to the next higher-order field, wrapping around.
func (e *Editor) Prev() { e.active = (e.active + fieldCount - 1) % fieldCount }

// Push appends digit d to the active field. It returns false when d is
// not a digit, the field is full, or the result would overflow.
func (e *Editor) Push(d int) bool {
	if d < 0 || d > 9 {
		return false
	}
	p := &e.parts[e.active]
	next := p.digits + strconv.Itoa(d)
	if len(next) > maxFieldDigits {
		return false
	}
	if e.active != FieldHours {
		if n, _ := strconv.Atoi(next); n > 59 {
			return false
		}
	}
	p.digits = next
	return true
}

// Backspace removes the last digit of the active field and reports
// whether anything changed.
func (e *Editor) Backspace() bool {
	p := &e.parts[e.active]
	if p.digits == "" {
		return false
	}
	p.digits = p.digits[:len(p.digits)-1]
	return true
}

// Clear unsets every field.
func (e *Editor) Clear() {
	e.parts = [fieldCount]part{}
}

// Load seeds the editor from d. Leading zero fields are left unset, the
// same way the display omits them.
func (e *Editor) Load(d time.Duration) {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	h, m, s := total/3600, total%3600/60, total%60

	e.Clear()
	if h > 0 {
		e.parts[FieldHours] = part{digits: strconv.Itoa(h)}
	}
	if h > 0 || m > 0 {
		e.parts[FieldMinutes] = part{digits: strconv.Itoa(m)}
	}
	e.parts[FieldSeconds] = part{digits: strconv.Itoa(s)}
}

// Fields returns the current field values. Untyped fields below a typed
// one read as zero; the rest are None.
func (e *Editor) Fields() Fields {
	var (
		vals   [fieldCount]Value
		filled bool
	)
	for i, p := range e.parts {
		vals[i] = p.value(filled)
		filled = filled || p.digits != ""
	}
	return Fields{Hours: vals[FieldHours], Minutes: vals[FieldMinutes], Seconds: vals[FieldSeconds]}
}

// Typed returns the digits typed into f. A field that is zero-filled or
// unset returns an empty string.
func (e *Editor) Typed(f Field) string {
	if f < FieldHours || f > FieldSeconds {
		return ""
	}
	return e.parts[f].digits
}

// Duration returns the edited duration.
func (e *Editor) Duration() time.Duration { return e.Fields().Duration() }
