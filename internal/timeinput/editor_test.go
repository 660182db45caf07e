package timeinput

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func typeDigits(e *Editor, digits ...int) {
	for _, d := range digits {
		e.Push(d)
	}
}

// assertCascade checks that no field is None while a higher one is set.
func assertCascade(t *testing.T, f Fields) {
	t.Helper()
	if f.Hours.IsSet() {
		assert.True(t, f.Minutes.IsSet(), "minutes unset below hours: %+v", f)
	}
	if f.Hours.IsSet() || f.Minutes.IsSet() {
		assert.True(t, f.Seconds.IsSet(), "seconds unset below minutes: %+v", f)
	}
}

func TestEditorTypingMinutes(t *testing.T) {
	e := NewEditor()
	require.Equal(t, FieldMinutes, e.Active())

	typeDigits(e, 2, 5)
	assert.Equal(t, Fields{None, Some(25), Some(0)}, e.Fields())
	assert.Equal(t, 25*time.Minute, e.Duration())
	assertCascade(t, e.Fields())
}

func TestEditorRejectsOverflow(t *testing.T) {
	e := NewEditor()
	e.Focus(FieldSeconds)

	assert.True(t, e.Push(6))
	assert.False(t, e.Push(0), "60 seconds is out of range")
	assert.False(t, e.Push(5), "65 seconds is out of range")
	assert.Equal(t, Some(6), e.Fields().Seconds)

	e.Focus(FieldHours)
	typeDigits(e, 9, 9)
	assert.False(t, e.Push(1), "hours capped at two digits")
	assert.Equal(t, Some(99), e.Fields().Hours)
	assert.False(t, e.Push(-1))
}

func TestEditorHoursBackfillsLowerFields(t *testing.T) {
	e := NewEditor()
	e.Focus(FieldHours)
	e.Push(1)

	assert.Equal(t, Fields{Some(1), Some(0), Some(0)}, e.Fields())
	assert.Equal(t, "", e.Typed(FieldMinutes), "filled zero is not typed")

	e.Next()
	typeDigits(e, 3, 0)
	assert.Equal(t, Fields{Some(1), Some(30), Some(0)}, e.Fields())
}

func TestEditorBackspaceCollapsesToZero(t *testing.T) {
	e := NewEditor()
	typeDigits(e, 1)
	e.Next()
	typeDigits(e, 4, 5)
	require.Equal(t, Fields{None, Some(1), Some(45)}, e.Fields())

	assert.True(t, e.Backspace())
	assert.Equal(t, Some(4), e.Fields().Seconds)
	assert.True(t, e.Backspace())
	assert.Equal(t, Some(0), e.Fields().Seconds, "minutes still set, seconds collapse to zero")
	assert.False(t, e.Backspace(), "zero under a set field cannot be cleared further")
	assertCascade(t, e.Fields())
}

func TestEditorClearingChainYieldsNone(t *testing.T) {
	e := NewEditor()
	typeDigits(e, 7)
	e.Next()
	typeDigits(e, 9)
	require.Equal(t, Fields{None, Some(7), Some(9)}, e.Fields())

	// Clearing the highest set field unsets it; lower typed digits stay.
	e.Prev()
	assert.True(t, e.Backspace())
	assert.Equal(t, Fields{None, None, Some(9)}, e.Fields())

	e.Next()
	assert.True(t, e.Backspace())
	assert.True(t, e.Fields().Empty())
	assert.False(t, e.Backspace())
}

func TestEditorClearingFilledChainYieldsEmpty(t *testing.T) {
	e := NewEditor()
	e.Focus(FieldHours)
	e.Push(1)
	require.Equal(t, Fields{Some(1), Some(0), Some(0)}, e.Fields())

	assert.True(t, e.Backspace())
	assert.Equal(t, Fields{None, None, None}, e.Fields())
	assert.True(t, e.Fields().Empty(), "the zero fill goes away with the hours digit")
	assert.Zero(t, e.Duration())

	// Typed lower digits survive; only the untyped fill is dropped.
	e.Push(2)
	e.Focus(FieldSeconds)
	typeDigits(e, 4)
	e.Focus(FieldHours)
	assert.True(t, e.Backspace())
	assert.Equal(t, Fields{None, None, Some(4)}, e.Fields())
	assertCascade(t, e.Fields())
}

func TestEditorClearHoursKeepsLowerDigits(t *testing.T) {
	e := NewEditor()
	e.Focus(FieldHours)
	typeDigits(e, 2)
	e.Next()
	typeDigits(e, 1, 5)

	e.Focus(FieldHours)
	assert.True(t, e.Backspace())
	assert.Equal(t, Fields{None, Some(15), Some(0)}, e.Fields())
	assertCascade(t, e.Fields())
}

func TestEditorFocusWraps(t *testing.T) {
	e := NewEditor()
	e.Focus(FieldSeconds)
	e.Next()
	assert.Equal(t, FieldHours, e.Active())
	e.Prev()
	assert.Equal(t, FieldSeconds, e.Active())
	e.Focus(Field(7))
	assert.Equal(t, FieldSeconds, e.Active())
}

func TestEditorLoad(t *testing.T) {
	e := NewEditor()

	e.Load(5 * time.Minute)
	assert.Equal(t, Fields{None, Some(5), Some(0)}, e.Fields())

	e.Load(3661 * time.Second)
	assert.Equal(t, Fields{Some(1), Some(1), Some(1)}, e.Fields())
	assert.Equal(t, 3661*time.Second, e.Duration())

	e.Load(0)
	assert.Equal(t, Fields{None, None, Some(0)}, e.Fields())

	e.Clear()
	assert.True(t, e.Fields().Empty())
}
