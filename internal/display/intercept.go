package display

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Verdict tells the model whether an interceptor consumed a key.
type Verdict int

const (
	// PassThrough lets the key continue to the default key bindings.
	PassThrough Verdict = iota
	// Handled stops routing; the returned command carries the result.
	Handled
)

// Interceptor sees key presses before the default key bindings.
type Interceptor interface {
	Intercept(msg tea.KeyMsg) (tea.Cmd, Verdict)
}

// Chain tries each interceptor in order. The first one to handle a key
// wins.
type Chain []Interceptor

// Intercept implements Interceptor.
func (c Chain) Intercept(msg tea.KeyMsg) (tea.Cmd, Verdict) {
	for _, in := range c {
		if in == nil {
			continue
		}
		if cmd, v := in.Intercept(msg); v == Handled {
			return cmd, Handled
		}
	}
	return nil, PassThrough
}

// digitMsg is a digit typed while editing.
type digitMsg struct{ n int }

// backspaceMsg removes the last typed digit.
type backspaceMsg struct{}

// DigitCapture turns digit and backspace keys into edit messages while
// Active. Every other key, and every key while inactive, passes through.
type DigitCapture struct {
	Active bool
}

// Intercept implements Interceptor.
func (d DigitCapture) Intercept(msg tea.KeyMsg) (tea.Cmd, Verdict) {
	if !d.Active {
		return nil, PassThrough
	}

	switch msg.Type {
	case tea.KeyBackspace:
		return func() tea.Msg { return backspaceMsg{} }, Handled
	case tea.KeyRunes:
		if len(msg.Runes) != 1 || msg.Alt {
			return nil, PassThrough
		}
		r := msg.Runes[0]
		if r < '0' || r > '9' {
			return nil, PassThrough
		}
		n := int(r - '0')
		return func() tea.Msg { return digitMsg{n: n} }, Handled
	}
	return nil, PassThrough
}
