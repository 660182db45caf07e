package display

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestDigitCaptureInactivePassesEverything(t *testing.T) {
	d := DigitCapture{}
	for _, msg := range []tea.KeyMsg{runes("5"), {Type: tea.KeyBackspace}, runes("q")} {
		cmd, v := d.Intercept(msg)
		assert.Equal(t, PassThrough, v, msg.String())
		assert.Nil(t, cmd)
	}
}

func TestDigitCaptureActive(t *testing.T) {
	d := DigitCapture{Active: true}

	cmd, v := d.Intercept(runes("7"))
	require.Equal(t, Handled, v)
	require.NotNil(t, cmd)
	assert.Equal(t, digitMsg{n: 7}, cmd())

	cmd, v = d.Intercept(tea.KeyMsg{Type: tea.KeyBackspace})
	require.Equal(t, Handled, v)
	assert.Equal(t, backspaceMsg{}, cmd())

	for _, msg := range []tea.KeyMsg{
		runes("a"),
		runes("12"),
		{Type: tea.KeyRunes, Runes: []rune("3"), Alt: true},
		{Type: tea.KeyTab},
		{Type: tea.KeyEnter},
	} {
		_, v := d.Intercept(msg)
		assert.Equal(t, PassThrough, v, msg.String())
	}
}

type countingInterceptor struct {
	verdict Verdict
	calls   int
}

func (c *countingInterceptor) Intercept(tea.KeyMsg) (tea.Cmd, Verdict) {
	c.calls++
	return nil, c.verdict
}

func TestChainFirstHandledWins(t *testing.T) {
	pass := &countingInterceptor{verdict: PassThrough}
	stop := &countingInterceptor{verdict: Handled}
	never := &countingInterceptor{verdict: Handled}

	_, v := Chain{pass, nil, stop, never}.Intercept(runes("x"))
	assert.Equal(t, Handled, v)
	assert.Equal(t, 1, pass.calls)
	assert.Equal(t, 1, stop.calls)
	assert.Zero(t, never.calls)

	_, v = Chain{pass}.Intercept(runes("x"))
	assert.Equal(t, PassThrough, v)
}
