// Package display provides the terminal UI using Bubble Tea.
//
// The [Model] renders the countdown in a block font with two controls
// underneath. Bubble Tea's update loop is the only goroutine that touches
// the timer machine: ticks, key presses and ring checks are all messages.
package display

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hammamikhairi/ottotimer/internal/domain"
	"github.com/hammamikhairi/ottotimer/internal/humanize"
	"github.com/hammamikhairi/ottotimer/internal/logger"
	"github.com/hammamikhairi/ottotimer/internal/timeinput"
	"github.com/hammamikhairi/ottotimer/internal/timer"
)

// DefaultRingCheckInterval is how often an unanswered alarm is checked
// for its timeout.
const DefaultRingCheckInterval = time.Second

const appTitle = "Timer"

// Option configures the model.
type Option func(*Model)

// WithFonts sets the block fonts. Without it the countdown is plain text.
func WithFonts(f Fonts) Option {
	return func(m *Model) {
		m.fonts = f
	}
}

// WithRingCheckInterval sets how often a ringing alarm is re-checked.
func WithRingCheckInterval(d time.Duration) Option {
	return func(m *Model) {
		if d > 0 {
			m.ringCheck = d
		}
	}
}

// WithKeypad edits the duration as one digit string, like a microwave
// keypad, instead of separate hour, minute and second fields.
func WithKeypad() Option {
	return func(m *Model) {
		m.keypad = timeinput.NewDigitBuffer("")
	}
}

// WithInterceptors adds interceptors that run after digit capture.
func WithInterceptors(in ...Interceptor) Option {
	return func(m *Model) {
		m.extra = append(m.extra, in...)
	}
}

// Messages.
type (
	tickMsg      struct{ gen int }
	ringCheckMsg struct{ gen int }
)

// Model is the Bubble Tea model for the timer.
type Model struct {
	ctx     context.Context
	machine *timer.Machine
	log     *logger.Logger

	keys      keyMap
	help      help.Model
	fonts     Fonts
	extra     []Interceptor
	ringCheck time.Duration

	editor  *timeinput.Editor
	keypad  *timeinput.DigitBuffer
	editing bool
	// entry is the configured duration when editing began.
	entry time.Duration

	// Generations drop stale scheduled ticks after pause or reset.
	tickGen int
	ringGen int

	width  int
	height int
}

// New creates the model around m. The machine must not be used by any
// other goroutine while the program runs.
func New(ctx context.Context, m *timer.Machine, log *logger.Logger, opts ...Option) Model {
	model := Model{
		ctx:       ctx,
		machine:   m,
		log:       log,
		keys:      newKeyMap(),
		help:      help.New(),
		ringCheck: DefaultRingCheckInterval,
		editor:    timeinput.NewEditor(),
	}
	for _, opt := range opts {
		opt(&model)
	}
	model.syncKeys()
	return model
}

// Run starts the Bubble Tea event loop in the alternate screen. Blocks
// until quit or ctx is cancelled.
func Run(ctx context.Context, m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

// Editing reports whether the duration is being edited.
func (m Model) Editing() bool { return m.editing }

// Editor returns the per-field duration editor.
func (m Model) Editor() *timeinput.Editor { return m.editor }

// editState is what the user is typing into.
type editState interface {
	Push(d int) bool
	Backspace() bool
	Clear()
	Fields() timeinput.Fields
}

func (m Model) input() editState {
	if m.keypad != nil {
		return m.keypad
	}
	return m.editor
}

// EditFields returns the fields typed so far.
func (m Model) EditFields() timeinput.Fields { return m.input().Fields() }

func (m *Model) syncKeys() {
	m.keys.sync(m.machine.Snapshot(), m.editing, m.keypad == nil)
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.SetWindowTitle(m.title())}
	if m.machine.Ticking() {
		cmds = append(cmds, m.tickCmd())
	}
	return tea.Batch(cmds...)
}

func (m Model) interceptors() Chain {
	chain := Chain{DigitCapture{Active: m.editing}}
	return append(chain, m.extra...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if cmd, v := m.interceptors().Intercept(msg); v == Handled {
			return m, cmd
		}
		return m.handleKey(msg)

	case digitMsg:
		if !m.editing {
			return m, nil
		}
		if !m.input().Push(msg.n) {
			m.log.Debug("digit %d rejected", msg.n)
			return m, nil
		}
		m.applyEdit()
		return m, nil

	case backspaceMsg:
		if m.editing && m.input().Backspace() {
			m.applyEdit()
		}
		return m, nil

	case tickMsg:
		if msg.gen != m.tickGen || !m.machine.Ticking() {
			return m, nil
		}
		cmd := m.apply(fromTick, m.tick)
		return m, cmd

	case ringCheckMsg:
		if msg.gen != m.ringGen || !m.machine.Alerting() {
			return m, nil
		}
		cmd := m.apply(fromRingCheck, m.tick)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Primary):
		cmd := m.apply(fromKey, m.primary)
		return m, cmd

	case key.Matches(msg, m.keys.Reset):
		cmd := m.apply(fromKey, func() error {
			m.machine.Reset(m.ctx)
			return nil
		})
		return m, cmd

	case key.Matches(msg, m.keys.Ack):
		cmd := m.apply(fromKey, func() error { return m.machine.StopRinging(m.ctx) })
		return m, cmd

	case key.Matches(msg, m.keys.Edit):
		if m.editing {
			cmd := m.apply(fromKey, m.commitEdit)
			return m, cmd
		}
		m.startEdit()
		return m, nil

	case key.Matches(msg, m.keys.Cancel):
		if err := m.machine.SetDuration(m.entry); err != nil {
			m.log.Debug("restoring duration: %v", err)
		}
		m.editing = false
		m.syncKeys()
		return m, nil

	case key.Matches(msg, m.keys.Next):
		m.editor.Next()
	case key.Matches(msg, m.keys.Prev):
		m.editor.Prev()
	case key.Matches(msg, m.keys.Clear):
		m.input().Clear()
		m.applyEdit()
	}
	return m, nil
}

// primary runs the left-hand control: start, pause, resume or okay.
// Starting applies and closes any edit in progress.
func (m *Model) primary() error {
	switch m.machine.Phase() {
	case domain.PhaseStopped:
		if m.editing {
			if err := m.commitEdit(); err != nil {
				return err
			}
		}
		return m.machine.Enable(m.ctx)
	case domain.PhaseRinging:
		return m.machine.StopRinging(m.ctx)
	default:
		return m.machine.TogglePause(m.ctx)
	}
}

// startEdit enters edit mode. The field editor starts from the configured
// duration; the keypad starts empty.
func (m *Model) startEdit() {
	m.editing = true
	m.entry = m.machine.Configured()
	if m.keypad != nil {
		m.keypad.Clear()
	} else {
		m.editor.Load(m.entry)
		m.editor.Focus(timeinput.FieldMinutes)
	}
	m.syncKeys()
}

// applyEdit updates the configured duration as the user types. Empty
// fields fall back to the duration from before the edit.
func (m *Model) applyEdit() {
	d := m.entry
	if fields := m.input().Fields(); !fields.Empty() {
		d = fields.Duration()
	}
	if err := m.machine.SetDuration(d); err != nil {
		m.log.Debug("ignored: %v", err)
	}
}

// commitEdit leaves edit mode, keeping the duration typed so far.
func (m *Model) commitEdit() error {
	m.editing = false
	return nil
}

// source is what triggered a transition.
type source int

const (
	fromKey source = iota
	fromTick
	fromRingCheck
)

func (m *Model) tick() error {
	m.machine.Tick(m.ctx)
	return nil
}

// apply runs fn and schedules the periodic messages the new state needs.
// A tick is registered when the countdown starts running and re-registered
// by each tick while it keeps running; ring checks work the same way
// while the alarm may still time out. Invalid transitions are ignored.
func (m *Model) apply(src source, fn func() error) tea.Cmd {
	wasTicking, wasAlerting := m.machine.Ticking(), m.machine.Alerting()

	if err := fn(); err != nil {
		m.log.Debug("ignored: %v", err)
	}
	if m.machine.Phase() != domain.PhaseStopped {
		m.editing = false
	}

	var cmds []tea.Cmd
	if m.machine.Ticking() {
		switch {
		case !wasTicking:
			m.tickGen++
			cmds = append(cmds, m.tickCmd())
		case src == fromTick:
			cmds = append(cmds, m.tickCmd())
		}
	}
	if m.machine.Alerting() {
		switch {
		case !wasAlerting:
			m.ringGen++
			cmds = append(cmds, m.ringCheckCmd())
		case src == fromRingCheck:
			cmds = append(cmds, m.ringCheckCmd())
		}
	}

	m.syncKeys()
	cmds = append(cmds, tea.SetWindowTitle(m.title()))
	return tea.Batch(cmds...)
}

func (m Model) tickCmd() tea.Cmd {
	gen := m.tickGen
	return tea.Tick(m.machine.TickInterval(), func(time.Time) tea.Msg {
		return tickMsg{gen: gen}
	})
}

func (m Model) ringCheckCmd() tea.Cmd {
	gen := m.ringGen
	return tea.Tick(m.ringCheck, func(time.Time) tea.Msg {
		return ringCheckMsg{gen: gen}
	})
}

// timeText is the countdown as shown on screen.
func (m Model) timeText() string {
	snap := m.machine.Snapshot()
	switch snap.Phase {
	case domain.PhaseRunning, domain.PhasePaused:
		return humanize.StringRounded(snap.Remaining)
	case domain.PhaseRinging:
		return "0s"
	default:
		return humanize.String(snap.Configured)
	}
}

func (m Model) title() string {
	switch m.machine.Phase() {
	case domain.PhaseRunning:
		return m.timeText() + " - " + appTitle
	case domain.PhasePaused:
		return m.timeText() + " (paused) - " + appTitle
	case domain.PhaseRinging:
		return "Time's up! - " + appTitle
	default:
		return appTitle
	}
}

func (m Model) View() string {
	var sections []string

	sections = append(sections, titleStyle.Render(strings.ToUpper(appTitle)), "")
	if m.editing {
		sections = append(sections, m.renderEditor())
	} else {
		sections = append(sections, m.renderTime())
	}
	sections = append(sections, "", m.renderControls(), "", m.help.View(m.keys))

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	if m.width <= 0 || m.height <= 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m Model) renderTime() string {
	snap := m.machine.Snapshot()

	style, weight := stoppedStyle, WeightRegular
	switch snap.Phase {
	case domain.PhaseRunning:
		style, weight = runningStyle, WeightBold
	case domain.PhasePaused:
		style = pausedStyle
	case domain.PhaseRinging:
		style, weight = ringingStyle, WeightBold
	}

	text := m.fonts.Render(weight, m.timeText())
	if m.width > 0 && lipgloss.Width(text) > m.width {
		text = m.timeText()
	}
	return style.Render(text)
}

// renderEditor shows the three fields. Unset fields are dimmed dashes.
func (m Model) renderEditor() string {
	fields := m.input().Fields()
	values := [3]timeinput.Value{fields.Hours, fields.Minutes, fields.Seconds}

	var parts []string
	for i, v := range values {
		f := timeinput.Field(i)
		text := "--"
		style := fieldUnsetStyle
		if n, ok := v.Get(); ok {
			text = strconv.Itoa(n)
			if m.keypad == nil && m.editor.Typed(f) != "" {
				text = m.editor.Typed(f)
			}
			style = fieldSetStyle
		}
		if m.keypad == nil && f == m.editor.Active() {
			style = fieldActiveStyle
		}
		parts = append(parts, style.Render(padLeft(text, 2))+fieldSetStyle.Render(f.String()))
	}

	line := strings.Join(parts, " ")
	hint := hintStyle.Render("was " + humanize.String(m.entry))
	return lipgloss.JoinVertical(lipgloss.Center, line, "", hint)
}

func (m Model) renderControls() string {
	controls := ControlsFor(m.machine.Snapshot())

	render := func(b Button, style lipgloss.Style) string {
		if !b.Enabled {
			style = disabledButtonStyle
		}
		return style.Render(b.Label)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		render(controls[0], primaryButtonStyle),
		"    ",
		render(controls[1], secondaryButtonStyle),
	)
}

func padLeft(s string, width int) string {
	if n := width - len(s); n > 0 {
		return strings.Repeat(" ", n) + s
	}
	return s
}
