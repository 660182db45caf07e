package display

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/hammamikhairi/ottotimer/internal/domain"
)

type keyMap struct {
	Primary key.Binding
	Reset   key.Binding
	Ack     key.Binding
	Edit    key.Binding
	Next    key.Binding
	Prev    key.Binding
	Clear   key.Binding
	Cancel  key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Primary: key.NewBinding(
			key.WithKeys(" ", "space", "enter"),
			key.WithHelp("space", "start"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset"),
		),
		Ack: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "okay"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Next: key.NewBinding(
			key.WithKeys("tab", "right"),
			key.WithHelp("tab/→", "next field"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "left"),
			key.WithHelp("shift+tab/←", "prev field"),
		),
		Clear: key.NewBinding(
			key.WithKeys("delete"),
			key.WithHelp("del", "clear"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// sync enables the bindings that make sense for the current phase, so
// disabled actions are neither matched nor shown in help.
func (k *keyMap) sync(snap domain.Snapshot, editing, fieldNav bool) {
	controls := ControlsFor(snap)

	k.Primary.SetEnabled(controls[0].Enabled)
	k.Primary.SetHelp("space", controls[0].Label)
	k.Reset.SetEnabled(controls[1].Enabled)
	k.Ack.SetEnabled(snap.Phase == domain.PhaseRinging && !snap.Silenced)

	k.Edit.SetEnabled(snap.Phase == domain.PhaseStopped)
	if editing {
		k.Edit.SetHelp("e", "done")
	} else {
		k.Edit.SetHelp("e", "edit")
	}
	k.Next.SetEnabled(editing && fieldNav)
	k.Prev.SetEnabled(editing && fieldNav)
	k.Clear.SetEnabled(editing)
	k.Cancel.SetEnabled(editing)
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Primary, k.Reset, k.Ack, k.Edit, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Primary, k.Reset, k.Ack},
		{k.Edit, k.Next, k.Prev, k.Clear, k.Cancel},
		{k.Help, k.Quit},
	}
}
