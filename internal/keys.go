package internal

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Start    key.Binding
	Reset    key.Binding
	Settings key.Binding
	About    key.Binding
	History  key.Binding
	Timer    key.Binding
	Back     key.Binding
	Up       key.Binding
	Down     key.Binding
	Next     key.Binding
	Prev     key.Binding
	Submit   key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Start: key.NewBinding(
			key.WithKeys(" ", "space", "enter"),
			key.WithHelp("space", "start"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset"),
		),
		Settings: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "settings"),
		),
		About: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "about"),
		),
		History: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "history"),
		),
		Timer: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "toggle timer"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Next: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "next field"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "previous field"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "apply"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// panelHelp adapts the key map to the help bubble for one panel.
type panelHelp struct {
	bindings []key.Binding
}

func (h panelHelp) ShortHelp() []key.Binding {
	return h.bindings
}

func (h panelHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{h.bindings}
}

func (k keyMap) forPanel(p Panel) panelHelp {
	switch p {
	case PanelSettings:
		return panelHelp{[]key.Binding{k.Next, k.Prev, k.Submit, k.Back}}
	case PanelHistory:
		return panelHelp{[]key.Binding{k.Up, k.Down, k.Back, k.Quit}}
	case PanelAbout:
		return panelHelp{[]key.Binding{k.Back, k.Quit}}
	default:
		return panelHelp{[]key.Binding{k.Start, k.Reset, k.Timer, k.Settings, k.History, k.About, k.Quit}}
	}
}
