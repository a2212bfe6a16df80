package tui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Toggle         key.Binding
	Stop           key.Binding
	Reset          key.Binding
	Presets        key.Binding
	MoreMinutes    key.Binding
	FewerMinutes   key.Binding
	AddTask        key.Binding
	Up             key.Binding
	Down           key.Binding
	ToggleTask     key.Binding
	DeleteTask     key.Binding
	ClearCompleted key.Binding
	SwitchPanel    key.Binding
	Quit           key.Binding
	Submit         key.Binding
	Cancel         key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "start/pause"),
		),
		Stop: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "stop"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset"),
		),
		Presets: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7"),
			key.WithHelp("1-7", "preset"),
		),
		MoreMinutes: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "custom +1m"),
		),
		FewerMinutes: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "custom -1m"),
		),
		AddTask: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add task"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j", "down"),
		),
		ToggleTask: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "done"),
		),
		DeleteTask: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		ClearCompleted: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clear done"),
		),
		SwitchPanel: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "tasks/history"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
		),
	}
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.Toggle, k.Stop, k.Reset, k.Presets, k.MoreMinutes, k.FewerMinutes,
		k.AddTask, k.ToggleTask, k.DeleteTask, k.ClearCompleted, k.SwitchPanel, k.Quit,
	}
}
