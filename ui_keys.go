package main

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the key bindings of the album manager UI.
type keyMap struct {
	Up   key.Binding
	Down key.Binding

	Add    key.Binding // Focus the new album input.
	Edit   key.Binding // Start an inline edit of the selected album.
	Delete key.Binding // Ask to delete the selected album.

	Submit key.Binding
	Cancel key.Binding

	Confirm key.Binding // Answer yes to the delete prompt.

	Quit key.Binding
}

var defaultKeyMap = keyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Add: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "add"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e", "u"),
		key.WithHelp("e", "update"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d", "x"),
		key.WithHelp("d", "delete"),
	),
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "save"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
	Confirm: key.NewBinding(
		key.WithKeys("y", "Y"),
		key.WithHelp("y", "yes"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// listHelp is the binding set shown in the status line while browsing.
func (k keyMap) listHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Add, k.Edit, k.Delete, k.Quit}
}

func (k keyMap) inputHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Cancel}
}
