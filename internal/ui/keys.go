package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Next      key.Binding
	Prev      key.Binding
	Left      key.Binding
	Right     key.Binding
	Toggle    key.Binding
	Up        key.Binding
	Down      key.Binding
	MoveUp    key.Binding
	MoveDown  key.Binding
	Select    key.Binding
	Edit      key.Binding
	Install   key.Binding
	Revert    key.Binding
	Reset     key.Binding
	Help      key.Binding
	About     key.Binding
	Cancel    key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
	PageUp    key.Binding
	PageDown  key.Binding
	Home      key.Binding
	End       key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Next:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		Prev:      key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous field")),
		Left:      key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "LiLo")),
		Right:     key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "Grub2")),
		Toggle:    key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "switch bootloader")),
		Up:        key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
		Down:      key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),
		MoveUp:    key.NewBinding(key.WithKeys("shift+up", "K"), key.WithHelp("K", "move entry up")),
		MoveDown:  key.NewBinding(key.WithKeys("shift+down", "J"), key.WithHelp("J", "move entry down")),
		Select:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		Edit:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit label")),
		Install:   key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "install")),
		Revert:    key.NewBinding(key.WithKeys("ctrl+z"), key.WithHelp("ctrl+z", "revert last edit")),
		Reset:     key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "undo custom config")),
		Help:      key.NewBinding(key.WithKeys("h", "?"), key.WithHelp("h", "help")),
		About:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "about")),
		Cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Quit:      key.NewBinding(key.WithKeys("q", "Q", "f10", "ctrl+c"), key.WithHelp("q", "quit")),
		ForceQuit: key.NewBinding(key.WithKeys("f10", "ctrl+c"), key.WithHelp("f10", "quit")),
		PageUp:    key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
		PageDown:  key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),
		Home:      key.NewBinding(key.WithKeys("home"), key.WithHelp("home", "first")),
		End:       key.NewBinding(key.WithKeys("end"), key.WithHelp("end", "last")),
	}
}

// ShortHelp is part of help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Select, k.Install, k.Revert, k.Help, k.Quit}
}

// FullHelp is part of help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Left, k.Right, k.Toggle, k.Select},
		{k.Up, k.Down, k.MoveUp, k.MoveDown, k.Edit},
		{k.Install, k.Revert, k.Reset},
		{k.Help, k.About, k.Quit},
	}
}
