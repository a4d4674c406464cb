package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Left     key.Binding
	Right    key.Binding
	Up       key.Binding
	Down     key.Binding
	Add      key.Binding
	Delete   key.Binding
	Detail   key.Binding
	Next     key.Binding
	Prev     key.Binding
	Todo     key.Binding
	Progress key.Binding
	Done     key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Left:     key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h/←", "column")),
		Right:    key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("l/→", "column")),
		Up:       key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
		Down:     key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
		Add:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Delete:   key.NewBinding(key.WithKeys("d", "x"), key.WithHelp("d", "delete")),
		Detail:   key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "details")),
		Next:     key.NewBinding(key.WithKeys(">", "L"), key.WithHelp(">", "move right")),
		Prev:     key.NewBinding(key.WithKeys("<", "H"), key.WithHelp("<", "move left")),
		Todo:     key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "to do")),
		Progress: key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "in progress")),
		Done:     key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "done")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Next, k.Prev, k.Delete, k.Detail, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down},
		{k.Add, k.Delete, k.Detail},
		{k.Todo, k.Progress, k.Done, k.Next, k.Prev},
		{k.Quit},
	}
}

// formKeyMap holds the bindings active while the add form is open.
type formKeyMap struct {
	Submit key.Binding
	Switch key.Binding
	Cancel key.Binding
}

func defaultFormKeyMap() formKeyMap {
	return formKeyMap{
		Submit: key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Switch: key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "switch field")),
		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

func (k formKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Switch, k.Cancel}
}

func (k formKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
