package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap binds the explorer actions.
type keyMap struct {
	Up         key.Binding
	Down       key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
	Home       key.Binding
	End        key.Binding
	Sort       key.Binding
	FocusLeft  key.Binding
	FocusRight key.Binding
	Narrow     key.Binding
	Widen      key.Binding
	Inspector  key.Binding
	Rename     key.Binding
	Open       key.Binding
	Parent     key.Binding
	Clear      key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		PageUp:     key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
		PageDown:   key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),
		Home:       key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("home", "first")),
		End:        key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("end", "last")),
		Sort:       key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort column")),
		FocusLeft:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "prev column")),
		FocusRight: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "next column")),
		Narrow:     key.NewBinding(key.WithKeys("<"), key.WithHelp("<", "narrow")),
		Widen:      key.NewBinding(key.WithKeys(">"), key.WithHelp(">", "widen")),
		Inspector:  key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "inspector")),
		Rename:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rename")),
		Open:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Parent:     key.NewBinding(key.WithKeys("backspace"), key.WithHelp("⌫", "parent")),
		Clear:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Sort, k.Inspector, k.Rename, k.Open, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown, k.Home, k.End},
		{k.Sort, k.FocusLeft, k.FocusRight, k.Narrow, k.Widen},
		{k.Inspector, k.Rename, k.Open, k.Parent, k.Clear, k.Help, k.Quit},
	}
}
