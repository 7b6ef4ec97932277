package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Prev       key.Binding
	Next       key.Binding
	Copy       key.Binding
	Open       key.Binding
	ScrollUp   key.Binding
	ScrollDown key.Binding
	Quit       key.Binding
}

var keys = keyMap{
	Prev:       key.NewBinding(key.WithKeys("up", "ctrl+p"), key.WithHelp("up", "previous message")),
	Next:       key.NewBinding(key.WithKeys("down", "ctrl+n"), key.WithHelp("down", "next message")),
	Copy:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "copy message")),
	Open:       key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("C-o", "open in $EDITOR")),
	ScrollUp:   key.NewBinding(key.WithKeys("pgup", "ctrl+u"), key.WithHelp("pgup", "scroll conversation")),
	ScrollDown: key.NewBinding(key.WithKeys("pgdown", "ctrl+d"), key.WithHelp("pgdn", "scroll conversation")),
	Quit:       key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "quit")),
}

// helpLine is shown in the status bar.
func (k keyMap) helpLine() []string {
	var parts []string
	for _, b := range []key.Binding{k.Copy, k.Open, k.ScrollDown, k.Quit} {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return parts
}
