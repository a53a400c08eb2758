package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/csheth/fc100v/internal/calc"
	"github.com/csheth/fc100v/internal/keypad"
)

// keyMap holds the application bindings. Calculator keys live in the keypad
// resolver and only show up in the full help.
type keyMap struct {
	Assistant key.Binding
	Help      key.Binding
	Copy      key.Binding
	Quit      key.Binding

	Submit key.Binding
	Close  key.Binding
	Scroll key.Binding

	keypad   *keypad.Resolver
	overlay  bool
	pressKey key.Binding
}

func newKeyMap(resolver *keypad.Resolver) keyMap {
	return keyMap{
		Assistant: key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "assistant")),
		Help:      key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "all keys")),
		Copy:      key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("ctrl+y", "copy readout")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Submit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "send")),
		Close:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Scroll:    key.NewBinding(key.WithKeys("pgup", "pgdown", "ctrl+u", "ctrl+d"), key.WithHelp("pgup/pgdn", "scroll")),
		keypad:    resolver,
		pressKey:  key.NewBinding(key.WithKeys("0"), key.WithHelp("0-9 + - * / enter", "press")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	if k.overlay {
		return []key.Binding{k.Submit, k.Scroll, k.Close}
	}
	return []key.Binding{k.pressKey, k.Assistant, k.Copy, k.Help, k.Quit}
}

// FullHelp lists every calculator binding, five per column like the keypad.
func (k keyMap) FullHelp() [][]key.Binding {
	if k.overlay {
		return [][]key.Binding{k.ShortHelp()}
	}
	var columns [][]key.Binding
	var column []key.Binding
	for _, b := range k.keypad.Bindings() {
		if calc.Classify(b.ID) == calc.ClassDigit {
			continue
		}
		column = append(column, b.Binding)
		if len(column) == 5 {
			columns = append(columns, column)
			column = nil
		}
	}
	if len(column) > 0 {
		columns = append(columns, column)
	}
	return append(columns, []key.Binding{k.Assistant, k.Copy, k.Help, k.Quit})
}
