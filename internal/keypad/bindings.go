package keypad

import (
	"fmt"
	"strings"

	bkey "github.com/charmbracelet/bubbles/key"

	"github.com/csheth/fc100v/internal/calc"
)

// Binding ties a calculator key to the terminal keys that press it.
type Binding struct {
	ID      calc.KeyID
	Binding bkey.Binding
}

func bind(id calc.KeyID, help string, keys ...string) Binding {
	return Binding{
		ID:      id,
		Binding: bkey.NewBinding(bkey.WithKeys(keys...), bkey.WithHelp(help, string(id))),
	}
}

// DefaultBindings maps the keyboard onto the calculator face. Enter presses
// "=" because the face has no dedicated equals cap.
func DefaultBindings() []Binding {
	return []Binding{
		bind(calc.Key0, "0", "0"),
		bind(calc.Key1, "1", "1"),
		bind(calc.Key2, "2", "2"),
		bind(calc.Key3, "3", "3"),
		bind(calc.Key4, "4", "4"),
		bind(calc.Key5, "5", "5"),
		bind(calc.Key6, "6", "6"),
		bind(calc.Key7, "7", "7"),
		bind(calc.Key8, "8", "8"),
		bind(calc.Key9, "9", "9"),
		bind(calc.KeyDecimal, ".", "."),
		bind(calc.KeyAdd, "+", "+"),
		bind(calc.KeySubtract, "-", "-"),
		bind(calc.KeyMultiply, "*", "*"),
		bind(calc.KeyDivide, "/", "/"),
		bind(calc.KeyEquals, "=/enter", "=", "enter"),
		bind(calc.KeyDEL, "bksp", "backspace"),
		bind(calc.KeyAC, "del/c", "delete", "c"),
		bind(calc.KeyON, "o", "o"),
		bind(calc.KeyMODE, "m", "m"),
		bind(calc.KeySHIFT, "s", "s"),
		bind(calc.KeyALPHA, "a", "a"),
		bind(calc.KeyUp, "↑", "up"),
		bind(calc.KeyDown, "↓", "down"),
		bind(calc.KeyLeft, "←", "left"),
		bind(calc.KeyRight, "→", "right"),
		bind(calc.KeyCOMP, "F1", "f1"),
		bind(calc.KeySMPL, "F2", "f2"),
		bind(calc.KeyCMPD, "F3", "f3"),
		bind(calc.KeyCASH, "F4", "f4"),
		bind(calc.KeyAMRT, "F5", "f5"),
		bind(calc.KeyN, "n", "n"),
		bind(calc.KeyIYR, "i", "i"),
		bind(calc.KeyPV, "p", "p"),
		bind(calc.KeyPMT, "t", "t"),
		bind(calc.KeyFV, "f", "f"),
		bind(calc.KeySolve, "v", "v"),
		bind(calc.KeyRecall, "r", "r"),
		bind(calc.KeyLParen, "(", "("),
		bind(calc.KeyRParen, ")", ")"),
		bind(calc.KeyPercent, "%", "%"),
		bind(calc.KeyMPlus, "M", "M"),
		bind(calc.KeyEXP, "e", "e"),
		bind(calc.KeyANS, "A", "A"),
		bind(calc.KeyEXE, "x", "x"),
	}
}

// Resolver turns terminal key messages into calculator keys.
type Resolver struct {
	bindings []Binding
	byID     map[calc.KeyID]Binding
}

// NewResolver indexes bindings. Earlier bindings win on overlap.
func NewResolver(bindings []Binding) *Resolver {
	byID := make(map[calc.KeyID]Binding, len(bindings))
	for _, b := range bindings {
		if _, exists := byID[b.ID]; !exists {
			byID[b.ID] = b
		}
	}
	return &Resolver{bindings: bindings, byID: byID}
}

// Resolve returns the calculator key bound to msg, if any.
func (r *Resolver) Resolve(msg fmt.Stringer) (calc.KeyID, bool) {
	for _, b := range r.bindings {
		if bkey.Matches(msg, b.Binding) {
			return b.ID, true
		}
	}
	return "", false
}

// KeyHint returns the terminal keys shown in help for id.
func (r *Resolver) KeyHint(id calc.KeyID) string {
	b, ok := r.byID[id]
	if !ok {
		return ""
	}
	if help := b.Binding.Help().Key; help != "" {
		return help
	}
	return strings.Join(b.Binding.Keys(), "/")
}

// Bindings returns the resolver's bindings in priority order.
func (r *Resolver) Bindings() []Binding {
	return append([]Binding(nil), r.bindings...)
}
