// Package keypad describes the physical key layout of the FC-100V face.
package keypad

import "github.com/csheth/fc100v/internal/calc"

const (
	Rows    = 10
	Columns = 5
)

// Kind mirrors the key groups printed on the calculator.
type Kind string

const (
	KindNumber   Kind = "number"
	KindOperator Kind = "operator"
	KindAction   Kind = "action"
	KindMode     Kind = "mode"
	KindControl  Kind = "control"
	KindEquals   Kind = "equals"
)

// Theme is the key cap color scheme.
type Theme int

const (
	ThemeLightGreyBlack Theme = iota
	ThemeDarkGreyWhite
	ThemeLightGreyOrange
	ThemeLightGreyRed
	ThemeLightGreyBlue
	ThemeBlueWhite
)

var themeNames = map[Theme]string{
	ThemeLightGreyBlack:  "light-grey-black-text",
	ThemeDarkGreyWhite:   "dark-grey-white-text",
	ThemeLightGreyOrange: "light-grey-orange-text",
	ThemeLightGreyRed:    "light-grey-red-text",
	ThemeLightGreyBlue:   "light-grey-blue-text",
	ThemeBlueWhite:       "blue-white-text",
}

func (t Theme) String() string {
	if name, ok := themeNames[t]; ok {
		return name
	}
	return themeNames[ThemeLightGreyBlack]
}

// Key describes one key cap.
type Key struct {
	ID    calc.KeyID
	Label string
	Kind  Kind
	Theme Theme
	Round bool
}

// Slot is one grid cell; empty slots keep the columns aligned.
type Slot struct {
	Key     Key
	Present bool
}

// Grid is the full keypad, row-major.
type Grid [Rows][Columns]Slot

// Position locates a key on the grid.
type Position struct {
	Row    int
	Column int
	Key    Key
}

func key(id calc.KeyID, label string, kind Kind, theme Theme) Slot {
	return Slot{Key: Key{ID: id, Label: label, Kind: kind, Theme: theme}, Present: true}
}

func round(s Slot) Slot {
	s.Key.Round = true
	return s
}

var empty = Slot{}

// Layout is the FC-100V face on a five column grid.
var Layout = Grid{
	{
		key(calc.KeyCOMP, "COMP", KindMode, ThemeLightGreyBlue),
		key(calc.KeySMPL, "SMPL", KindMode, ThemeLightGreyBlue),
		key(calc.KeyCMPD, "CMPD", KindMode, ThemeLightGreyBlue),
		key(calc.KeyCASH, "CASH", KindMode, ThemeLightGreyBlue),
		key(calc.KeyAMRT, "AMRT", KindMode, ThemeLightGreyBlue),
	},
	{
		round(key(calc.KeySHIFT, "SHIFT", KindControl, ThemeLightGreyOrange)),
		round(key(calc.KeyALPHA, "ALPHA", KindControl, ThemeLightGreyRed)),
		empty,
		round(key(calc.KeyUp, "▲", KindControl, ThemeDarkGreyWhite)),
		round(key(calc.KeyON, "ON", KindControl, ThemeDarkGreyWhite)),
	},
	{
		key(calc.KeySolve, "SOLVE", KindAction, ThemeDarkGreyWhite),
		key(calc.KeyRecall, "RCL", KindAction, ThemeDarkGreyWhite),
		round(key(calc.KeyLeft, "◀", KindControl, ThemeDarkGreyWhite)),
		empty,
		round(key(calc.KeyRight, "▶", KindControl, ThemeDarkGreyWhite)),
	},
	{
		key(calc.KeyLParen, "(", KindOperator, ThemeDarkGreyWhite),
		key(calc.KeyRParen, ")", KindOperator, ThemeDarkGreyWhite),
		key(calc.KeyMPlus, "M+", KindAction, ThemeDarkGreyWhite),
		round(key(calc.KeyDown, "▼", KindControl, ThemeDarkGreyWhite)),
		round(key(calc.KeyMODE, "MODE", KindMode, ThemeDarkGreyWhite)),
	},
	{
		key(calc.KeyN, "n", KindAction, ThemeDarkGreyWhite),
		key(calc.KeyIYR, "I%YR", KindAction, ThemeDarkGreyWhite),
		key(calc.KeyPV, "PV", KindAction, ThemeDarkGreyWhite),
		key(calc.KeyDEL, "DEL", KindAction, ThemeDarkGreyWhite),
		key(calc.KeyAC, "AC", KindAction, ThemeDarkGreyWhite),
	},
	{
		key(calc.KeyPMT, "PMT", KindAction, ThemeDarkGreyWhite),
		key(calc.KeyFV, "FV", KindAction, ThemeDarkGreyWhite),
		key(calc.KeyPercent, "%", KindOperator, ThemeLightGreyBlack),
		key(calc.KeyMultiply, "×", KindOperator, ThemeLightGreyBlack),
		key(calc.KeyDivide, "÷", KindOperator, ThemeLightGreyBlack),
	},
	{
		key(calc.Key7, "7", KindNumber, ThemeLightGreyBlack),
		key(calc.Key8, "8", KindNumber, ThemeLightGreyBlack),
		key(calc.Key9, "9", KindNumber, ThemeLightGreyBlack),
		key(calc.KeyAdd, "+", KindOperator, ThemeLightGreyBlack),
		key(calc.KeySubtract, "−", KindOperator, ThemeLightGreyBlack),
	},
	{
		key(calc.Key4, "4", KindNumber, ThemeLightGreyBlack),
		key(calc.Key5, "5", KindNumber, ThemeLightGreyBlack),
		key(calc.Key6, "6", KindNumber, ThemeLightGreyBlack),
		empty,
		empty,
	},
	{
		key(calc.Key1, "1", KindNumber, ThemeLightGreyBlack),
		key(calc.Key2, "2", KindNumber, ThemeLightGreyBlack),
		key(calc.Key3, "3", KindNumber, ThemeLightGreyBlack),
		empty,
		empty,
	},
	{
		key(calc.Key0, "0", KindNumber, ThemeLightGreyBlack),
		key(calc.KeyDecimal, ".", KindNumber, ThemeLightGreyBlack),
		key(calc.KeyEXP, "EXP", KindAction, ThemeLightGreyBlack),
		key(calc.KeyANS, "Ans", KindAction, ThemeLightGreyBlack),
		key(calc.KeyEXE, "EXE", KindEquals, ThemeBlueWhite),
	},
}

var index = buildIndex(Layout)

func buildIndex(grid Grid) map[calc.KeyID]Position {
	result := map[calc.KeyID]Position{}
	for r, row := range grid {
		for c, slot := range row {
			if !slot.Present {
				continue
			}
			result[slot.Key.ID] = Position{Row: r, Column: c, Key: slot.Key}
		}
	}
	return result
}

// Lookup finds the grid position of id. Keys without a cap (for example "=")
// report false.
func Lookup(id calc.KeyID) (Position, bool) {
	pos, ok := index[id]
	return pos, ok
}

// Positions lists every present key in row-major order.
func Positions() []Position {
	var result []Position
	for r, row := range Layout {
		for c, slot := range row {
			if slot.Present {
				result = append(result, Position{Row: r, Column: c, Key: slot.Key})
			}
		}
	}
	return result
}
