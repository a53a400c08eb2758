package calc

import (
	"fmt"
	"strings"
)

// Mode is the calculation mode shown on the first display line.
type Mode string

const (
	ModeCOMP Mode = "COMP"
	ModeSMPL Mode = "SMPL"
	ModeCMPD Mode = "CMPD"
	ModeCASH Mode = "CASH"
	ModeAMRT Mode = "AMRT"
)

var modeCycle = []Mode{ModeCOMP, ModeSMPL, ModeCMPD, ModeCASH, ModeAMRT}

// Modes returns the modes in cycle order.
func Modes() []Mode {
	return append([]Mode(nil), modeCycle...)
}

// ParseMode resolves a mode name case-insensitively.
func ParseMode(value string) (Mode, error) {
	value = strings.ToUpper(strings.TrimSpace(value))
	for _, m := range modeCycle {
		if string(m) == value {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown mode %q", value)
}

// Next returns the mode that follows m, wrapping after the last one.
// A mode outside the cycle advances to the first mode.
func (m Mode) Next() Mode {
	for i, candidate := range modeCycle {
		if candidate == m {
			return modeCycle[(i+1)%len(modeCycle)]
		}
	}
	return modeCycle[0]
}

func (m Mode) String() string {
	return string(m)
}
