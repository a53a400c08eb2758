package calc

import (
	"errors"
	"fmt"
	"strings"
)

// KeyID names one physical key on the calculator face.
type KeyID string

const (
	Key0 KeyID = "0"
	Key1 KeyID = "1"
	Key2 KeyID = "2"
	Key3 KeyID = "3"
	Key4 KeyID = "4"
	Key5 KeyID = "5"
	Key6 KeyID = "6"
	Key7 KeyID = "7"
	Key8 KeyID = "8"
	Key9 KeyID = "9"

	KeyDecimal  KeyID = "."
	KeyAdd      KeyID = "+"
	KeySubtract KeyID = "-"
	KeyMultiply KeyID = "*"
	KeyDivide   KeyID = "/"
	KeyEquals   KeyID = "="

	KeyAC    KeyID = "AC"
	KeyDEL   KeyID = "DEL"
	KeyMODE  KeyID = "MODE"
	KeySHIFT KeyID = "SHIFT"
	KeyALPHA KeyID = "ALPHA"
	KeyON    KeyID = "ON"

	KeyUp    KeyID = "UP"
	KeyDown  KeyID = "DOWN"
	KeyLeft  KeyID = "LEFT"
	KeyRight KeyID = "RIGHT"

	KeyN   KeyID = "N"
	KeyIYR KeyID = "IYR"
	KeyPV  KeyID = "PV"
	KeyPMT KeyID = "PMT"
	KeyFV  KeyID = "FV"
	KeyEXE KeyID = "EXE"
	KeyEXP KeyID = "EXP"
	KeyANS KeyID = "ANS"

	KeyCOMP KeyID = "COMP"
	KeySMPL KeyID = "SMPL"
	KeyCMPD KeyID = "CMPD"
	KeyCASH KeyID = "CASH"
	KeyAMRT KeyID = "AMRT"

	KeySolve   KeyID = "SOLVE_KEY"
	KeyRecall  KeyID = "RCL_KEY"
	KeyLParen  KeyID = "L_PAREN"
	KeyRParen  KeyID = "R_PAREN"
	KeyMPlus   KeyID = "M_PLUS"
	KeyPercent KeyID = "PERCENT_KEY"
)

// ErrUnknownKey is returned by ParseKey for identifiers outside the key set.
var ErrUnknownKey = errors.New("unknown key")

var allKeys = []KeyID{
	Key0, Key1, Key2, Key3, Key4, Key5, Key6, Key7, Key8, Key9,
	KeyDecimal, KeyAdd, KeySubtract, KeyMultiply, KeyDivide, KeyEquals,
	KeyAC, KeyDEL, KeyMODE, KeySHIFT, KeyALPHA, KeyON,
	KeyUp, KeyDown, KeyLeft, KeyRight,
	KeyN, KeyIYR, KeyPV, KeyPMT, KeyFV, KeyEXE, KeyEXP, KeyANS,
	KeyCOMP, KeySMPL, KeyCMPD, KeyCASH, KeyAMRT,
	KeySolve, KeyRecall, KeyLParen, KeyRParen, KeyMPlus, KeyPercent,
}

var knownKeys = func() map[KeyID]struct{} {
	set := make(map[KeyID]struct{}, len(allKeys))
	for _, k := range allKeys {
		set[k] = struct{}{}
	}
	return set
}()

var keyAliases = map[string]KeyID{
	"SOLVE": KeySolve,
	"RCL":   KeyRecall,
	"(":     KeyLParen,
	")":     KeyRParen,
	"M+":    KeyMPlus,
	"%":     KeyPercent,
	"×":     KeyMultiply,
	"÷":     KeyDivide,
	"−":     KeySubtract,
	"X":     KeyEXE,
}

// Keys returns every key identifier in canonical order.
func Keys() []KeyID {
	return append([]KeyID(nil), allKeys...)
}

// Valid reports whether k belongs to the key set.
func (k KeyID) Valid() bool {
	_, ok := knownKeys[k]
	return ok
}

func (k KeyID) String() string {
	return string(k)
}

// ParseKey resolves a canonical identifier or one of the printed-label aliases.
func ParseKey(value string) (KeyID, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", fmt.Errorf("%w: empty identifier", ErrUnknownKey)
	}
	if k := KeyID(value); k.Valid() {
		return k, nil
	}
	upper := strings.ToUpper(value)
	if k := KeyID(upper); k.Valid() {
		return k, nil
	}
	if k, ok := keyAliases[upper]; ok {
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKey, value)
}

// KeyClass groups keys by how the interpreter treats them.
type KeyClass int

const (
	ClassUnknown KeyClass = iota
	ClassDigit
	ClassDecimal
	ClassOperator
	ClassEvaluate
	ClassReset
	ClassPower
	ClassDelete
	ClassMode
	ClassModifier
	ClassFunction
	ClassPassive
)

func (c KeyClass) String() string {
	switch c {
	case ClassDigit:
		return "digit"
	case ClassDecimal:
		return "decimal"
	case ClassOperator:
		return "operator"
	case ClassEvaluate:
		return "evaluate"
	case ClassReset:
		return "reset"
	case ClassPower:
		return "power"
	case ClassDelete:
		return "delete"
	case ClassMode:
		return "mode"
	case ClassModifier:
		return "modifier"
	case ClassFunction:
		return "function"
	case ClassPassive:
		return "passive"
	default:
		return "unknown"
	}
}

// Classify reports the interpreter class of k.
func Classify(k KeyID) KeyClass {
	switch k {
	case Key0, Key1, Key2, Key3, Key4, Key5, Key6, Key7, Key8, Key9:
		return ClassDigit
	case KeyDecimal:
		return ClassDecimal
	case KeyAdd, KeySubtract, KeyMultiply, KeyDivide:
		return ClassOperator
	case KeyEquals:
		return ClassEvaluate
	case KeyAC:
		return ClassReset
	case KeyON:
		return ClassPower
	case KeyDEL:
		return ClassDelete
	case KeyMODE:
		return ClassMode
	case KeySHIFT, KeyALPHA:
		return ClassModifier
	case KeySolve, KeyRecall:
		return ClassFunction
	}
	if k.Valid() {
		return ClassPassive
	}
	return ClassUnknown
}

func operatorGlyph(k KeyID) string {
	switch k {
	case KeyMultiply:
		return "×"
	case KeyDivide:
		return "÷"
	default:
		return string(k)
	}
}
