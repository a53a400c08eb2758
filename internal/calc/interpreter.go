// Package calc interprets calculator key presses into display state.
//
// The interpreter performs no arithmetic. Operators stage the readout onto the
// history line and "=" writes a fixed placeholder; see PlaceholderResult.
package calc

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxDisplayLength bounds the number of characters on the primary readout.
const MaxDisplayLength = 20

// Option customizes an Interpreter.
type Option func(*Interpreter)

// WithInitialMode sets the mode used at start and restored by ON.
func WithInitialMode(mode Mode) Option {
	return func(in *Interpreter) {
		in.initialMode = mode
	}
}

// Interpreter holds the configuration of the transition function. It carries
// no display state of its own.
type Interpreter struct {
	initialMode Mode
	maxLength   int
}

// New builds an Interpreter starting in COMP unless overridden.
func New(opts ...Option) Interpreter {
	in := Interpreter{initialMode: ModeCOMP, maxLength: MaxDisplayLength}
	for _, opt := range opts {
		opt(&in)
	}
	return in
}

// InitialMode reports the configured start mode.
func (in Interpreter) InitialMode() Mode {
	return in.initialMode
}

// Start returns the power-on state.
func (in Interpreter) Start() DisplayState {
	return DisplayState{Line3: "0", Mode: in.initialMode}
}

// Apply returns the state that follows s after key k is pressed.
func (in Interpreter) Apply(s DisplayState, k KeyID) DisplayState {
	if !k.Valid() {
		return s
	}
	if s.IsError && k != KeyAC && k != KeyON {
		return s
	}

	switch k {
	case KeySHIFT:
		s.ShiftActive = !s.ShiftActive
		s.AlphaActive = false
		return s
	case KeyALPHA:
		s.AlphaActive = !s.AlphaActive
		s.ShiftActive = false
		return s
	}

	length := utf8.RuneCountInString(s.Line3)
	switch Classify(k) {
	case ClassReset:
		s = resetInput(s)
	case ClassPower:
		s = resetInput(s)
		s.Mode = in.initialMode
	case ClassDelete:
		switch {
		case length > 1:
			s.Line3 = dropLastRune(s.Line3)
		case s.Line3 != "0":
			s.Line3 = "0"
		}
	case ClassDigit:
		if length < in.maxLength {
			switch {
			case s.Line3 == "0" && k == Key0:
			case s.Line3 == "0":
				s.Line3 = string(k)
			default:
				s.Line3 += string(k)
			}
		}
	case ClassDecimal:
		if length < in.maxLength && !strings.ContainsRune(s.Line3, '.') {
			s.Line3 += "."
		}
	case ClassOperator:
		if length < in.maxLength-3 && s.Line3 != ErrorText {
			s.Line2 += s.Line3 + " " + operatorGlyph(k) + " "
			s.Line3 = "0"
		}
	case ClassEvaluate:
		if s.Line2 != "" && s.Line3 != ErrorText {
			s.Line2 += s.Line3 + " ="
			s.Line3 = PlaceholderResult
			s.Line4 = AnswerAnnotation
			s.IsError = false
		}
	case ClassMode:
		s.Mode = s.Mode.Next()
		s.Line2 = fmt.Sprintf("Mode set to %s", s.Mode)
		s.Line3 = "0"
		s.Line4 = ""
	case ClassFunction:
		s.Line2 = fmt.Sprintf("%s pressed (Shift: %t, Alpha: %t)", k, s.ShiftActive, s.AlphaActive)
		s.Line4 = ""
	}

	s.ShiftActive = false
	s.AlphaActive = false
	return s
}

// Run folds keys over s in order.
func (in Interpreter) Run(s DisplayState, keys ...KeyID) DisplayState {
	for _, k := range keys {
		s = in.Apply(s, k)
	}
	return s
}

func resetInput(s DisplayState) DisplayState {
	s.Line3 = "0"
	s.Line2 = ""
	s.Line4 = ""
	s.IsError = false
	return s
}

func dropLastRune(value string) string {
	_, size := utf8.DecodeLastRuneInString(value)
	return value[:len(value)-size]
}
