package calc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var digits = []KeyID{Key0, Key1, Key2, Key3, Key4, Key5, Key6, Key7, Key8, Key9}

func TestStartState(t *testing.T) {
	s := New().Start()
	assert.Equal(t, DisplayState{Line3: "0", Mode: ModeCOMP}, s)

	s = New(WithInitialMode(ModeCASH)).Start()
	assert.Equal(t, ModeCASH, s.Mode)
}

func TestDigitOnZero(t *testing.T) {
	in := New()
	for _, d := range digits {
		t.Run(string(d), func(t *testing.T) {
			got := in.Apply(in.Start(), d)
			if d == Key0 {
				assert.Equal(t, "0", got.Line3)
				return
			}
			assert.Equal(t, string(d), got.Line3)
		})
	}
}

func TestDigitsAppend(t *testing.T) {
	in := New()
	s := in.Run(in.Start(), Key1, Key0, Key0, Key7)
	assert.Equal(t, "1007", s.Line3)
}

func TestDeleteNeverGrowsOrEmpties(t *testing.T) {
	in := New()
	cases := []struct {
		name  string
		line3 string
		want  string
	}{
		{"zero", "0", "0"},
		{"single", "7", "0"},
		{"multi", "123", "12"},
		{"decimal", "1.", "1"},
		{"placeholder", PlaceholderResult, "Resul"},
		{"glyph", "9×", "9"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := in.Start()
			s.Line3 = tc.line3
			got := in.Apply(s, KeyDEL)
			assert.Equal(t, tc.want, got.Line3)
			assert.NotEmpty(t, got.Line3)
			assert.LessOrEqual(t, len([]rune(got.Line3)), len([]rune(tc.line3)))
		})
	}
}

func TestDecimalIdempotent(t *testing.T) {
	in := New()
	once := in.Run(in.Start(), Key3, KeyDecimal)
	twice := in.Apply(once, KeyDecimal)
	assert.Equal(t, "3.", once.Line3)
	assert.Equal(t, once.Line3, twice.Line3)
	assert.False(t, twice.IsError)

	later := in.Run(once, Key5, KeyDecimal)
	assert.Equal(t, "3.5", later.Line3)
}

func TestModifiersAreSingleShot(t *testing.T) {
	in := New()
	shifted := in.Apply(in.Start(), KeySHIFT)
	require.True(t, shifted.ShiftActive)
	assert.False(t, in.Apply(shifted, Key5).ShiftActive)

	alpha := in.Apply(shifted, KeyALPHA)
	assert.True(t, alpha.AlphaActive)
	assert.False(t, alpha.ShiftActive, "latches are mutually exclusive")

	toggledOff := in.Apply(alpha, KeyALPHA)
	assert.False(t, toggledOff.AlphaActive)

	passive := in.Apply(in.Apply(in.Start(), KeyALPHA), KeyUp)
	assert.False(t, passive.AlphaActive)
	assert.Equal(t, "0", passive.Line3)
}

func TestResetTotality(t *testing.T) {
	in := New()
	dirty := in.Run(in.Start(), KeyMODE, Key7, KeyAdd, Key3, KeyEquals, KeySHIFT)
	dirty = dirty.Fail()

	ac := in.Apply(dirty, KeyAC)
	assert.Equal(t, "0", ac.Line3)
	assert.Empty(t, ac.Line2)
	assert.Empty(t, ac.Line4)
	assert.False(t, ac.IsError)
	assert.False(t, ac.ShiftActive)
	assert.Equal(t, ModeSMPL, ac.Mode, "AC leaves the mode alone")

	on := in.Apply(dirty, KeyON)
	assert.Equal(t, in.Start(), on)
}

func TestErrorLock(t *testing.T) {
	in := New()
	locked := in.Run(in.Start(), Key4, KeySubtract, Key2).Fail()
	for _, k := range Keys() {
		if k == KeyAC || k == KeyON {
			continue
		}
		assert.Equal(t, locked, in.Apply(locked, k), "key %s must be ignored", k)
	}
	assert.Equal(t, ErrorText, Project(locked).Line3)
}

func TestEvaluateScenario(t *testing.T) {
	in := New()
	s := in.Run(in.Start(), Key7, KeyAdd, Key3, KeyEquals)
	assert.True(t, strings.HasSuffix(s.Line2, "7 + 3 ="), "line2 = %q", s.Line2)
	assert.Equal(t, PlaceholderResult, s.Line3)
	assert.Equal(t, AnswerAnnotation, s.Line4)
	assert.False(t, s.IsError)
}

func TestOperatorGlyphs(t *testing.T) {
	in := New()
	s := in.Run(in.Start(), Key6, KeyMultiply, Key2, KeyDivide, Key1, KeySubtract)
	assert.Equal(t, "6 × 2 ÷ 1 - ", s.Line2)
	assert.Equal(t, "0", s.Line3)
}

func TestEvaluateRequiresHistory(t *testing.T) {
	in := New()
	s := in.Run(in.Start(), Key9, KeyEquals)
	assert.Equal(t, "9", s.Line3)
	assert.Empty(t, s.Line2)
	assert.Empty(t, s.Line4)
}

func TestModeCycle(t *testing.T) {
	in := New()
	s := in.Start()
	for i := 0; i < 5; i++ {
		s = in.Apply(s, KeyMODE)
	}
	assert.Equal(t, ModeCOMP, s.Mode)
	assert.Equal(t, "Mode set to COMP", s.Line2)
	assert.Equal(t, "0", s.Line3)

	s = in.Apply(s, KeyMODE)
	assert.Equal(t, "Mode set to SMPL", s.Line2)
}

func TestModeClearsContextLine(t *testing.T) {
	in := New()
	s := in.Run(in.Start(), Key1, KeyAdd, Key1, KeyEquals, KeyMODE)
	assert.Empty(t, s.Line4)
	assert.Equal(t, "0", s.Line3)
}

func TestFunctionKeysReportLatches(t *testing.T) {
	in := New()
	s := in.Run(in.Start(), KeySHIFT, KeySolve)
	assert.Equal(t, "SOLVE_KEY pressed (Shift: true, Alpha: false)", s.Line2)
	assert.False(t, s.ShiftActive)

	s = in.Run(s, KeyALPHA, KeyRecall)
	assert.Equal(t, "RCL_KEY pressed (Shift: false, Alpha: true)", s.Line2)
	assert.False(t, s.AlphaActive)
}

func TestLengthLimit(t *testing.T) {
	in := New()
	s := in.Start()
	s.Line3 = strings.Repeat("9", MaxDisplayLength)
	assert.Equal(t, s.Line3, in.Apply(s, Key1).Line3)
	assert.Equal(t, s.Line3, in.Apply(s, KeyDecimal).Line3)

	s.Line3 = strings.Repeat("9", MaxDisplayLength-3)
	got := in.Apply(s, KeyAdd)
	assert.Equal(t, s.Line3, got.Line3, "operator rejected at MAX-3")
	assert.Empty(t, got.Line2)

	s.Line3 = strings.Repeat("9", MaxDisplayLength-4)
	got = in.Apply(s, KeyAdd)
	assert.Equal(t, "0", got.Line3)
}

func TestPassiveKeysOnlyClearLatches(t *testing.T) {
	in := New()
	base := in.Run(in.Start(), Key4, KeyAdd, Key2)
	for _, k := range []KeyID{KeyEXE, KeyN, KeyPV, KeyCOMP, KeyLParen, KeyPercent, KeyLeft} {
		assert.Equal(t, base, in.Apply(base, k), "key %s", k)
	}
}

func TestUnknownKeyIgnored(t *testing.T) {
	in := New()
	s := in.Apply(in.Start(), KeySHIFT)
	assert.Equal(t, s, in.Apply(s, KeyID("SIN")))
}

func TestParseKey(t *testing.T) {
	cases := map[string]KeyID{
		"7":     Key7,
		"ac":    KeyAC,
		"Solve": KeySolve,
		"rcl":   KeyRecall,
		"×":     KeyMultiply,
		"M+":    KeyMPlus,
		"(":     KeyLParen,
		"exe":   KeyEXE,
		"x":     KeyEXE,
	}
	for input, want := range cases {
		got, err := ParseKey(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got)
	}

	_, err := ParseKey("cos")
	assert.ErrorIs(t, err, ErrUnknownKey)
}

func TestProjectStatusLine(t *testing.T) {
	in := New()
	assert.Equal(t, "COMP", Project(in.Start()).Line1)
	assert.Equal(t, "COMP SHIFT", Project(in.Apply(in.Start(), KeySHIFT)).Line1)
	assert.Equal(t, "COMP ALPHA", Project(in.Apply(in.Start(), KeyALPHA)).Line1)
	assert.True(t, Project(in.Start()).Cursor)
}

func TestClassify(t *testing.T) {
	assert.Equal(t, ClassDigit, Classify(Key8))
	assert.Equal(t, ClassModifier, Classify(KeyALPHA))
	assert.Equal(t, ClassPassive, Classify(KeyEXE))
	assert.Equal(t, ClassUnknown, Classify(KeyID("nope")))
	assert.Equal(t, "operator", Classify(KeyDivide).String())
}
