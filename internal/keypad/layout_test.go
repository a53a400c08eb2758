package keypad

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csheth/fc100v/internal/calc"
)

func TestLayoutKeysAreUniqueAndValid(t *testing.T) {
	seen := map[calc.KeyID]bool{}
	for _, pos := range Positions() {
		require.True(t, pos.Key.ID.Valid(), "invalid id %q", pos.Key.ID)
		require.False(t, seen[pos.Key.ID], "duplicate id %q", pos.Key.ID)
		seen[pos.Key.ID] = true
	}
	assert.Len(t, seen, 44)
}

func TestLookup(t *testing.T) {
	pos, ok := Lookup(calc.KeyEXE)
	require.True(t, ok)
	assert.Equal(t, 9, pos.Row)
	assert.Equal(t, 4, pos.Column)
	assert.Equal(t, ThemeBlueWhite, pos.Key.Theme)

	pos, ok = Lookup(calc.KeySHIFT)
	require.True(t, ok)
	assert.Equal(t, ThemeLightGreyOrange, pos.Key.Theme)
	assert.True(t, pos.Key.Round)

	_, ok = Lookup(calc.KeyEquals)
	assert.False(t, ok, "equals has no key cap")
}

func TestEmptySlots(t *testing.T) {
	assert.False(t, Layout[1][2].Present)
	assert.False(t, Layout[2][3].Present)
	assert.False(t, Layout[7][3].Present)
	assert.False(t, Layout[8][4].Present)
}

func TestThemeNames(t *testing.T) {
	assert.Equal(t, "blue-white-text", ThemeBlueWhite.String())
	assert.Equal(t, "light-grey-black-text", Theme(99).String())
}

func TestResolver(t *testing.T) {
	r := NewResolver(DefaultBindings())
	cases := []struct {
		msg  tea.KeyMsg
		want calc.KeyID
	}{
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("7")}, calc.Key7},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("*")}, calc.KeyMultiply},
		{tea.KeyMsg{Type: tea.KeyEnter}, calc.KeyEquals},
		{tea.KeyMsg{Type: tea.KeyBackspace}, calc.KeyDEL},
		{tea.KeyMsg{Type: tea.KeyDelete}, calc.KeyAC},
		{tea.KeyMsg{Type: tea.KeyUp}, calc.KeyUp},
		{tea.KeyMsg{Type: tea.KeyF3}, calc.KeyCMPD},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("M")}, calc.KeyMPlus},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("m")}, calc.KeyMODE},
	}
	for _, tc := range cases {
		got, ok := r.Resolve(tc.msg)
		require.True(t, ok, "no binding for %q", tc.msg.String())
		assert.Equal(t, tc.want, got, tc.msg.String())
	}

	_, ok := r.Resolve(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("z")})
	assert.False(t, ok)
	assert.Equal(t, "=/enter", r.KeyHint(calc.KeyEquals))
}

func TestEveryKeyCapIsBound(t *testing.T) {
	r := NewResolver(DefaultBindings())
	for _, pos := range Positions() {
		assert.NotEmpty(t, r.KeyHint(pos.Key.ID), "key %s has no terminal binding", pos.Key.ID)
	}
}

func TestBindingsAgreeWithParseKey(t *testing.T) {
	for _, b := range DefaultBindings() {
		for _, k := range b.Binding.Keys() {
			parsed, err := calc.ParseKey(k)
			if err != nil {
				continue
			}
			assert.Equal(t, b.ID, parsed, "%q presses %s in the TUI but %s via press", k, b.ID, parsed)
		}
	}
	got, err := calc.ParseKey("x")
	require.NoError(t, err)
	assert.Equal(t, calc.KeyEXE, got)
}
