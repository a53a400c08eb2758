package tuitest

import "time"

// Step is one scripted interaction: wait Delay, then write Input.
type Step struct {
	Delay time.Duration
	Input []byte
}

// Wait pauses the script, usually to let the program render.
func Wait(d time.Duration) Step {
	return Step{Delay: d}
}

// Type writes s as typed runes.
func Type(s string) Step {
	return Step{Input: []byte(s)}
}

// Press writes a raw key sequence such as KeyEnter.
func Press(seq []byte) Step {
	return Step{Input: seq}
}

// Raw key sequences understood by bubbletea.
var (
	KeyEnter     = []byte{'\r'}
	KeyEsc       = []byte{27}
	KeyCtrlC     = []byte{3}
	KeyBackspace = []byte{127}
	KeyUp        = []byte("\x1b[A")
	KeyDown      = []byte("\x1b[B")
)
