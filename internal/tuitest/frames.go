package tuitest

import (
	"regexp"
	"strings"
)

// Frame is one screen redraw with escape sequences stripped from Plain.
type Frame struct {
	Index int
	ANSI  string
	Plain string
}

var (
	clearScreen = regexp.MustCompile(`\x1b\[[0-9;]*J`)
	csiSequence = regexp.MustCompile(`\x1b\[[0-9;?]*[A-Za-z]`)
	oscSequence = regexp.MustCompile(`\x1b\][^\x07]*(\x07|\x1b\\)`)
)

func parseFrames(raw []byte) []Frame {
	stream := strings.ReplaceAll(string(raw), "\r", "")
	var frames []Frame
	for _, chunk := range clearScreen.Split(stream, -1) {
		chunk = strings.TrimPrefix(strings.Trim(chunk, "\x00"), "\x1b[H")
		plain := Strip(chunk)
		if strings.TrimSpace(plain) == "" {
			continue
		}
		frames = append(frames, Frame{Index: len(frames), ANSI: chunk, Plain: trimLines(plain)})
	}
	if len(frames) == 0 && strings.TrimSpace(stream) != "" {
		frames = append(frames, Frame{ANSI: stream, Plain: trimLines(Strip(stream))})
	}
	return frames
}

// Strip removes CSI and OSC escape sequences and shift-in/out bytes.
func Strip(s string) string {
	s = oscSequence.ReplaceAllString(s, "")
	s = csiSequence.ReplaceAllString(s, "")
	return strings.NewReplacer("\x0e", "", "\x0f", "").Replace(s)
}

func trimLines(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n ")
}

// FinalFrame returns the last frame, or false if nothing was drawn.
func (r *Recording) FinalFrame() (Frame, bool) {
	if r == nil || len(r.Frames) == 0 {
		return Frame{}, false
	}
	return r.Frames[len(r.Frames)-1], true
}

// Contains reports whether text appeared anywhere in the plain output.
// bubbletea repaints only changed lines, so a value can be missing from
// every single frame and still be on screen.
func (r *Recording) Contains(text string) bool {
	if r == nil {
		return false
	}
	return strings.Contains(Strip(string(r.Raw)), text)
}
