package calc

import "strings"

const (
	// PlaceholderResult stands in for an evaluated answer on line 3.
	PlaceholderResult = "Result"
	// AnswerAnnotation is written to line 4 after an evaluation.
	AnswerAnnotation = "Ans = Result"
	// ErrorText marks a failed readout.
	ErrorText = "Error"
)

// DisplayState is the full calculator screen and latch state. It is a plain
// value: transitions return a modified copy.
type DisplayState struct {
	Line2       string `json:"line2"`
	Line3       string `json:"line3"`
	Line4       string `json:"line4"`
	Mode        Mode   `json:"mode"`
	IsError     bool   `json:"isError"`
	ShiftActive bool   `json:"shiftActive"`
	AlphaActive bool   `json:"alphaActive"`
}

// Fail returns a copy of s with the error latch set. While latched only AC and
// ON are accepted.
func (s DisplayState) Fail() DisplayState {
	s.IsError = true
	return s
}

// Screen is the read-only projection rendered by a presentation layer.
type Screen struct {
	Line1  string `json:"line1"`
	Line2  string `json:"line2"`
	Line3  string `json:"line3"`
	Line4  string `json:"line4"`
	Cursor bool   `json:"cursor"`
}

// Project maps a state onto the four display lines.
func Project(s DisplayState) Screen {
	status := []string{string(s.Mode)}
	if s.ShiftActive {
		status = append(status, "SHIFT")
	}
	if s.AlphaActive {
		status = append(status, "ALPHA")
	}
	line3 := s.Line3
	if s.IsError {
		line3 = ErrorText
	}
	return Screen{
		Line1:  strings.TrimSpace(strings.Join(status, " ")),
		Line2:  s.Line2,
		Line3:  line3,
		Line4:  s.Line4,
		Cursor: true,
	}
}
