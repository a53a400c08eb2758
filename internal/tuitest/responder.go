package tuitest

import (
	"bytes"
	"io"
)

// terminalQueries are the probes bubbletea and lipgloss send on startup,
// paired with the replies a real terminal would give.
var terminalQueries = []struct {
	query, reply string
}{
	{"\x1b[6n", "\x1b[1;1R"},
	{"\x1b]10;?\x07", "\x1b]10;rgb:cccc/cccc/cccc\x07"},
	{"\x1b]10;?\x1b\\", "\x1b]10;rgb:cccc/cccc/cccc\x1b\\"},
	{"\x1b]11;?\x07", "\x1b]11;rgb:0000/0000/0000\x07"},
	{"\x1b]11;?\x1b\\", "\x1b]11;rgb:0000/0000/0000\x1b\\"},
}

// responder answers terminal queries found in the output stream.
type responder struct {
	w       io.Writer
	pending []byte
}

func newResponder(w io.Writer) *responder {
	return &responder{w: w}
}

func (r *responder) Feed(chunk []byte) {
	r.pending = append(r.pending, chunk...)
	for r.answerOne() {
	}
	// keep a tail for queries split across reads
	if len(r.pending) > 256 {
		r.pending = append([]byte(nil), r.pending[len(r.pending)-64:]...)
	}
}

// answerOne replies to the earliest query in pending and drops everything
// up to its end.
func (r *responder) answerOne() bool {
	first, end := -1, 0
	reply := ""
	for _, q := range terminalQueries {
		idx := bytes.Index(r.pending, []byte(q.query))
		if idx < 0 || (first >= 0 && idx >= first) {
			continue
		}
		first, end, reply = idx, idx+len(q.query), q.reply
	}
	if first < 0 {
		return false
	}
	r.pending = r.pending[end:]
	_, _ = io.WriteString(r.w, reply)
	return true
}
