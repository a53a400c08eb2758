package tui

import (
	"time"

	"github.com/csheth/fc100v/internal/chat"
)

const (
	overlayTitle       = "AI Calculator Assistant"
	overlayPlaceholder = "Ask about the FC-100V calculator..."
	overlayThinking    = "AI is thinking..."
	overlayEmpty       = "Ask how a key, mode, or financial calculation works."

	defaultRequestTimeout = 2 * time.Minute
	manualLoadTimeout     = 2 * time.Minute

	// Panel widths in cells. The calculator body is fixed; the overlay
	// takes the rest when the terminal is wide enough to hold both.
	keyCellWidth     = 8
	lcdInnerWidth    = 29
	minOverlayWidth  = 36
	sideBySideMargin = 4
)

type manualState int

const (
	manualNone manualState = iota
	manualLoading
	manualReady
	manualFailed
)

// askResultMsg carries the outcome of one question back to Update.
type askResultMsg struct {
	req    chat.Request
	answer string
	err    error
}

type manualLoadedMsg struct {
	source string
	text   string
	err    error
}

type archiveResultMsg struct {
	count int
	err   error
}

type clipboardMsg struct {
	text string
	err  error
}
