package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"
)

type pageLayout struct {
	windowWidth    int
	windowHeight   int
	sideBySide     bool
	overlayWidth   int
	viewportWidth  int
	viewportHeight int
}

// calculatorWidth is the rendered width of the calculator body, padding and
// key margins included.
const calculatorWidth = keypadColumns*keyCellWidth + 4

const keypadColumns = 5

func newPageLayout() pageLayout {
	l := pageLayout{}
	l.Update(80, 24)
	return l
}

func (l *pageLayout) Update(width, height int) {
	l.windowWidth = width
	l.windowHeight = height
	l.sideBySide = width-calculatorWidth-sideBySideMargin >= minOverlayWidth
	if l.sideBySide {
		l.overlayWidth = width - calculatorWidth - sideBySideMargin
	} else {
		l.overlayWidth = width - 2
	}
	if l.overlayWidth < minOverlayWidth {
		l.overlayWidth = minOverlayWidth
	}
	// border and padding
	l.viewportWidth = l.overlayWidth - 4

	// title, input, status rows and the overlay border
	const chrome = 8
	usable := height - chrome
	if !l.sideBySide {
		usable = height / 3
	}
	if usable < 4 {
		usable = 4
	}
	l.viewportHeight = usable
}

func wrapText(text string, width int) string {
	if width <= 0 {
		return text
	}
	return wordwrap.String(text, width)
}

// fitRight right-aligns s in width cells, keeping the tail when it overflows.
func fitRight(s string, width int) string {
	s = keepTail(s, width)
	if pad := width - runewidth.StringWidth(s); pad > 0 {
		return strings.Repeat(" ", pad) + s
	}
	return s
}

// fitLeft left-aligns s in width cells, keeping the tail when it overflows.
func fitLeft(s string, width int) string {
	s = keepTail(s, width)
	if pad := width - runewidth.StringWidth(s); pad > 0 {
		return s + strings.Repeat(" ", pad)
	}
	return s
}

func keepTail(s string, width int) string {
	if runewidth.StringWidth(s) <= width {
		return s
	}
	runes := []rune(s)
	used := 0
	start := len(runes)
	for start > 0 {
		w := runewidth.RuneWidth(runes[start-1])
		if used+w > width {
			break
		}
		used += w
		start--
	}
	return string(runes[start:])
}
