package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/csheth/fc100v/internal/calc"
	"github.com/csheth/fc100v/internal/chat"
	"github.com/csheth/fc100v/internal/keypad"
)

func (m *model) View() string {
	calculator := m.calculatorView()
	if !m.chat.Open {
		return joinNonEmpty([]string{calculator, m.footerView()})
	}
	overlay := m.overlayView()
	if m.layout.sideBySide {
		return joinNonEmpty([]string{
			lipgloss.JoinHorizontal(lipgloss.Top, calculator, "  ", overlay),
			m.footerView(),
		})
	}
	return joinNonEmpty([]string{overlay, m.footerView()})
}

func (m *model) calculatorView() string {
	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		brandStyle.Render("CASIO"),
		strings.Repeat(" ", lcdInnerWidth-len("CASIO")-len("FC-100V")+2),
		modelStyle.Render("FC-100V"),
	)
	body := lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		m.lcdView(),
		bannerStyle.Render("FINANCIAL CONSULTANT"),
		captionStyle.Render(fitRight("REPLAY", keypadColumns*keyCellWidth-1)),
		m.keypadView(),
	)
	return shellStyle.Render(body)
}

func (m *model) lcdView() string {
	screen := calc.Project(m.state)
	main := screen.Line3
	if screen.Cursor {
		main += "█"
	}
	mainStyle := lcdMainStyle
	if m.state.IsError {
		mainStyle = lcdErrorStyle
	}
	lines := []string{
		lcdLineStyle.Render(fitRight(screen.Line1, lcdInnerWidth)),
		lcdLineStyle.Render(fitLeft(screen.Line2, lcdInnerWidth)),
		mainStyle.Render(fitRight(main, lcdInnerWidth)),
		lcdLineStyle.Render(fitRight(screen.Line4, lcdInnerWidth)),
	}
	return lcdStyle.Render(strings.Join(lines, "\n"))
}

func (m *model) keypadView() string {
	rows := make([]string, 0, keypad.Rows)
	for _, row := range keypad.Layout {
		cells := make([]string, 0, keypad.Columns)
		for _, slot := range row {
			cells = append(cells, m.keyCap(slot))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return strings.Join(rows, "\n")
}

func (m *model) keyCap(slot keypad.Slot) string {
	if !slot.Present {
		return keyEmptyStyle.Render("")
	}
	label := slot.Key.Label
	if slot.Key.Round {
		label = "(" + label + ")"
	}
	style := keyStyle(slot.Key.Theme)
	if slot.Key.ID == m.lastKey {
		style = style.Reverse(true).Bold(true)
	}
	return style.Render(label)
}

func (m *model) overlayView() string {
	parts := []string{overlayTitleStyle.Render(overlayTitle), m.viewport.View()}
	if m.chat.Pending {
		parts = append(parts, helperStyle.Render(fmt.Sprintf("%s %s", m.spinner.View(), overlayThinking)))
	}
	if m.chat.Err != "" {
		parts = append(parts, errorBoxStyle.Width(m.layout.viewportWidth-2).Render(wrapText("Error: "+m.chat.Err, m.layout.viewportWidth-4)))
	}
	parts = append(parts, m.input.View())
	return overlayStyle.Width(m.layout.overlayWidth - 2).Render(strings.Join(parts, "\n"))
}

// refreshConversation rebuilds the viewport content and pins it to the newest
// message.
func (m *model) refreshConversation() {
	m.viewport.SetContent(m.conversationContent())
	m.viewport.GotoBottom()
}

func (m *model) conversationContent() string {
	if len(m.chat.Conversation) == 0 {
		return helperStyle.Render(wrapText(overlayEmpty, m.layout.viewportWidth))
	}
	width := m.layout.viewportWidth
	bubbleWidth := width * 4 / 5
	var blocks []string
	for _, msg := range m.chat.Conversation {
		text := wrapText(strings.Join(chat.Lines(msg.Text), "\n"), bubbleWidth-2)
		if msg.Sender == chat.SenderUser {
			blocks = append(blocks, lipgloss.PlaceHorizontal(width, lipgloss.Right, userBubbleStyle.Render(text)))
			continue
		}
		blocks = append(blocks, aiBubbleStyle.Render(text))
	}
	return strings.Join(blocks, "\n\n")
}

func (m *model) footerView() string {
	parts := []string{m.help.View(m.keys)}
	if status := m.statusLine(); status != "" {
		parts = append(parts, status)
	}
	return strings.Join(parts, "\n")
}

func (m *model) statusLine() string {
	var segments []string
	if m.llm != nil {
		segments = append(segments, m.llm.Name())
	}
	switch m.manual {
	case manualLoading:
		segments = append(segments, "manual: loading")
	case manualReady:
		segments = append(segments, "manual: ready")
	case manualFailed:
		segments = append(segments, "manual: unavailable")
	}
	if n := len(m.running); n > 0 {
		segments = append(segments, fmt.Sprintf("%d job(s) running", n))
	}
	line := ""
	if len(segments) > 0 {
		line = statusBarStyle.Render(strings.Join(segments, " • "))
	}
	switch {
	case m.errorMessage != "":
		line = joinLine(line, errorStyle.Render(m.errorMessage))
	case m.infoMessage != "":
		line = joinLine(line, helperStyle.Render(m.infoMessage))
	}
	return line
}

func joinLine(a, b string) string {
	if a == "" {
		return b
	}
	return a + " " + b
}

func joinNonEmpty(parts []string) string {
	filtered := make([]string, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}
		filtered = append(filtered, part)
	}
	return strings.Join(filtered, "\n\n")
}
