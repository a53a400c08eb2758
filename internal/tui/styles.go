package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/csheth/fc100v/internal/keypad"
)

var (
	bodyColor   = lipgloss.Color("#1f2937")
	lcdColor    = lipgloss.Color("#c7d2b4")
	lcdInkColor = lipgloss.Color("#111827")
	accentColor = lipgloss.Color("#60a5fa")

	brandStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#f9fafb"))
	modelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#9ca3af"))
	bannerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#9ca3af")).Italic(true)
	captionStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280"))
	lcdStyle      = lipgloss.NewStyle().Background(lcdColor).Foreground(lcdInkColor).Padding(0, 1).Border(lipgloss.ThickBorder()).BorderForeground(lipgloss.Color("#374151"))
	lcdLineStyle  = lipgloss.NewStyle().Background(lcdColor).Foreground(lcdInkColor)
	lcdMainStyle  = lcdLineStyle.Bold(true)
	lcdErrorStyle = lcdLineStyle.Bold(true).Foreground(lipgloss.Color("#b91c1c"))
	shellStyle    = lipgloss.NewStyle().Background(bodyColor).Padding(1, 2)

	keyBaseStyle  = lipgloss.NewStyle().Width(keyCellWidth - 1).Align(lipgloss.Center).MarginRight(1)
	keyEmptyStyle = lipgloss.NewStyle().Width(keyCellWidth - 1).MarginRight(1)

	overlayStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(accentColor).Padding(0, 1)
	overlayTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(accentColor)
	userBubbleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#f9fafb")).Background(lipgloss.Color("#2563eb")).Padding(0, 1)
	aiBubbleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#111827")).Background(lipgloss.Color("#e5e7eb")).Padding(0, 1)
	errorStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	errorBoxStyle     = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("9")).Foreground(lipgloss.Color("9")).Padding(0, 1)
	helperStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	statusBarStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#8ecae6")).Padding(0, 1)
)

var themeStyles = map[keypad.Theme]lipgloss.Style{
	keypad.ThemeLightGreyBlack:  keyBaseStyle.Background(lipgloss.Color("#d1d5db")).Foreground(lipgloss.Color("#111827")),
	keypad.ThemeDarkGreyWhite:   keyBaseStyle.Background(lipgloss.Color("#4b5563")).Foreground(lipgloss.Color("#f9fafb")),
	keypad.ThemeLightGreyOrange: keyBaseStyle.Background(lipgloss.Color("#d1d5db")).Foreground(lipgloss.Color("#ea580c")).Bold(true),
	keypad.ThemeLightGreyRed:    keyBaseStyle.Background(lipgloss.Color("#d1d5db")).Foreground(lipgloss.Color("#dc2626")).Bold(true),
	keypad.ThemeLightGreyBlue:   keyBaseStyle.Background(lipgloss.Color("#d1d5db")).Foreground(lipgloss.Color("#2563eb")),
	keypad.ThemeBlueWhite:       keyBaseStyle.Background(lipgloss.Color("#2563eb")).Foreground(lipgloss.Color("#ffffff")).Bold(true),
}

func keyStyle(theme keypad.Theme) lipgloss.Style {
	if style, ok := themeStyles[theme]; ok {
		return style
	}
	return themeStyles[keypad.ThemeLightGreyBlack]
}
