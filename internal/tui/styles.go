package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorText    = lipgloss.Color("#cdd6f4")
	colorSubtext = lipgloss.Color("#a6adc8")
	colorMuted   = lipgloss.Color("#7f849c")
	colorAccent  = lipgloss.Color("#89b4fa")
	colorGreen   = lipgloss.Color("#a6e3a1")
	colorRed     = lipgloss.Color("#f38ba8")
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)

	tabStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Padding(0, 1)
	activeTabStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Background(lipgloss.Color("#313244")).
			Bold(true).
			Padding(0, 1)

	cardTitleStyle    = lipgloss.NewStyle().Foreground(colorText)
	selectedCardStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	cardMetaStyle     = lipgloss.NewStyle().Foreground(colorSubtext)
	emptyStyle        = lipgloss.NewStyle().Foreground(colorMuted).Italic(true)

	statusStyle      = lipgloss.NewStyle().Foreground(colorSubtext)
	statusOKStyle    = lipgloss.NewStyle().Foreground(colorGreen)
	statusErrorStyle = lipgloss.NewStyle().Foreground(colorRed)
)
