package tui

import "github.com/charmbracelet/lipgloss"

var (
	Black  = lipgloss.Color("#000000")
	Blue   = lipgloss.Color("63")
	Grey   = lipgloss.Color("241")
	Red    = lipgloss.Color("1")
	White  = lipgloss.Color("#ffffff")
	Yellow = lipgloss.Color("220")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(White).
			Background(Blue).
			Padding(0, 1)

	tabStyle = lipgloss.NewStyle().
			Foreground(Grey).
			Padding(0, 1)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Yellow).
			Padding(0, 1)

	cursorRowStyle = lipgloss.NewStyle().
			Foreground(Black).
			Background(Yellow)

	headerRowStyle = lipgloss.NewStyle().
			Bold(true).
			Underline(true)

	emptyStyle = lipgloss.NewStyle().
			Foreground(Grey).
			Italic(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(Red).
			Bold(true)

	footerStyle = lipgloss.NewStyle().
			Foreground(Grey)
)
