package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorAccent = lipgloss.Color("12")  // bright blue
	colorSender = lipgloss.Color("10")  // bright green
	colorDim    = lipgloss.Color("240") // gray
	colorCursor = lipgloss.Color("11")  // bright yellow
	colorFrame  = lipgloss.Color("238") // dark gray

	styleInput = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)

	styleColumnHeader = lipgloss.NewStyle().Foreground(colorDim).Underline(true)

	styleCursor = lipgloss.NewStyle().Foreground(colorCursor).Bold(true)

	styleSender = lipgloss.NewStyle().Foreground(colorSender)

	styleWhen = lipgloss.NewStyle().Foreground(colorDim)

	styleSnippet = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))

	styleListFrame = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(colorFrame)

	styleStatus = lipgloss.NewStyle().Foreground(colorDim).Padding(0, 1)

	styleError = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)
