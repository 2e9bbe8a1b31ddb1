package tui

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	colorWhite     = lipgloss.Color("#FFFFFF")
	colorLightGray = lipgloss.Color("#CCCCCC")
	colorGray      = lipgloss.Color("#888888")
	colorDarkGray  = lipgloss.Color("#444444")
	colorPurple    = lipgloss.Color("#8524a6")
	colorRed       = lipgloss.Color("#FF5555")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWhite).
			MarginTop(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(colorLightGray).
			MarginBottom(1)

	counterStyle = lipgloss.NewStyle().
			Foreground(colorPurple).
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(colorLightGray)

	labelFocusedStyle = lipgloss.NewStyle().
				Foreground(colorWhite).
				Bold(true)

	choiceStyle = lipgloss.NewStyle().
			Foreground(colorWhite)

	proStyle = lipgloss.NewStyle().
			Foreground(colorPurple)

	buttonStyle = lipgloss.NewStyle().
			Foreground(colorWhite).
			Background(colorPurple).
			Padding(0, 2)

	buttonDisabledStyle = lipgloss.NewStyle().
				Foreground(colorGray).
				Background(colorDarkGray).
				Padding(0, 2)

	resultBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(colorGray).
			Padding(0, 1)

	infoStyle = lipgloss.NewStyle().
			Foreground(colorGray).
			Italic(true)

	toastStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(colorLightGray).
			Padding(0, 1)

	toastDestructiveStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(colorRed).
				Foreground(colorRed).
				Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(colorDarkGray).
			Italic(true).
			MarginTop(1)
)
