package ui

import "github.com/charmbracelet/lipgloss"

type Theme struct {
	Title   lipgloss.Style
	Arabic  lipgloss.Style
	PreText lipgloss.Style
	Counter lipgloss.Style
	Target  lipgloss.Style
	Hint    lipgloss.Style
	Error   lipgloss.Style
	Success lipgloss.Style
	Border  lipgloss.Style
}

var DefaultTheme = Theme{
	Title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#A6E3A1")),
	Arabic:  lipgloss.NewStyle().Foreground(lipgloss.Color("#F5E0DC")),
	PreText: lipgloss.NewStyle().Faint(true).Foreground(lipgloss.Color("#94E2D5")),
	Counter: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F2CDCD")),
	Target:  lipgloss.NewStyle().Faint(true).Foreground(lipgloss.Color("#89B4FA")),
	Hint:    lipgloss.NewStyle().Faint(true).Foreground(lipgloss.Color("#CBA6F7")),
	Error:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F38BA8")),
	Success: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#A6E3A1")),
	Border:  lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2),
}
