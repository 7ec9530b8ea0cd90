// Package tui provides an interactive terminal UI for exploring verb
// conjugations.
package tui

import "github.com/charmbracelet/lipgloss"

// Color palette for the app chrome. Verb forms themselves are colored
// by render.TermRenderer from the configured palette.
var (
	colorPrimary = lipgloss.Color("#E11D48") // Red - title, errors
	colorAccent  = lipgloss.Color("#ffe66d") // Yellow - selection, active tab
	colorMuted   = lipgloss.Color("#666666") // Gray - help text
	colorSuccess = lipgloss.Color("#a8e6cf") // Green - copied notice
	colorText    = lipgloss.Color("#f1faee") // Light text
	colorBg      = lipgloss.Color("#1a1a2e") // Dark background
	colorBgAlt   = lipgloss.Color("#2d3436") // Alt background
	colorBorder  = lipgloss.Color("#3d5a80") // Border color
)

// Title styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			Background(colorBg).
			Padding(0, 1)

	verbCountStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Padding(0, 1)
)

// Search view styles
var (
	searchBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorAccent).
			Padding(0, 1)

	suggestionStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Padding(0, 2)

	suggestionActiveStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorAccent).
				Background(colorBgAlt).
				Padding(0, 2)
)

// Tense tab styles
var (
	tenseTabStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Padding(0, 2)

	tenseTabActiveStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorAccent).
				Background(colorBgAlt).
				Padding(0, 2)
)

// Status styles
var (
	helpStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	copiedStyle = lipgloss.NewStyle().
			Foreground(colorSuccess).
			Bold(true)

	helpBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(1, 2).
			Width(50)
)

// Content area style
var contentStyle = lipgloss.NewStyle().
	Padding(1, 2)
