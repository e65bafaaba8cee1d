package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette: muted neutrals with the histogram's brick red as the accent.
var (
	Primary = lipgloss.Color("#AC5A53") // Brick, matches the histogram marker
	Success = lipgloss.Color("#6BAF75") // Sage
	Error   = lipgloss.Color("#E0605A") // Coral
	Text    = lipgloss.Color("#F2F2F2")
	TextDim = lipgloss.Color("#8A8A8A")
	BgCard  = lipgloss.Color("#222222")
	Border  = lipgloss.Color("#3A3A3A")
)

// Typography
var (
	Question = lipgloss.NewStyle().
			Bold(true).
			Foreground(Text).
			Align(lipgloss.Center)

	Feedback = lipgloss.NewStyle().
			Foreground(Error).
			Align(lipgloss.Center)

	Label = lipgloss.NewStyle().
		Foreground(TextDim)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)

// Components
var (
	RateFilled = lipgloss.NewStyle().
			Background(Success)

	RateEmpty = lipgloss.NewStyle().
			Background(Border)

	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border)
)
