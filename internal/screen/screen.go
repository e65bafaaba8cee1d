package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/drill/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// StatusProvider is an optional interface for screens that show a short
// status in the header.
type StatusProvider interface {
	Status() string
}

// Resumer is an optional interface for screens that need to act when they
// become active again after the screen above them is popped.
type Resumer interface {
	Resume() tea.Cmd
}
