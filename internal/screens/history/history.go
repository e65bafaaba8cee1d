package history

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/drill/internal/router"
	"github.com/abhisek/drill/internal/screen"
	"github.com/abhisek/drill/internal/session"
	"github.com/abhisek/drill/internal/ui/components"
	"github.com/abhisek/drill/internal/ui/layout"
	"github.com/abhisek/drill/internal/ui/theme"
)

// Source supplies the outcomes reported so far.
type Source interface {
	History() []session.Outcome
}

// HistoryScreen lists the outcomes reported during this session, newest
// first.
type HistoryScreen struct {
	source   Source
	selected int
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen reading from source on every render.
func New(source Source) *HistoryScreen {
	return &HistoryScreen{source: source}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return nil
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Tab/Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}
	switch key.String() {
	case "esc", "tab":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < len(s.source.History())-1 {
			s.selected++
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	outcomes := s.source.History()
	if len(outcomes) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  Nothing reported yet.")
	}

	firstTry := 0
	for _, o := range outcomes {
		if o.FirstTry() {
			firstTry++
		}
	}

	var b strings.Builder
	b.WriteString("\n")
	bar := components.NewRateBar("First try", firstTry, len(outcomes), min(width-8, 60))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
	b.WriteString("\n\n")

	// Rows that fit below the summary.
	visible := max(height-4, 1)
	start := 0
	if s.selected >= visible {
		start = s.selected - visible + 1
	}

	for i := start; i < len(outcomes) && i < start+visible; i++ {
		// Newest first.
		o := outcomes[len(outcomes)-1-i]

		prefix := "  "
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			prefix = "> "
			style = theme.Selected
		}

		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			style.Render(prefix+describe(o))))
		b.WriteString("\n")
	}
	return b.String()
}

func describe(o session.Outcome) string {
	result := theme.Correct.Render("first try")
	if !o.FirstTry() {
		tries := "miss"
		if o.Misses != 1 {
			tries = "misses"
		}
		result = theme.Incorrect.Render(fmt.Sprintf("%q, %d %s", *o.FirstWrong, o.Misses, tries))
	}
	return fmt.Sprintf("%-20s %-12s consec %-3d %s", o.Question, o.Answer, o.Consec, result)
}
