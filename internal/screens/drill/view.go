package drill

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/drill/internal/session"
	"github.com/abhisek/drill/internal/ui/theme"
)

func (s *DrillScreen) View(width, height int) string {
	item := s.sess.Current()
	if item == nil {
		if s.sess.Phase() == session.PhaseFailed {
			return renderError(width, s.sess.Err())
		}
		return renderLoading(width)
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(theme.Question.Width(width).Render(item.Question))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.input.View()))
	b.WriteString("\n")
	b.WriteString(s.renderStatusLine(width))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.hist.View()))
	return b.String()
}

// renderStatusLine shows, in priority order, a request failure, a pending
// request or the feedback for the last wrong answer.
func (s *DrillScreen) renderStatusLine(width int) string {
	line := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	switch s.sess.Phase() {
	case session.PhaseFailed:
		return line.Foreground(theme.Error).
			Render(fmt.Sprintf("Error: %v  (r to retry)", s.sess.Err()))
	case session.PhaseAdvancing:
		return line.Foreground(theme.TextDim).Render("...")
	}
	if fb := s.sess.Feedback(); fb != "" {
		return theme.Feedback.Width(width).Render("answer: " + fb)
	}
	return ""
}

func renderLoading(width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("\n\n\n  Waiting for the scheduler...")
}

func renderError(width int, err error) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n  Error: %v\n\n  Press r to retry.", err))
}
