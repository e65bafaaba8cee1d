package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/drill/internal/ui/theme"
)

// AnswerInput wraps bubbles/textinput as the single-line answer field.
type AnswerInput struct {
	Model    textinput.Model
	MaxWidth int
	wrong    bool
}

// NewAnswerInput creates a focused answer field.
func NewAnswerInput(placeholder string, maxWidth int) AnswerInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "› "
	ti.Focus()

	if maxWidth > 0 {
		ti.SetWidth(maxWidth)
	}

	return AnswerInput{
		Model:    ti,
		MaxWidth: maxWidth,
	}
}

// Init returns the initial command.
func (a AnswerInput) Init() tea.Cmd {
	return a.Model.Focus()
}

// Update forwards msg to the field. changed reports whether the value is
// different afterwards.
func (a AnswerInput) Update(msg tea.Msg) (updated AnswerInput, cmd tea.Cmd, changed bool) {
	before := a.Model.Value()
	a.Model, cmd = a.Model.Update(msg)
	return a, cmd, a.Model.Value() != before
}

// View renders the field, marked when the last evaluation was wrong.
func (a AnswerInput) View() string {
	view := a.Model.View()
	if a.wrong {
		view += " " + lipgloss.NewStyle().Foreground(theme.Error).Render("✗")
	}
	return view
}

// Value returns the current input value.
func (a AnswerInput) Value() string {
	return a.Model.Value()
}

// MarkWrong flags or unflags the field as holding a wrong answer.
func (a *AnswerInput) MarkWrong(wrong bool) {
	a.wrong = wrong
}

// Reset clears the field for a new item.
func (a *AnswerInput) Reset() {
	a.Model.Reset()
	a.wrong = false
}

// Focus gives the field keyboard focus.
func (a *AnswerInput) Focus() tea.Cmd {
	return a.Model.Focus()
}
