package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/drill/internal/router"
	"github.com/abhisek/drill/internal/screen"
	"github.com/abhisek/drill/internal/screens/drill"
	"github.com/abhisek/drill/internal/session"
	"github.com/abhisek/drill/internal/ui/layout"
)

// Options configures the application.
type Options struct {
	Drill drill.Config
}

// Validate checks that every component the drill screen needs is present
// and configured.
func (o Options) Validate() error {
	if o.Drill.Client == nil {
		return drill.ErrNoClient
	}
	if err := o.Drill.Session.Validate(); err != nil {
		return fmt.Errorf("session options: %w", err)
	}
	if err := o.Drill.Render.Validate(); err != nil {
		return fmt.Errorf("render options: %w", err)
	}
	return nil
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	drill  *drill.DrillScreen
	width  int
	height int
}

// NewAppModel creates an AppModel with the drill screen at the bottom of
// the stack.
func NewAppModel(opts Options) (AppModel, error) {
	if err := opts.Validate(); err != nil {
		return AppModel{}, err
	}
	d, err := drill.New(opts.Drill)
	if err != nil {
		return AppModel{}, err
	}
	return AppModel{router: router.New(d), drill: d}, nil
}

// Session returns the drill session driven by this model.
func (m AppModel) Session() *session.Session {
	return m.drill.Session()
}

func (m AppModel) Init() tea.Cmd {
	return m.drill.Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		header := layout.RenderHeader("", "", m.width)
		footer := layout.RenderFooter(nil, m.width)
		return m, m.router.Update(tea.WindowSizeMsg{
			Width:  m.width,
			Height: layout.ContentHeight(header, footer, m.height),
		})

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

// render composes the frame for the current terminal size.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	var title, status string
	footerHints := []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
	if active != nil {
		title = active.Title()
		if sp, ok := active.(screen.StatusProvider); ok {
			status = sp.Status()
		}
		if kp, ok := active.(screen.KeyHintProvider); ok {
			footerHints = kp.KeyHints()
		}
	}

	header := layout.RenderHeader(title, status, m.width)
	footer := layout.RenderFooter(footerHints, m.width)
	content := m.router.View(m.width, layout.ContentHeight(header, footer, m.height))

	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the Bubble Tea program and returns the session once the user
// quits.
func Run(opts Options) (*session.Session, error) {
	m, err := NewAppModel(opts)
	if err != nil {
		return nil, err
	}
	if _, err := tea.NewProgram(m).Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return m.Session(), err
	}
	return m.Session(), nil
}
