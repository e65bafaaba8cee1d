package drill

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/drill/internal/render"
	"github.com/abhisek/drill/internal/router"
	"github.com/abhisek/drill/internal/scheduler"
	"github.com/abhisek/drill/internal/screen"
	"github.com/abhisek/drill/internal/screens/history"
	"github.com/abhisek/drill/internal/session"
	"github.com/abhisek/drill/internal/ui/components"
	"github.com/abhisek/drill/internal/ui/layout"
)

// ErrNoClient is returned when the screen is built without a scheduler
// client.
var ErrNoClient = errors.New("missing scheduler client")

// Initial histogram size in cells, until the first window size arrives.
const (
	defaultHistogramCols = 36
	defaultHistogramRows = 6
)

// Config holds everything the drill screen is built from.
type Config struct {
	Client  scheduler.Client
	Session session.Options
	Render  render.Options

	// Timeout bounds each scheduler request; zero means no deadline.
	Timeout time.Duration
}

// DrillScreen presents the current item, judges answers and exchanges
// outcomes with the scheduler.
type DrillScreen struct {
	sess    *session.Session
	client  scheduler.Client
	timeout time.Duration
	hist    *components.Histogram
	input   components.AnswerInput
}

var _ screen.Screen = (*DrillScreen)(nil)
var _ screen.KeyHintProvider = (*DrillScreen)(nil)
var _ screen.StatusProvider = (*DrillScreen)(nil)
var _ screen.Resumer = (*DrillScreen)(nil)

// New creates a DrillScreen. Invalid options or a missing client are
// reported here so the program never starts half configured.
func New(cfg Config) (*DrillScreen, error) {
	if cfg.Client == nil {
		return nil, ErrNoClient
	}
	sess, err := session.New(cfg.Session)
	if err != nil {
		return nil, fmt.Errorf("session options: %w", err)
	}
	hist, err := components.NewHistogram(cfg.Render, defaultHistogramCols, defaultHistogramRows)
	if err != nil {
		return nil, fmt.Errorf("histogram: %w", err)
	}
	return &DrillScreen{
		sess:    sess,
		client:  cfg.Client,
		timeout: cfg.Timeout,
		hist:    hist,
		input:   components.NewAnswerInput("Type your answer...", 40),
	}, nil
}

// Session exposes the underlying session handle.
func (s *DrillScreen) Session() *session.Session {
	return s.sess
}

// Init issues the initial request.
func (s *DrillScreen) Init() tea.Cmd {
	req, seq, err := s.sess.Begin()
	if err != nil {
		return nil
	}
	return tea.Batch(s.fetch(req, seq), s.input.Init())
}

func (s *DrillScreen) Title() string {
	return "Drill"
}

func (s *DrillScreen) Status() string {
	reported := len(s.sess.History())
	cur := s.sess.Current()
	if cur == nil {
		return fmt.Sprintf("%d reported", reported)
	}
	return fmt.Sprintf("consec %d · %d reported", cur.Consec, reported)
}

func (s *DrillScreen) KeyHints() []layout.KeyHint {
	switch s.sess.Phase() {
	case session.PhaseFailed:
		return []layout.KeyHint{
			{Key: "r", Description: "Retry"},
			{Key: "Tab", Description: "History"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	case session.PhaseAwaitingInput:
		submit := "Submit"
		if s.sess.Options().SubmitMode == session.ModeLivePrefix {
			submit = "Check"
		}
		return []layout.KeyHint{
			{Key: "Enter", Description: submit},
			{Key: "Tab", Description: "History"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	default:
		return []layout.KeyHint{
			{Key: "Tab", Description: "History"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
}

// Resume refocuses the answer field when returning from another screen.
func (s *DrillScreen) Resume() tea.Cmd {
	return s.input.Focus()
}

func (s *DrillScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case itemReadyMsg:
		return s.handleItemReady(msg)

	case tea.WindowSizeMsg:
		return s.handleResize(msg)

	case tea.KeyPressMsg:
		return s.handleKey(msg)

	case tea.PasteMsg:
		if s.sess.Phase() != session.PhaseAwaitingInput {
			return s, nil
		}
		return s.edit(msg)
	}

	// Cursor blink and other field housekeeping.
	var cmd tea.Cmd
	s.input, cmd, _ = s.input.Update(msg)
	return s, cmd
}

func (s *DrillScreen) handleItemReady(msg itemReadyMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		_ = s.sess.Fail(msg.Seq, msg.Err)
		return s, nil
	}

	if err := s.sess.Receive(msg.Seq, msg.Item); err != nil {
		// Stale responses are dropped; anything else left the session failed.
		return s, nil
	}

	item := s.sess.Current()
	s.input.Reset()
	s.hist.Draw(item.Consec, item.Weights)
	return s, s.input.Focus()
}

func (s *DrillScreen) handleResize(msg tea.WindowSizeMsg) (screen.Screen, tea.Cmd) {
	cols, rows := histogramSize(msg.Width, msg.Height, s.hist.Count())
	_ = s.hist.Resize(cols, rows)
	return s, nil
}

func (s *DrillScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	if msg.String() == "tab" {
		return s, func() tea.Msg {
			return router.PushScreenMsg{Screen: history.New(s.sess)}
		}
	}

	switch s.sess.Phase() {
	case session.PhaseFailed:
		if msg.String() == "r" {
			return s.retry()
		}
		return s, nil

	case session.PhaseAwaitingInput:
		if msg.String() == "enter" {
			return s.evaluate(session.TriggerCommit)
		}
		return s.edit(msg)
	}

	// Busy: a request is in flight.
	return s, nil
}

// edit applies a keystroke or paste to the answer field. In live mode any
// change is judged immediately.
func (s *DrillScreen) edit(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	var changed bool
	s.input, cmd, changed = s.input.Update(msg)
	if changed && s.sess.Options().SubmitMode == session.ModeLivePrefix {
		next, evalCmd := s.evaluate(session.TriggerChange)
		return next, tea.Batch(cmd, evalCmd)
	}
	return s, cmd
}

func (s *DrillScreen) evaluate(trigger session.Trigger) (screen.Screen, tea.Cmd) {
	step := s.sess.Evaluate(s.input.Value(), trigger)
	switch step.Verdict {
	case session.VerdictMatch:
		s.input.MarkWrong(false)
		return s, s.fetch(*step.Request, step.Seq)
	case session.VerdictMismatch:
		s.input.MarkWrong(true)
	case session.VerdictPartial:
		s.input.MarkWrong(false)
	}
	return s, nil
}

func (s *DrillScreen) retry() (screen.Screen, tea.Cmd) {
	req, seq, err := s.sess.Retry()
	if err != nil {
		return s, nil
	}
	return s, s.fetch(req, seq)
}

// fetch performs one scheduler request off the event loop.
func (s *DrillScreen) fetch(req session.Request, seq uint64) tea.Cmd {
	client, timeout := s.client, s.timeout
	return func() tea.Msg {
		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		item, err := client.Next(ctx, req)
		return itemReadyMsg{Seq: seq, Item: item, Err: err}
	}
}

// histogramSize picks the per-histogram cell size for a terminal of the
// given size, leaving room for the question, answer and feedback lines.
func histogramSize(width, height, count int) (cols, rows int) {
	const chrome = 4 // panel border plus caption and axis rows
	avail := width - 4
	if count > 1 {
		avail = avail/count - 1
	}
	cols = max(avail-chrome, 8)
	if !layout.IsCompactWidth(width) {
		cols = min(cols, 72)
	}

	rows = height/3 - chrome
	if layout.IsCompactHeight(height) {
		rows = height/4 - 1
	}
	return cols, max(rows, 2)
}
