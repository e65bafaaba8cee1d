package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/abhisek/drill/internal/app"
	"github.com/abhisek/drill/internal/scheduler"
	"github.com/abhisek/drill/internal/screens/drill"
	"github.com/abhisek/drill/internal/session"
	"github.com/abhisek/drill/internal/store"
)

// runApp builds the scheduler client and launches the TUI.
func runApp(cmd *cobra.Command) error {
	schedCfg, err := schedulerConfig(cmd)
	if err != nil {
		return err
	}
	sessOpts, err := sessionOptions(cmd)
	if err != nil {
		return err
	}
	renderOpts, err := renderOptions(cmd)
	if err != nil {
		return err
	}

	sessionID := uuid.NewString()
	httpClient, err := scheduler.NewHTTPClient(schedCfg, sessionID)
	if err != nil {
		return fmt.Errorf("scheduler client: %w", err)
	}
	client := scheduler.WithRetry(httpClient, schedCfg.Retry)

	// Journal warnings are held back until the alternate screen is gone.
	var warnings syncBuffer
	journalPath, err := resolveJournalPath(cmd, false)
	if err != nil {
		return fmt.Errorf("resolve journal path: %w", err)
	}
	if journalPath != "" {
		st, err := store.Open(journalPath)
		if err != nil {
			return fmt.Errorf("open journal: %w", err)
		}
		defer st.Close()

		journaled := scheduler.WithJournal(client, st.ExchangeRepo(), sessionID)
		journaled.SetWarningOutput(&warnings)
		client = journaled
	}

	sess, err := app.Run(app.Options{Drill: drill.Config{
		Client:  client,
		Session: sessOpts,
		Render:  renderOpts,
		Timeout: schedCfg.Timeout,
	}})
	_, _ = warnings.WriteTo(os.Stderr)
	if sess != nil {
		printSummary(os.Stdout, sess.History())
	}
	return err
}

// printSummary writes a one-line account of the outcomes reported this
// session.
func printSummary(w io.Writer, outcomes []session.Outcome) {
	if len(outcomes) == 0 {
		return
	}
	firstTry := 0
	for _, o := range outcomes {
		if o.FirstTry() {
			firstTry++
		}
	}
	noun := "items"
	if len(outcomes) == 1 {
		noun = "item"
	}
	fmt.Fprintf(w, "%d %s reported, %d on the first try.\n", len(outcomes), noun, firstTry)
}

// syncBuffer is a bytes.Buffer safe for writes from request goroutines.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) WriteTo(w io.Writer) (int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.WriteTo(w)
}
