package scheduler

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/abhisek/drill/internal/session"
	"github.com/abhisek/drill/internal/store"
)

// JournalClient is a decorator that records every exchange with the
// scheduler in the journal.
type JournalClient struct {
	inner     Client
	repo      store.ExchangeRepo
	sessionID string
	warn      io.Writer
}

// WithJournal wraps a Client with exchange journaling.
func WithJournal(c Client, repo store.ExchangeRepo, sessionID string) *JournalClient {
	return &JournalClient{inner: c, repo: repo, sessionID: sessionID, warn: os.Stderr}
}

// SetWarningOutput redirects journal write failures. Passing nil discards
// them.
func (j *JournalClient) SetWarningOutput(w io.Writer) {
	if w == nil {
		w = io.Discard
	}
	j.warn = w
}

func (j *JournalClient) Next(ctx context.Context, req session.Request) (*session.Item, error) {
	start := time.Now()

	item, err := j.inner.Next(ctx, req)

	data := store.ExchangeEventData{
		SessionID: j.sessionID,
		Previous:  req.Previous,
		Response:  req.Response,
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
	}
	if item != nil {
		data.NextQuestion = item.Question
		data.NextConsec = item.Consec
	}
	if err != nil {
		data.ErrorMessage = err.Error()
	}

	// A journal failure never fails the exchange. The write outlives a
	// request that ran out of time.
	if logErr := j.repo.AppendExchange(context.WithoutCancel(ctx), data); logErr != nil {
		fmt.Fprintf(j.warn, "warning: failed to journal exchange: %v\n", logErr)
	}

	return item, err
}
