package store

import (
	"context"
	"time"
)

// QueryOpts configures journal queries.
type QueryOpts struct {
	Limit     int    // max results (0 = unlimited)
	SessionID string // restrict to one session ("" = all)
}

// ExchangeEventData captures one request/response exchange with the
// scheduler.
type ExchangeEventData struct {
	SessionID    string
	Previous     *string
	Response     *string
	NextQuestion string
	NextConsec   int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// Exchange is a stored exchange event.
type Exchange struct {
	ID        int64
	Timestamp time.Time
	ExchangeEventData
}

// ExchangeStats summarises stored exchanges.
type ExchangeStats struct {
	Total        int
	Failed       int
	Reported     int // exchanges that carried an outcome
	FirstTry     int // reported outcomes without a wrong response
	AvgLatencyMs float64
}

// FirstTryRate returns the share of reported outcomes answered correctly on
// the first attempt, or 0 when nothing was reported.
func (s ExchangeStats) FirstTryRate() float64 {
	if s.Reported == 0 {
		return 0
	}
	return float64(s.FirstTry) / float64(s.Reported)
}

// ExchangeRepo provides append and query access to the exchange journal.
type ExchangeRepo interface {
	// AppendExchange records one exchange.
	AppendExchange(ctx context.Context, data ExchangeEventData) error

	// RecentExchanges returns exchanges newest first.
	RecentExchanges(ctx context.Context, opts QueryOpts) ([]Exchange, error)

	// Stats summarises exchanges, optionally for one session.
	Stats(ctx context.Context, sessionID string) (ExchangeStats, error)
}
