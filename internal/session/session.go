package session

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrAlreadyStarted is returned by Begin on a session that already issued
	// its initial request.
	ErrAlreadyStarted = errors.New("session already started")

	// ErrStaleResponse is returned when a response or failure does not belong
	// to the request currently in flight.
	ErrStaleResponse = errors.New("stale scheduler response")

	// ErrNotFailed is returned by Retry when there is no failed request.
	ErrNotFailed = errors.New("no failed request to retry")

	// ErrNoItem is returned when the scheduler produced no item.
	ErrNoItem = errors.New("scheduler returned no item")
)

// New creates a session handle. The session does nothing until Begin is
// called.
func New(opts Options) (*Session, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Session{opts: opts}, nil
}

// Begin returns the initial request, which carries no prior context, and the
// sequence number its response must be delivered with.
func (s *Session) Begin() (Request, uint64, error) {
	if s.phase != PhaseIdle {
		return Request{}, 0, ErrAlreadyStarted
	}
	s.phase = PhaseLoading
	return s.issue(&Request{}), s.seq, nil
}

// Evaluate judges the answer text for the current item.
//
// A mismatch shows the expected answer as feedback and records text as the
// pending response unless one was already recorded for this item. A match
// moves the session to PhaseAdvancing and returns the report to send. While a
// request is in flight every trigger is ignored.
func (s *Session) Evaluate(text string, trigger Trigger) Step {
	if s.phase != PhaseAwaitingInput || s.current == nil {
		return Step{Verdict: VerdictIgnored}
	}

	candidate := text
	if s.opts.Trim {
		candidate = strings.TrimSpace(candidate)
	}
	answer := s.current.Answer

	switch s.opts.SubmitMode {
	case ModeLivePrefix:
		if candidate == answer {
			return s.advance()
		}
		if strings.HasPrefix(answer, candidate) {
			return Step{Verdict: VerdictPartial}
		}
		return s.mismatch(candidate)

	default:
		if trigger != TriggerCommit {
			return Step{Verdict: VerdictIgnored}
		}
		if candidate == answer {
			return s.advance()
		}
		return s.mismatch(candidate)
	}
}

func (s *Session) mismatch(candidate string) Step {
	s.feedback = s.current.Answer
	s.misses++
	if s.pending == nil {
		s.pending = &candidate
	}
	return Step{Verdict: VerdictMismatch}
}

func (s *Session) advance() Step {
	question := s.current.Question
	req := s.issue(&Request{Previous: &question, Response: s.pending})
	s.phase = PhaseAdvancing
	return Step{Verdict: VerdictMatch, Request: &req, Seq: s.seq}
}

// issue marks req as in flight under a fresh sequence number and returns a
// copy of it.
func (s *Session) issue(req *Request) Request {
	s.seq++
	s.inflight = req
	s.err = nil
	return *req
}

// Receive installs the scheduler's next item. seq must match the request in
// flight; anything else is rejected with ErrStaleResponse and leaves the
// session untouched. An invalid item fails the request.
func (s *Session) Receive(seq uint64, item *Item) error {
	if !s.awaiting(seq) {
		return ErrStaleResponse
	}
	if err := item.Validate(); err != nil {
		err = fmt.Errorf("invalid item: %w", err)
		s.phase = PhaseFailed
		s.err = err
		return err
	}

	if s.current != nil && s.inflight.Previous != nil {
		s.history = append(s.history, Outcome{
			Question:   s.current.Question,
			Answer:     s.current.Answer,
			Consec:     s.current.Consec,
			FirstWrong: s.inflight.Response,
			Misses:     s.misses,
		})
	}

	s.current = item
	s.pending = nil
	s.misses = 0
	s.feedback = ""
	s.inflight = nil
	s.err = nil
	s.phase = PhaseAwaitingInput
	return nil
}

// Fail records that the request with sequence number seq failed. The request
// is kept so Retry can resend it unchanged.
func (s *Session) Fail(seq uint64, err error) error {
	if !s.awaiting(seq) {
		return ErrStaleResponse
	}
	s.phase = PhaseFailed
	s.err = err
	return nil
}

// Retry re-issues the failed request with the same previous question and
// response under a new sequence number.
func (s *Session) Retry() (Request, uint64, error) {
	if s.phase != PhaseFailed || s.inflight == nil {
		return Request{}, 0, ErrNotFailed
	}
	if s.current == nil {
		s.phase = PhaseLoading
	} else {
		s.phase = PhaseAdvancing
	}
	return s.issue(s.inflight), s.seq, nil
}

func (s *Session) awaiting(seq uint64) bool {
	if s.inflight == nil || seq != s.seq {
		return false
	}
	return s.phase == PhaseLoading || s.phase == PhaseAdvancing
}

// Options returns the options the session was created with.
func (s *Session) Options() Options { return s.opts }

// Current returns the item being drilled, or nil before the first response.
func (s *Session) Current() *Item { return s.current }

// Pending returns the first incorrect response recorded for the current item,
// or nil if none was recorded.
func (s *Session) Pending() *string { return s.pending }

// Phase returns the current phase.
func (s *Session) Phase() Phase { return s.phase }

// Feedback returns the feedback text; empty when there is nothing to show.
func (s *Session) Feedback() string { return s.feedback }

// Err returns the failure of the last request, if any.
func (s *Session) Err() error { return s.err }

// Misses returns how many mismatches were evaluated on the current item.
func (s *Session) Misses() int { return s.misses }

// Busy reports whether a request is in flight.
func (s *Session) Busy() bool {
	return s.phase == PhaseLoading || s.phase == PhaseAdvancing
}

// InFlight returns the request awaiting a response and its sequence number.
func (s *Session) InFlight() (Request, uint64, bool) {
	if s.inflight == nil {
		return Request{}, 0, false
	}
	return *s.inflight, s.seq, true
}

// History returns the outcomes reported so far, oldest first.
func (s *Session) History() []Outcome {
	out := make([]Outcome, len(s.history))
	copy(out, s.history)
	return out
}
