package session

// Phase represents where the session is in its per-item cycle.
type Phase int

const (
	PhaseIdle          Phase = iota // Created, initial request not yet issued
	PhaseLoading                    // Initial request in flight, no current item
	PhaseAwaitingInput              // Current item shown, answer field active
	PhaseAdvancing                  // Outcome reported, next item requested
	PhaseFailed                     // Last request failed; Retry re-issues it
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseAwaitingInput:
		return "awaiting-input"
	case PhaseAdvancing:
		return "advancing"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Trigger identifies the UI event that asked for an evaluation.
type Trigger int

const (
	TriggerCommit Trigger = iota // Enter / commit key
	TriggerChange                // Input text changed
)

// Verdict is the result of evaluating the answer field.
type Verdict int

const (
	VerdictIgnored  Verdict = iota // Not evaluated (wrong trigger or busy)
	VerdictPartial                 // Live mode: still a prefix of the answer
	VerdictMismatch                // Wrong; feedback shows the expected answer
	VerdictMatch                   // Correct; the session is now advancing
)

func (v Verdict) String() string {
	switch v {
	case VerdictIgnored:
		return "ignored"
	case VerdictPartial:
		return "partial"
	case VerdictMismatch:
		return "mismatch"
	case VerdictMatch:
		return "match"
	default:
		return "unknown"
	}
}

// Step is returned by Evaluate. Request is set only for VerdictMatch and is
// the report that must be sent to the scheduler under sequence number Seq.
type Step struct {
	Verdict Verdict
	Request *Request
	Seq     uint64
}

// Session holds the state of one drill session. It is not safe for concurrent
// use; all methods are expected to run on the UI event loop.
type Session struct {
	opts Options

	current  *Item
	pending  *string
	misses   int
	feedback string
	phase    Phase
	err      error

	// inflight is the request currently awaiting a response (or the one that
	// failed, so Retry can resend it). seq identifies it.
	inflight *Request
	seq      uint64

	history []Outcome
}
