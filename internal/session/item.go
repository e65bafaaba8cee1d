package session

import "fmt"

// Item is one prompt/answer pair plus the scheduling metadata the scheduler
// attached to it.
type Item struct {
	Question string         `json:"question"`
	Answer   string         `json:"answer"`
	Consec   int            `json:"consec"`
	Weights  []WeightSample `json:"weights"`
}

// WeightSample describes the relative selection likelihood at one position of
// the consecutive-correct axis. Size, when present, is a second metric such as
// the share of items currently sitting at that position.
type WeightSample struct {
	Consec int      `json:"consec"`
	Weight float64  `json:"weight"`
	Size   *float64 `json:"size,omitempty"`
}

// Validate checks the parts of an item the client relies on.
func (it *Item) Validate() error {
	if it == nil {
		return ErrNoItem
	}
	if it.Consec < 0 {
		return fmt.Errorf("item %q: negative consec %d", it.Question, it.Consec)
	}
	if len(it.Weights) == 0 {
		return fmt.Errorf("item %q: no weight samples", it.Question)
	}
	return nil
}

// HasSize reports whether any sample carries the secondary size metric.
func HasSize(samples []WeightSample) bool {
	for _, s := range samples {
		if s.Size != nil {
			return true
		}
	}
	return false
}

// Request is the outcome report sent to the scheduler. A nil Previous marks
// the first request of a session; a nil Response means the previous item was
// answered correctly on the first attempt.
type Request struct {
	Previous *string `json:"previous"`
	Response *string `json:"response"`
}

// IsInitial reports whether the request carries no prior item.
func (r Request) IsInitial() bool {
	return r.Previous == nil
}

// Outcome is the reported result for one item, kept for the session history.
type Outcome struct {
	Question   string
	Answer     string
	Consec     int
	FirstWrong *string
	Misses     int
}

// FirstTry reports whether the item was answered correctly without any
// recorded mistake.
func (o Outcome) FirstTry() bool {
	return o.FirstWrong == nil
}
