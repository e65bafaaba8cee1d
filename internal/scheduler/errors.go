package scheduler

import (
	"encoding/json"
	"fmt"
)

// ErrUnavailable indicates the scheduler could not be reached or answered
// with a server error.
type ErrUnavailable struct {
	Status int // 0 when no response was received
	Err    error
}

func (e *ErrUnavailable) Error() string {
	switch {
	case e.Status != 0:
		return fmt.Sprintf("scheduler unavailable (HTTP %d): %v", e.Status, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("scheduler unavailable: %v", e.Err)
	default:
		return "scheduler unavailable"
	}
}

func (e *ErrUnavailable) Unwrap() error { return e.Err }

// ErrRejected indicates the scheduler refused the request (4xx or any other
// unexpected status).
type ErrRejected struct {
	Status int
	Body   string
}

func (e *ErrRejected) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("scheduler rejected request: HTTP %d", e.Status)
	}
	return fmt.Sprintf("scheduler rejected request: HTTP %d: %s", e.Status, e.Body)
}

// ErrInvalidResponse indicates the scheduler answered with something that is
// not a valid item.
type ErrInvalidResponse struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid scheduler response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }
