package drill

import (
	"github.com/abhisek/drill/internal/session"
)

// itemReadyMsg carries the outcome of a scheduler request issued under Seq.
type itemReadyMsg struct {
	Seq  uint64
	Item *session.Item
	Err  error
}
