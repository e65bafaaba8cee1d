package scheduler

import (
	"context"

	"github.com/abhisek/drill/internal/session"
)

// Client is the boundary to the external scheduler. Next reports the outcome
// of the previous item and returns the item to drill next.
type Client interface {
	Next(ctx context.Context, req session.Request) (*session.Item, error)
}
