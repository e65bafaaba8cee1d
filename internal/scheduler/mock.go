package scheduler

import (
	"context"
	"sync"

	"github.com/abhisek/drill/internal/session"
)

// MockResponse is a canned response for the MockClient.
type MockResponse struct {
	Item *session.Item
	Err  error
}

// MockClient is a deterministic Client for testing.
// It returns canned responses in FIFO order and records all requests.
type MockClient struct {
	mu        sync.Mutex
	responses []MockResponse
	calls     []session.Request
}

var _ Client = (*MockClient)(nil)

// NewMockClient creates a MockClient with the given canned responses.
func NewMockClient(responses ...MockResponse) *MockClient {
	return &MockClient{responses: responses}
}

// Next returns the next canned response or ErrUnavailable if the queue is
// empty.
func (m *MockClient) Next(_ context.Context, req session.Request) (*session.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, req)

	if len(m.responses) == 0 {
		return nil, &ErrUnavailable{}
	}

	resp := m.responses[0]
	m.responses = m.responses[1:]

	if resp.Err != nil {
		return nil, resp.Err
	}
	return resp.Item, nil
}

// Enqueue appends canned responses.
func (m *MockClient) Enqueue(responses ...MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, responses...)
}

// Calls returns a copy of the recorded requests.
func (m *MockClient) Calls() []session.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]session.Request, len(m.calls))
	copy(out, m.calls)
	return out
}

// CallCount returns the number of requests received.
func (m *MockClient) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}
