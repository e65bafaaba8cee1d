package scheduler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/abhisek/drill/internal/session"
)

// SessionHeader carries the client session identifier on every request.
const SessionHeader = "X-Drill-Session"

// maxResponseBytes caps how much of a response body is read.
const maxResponseBytes = 1 << 20

// HTTPClient talks to the scheduler's POST /next endpoint.
type HTTPClient struct {
	endpoint  string
	http      *http.Client
	sessionID string
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient creates a client for cfg.BaseURL. sessionID is sent in the
// X-Drill-Session header; it may be empty.
func NewHTTPClient(cfg Config, sessionID string) (*HTTPClient, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &HTTPClient{
		endpoint:  strings.TrimRight(cfg.BaseURL, "/") + "/next",
		http:      &http.Client{Timeout: cfg.Timeout},
		sessionID: sessionID,
	}, nil
}

// Endpoint returns the full URL requests are posted to.
func (c *HTTPClient) Endpoint() string { return c.endpoint }

func (c *HTTPClient) Next(ctx context.Context, req session.Request) (*session.Item, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	if c.sessionID != "" {
		httpReq.Header.Set(SessionHeader, c.sessionID)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &ErrUnavailable{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &ErrUnavailable{Status: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}

	switch {
	case resp.StatusCode >= 500:
		return nil, &ErrUnavailable{
			Status: resp.StatusCode,
			Err:    errors.New(http.StatusText(resp.StatusCode)),
		}
	case resp.StatusCode != http.StatusOK:
		return nil, &ErrRejected{
			Status: resp.StatusCode,
			Body:   strings.TrimSpace(truncate(string(raw), 200)),
		}
	}

	return DecodeItem(raw)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
