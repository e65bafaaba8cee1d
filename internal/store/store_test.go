package store

import (
	"context"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func strp(s string) *string { return &s }

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil database")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		if err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got); err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")
	for i := 0; i < 2; i++ {
		s, err := Open(path)
		if err != nil {
			t.Fatalf("open #%d: %v", i+1, err)
		}
		s.Close()
	}
}

func TestAppendAndRecentExchanges(t *testing.T) {
	s := openTestStore(t)
	repo := s.ExchangeRepo()
	ctx := context.Background()

	events := []ExchangeEventData{
		{SessionID: "a", NextQuestion: "2+2", NextConsec: 0, LatencyMs: 10, Success: true},
		{SessionID: "a", Previous: strp("2+2"), Response: strp("5"), NextQuestion: "3+3", NextConsec: 1, LatencyMs: 20, Success: true},
		{SessionID: "b", LatencyMs: 30, ErrorMessage: "connection refused"},
	}
	for _, e := range events {
		if err := repo.AppendExchange(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	all, err := repo.RecentExchanges(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("got %d exchanges, want 3", len(all))
	}
	if all[0].SessionID != "b" || all[0].Success || all[0].ErrorMessage != "connection refused" {
		t.Errorf("newest exchange = %+v", all[0])
	}

	second := all[1]
	if second.Previous == nil || *second.Previous != "2+2" {
		t.Errorf("previous = %v, want 2+2", second.Previous)
	}
	if second.Response == nil || *second.Response != "5" {
		t.Errorf("response = %v, want 5", second.Response)
	}
	if second.NextConsec != 1 || second.NextQuestion != "3+3" {
		t.Errorf("next = %q/%d", second.NextQuestion, second.NextConsec)
	}
	if all[2].Previous != nil || all[2].Response != nil {
		t.Error("initial request should store null previous and response")
	}
	if all[2].Timestamp.IsZero() {
		t.Error("expected timestamp to be set")
	}
}

func TestRecentExchangesFilters(t *testing.T) {
	s := openTestStore(t)
	repo := s.ExchangeRepo()
	ctx := context.Background()

	for _, id := range []string{"a", "b", "a", "a"} {
		if err := repo.AppendExchange(ctx, ExchangeEventData{SessionID: id, Success: true}); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	got, err := repo.RecentExchanges(ctx, QueryOpts{SessionID: "a", Limit: 2})
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d exchanges, want 2", len(got))
	}
	for _, e := range got {
		if e.SessionID != "a" {
			t.Errorf("unexpected session %q", e.SessionID)
		}
	}
	if got[0].ID <= got[1].ID {
		t.Error("expected newest first")
	}
}

func TestExchangeStats(t *testing.T) {
	s := openTestStore(t)
	repo := s.ExchangeRepo()
	ctx := context.Background()

	events := []ExchangeEventData{
		{SessionID: "a", LatencyMs: 10, Success: true},
		{SessionID: "a", Previous: strp("q1"), LatencyMs: 20, Success: true},
		{SessionID: "a", Previous: strp("q2"), Response: strp("x"), LatencyMs: 30, Success: true},
		{SessionID: "a", Previous: strp("q3"), LatencyMs: 40},
		{SessionID: "b", Previous: strp("q9"), LatencyMs: 100, Success: true},
	}
	for _, e := range events {
		if err := repo.AppendExchange(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	st, err := repo.Stats(ctx, "a")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if st.Total != 4 || st.Failed != 1 || st.Reported != 2 || st.FirstTry != 1 {
		t.Errorf("stats = %+v", st)
	}
	if st.AvgLatencyMs != 25 {
		t.Errorf("avg latency = %v, want 25", st.AvgLatencyMs)
	}
	if st.FirstTryRate() != 0.5 {
		t.Errorf("first try rate = %v, want 0.5", st.FirstTryRate())
	}

	all, err := repo.Stats(ctx, "")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if all.Total != 5 {
		t.Errorf("total = %d, want 5", all.Total)
	}
}

func TestStatsEmpty(t *testing.T) {
	s := openTestStore(t)
	st, err := s.ExchangeRepo().Stats(context.Background(), "")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if st.Total != 0 || st.FirstTryRate() != 0 {
		t.Errorf("stats = %+v", st)
	}
}

func TestDefaultDBPath(t *testing.T) {
	dir := t.TempDir()

	t.Setenv("DRILL_JOURNAL", "")
	t.Setenv("XDG_DATA_HOME", dir)
	got, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("default path: %v", err)
	}
	if want := filepath.Join(dir, "drill", "journal.db"); got != want {
		t.Errorf("path = %q, want %q", got, want)
	}

	override := filepath.Join(dir, "custom", "j.db")
	t.Setenv("DRILL_JOURNAL", override)
	got, err = DefaultDBPath()
	if err != nil {
		t.Fatalf("override path: %v", err)
	}
	if got != override {
		t.Errorf("path = %q, want %q", got, override)
	}
}
