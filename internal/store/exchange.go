package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

const exchangeTable = "exchange_events"

var exchangeColumns = []string{
	"id", "timestamp", "session_id", "previous", "response",
	"next_question", "next_consec", "latency_ms", "success", "error_message",
}

type exchangeRepo struct {
	drv *entsql.Driver
}

func (r *exchangeRepo) AppendExchange(ctx context.Context, data ExchangeEventData) error {
	query, args := entsql.Dialect(dialect.SQLite).
		Insert(exchangeTable).
		Columns(exchangeColumns[1:]...).
		Values(
			time.Now().UnixMilli(),
			data.SessionID,
			nullString(data.Previous),
			nullString(data.Response),
			data.NextQuestion,
			data.NextConsec,
			data.LatencyMs,
			boolInt(data.Success),
			data.ErrorMessage,
		).
		Query()

	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("append exchange: %w", err)
	}
	return nil
}

func (r *exchangeRepo) RecentExchanges(ctx context.Context, opts QueryOpts) ([]Exchange, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select(exchangeColumns...).
		From(entsql.Table(exchangeTable)).
		OrderBy(entsql.Desc("id"))
	if opts.SessionID != "" {
		sel = sel.Where(entsql.EQ("session_id", opts.SessionID))
	}
	if opts.Limit > 0 {
		sel = sel.Limit(opts.Limit)
	}
	query, args := sel.Query()

	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("query exchanges: %w", err)
	}
	defer rows.Close()

	var result []Exchange
	for rows.Next() {
		var (
			e                  Exchange
			ts                 int64
			previous, response sql.NullString
			success            int64
		)
		if err := rows.Scan(
			&e.ID, &ts, &e.SessionID, &previous, &response,
			&e.NextQuestion, &e.NextConsec, &e.LatencyMs, &success, &e.ErrorMessage,
		); err != nil {
			return nil, fmt.Errorf("scan exchange: %w", err)
		}
		e.Timestamp = time.UnixMilli(ts)
		e.Previous = stringPtr(previous)
		e.Response = stringPtr(response)
		e.Success = success != 0
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate exchanges: %w", err)
	}
	return result, nil
}

func (r *exchangeRepo) Stats(ctx context.Context, sessionID string) (ExchangeStats, error) {
	const (
		reported = "success = 1 AND previous IS NOT NULL"
		firstTry = reported + " AND response IS NULL"
	)
	sel := entsql.Dialect(dialect.SQLite).
		SelectExpr(
			entsql.Raw(entsql.Count("*")),
			entsql.Raw(countWhere("success = 0")),
			entsql.Raw(countWhere(reported)),
			entsql.Raw(countWhere(firstTry)),
			entsql.Raw("COALESCE("+entsql.Avg("latency_ms")+", 0)"),
		).
		From(entsql.Table(exchangeTable))
	if sessionID != "" {
		sel = sel.Where(entsql.EQ("session_id", sessionID))
	}
	query, args := sel.Query()

	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return ExchangeStats{}, fmt.Errorf("exchange stats: %w", err)
	}
	defer rows.Close()

	var st ExchangeStats
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return ExchangeStats{}, fmt.Errorf("exchange stats: %w", err)
		}
		return st, nil
	}
	if err := rows.Scan(&st.Total, &st.Failed, &st.Reported, &st.FirstTry, &st.AvgLatencyMs); err != nil {
		return ExchangeStats{}, fmt.Errorf("scan exchange stats: %w", err)
	}
	return st, nil
}

// countWhere counts the rows matching cond; zero on an empty table.
func countWhere(cond string) string {
	return "COALESCE(" + entsql.Sum("(CASE WHEN "+cond+" THEN 1 ELSE 0 END)") + ", 0)"
}

func nullString(p *string) sql.NullString {
	if p == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *p, Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
