package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// LLMEventRepo implements EventRepo and the read side used by the llm
// inspection commands.
type LLMEventRepo struct {
	db *sql.DB
}

var _ EventRepo = (*LLMEventRepo)(nil)

func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

func (r *LLMEventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	kind := data.Kind
	if kind == "" {
		kind = KindGenerate
	}

	query, args := builder().
		Insert(llmEventsTableName).
		Columns(
			colTimestamp, colProvider, colModel, colPurpose, colKind,
			colInputTokens, colOutputTokens, colLatencyMs, colSuccess,
			colErrorMessage, colRequestBody, colResponseBody,
		).
		Values(
			time.Now().UTC(), data.Provider, data.Model, data.Purpose, kind,
			data.InputTokens, data.OutputTokens, data.LatencyMs, data.Success,
			data.ErrorMessage, data.RequestBody, data.ResponseBody,
		).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}
	return nil
}

var eventColumns = []string{
	colID, colTimestamp, colProvider, colModel, colPurpose, colKind,
	colInputTokens, colOutputTokens, colLatencyMs, colSuccess,
	colErrorMessage, colRequestBody, colResponseBody,
}

// QueryLLMEvents returns events newest first.
func (r *LLMEventRepo) QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEventRecord, error) {
	t := builder().Table(llmEventsTableName)
	sel := builder().Select(qualify(t, eventColumns)...).From(t)

	var preds []*entsql.Predicate
	if opts.Purpose != "" {
		preds = append(preds, entsql.EQ(t.C(colPurpose), opts.Purpose))
	}
	if !opts.From.IsZero() {
		preds = append(preds, entsql.GTE(t.C(colTimestamp), opts.From.UTC()))
	}
	if !opts.To.IsZero() {
		preds = append(preds, entsql.LTE(t.C(colTimestamp), opts.To.UTC()))
	}
	if len(preds) > 0 {
		sel.Where(entsql.And(preds...))
	}

	sel.OrderBy(entsql.Desc(t.C(colID)))
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query LLM events: %w", err)
	}
	defer rows.Close()

	var out []LLMEventRecord
	for rows.Next() {
		rec, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// GetLLMEvent returns the event with the given ID, or nil if it does not exist.
func (r *LLMEventRepo) GetLLMEvent(ctx context.Context, id int) (*LLMEventRecord, error) {
	t := builder().Table(llmEventsTableName)
	query, args := builder().
		Select(qualify(t, eventColumns)...).
		From(t).
		Where(entsql.EQ(t.C(colID), id)).
		Query()

	rec, err := scanEvent(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// LLMUsageByPurpose aggregates token usage per purpose label.
func (r *LLMEventRepo) LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error) {
	t := builder().Table(llmEventsTableName)
	query, args := builder().
		Select(
			t.C(colPurpose),
			entsql.Count("*"),
			entsql.Sum(t.C(colInputTokens)),
			entsql.Sum(t.C(colOutputTokens)),
			entsql.Avg(t.C(colLatencyMs)),
		).
		From(t).
		GroupBy(t.C(colPurpose)).
		OrderBy(t.C(colPurpose)).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query usage by purpose: %w", err)
	}
	defer rows.Close()

	var out []PurposeUsage
	for rows.Next() {
		var (
			u       PurposeUsage
			in, o   sql.NullInt64
			latency sql.NullFloat64
		)
		if err := rows.Scan(&u.Purpose, &u.Calls, &in, &o, &latency); err != nil {
			return nil, fmt.Errorf("scan usage: %w", err)
		}
		u.InputTokens = int(in.Int64)
		u.OutputTokens = int(o.Int64)
		u.AvgLatencyMs = int64(latency.Float64)
		out = append(out, u)
	}
	return out, rows.Err()
}

// LLMUsageByModel aggregates token usage per model.
func (r *LLMEventRepo) LLMUsageByModel(ctx context.Context) ([]ModelUsage, error) {
	t := builder().Table(llmEventsTableName)
	query, args := builder().
		Select(
			t.C(colModel),
			entsql.Count("*"),
			entsql.Sum(t.C(colInputTokens)),
			entsql.Sum(t.C(colOutputTokens)),
		).
		From(t).
		GroupBy(t.C(colModel)).
		OrderBy(t.C(colModel)).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query usage by model: %w", err)
	}
	defer rows.Close()

	var out []ModelUsage
	for rows.Next() {
		var (
			u     ModelUsage
			in, o sql.NullInt64
		)
		if err := rows.Scan(&u.Model, &u.Calls, &in, &o); err != nil {
			return nil, fmt.Errorf("scan usage: %w", err)
		}
		u.InputTokens = int(in.Int64)
		u.OutputTokens = int(o.Int64)
		out = append(out, u)
	}
	return out, rows.Err()
}

func qualify(t *entsql.SelectTable, cols []string) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = t.C(c)
	}
	return out
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (LLMEventRecord, error) {
	var (
		rec                   LLMEventRecord
		errMsg, reqBody, resp sql.NullString
	)
	err := row.Scan(
		&rec.ID, &rec.Timestamp, &rec.Provider, &rec.Model, &rec.Purpose, &rec.Kind,
		&rec.InputTokens, &rec.OutputTokens, &rec.LatencyMs, &rec.Success,
		&errMsg, &reqBody, &resp,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return rec, err
		}
		return rec, fmt.Errorf("scan LLM event: %w", err)
	}
	rec.ErrorMessage = errMsg.String
	rec.RequestBody = reqBody.String
	rec.ResponseBody = resp.String
	return rec, nil
}
