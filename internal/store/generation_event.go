package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
)

const (
	generationTable = "generation_events"

	colSeq          = "seq"
	colID           = "id"
	colCreatedAt    = "created_at"
	colProvider     = "provider"
	colModel        = "model"
	colPurpose      = "purpose"
	colInputTokens  = "input_tokens"
	colOutputTokens = "output_tokens"
	colLatencyMs    = "latency_ms"
	colSuccess      = "success"
	colErrorMessage = "error_message"
	colRequestBody  = "request_body"
	colResponseBody = "response_body"
)

// eventColumns is the select order expected by scanEvent.
var eventColumns = []string{
	colSeq, colID, colCreatedAt, colProvider, colModel, colPurpose,
	colInputTokens, colOutputTokens, colLatencyMs, colSuccess,
	colErrorMessage, colRequestBody, colResponseBody,
}

// eventRepo implements EventRepo. Statements are built with ent's SQL
// builder and executed on the raw *sql.DB.
type eventRepo struct {
	db *sql.DB
}

func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

func (r *eventRepo) AppendGeneration(ctx context.Context, data GenerationEventData) (string, error) {
	id := uuid.NewString()

	query, args := builder().
		Insert(generationTable).
		Columns(
			colID, colCreatedAt, colProvider, colModel, colPurpose,
			colInputTokens, colOutputTokens, colLatencyMs, colSuccess,
			colErrorMessage, colRequestBody, colResponseBody,
		).
		Values(
			id, time.Now().UnixMilli(), data.Provider, data.Model, data.Purpose,
			data.InputTokens, data.OutputTokens, data.LatencyMs, data.Success,
			data.ErrorMessage, data.RequestBody, data.ResponseBody,
		).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return "", fmt.Errorf("save generation event: %w", err)
	}
	return id, nil
}

func (r *eventRepo) QueryGenerations(ctx context.Context, opts QueryOpts) ([]GenerationEvent, error) {
	sel := builder().
		Select(eventColumns...).
		From(entsql.Table(generationTable)).
		OrderBy(entsql.Desc(colSeq))
	if opts.Purpose != "" {
		sel.Where(entsql.EQ(colPurpose, opts.Purpose))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query generation events: %w", err)
	}
	defer rows.Close()

	var events []GenerationEvent
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepo) GetGeneration(ctx context.Context, id string) (*GenerationEvent, error) {
	query, args := builder().
		Select(eventColumns...).
		From(entsql.Table(generationTable)).
		Where(entsql.EQ(colID, id)).
		Query()

	e, err := scanEvent(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *eventRepo) UsageByPurpose(ctx context.Context) ([]UsageStat, error) {
	return r.usageBy(ctx, colPurpose)
}

func (r *eventRepo) UsageByModel(ctx context.Context) ([]UsageStat, error) {
	return r.usageBy(ctx, colModel)
}

func (r *eventRepo) usageBy(ctx context.Context, key string) ([]UsageStat, error) {
	query, args := builder().
		Select(
			key,
			entsql.As(entsql.Count("*"), "calls"),
			entsql.As(entsql.Sum(colInputTokens), "input"),
			entsql.As(entsql.Sum(colOutputTokens), "output"),
			entsql.As(entsql.Avg(colLatencyMs), "avg_latency"),
		).
		From(entsql.Table(generationTable)).
		GroupBy(key).
		OrderBy(key).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query usage by %s: %w", key, err)
	}
	defer rows.Close()

	var stats []UsageStat
	for rows.Next() {
		var (
			st  UsageStat
			avg float64
		)
		if err := rows.Scan(&st.Key, &st.Calls, &st.InputTokens, &st.OutputTokens, &avg); err != nil {
			return nil, fmt.Errorf("scan usage: %w", err)
		}
		st.AvgLatencyMs = int64(math.Round(avg))
		stats = append(stats, st)
	}
	return stats, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (GenerationEvent, error) {
	var (
		e         GenerationEvent
		createdAt int64
	)
	err := row.Scan(
		&e.Sequence, &e.ID, &createdAt, &e.Provider, &e.Model, &e.Purpose,
		&e.InputTokens, &e.OutputTokens, &e.LatencyMs, &e.Success,
		&e.ErrorMessage, &e.RequestBody, &e.ResponseBody,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return e, err
		}
		return e, fmt.Errorf("scan generation event: %w", err)
	}
	e.Timestamp = time.UnixMilli(createdAt).UTC()
	return e, nil
}
