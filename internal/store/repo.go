package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int    // max results (0 = unlimited)
	Purpose string // exact match; empty = any
}

// GenerationEventData captures the data for a single generation call.
type GenerationEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// GenerationEvent is a persisted generation call.
type GenerationEvent struct {
	GenerationEventData
	ID        string
	Sequence  int64
	Timestamp time.Time
}

// UsageStat aggregates calls grouped by a single key (purpose or model).
type UsageStat struct {
	Key          string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// EventRepo provides append and query access to generation events.
type EventRepo interface {
	// AppendGeneration records a generation call and returns its ID.
	AppendGeneration(ctx context.Context, data GenerationEventData) (string, error)

	// QueryGenerations returns events newest first.
	QueryGenerations(ctx context.Context, opts QueryOpts) ([]GenerationEvent, error)

	// GetGeneration returns the event with the given ID, or nil if none.
	GetGeneration(ctx context.Context, id string) (*GenerationEvent, error)

	// UsageByPurpose aggregates token usage per purpose label.
	UsageByPurpose(ctx context.Context) ([]UsageStat, error)

	// UsageByModel aggregates token usage per model.
	UsageByModel(ctx context.Context) ([]UsageStat, error)
}
