package llm

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/askframe/internal/store"
)

// LoggingProvider is a decorator that logs every generation call and records
// it as an event. Neither the log nor the event changes the call's outcome.
type LoggingProvider struct {
	inner  Provider
	logger *zap.Logger
	events store.EventRepo
}

// WithLogging wraps a Provider with structured logging and event recording.
// A nil logger discards logs; a nil repo skips event recording.
func WithLogging(p Provider, logger *zap.Logger, events store.EventRepo) Provider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LoggingProvider{inner: p, logger: logger, events: events}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	purpose := PurposeFrom(ctx)

	resp, err := l.inner.Generate(ctx, req)

	latency := time.Since(start)

	model := req.Model
	if model == "" {
		model = l.inner.ModelID()
	}

	data := store.GenerationEventData{
		Provider:    l.inner.Name(),
		Model:       model,
		Purpose:     purpose,
		LatencyMs:   latency.Milliseconds(),
		Success:     err == nil,
		RequestBody: req.Prompt,
	}

	fields := []zap.Field{
		zap.String("provider", data.Provider),
		zap.String("purpose", purpose),
		zap.Duration("latency", latency),
		zap.Float64("temperature", req.Generation.Temperature),
		zap.Float64("top_p", req.Generation.TopP),
		zap.Float64("top_k", req.Generation.TopK),
		zap.Int("max_output_tokens", req.Generation.MaxOutputTokens),
	}

	if resp != nil {
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		if resp.Model != "" {
			data.Model = resp.Model
		}
		data.ResponseBody = resp.Text
		fields = append(fields,
			zap.Int("input_tokens", resp.Usage.InputTokens),
			zap.Int("output_tokens", resp.Usage.OutputTokens),
			zap.String("stop_reason", resp.StopReason),
		)
	}
	fields = append(fields, zap.String("model", data.Model))

	if err != nil {
		data.ErrorMessage = err.Error()
		l.logger.Error("generation failed", append(fields, zap.Error(err))...)
	} else {
		l.logger.Info("generation completed", fields...)
	}

	if l.events != nil {
		if _, logErr := l.events.AppendGeneration(ctx, data); logErr != nil {
			l.logger.Warn("failed to record generation event", zap.Error(logErr))
		}
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

func (l *LoggingProvider) Name() string {
	return l.inner.Name()
}
