package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/abhisek/askframe/internal/store"
)

type fakeEventRepo struct {
	store.EventRepo
	appended []store.GenerationEventData
	err      error
}

func (f *fakeEventRepo) AppendGeneration(_ context.Context, data store.GenerationEventData) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.appended = append(f.appended, data)
	return "evt-1", nil
}

func TestLoggingProvider_RecordsSuccess(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	repo := &fakeEventRepo{}
	mock := NewMockProvider(MockResponse{Text: "ok", Usage: Usage{InputTokens: 4, OutputTokens: 2, TotalTokens: 6}})

	p := WithLogging(mock, zap.New(core), repo)
	ctx := WithPurpose(context.Background(), "summary")

	resp, err := p.Generate(ctx, Request{Prompt: "Hello!", Model: "models/gemini-pro", Generation: validConfig()})
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Text)

	require.Len(t, repo.appended, 1)
	ev := repo.appended[0]
	assert.Equal(t, "mock", ev.Provider)
	assert.Equal(t, "models/gemini-pro", ev.Model)
	assert.Equal(t, "summary", ev.Purpose)
	assert.Equal(t, 4, ev.InputTokens)
	assert.Equal(t, 2, ev.OutputTokens)
	assert.True(t, ev.Success)
	assert.Equal(t, "Hello!", ev.RequestBody)
	assert.Equal(t, "ok", ev.ResponseBody)

	entries := logs.FilterMessage("generation completed").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "summary", fields["purpose"])
	assert.Equal(t, "models/gemini-pro", fields["model"])
	assert.EqualValues(t, 64, fields["max_output_tokens"])
}

func TestLoggingProvider_ErrorPassesThrough(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	repo := &fakeEventRepo{}
	upstream := errors.New("503 service unavailable")
	p := WithLogging(NewMockProvider(MockResponse{Err: upstream}), zap.New(core), repo)

	_, err := p.Generate(context.Background(), Request{Prompt: "x"})
	assert.Same(t, upstream, err)

	require.Len(t, repo.appended, 1)
	assert.False(t, repo.appended[0].Success)
	assert.Equal(t, "503 service unavailable", repo.appended[0].ErrorMessage)
	assert.Equal(t, "mock", repo.appended[0].Model, "model falls back to the provider's")
	assert.Equal(t, 1, logs.FilterMessage("generation failed").Len())
}

func TestLoggingProvider_RecorderFailureIsNotFatal(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	repo := &fakeEventRepo{err: errors.New("disk full")}
	p := WithLogging(NewMockProvider(MockResponse{Text: "ok"}), zap.New(core), repo)

	resp, err := p.Generate(context.Background(), Request{Prompt: "x"})
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Text)
	assert.Equal(t, 1, logs.FilterMessage("failed to record generation event").Len())
}

func TestLoggingProvider_NilLoggerAndRepo(t *testing.T) {
	p := WithLogging(NewMockProvider(MockResponse{Text: "ok"}), nil, nil)

	resp, err := p.Generate(context.Background(), Request{Prompt: "x"})
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Text)
	assert.Equal(t, "mock", p.Name())
	assert.Equal(t, "mock", p.ModelID())
}

func TestLoggingProvider_PersistsToStore(t *testing.T) {
	s, err := store.Open("file:logging-test?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	p := WithLogging(NewMockProvider(MockResponse{Text: "ok"}), zap.NewNop(), s.EventRepo())
	inv, err := New(context.Background(), "test", WithProvider(p))
	require.NoError(t, err)

	_, err = inv.Call(WithPurpose(context.Background(), "ask"), helloPrompt{}, "!")
	require.NoError(t, err)

	events, err := s.EventRepo().QueryGenerations(context.Background(), store.QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Hello!", events[0].RequestBody)
	assert.Equal(t, "ask", events[0].Purpose)
}
