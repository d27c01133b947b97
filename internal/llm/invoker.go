package llm

import (
	"context"
	"fmt"
	"strings"
)

// Prompt is anything that can render the final instruction text.
type Prompt interface {
	Render() (string, error)
}

// typeNames maps provider names to the invoker type labels callers see.
var typeNames = map[string]string{
	"gemini": "google-gemini",
}

// Invoker validates generation parameters and dispatches rendered prompts to
// a Provider. Parameters are checked on every call, not at construction, so
// a config replaced through Configure is still caught before any request.
//
// An Invoker is not safe for concurrent Configure and Call; instances do not
// share state, so use one per goroutine when reconfiguring.
type Invoker struct {
	provider Provider
	model    string
	modelSet bool
	gen      GenerationConfig
}

// Option configures an Invoker.
type Option func(*Invoker)

// WithProvider sets the backend. Without it New builds a GeminiProvider.
func WithProvider(p Provider) Option {
	return func(inv *Invoker) { inv.provider = p }
}

// WithModel sets the model sent with each request. An empty model is kept
// as-is and rejected on the next call.
func WithModel(model string) Option {
	return func(inv *Invoker) {
		inv.model = model
		inv.modelSet = true
	}
}

// WithGenerationConfig replaces all sampling parameters at once.
func WithGenerationConfig(cfg GenerationConfig) Option {
	return func(inv *Invoker) { inv.gen = cfg }
}

// WithTemperature sets the sampling temperature.
func WithTemperature(v float64) Option {
	return func(inv *Invoker) { inv.gen.Temperature = v }
}

// WithTopP sets the nucleus sampling mass.
func WithTopP(v float64) Option {
	return func(inv *Invoker) { inv.gen.TopP = v }
}

// WithTopK sets the top-k cutoff.
func WithTopK(v float64) Option {
	return func(inv *Invoker) { inv.gen.TopK = v }
}

// WithMaxOutputTokens sets the response token cap.
func WithMaxOutputTokens(n int) Option {
	return func(inv *Invoker) { inv.gen.MaxOutputTokens = n }
}

// New creates an Invoker. An empty apiKey fails with *CredentialError
// regardless of the other options. Generation parameters are not checked
// here; see Call.
func New(ctx context.Context, apiKey string, opts ...Option) (*Invoker, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, &CredentialError{}
	}

	inv := &Invoker{gen: DefaultGenerationConfig()}
	for _, o := range opts {
		o(inv)
	}

	if inv.provider == nil {
		model := DefaultModel
		if inv.modelSet && inv.model != "" {
			model = inv.model
		}
		p, err := NewGeminiProvider(ctx, GeminiConfig{APIKey: apiKey, Model: model})
		if err != nil {
			return nil, fmt.Errorf("create gemini provider: %w", err)
		}
		inv.provider = p
	}

	if !inv.modelSet {
		inv.model = DefaultModel
		if inv.provider.Name() != "gemini" {
			inv.model = inv.provider.ModelID()
		}
	}

	return inv, nil
}

// Configure applies opts to an existing Invoker without validating them.
func (inv *Invoker) Configure(opts ...Option) {
	for _, o := range opts {
		o(inv)
	}
}

// Type returns the backend label, "google-gemini" for the default backend.
func (inv *Invoker) Type() string {
	name := inv.provider.Name()
	if t, ok := typeNames[name]; ok {
		return t
	}
	return name
}

// Model returns the model exactly as supplied.
func (inv *Invoker) Model() string {
	return inv.model
}

// GenerationConfig returns a copy of the sampling parameters.
func (inv *Invoker) GenerationConfig() GenerationConfig {
	return inv.gen
}

// Provider returns the backend this invoker dispatches to.
func (inv *Invoker) Provider() Provider {
	return inv.provider
}

// Call validates the parameters, renders p, appends suffix and returns the
// generated text unchanged. Nothing is sent when validation fails. Provider
// errors are returned as-is.
func (inv *Invoker) Call(ctx context.Context, p Prompt, suffix string) (string, error) {
	if err := ValidateGeneration(inv.model, inv.gen); err != nil {
		return "", err
	}

	text, err := p.Render()
	if err != nil {
		return "", fmt.Errorf("render prompt: %w", err)
	}

	return inv.generate(ctx, text+suffix)
}

// GenerateText sends already-final text. It validates like Call.
func (inv *Invoker) GenerateText(ctx context.Context, text string) (string, error) {
	if err := ValidateGeneration(inv.model, inv.gen); err != nil {
		return "", err
	}
	return inv.generate(ctx, text)
}

func (inv *Invoker) generate(ctx context.Context, text string) (string, error) {
	resp, err := inv.provider.Generate(ctx, Request{
		Prompt:     text,
		Model:      inv.model,
		Generation: inv.gen,
	})
	if err != nil {
		return "", err
	}
	return resp.Text, nil
}
