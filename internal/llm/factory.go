package llm

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/askframe/internal/store"
)

// NewProvider creates a Provider from configuration, wrapped with logging
// middleware. events may be nil.
func NewProvider(ctx context.Context, cfg Config, logger *zap.Logger, events store.EventRepo) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		base = NewMockProvider()
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	return WithLogging(base, logger, events), nil
}

// NewInvokerFromConfig builds the configured provider and an Invoker on top
// of it using the provider's model and the shared generation parameters.
func NewInvokerFromConfig(ctx context.Context, cfg Config, logger *zap.Logger, events store.EventRepo) (*Invoker, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	provider, err := NewProvider(ctx, cfg, logger, events)
	if err != nil {
		return nil, err
	}

	apiKey, model := cfg.Credentials()
	opts := []Option{
		WithProvider(provider),
		WithGenerationConfig(cfg.Generation),
	}
	if model != "" {
		opts = append(opts, WithModel(model))
	}
	return New(ctx, apiKey, opts...)
}
