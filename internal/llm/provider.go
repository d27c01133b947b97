package llm

import "context"

// Provider is the external text-generation capability. The invoker treats it
// as opaque: one Generate call per invocation, errors returned as-is.
type Provider interface {
	// Generate sends the final prompt text to the backend and returns the
	// generated text along with usage metadata.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider defaults to.
	ModelID() string

	// Name identifies the backend, e.g. "gemini" or "openai".
	Name() string
}

// Request describes a single generation call.
type Request struct {
	// Prompt is the final instruction text: rendered template plus suffix.
	Prompt string

	// Model overrides the provider's default model when non-empty.
	Model string

	// Generation carries the already-validated sampling controls.
	Generation GenerationConfig
}

// Response holds the backend's output.
type Response struct {
	// Text is the generated text, returned to callers unchanged.
	Text string

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason indicates why generation stopped.
	// Normalized to: "end", "max_tokens", "safety"
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// resolveModel maps a friendly model name to a provider model ID.
func resolveModel(name string, models map[string]string) string {
	if id, ok := models[name]; ok {
		return id
	}
	// If not in the map, use as-is (allows direct model IDs).
	return name
}
