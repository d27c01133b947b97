package llm

// Default generation parameters, matching what the Gemini text backend
// declares when a caller leaves them unset.
const (
	DefaultModel           = "models/gemini-pro"
	DefaultTemperature     = 0.0
	DefaultTopP            = 0.8
	DefaultTopK            = 0.3
	DefaultMaxOutputTokens = 1000
)

// GenerationConfig holds the sampling controls sent with every request.
type GenerationConfig struct {
	// Temperature controls randomness. Range: 0.0 - 1.0 inclusive.
	Temperature float64 `yaml:"temperature"`

	// TopP is the nucleus sampling mass. Range: 0.0 - 1.0 inclusive.
	TopP float64 `yaml:"top_p"`

	// TopK limits sampling to the K most likely tokens. Range: 0.0 - 100.0
	// inclusive. Kept as a float because the upstream API accepts one.
	TopK float64 `yaml:"top_k"`

	// MaxOutputTokens caps the response length. Must be greater than zero.
	MaxOutputTokens int `yaml:"max_output_tokens"`
}

// DefaultGenerationConfig returns the documented defaults.
func DefaultGenerationConfig() GenerationConfig {
	return GenerationConfig{
		Temperature:     DefaultTemperature,
		TopP:            DefaultTopP,
		TopK:            DefaultTopK,
		MaxOutputTokens: DefaultMaxOutputTokens,
	}
}

// ValidateGeneration checks model and cfg in a fixed order and returns a
// *ValidationError for the first violated constraint, or nil.
func ValidateGeneration(model string, cfg GenerationConfig) error {
	switch {
	case model == "":
		return &ValidationError{Field: "model", Message: "model is required."}
	case !inRange(cfg.Temperature, 0, 1):
		return &ValidationError{Field: "temperature", Message: "temperature must be in the range [0.0, 1.0]"}
	case !inRange(cfg.TopP, 0, 1):
		return &ValidationError{Field: "top_p", Message: "top_p must be in the range [0.0, 1.0]"}
	case !inRange(cfg.TopK, 0, 100):
		return &ValidationError{Field: "top_k", Message: "top_k must be in the range [0.0, 100.0]"}
	case cfg.MaxOutputTokens <= 0:
		return &ValidationError{Field: "max_output_tokens", Message: "max_output_tokens must be greater than zero"}
	}
	return nil
}

// inRange reports whether lo <= v <= hi. NaN is never in range.
func inRange(v, lo, hi float64) bool {
	return v >= lo && v <= hi
}
