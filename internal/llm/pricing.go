package llm

import "strings"

// ModelCost holds per-million-token pricing for a model, in USD.
type ModelCost struct {
	InputPerMTok  float64
	OutputPerMTok float64
}

// Cost calculates the total USD cost for the given token counts.
func (c ModelCost) Cost(inputTokens, outputTokens int) float64 {
	return float64(inputTokens)*c.InputPerMTok/1_000_000 +
		float64(outputTokens)*c.OutputPerMTok/1_000_000
}

// LookupCost returns the pricing for a model ID, or nil if unknown. Gemini's
// "models/" resource prefix and OpenRouter's vendor prefix are ignored.
func LookupCost(modelID string) *ModelCost {
	id := strings.TrimPrefix(modelID, "models/")
	if _, rest, ok := strings.Cut(id, "/"); ok {
		id = rest
	}
	if c, ok := modelCosts[id]; ok {
		return &c
	}
	return nil
}

// modelCosts covers the default and friendly-name targets of each provider.
var modelCosts = map[string]ModelCost{
	// Google (Gemini)
	"gemini-pro":            {0.5, 1.5},
	"gemini-1.5-flash":      {0.075, 0.3},
	"gemini-1.5-pro":        {1.25, 5},
	"gemini-2.0-flash":      {0.1, 0.4},
	"gemini-2.0-flash-exp":  {0.1, 0.4},
	"gemini-2.0-flash-lite": {0.075, 0.3},
	"gemini-2.0-pro":        {1.25, 10},
	"gemini-2.5-flash":      {0.3, 2.5},
	"gemini-2.5-pro":        {1.25, 10},

	// Anthropic
	"claude-haiku-4-5-20251001": {1, 5},
	"claude-sonnet-4-20250514":  {3, 15},
	"claude-3-haiku":            {0.25, 1.25},

	// OpenAI
	"gpt-4o":       {2.5, 10},
	"gpt-4o-mini":  {0.15, 0.6},
	"gpt-4.1":      {2, 8},
	"gpt-4.1-mini": {0.4, 1.6},
}
