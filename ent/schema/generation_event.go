package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// GenerationEvent records every generation call for cost tracking and
// debugging. The SQLite DDL in internal/store must stay column-compatible
// with these fields.
type GenerationEvent struct {
	ent.Schema
}

func (GenerationEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (GenerationEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("provider").
			Comment("Provider name: gemini, anthropic, openai, openrouter, mock"),
		field.String("model").
			Comment("Model ID reported by the backend, or the requested one"),
		field.String("purpose").
			Comment("Caller-provided label, e.g. ask"),
		field.Int("input_tokens").
			Default(0),
		field.Int("output_tokens").
			Default(0),
		field.Int64("latency_ms").
			Default(0).
			Comment("Wall-clock time for the request"),
		field.Bool("success"),
		field.String("error_message").
			Default(""),
		field.Text("request_body").
			Default("").
			Comment("Final prompt text"),
		field.Text("response_body").
			Default("").
			Comment("Generated text, unchanged"),
	}
}

func (GenerationEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("purpose"),
		index.Fields("model"),
	}
}
