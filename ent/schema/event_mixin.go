package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
	"entgo.io/ent/schema/mixin"
)

// EventMixin provides the identity and ordering fields shared by event
// tables.
type EventMixin struct {
	mixin.Schema
}

func (EventMixin) Fields() []ent.Field {
	return []ent.Field{
		field.Int64("seq").
			Unique().
			Immutable().
			Comment("Monotonically increasing insertion order"),
		field.String("id").
			Unique().
			Immutable().
			Comment("UUID assigned at append time"),
		field.Int64("created_at").
			Immutable().
			Comment("Unix milliseconds, UTC"),
	}
}

func (EventMixin) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("seq"),
	}
}
