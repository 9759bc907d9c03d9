// Package actorcontext carries the acting professional through request contexts.
package actorcontext

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
)

// ActorContextKey is the request context key for the acting professional.
type ActorContextKey struct{}

// Actor identifies the professional performing a request.
type Actor struct {
	ProfessionalID snowflake.ID
	Role           string
}

// WithActor stores the acting professional in the context.
func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, ActorContextKey{}, actor)
}

// ActorFromContext returns the acting professional, if set.
func ActorFromContext(ctx context.Context) (Actor, bool) {
	if ctx == nil {
		return Actor{}, false
	}
	actor, ok := ctx.Value(ActorContextKey{}).(Actor)
	if !ok || actor.ProfessionalID == 0 {
		return Actor{}, false
	}
	return actor, true
}

// ProfessionalIDFromContext returns just the acting professional's ID.
func ProfessionalIDFromContext(ctx context.Context) (snowflake.ID, bool) {
	actor, ok := ActorFromContext(ctx)
	if !ok {
		return 0, false
	}
	return actor.ProfessionalID, true
}

// ParseID parses a snowflake ID from its string form.
func ParseID(raw string) (snowflake.ID, bool) {
	id, err := snowflake.ParseString(strings.TrimSpace(raw))
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}
