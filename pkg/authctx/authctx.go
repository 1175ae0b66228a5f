package authctx

import (
	"context"

	auth "github.com/goliatone/go-auth"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-players/pkg/types"
	"github.com/goliatone/go-router"
)

const (
	textCodeActorMissing = "ACTOR_CONTEXT_MISSING"
	textCodeActorInvalid = "ACTOR_CONTEXT_INVALID"
)

// ActorFromContext is a thin wrapper around go-auth helpers so callers do not
// need to import auth directly when they only need the actor payload.
func ActorFromContext(ctx context.Context) (*auth.ActorContext, bool) {
	return auth.ActorFromContext(ctx)
}

// ActorFromRouterContext extracts the actor payload from router contexts
// using go-auth helpers.
func ActorFromRouterContext(ctx router.Context) (*auth.ActorContext, bool) {
	return auth.ActorFromRouterContext(ctx)
}

// ResolveActorContext returns the actor metadata stored by go-auth middleware
// or rebuilds it from JWT claims when the ContextEnricher hook was not
// configured.
func ResolveActorContext(ctx context.Context) (*auth.ActorContext, error) {
	if ctx == nil {
		return nil, errors.New("go-players: missing request context", errors.CategoryAuth).
			WithCode(errors.CodeUnauthorized).
			WithTextCode(textCodeActorMissing)
	}

	if actor, ok := auth.ActorFromContext(ctx); ok && actor != nil {
		return actor, nil
	}

	if claims, ok := auth.GetClaims(ctx); ok && claims != nil {
		if actor := auth.ActorContextFromClaims(claims); actor != nil {
			return actor, nil
		}
	}

	return nil, errors.New("go-players: auth actor context not found on request", errors.CategoryAuth).
		WithCode(errors.CodeUnauthorized).
		WithTextCode(textCodeActorMissing)
}

// ResolveIdentity returns the caller identity consumed by go-players commands
// and queries. Only the stable subject is taken from the auth context; the
// profile hints (username, email, names) travel with provider payloads, not
// with the session.
func ResolveIdentity(ctx context.Context) (types.Identity, error) {
	actor, err := ResolveActorContext(ctx)
	if err != nil {
		return types.Identity{}, err
	}
	return IdentityFromActorContext(actor)
}

// ResolveIdentityFromRouter mirrors ResolveIdentity for router transports
// where middleware stores actor metadata directly in the router context.
func ResolveIdentityFromRouter(ctx router.Context) (types.Identity, error) {
	if ctx == nil {
		return types.Identity{}, errors.New("go-players: missing router context", errors.CategoryAuth).
			WithCode(errors.CodeUnauthorized).
			WithTextCode(textCodeActorMissing)
	}

	if actor, ok := auth.ActorFromRouterContext(ctx); ok && actor != nil {
		return IdentityFromActorContext(actor)
	}

	return ResolveIdentity(ctx.Context())
}

// IdentityFromActorContext converts the auth middleware payload into the
// identity consumed across go-players.
func IdentityFromActorContext(actor *auth.ActorContext) (types.Identity, error) {
	if actor == nil {
		return types.Identity{}, errors.New("go-players: actor context is nil", errors.CategoryAuth).
			WithCode(errors.CodeUnauthorized).
			WithTextCode(textCodeActorInvalid)
	}
	id := actor.ActorID
	if id == "" {
		id = actor.Subject
	}
	if id == "" {
		return types.Identity{}, errors.New("go-players: actor context missing actor_id", errors.CategoryAuth).
			WithCode(errors.CodeUnauthorized).
			WithTextCode(textCodeActorInvalid)
	}
	return types.Identity{ID: id}, nil
}
