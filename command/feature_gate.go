package command

import (
	"context"

	featuregate "github.com/goliatone/go-featuregate/gate"
)

const (
	// FeatureHintedSync gates the handle-rewrite branch of the synchronizer.
	// When disabled, existing profiles are never mutated on first touch.
	FeatureHintedSync = "players.sync.hinted"
)

func featureEnabled(ctx context.Context, gate featuregate.FeatureGate, key string, identityID string) (bool, error) {
	if gate == nil {
		return true, nil
	}
	if identityID == "" {
		return gate.Enabled(ctx, key)
	}
	return gate.Enabled(ctx, key, featuregate.WithScopeChain(featuregate.ScopeChain{
		{Kind: featuregate.ScopeUser, ID: identityID},
		{Kind: featuregate.ScopeSystem},
	}))
}
