package query

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-players/pkg/types"
)

// ProfileQueryInput identifies the caller whose profile to fetch.
type ProfileQueryInput struct {
	IdentityID string
}

// ProfileQuery fetches the caller's own profile row with its platform set.
type ProfileQuery struct {
	repo types.ProfileRepository
}

// NewProfileQuery constructs the own-profile query helper.
func NewProfileQuery(repo types.ProfileRepository) *ProfileQuery {
	return &ProfileQuery{repo: repo}
}

var _ gocommand.Querier[ProfileQueryInput, *types.PlayerProfile] = (*ProfileQuery)(nil)

// Query returns the profile for the supplied identity. A missing row for an
// authenticated caller is not an error; the result is nil so the host can
// render an absent profile and trigger a first-touch pass.
func (q *ProfileQuery) Query(ctx context.Context, input ProfileQueryInput) (*types.PlayerProfile, error) {
	if q.repo == nil {
		return nil, types.ErrMissingProfileRepository
	}
	if input.IdentityID == "" {
		return nil, types.ErrIdentityRequired
	}
	return q.repo.GetByIdentity(ctx, input.IdentityID)
}
