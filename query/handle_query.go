package query

import (
	"context"
	"strings"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-players/pkg/types"
)

// HandleQueryInput carries the public handle to look up.
type HandleQueryInput struct {
	Handle string
}

// PublicProfile is the restricted projection served on public profile pages.
// Raw timestamps and internal ids stay out of the payload.
type PublicProfile struct {
	Handle      string           `json:"handle"`
	DisplayName string           `json:"display_name"`
	AvatarURL   string           `json:"avatar_url,omitempty"`
	Bio         string           `json:"bio,omitempty"`
	Region      types.Region     `json:"region"`
	Timezone    string           `json:"timezone,omitempty"`
	CurrentRank string           `json:"current_rank"`
	MainRole    types.Role       `json:"main_role"`
	IsLFT       bool             `json:"is_lft"`
	Platforms   []types.Platform `json:"platforms"`
}

// HandleQuery serves public profile lookups by handle.
type HandleQuery struct {
	repo types.ProfileRepository
}

// NewHandleQuery constructs the by-handle query helper.
func NewHandleQuery(repo types.ProfileRepository) *HandleQuery {
	return &HandleQuery{repo: repo}
}

var _ gocommand.Querier[HandleQueryInput, *PublicProfile] = (*HandleQuery)(nil)

// Query resolves a handle case-insensitively after trimming surrounding
// whitespace and returns the public projection.
func (q *HandleQuery) Query(ctx context.Context, input HandleQueryInput) (*PublicProfile, error) {
	if q.repo == nil {
		return nil, types.ErrMissingProfileRepository
	}
	handle := strings.ToLower(strings.TrimSpace(input.Handle))
	if handle == "" {
		return nil, types.ErrHandleRequired
	}
	profile, err := q.repo.GetByHandle(ctx, handle)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, types.ErrProfileNotFound
	}
	return &PublicProfile{
		Handle:      profile.Handle,
		DisplayName: profile.DisplayName,
		AvatarURL:   profile.AvatarURL,
		Bio:         profile.Bio,
		Region:      profile.Region,
		Timezone:    profile.Timezone,
		CurrentRank: profile.CurrentRank,
		MainRole:    profile.MainRole,
		IsLFT:       profile.IsLFT,
		Platforms:   profile.Platforms,
	}, nil
}
