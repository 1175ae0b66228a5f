package query

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-players/pkg/types"
)

// DirectoryQueryInput narrows the player directory listing.
type DirectoryQueryInput struct {
	Filter types.DirectoryFilter
}

// DirectoryQuery lists players for the public LFT directory.
type DirectoryQuery struct {
	repo types.ProfileRepository
}

// NewDirectoryQuery constructs the directory query helper.
func NewDirectoryQuery(repo types.ProfileRepository) *DirectoryQuery {
	return &DirectoryQuery{repo: repo}
}

var _ gocommand.Querier[DirectoryQueryInput, types.DirectoryPage] = (*DirectoryQuery)(nil)

// Query returns a filtered, paginated page of profiles.
func (q *DirectoryQuery) Query(ctx context.Context, input DirectoryQueryInput) (types.DirectoryPage, error) {
	if q.repo == nil {
		return types.DirectoryPage{}, types.ErrMissingProfileRepository
	}
	if input.Filter.Region != "" && !input.Filter.Region.Valid() {
		return types.DirectoryPage{}, types.ErrInvalidRegion
	}
	if input.Filter.Role != "" && !input.Filter.Role.Valid() {
		return types.DirectoryPage{}, types.ErrInvalidRole
	}
	return q.repo.ListDirectory(ctx, input.Filter)
}
