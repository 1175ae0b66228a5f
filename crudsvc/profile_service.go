package crudsvc

import (
	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-crud"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-players/pkg/types"
	"github.com/goliatone/go-players/profile"
	"github.com/goliatone/go-players/query"
	repository "github.com/goliatone/go-repository-bun"
)

// ProfileServiceConfig wires dependencies for the directory controller.
type ProfileServiceConfig struct {
	Directory gocommand.Querier[query.DirectoryQueryInput, types.DirectoryPage]
	ByHandle  gocommand.Querier[query.HandleQueryInput, *query.PublicProfile]
	Repo      types.ProfileRepository
}

// ProfileService exposes a read-only go-crud surface over the player
// directory so admin panels can list and inspect profiles without bypassing
// the query layer. Writes go through the command surface, never through CRUD.
type ProfileService struct {
	directory gocommand.Querier[query.DirectoryQueryInput, types.DirectoryPage]
	byHandle  gocommand.Querier[query.HandleQueryInput, *query.PublicProfile]
	repo      types.ProfileRepository
	emitter   ActivityEmitter
	logger    types.Logger
}

// NewProfileService constructs the adapter.
func NewProfileService(cfg ProfileServiceConfig, opts ...ServiceOption) *ProfileService {
	options := applyOptions(opts)
	return &ProfileService{
		directory: cfg.Directory,
		byHandle:  cfg.ByHandle,
		repo:      cfg.Repo,
		emitter:   options.emitter,
		logger:    options.logger,
	}
}

func (s *ProfileService) Create(crud.Context, *profile.Record) (*profile.Record, error) {
	return nil, notSupported(crud.OpCreate)
}

func (s *ProfileService) CreateBatch(crud.Context, []*profile.Record) ([]*profile.Record, error) {
	return nil, notSupported(crud.OpCreateBatch)
}

func (s *ProfileService) Update(crud.Context, *profile.Record) (*profile.Record, error) {
	return nil, notSupported(crud.OpUpdate)
}

func (s *ProfileService) UpdateBatch(crud.Context, []*profile.Record) ([]*profile.Record, error) {
	return nil, notSupported(crud.OpUpdateBatch)
}

func (s *ProfileService) Delete(crud.Context, *profile.Record) error {
	return notSupported(crud.OpDelete)
}

func (s *ProfileService) DeleteBatch(crud.Context, []*profile.Record) error {
	return notSupported(crud.OpDeleteBatch)
}

// Index lists directory rows, honoring region/role/lft query filters.
func (s *ProfileService) Index(ctx crud.Context, _ []repository.SelectCriteria) ([]*profile.Record, int, error) {
	if s.directory == nil {
		return nil, 0, goerrors.New("directory query missing", goerrors.CategoryInternal).WithCode(goerrors.CodeInternal)
	}
	filter, err := directoryFilterFromQuery(ctx)
	if err != nil {
		return nil, 0, goerrors.Wrap(err, goerrors.CategoryValidation, "invalid directory filter").
			WithCode(goerrors.CodeBadRequest)
	}
	page, err := s.directory.Query(ctx.UserContext(), query.DirectoryQueryInput{Filter: filter})
	if err != nil {
		return nil, 0, err
	}
	records := make([]*profile.Record, 0, len(page.Profiles))
	for _, p := range page.Profiles {
		records = append(records, profile.RecordFromDomain(p))
	}
	return records, page.Total, nil
}

// Show resolves one profile by its public handle.
func (s *ProfileService) Show(ctx crud.Context, id string, _ []repository.SelectCriteria) (*profile.Record, error) {
	if s.repo == nil {
		return nil, goerrors.New("profile repository missing", goerrors.CategoryInternal).WithCode(goerrors.CodeInternal)
	}
	found, err := s.repo.GetByHandle(ctx.UserContext(), id)
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, goerrors.New("profile not found", goerrors.CategoryNotFound).WithCode(goerrors.CodeNotFound)
	}
	s.emitInspected(ctx, found)
	return profile.RecordFromDomain(*found), nil
}

// emitInspected logs a best-effort audit record for admin panel inspection.
func (s *ProfileService) emitInspected(ctx crud.Context, found *types.PlayerProfile) {
	if s.emitter == nil {
		return
	}
	err := s.emitter.Emit(ctx.UserContext(), types.ActivityRecord{
		IdentityID: found.IdentityID,
		Verb:       "profile.inspected",
		Handle:     found.Handle,
	})
	if err != nil && s.logger != nil {
		s.logger.Error("failed to emit inspection record", err, "handle", found.Handle)
	}
}

func directoryFilterFromQuery(ctx crud.Context) (types.DirectoryFilter, error) {
	filter := types.DirectoryFilter{
		Pagination: types.Pagination{
			Limit:  queryInt(ctx, "limit", 25),
			Offset: queryInt(ctx, "offset", 0),
		},
	}
	if raw := queryString(ctx, "region"); raw != "" {
		region, err := types.ParseRegion(raw)
		if err != nil {
			return types.DirectoryFilter{}, err
		}
		filter.Region = region
	}
	if raw := queryString(ctx, "main_role"); raw != "" {
		role, err := types.ParseRole(raw)
		if err != nil {
			return types.DirectoryFilter{}, err
		}
		filter.Role = role
	}
	if lft, ok := queryBool(ctx, "lft"); ok {
		filter.LFTOnly = lft
	}
	return filter, nil
}
