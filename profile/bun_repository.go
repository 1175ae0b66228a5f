package profile

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/goliatone/go-players/pkg/types"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// RepositoryConfig wires the Bun-backed profile repository.
type RepositoryConfig struct {
	DB         *bun.DB
	Repository repository.Repository[*Record]
	Clock      types.Clock
	IDGen      types.IDGenerator
}

type profileStore interface {
	repository.Repository[*Record]
}

// Repository implements types.ProfileRepository using Bun. Platform rows are
// managed directly through the bun DB so settings updates can replace the
// set inside a single transaction.
type Repository struct {
	profileStore
	db    *bun.DB
	clock types.Clock
	idGen types.IDGenerator
}

// NewRepository constructs the default profile repository.
func NewRepository(cfg RepositoryConfig, options ...RepositoryOption) (*Repository, error) {
	if cfg.Repository == nil && cfg.DB == nil {
		return nil, errors.New("profile: db or repository required")
	}
	repo := cfg.Repository
	if repo == nil {
		repo = repository.NewRepository(cfg.DB, repository.ModelHandlers[*Record]{
			NewRecord: func() *Record { return &Record{} },
			GetID: func(rec *Record) uuid.UUID {
				if rec == nil {
					return uuid.Nil
				}
				return rec.ID
			},
			SetID: func(rec *Record, id uuid.UUID) {
				if rec != nil {
					rec.ID = id
				}
			},
			GetIdentifier: func() string {
				return "handle"
			},
		})
	}

	opts := applyRepositoryOptions(options)
	repo, err := maybeWrapCache(repo, opts)
	if err != nil {
		return nil, err
	}

	clock := cfg.Clock
	if clock == nil {
		clock = types.SystemClock{}
	}
	idGen := cfg.IDGen
	if idGen == nil {
		idGen = types.UUIDGenerator{}
	}

	return &Repository{
		profileStore: repo,
		db:           cfg.DB,
		clock:        clock,
		idGen:        idGen,
	}, nil
}

var (
	_ repository.Repository[*Record] = (*Repository)(nil)
	_ types.ProfileRepository        = (*Repository)(nil)
)

// HandleExists reports whether any profile already uses the handle.
// Comparison is case-insensitive on the trimmed value.
func (r *Repository) HandleExists(ctx context.Context, handle string) (bool, error) {
	_, err := r.Get(ctx, selectHandle(handle))
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// GetByIdentity returns the profile owned by the identity, or (nil, nil)
// when none exists.
func (r *Repository) GetByIdentity(ctx context.Context, identityID string) (*types.PlayerProfile, error) {
	rec, err := r.Get(ctx, selectIdentity(identityID))
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return r.withPlatforms(ctx, rec)
}

// GetByHandle returns the profile matching the handle (case-insensitive,
// trimmed), or (nil, nil) when none exists.
func (r *Repository) GetByHandle(ctx context.Context, handle string) (*types.PlayerProfile, error) {
	rec, err := r.Get(ctx, selectHandle(handle))
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return r.withPlatforms(ctx, rec)
}

// Insert creates the profile row and its initial platform set.
func (r *Repository) Insert(ctx context.Context, profile types.PlayerProfile) (*types.PlayerProfile, error) {
	now := r.clock.Now()
	rec := fromDomain(profile)
	if rec.ID == uuid.Nil {
		rec.ID = r.idGen.UUID()
	}
	rec.CreatedAt = now
	rec.UpdatedAt = now

	created, err := r.Create(ctx, rec)
	if err != nil {
		return nil, err
	}
	if len(profile.Platforms) > 0 {
		if r.db == nil {
			return nil, errors.New("profile: platform insert requires bun DB")
		}
		if err := r.insertPlatforms(ctx, r.db, created.ID, profile.Platforms); err != nil {
			return nil, err
		}
	}
	return r.withPlatforms(ctx, created)
}

// UpdateSyncFields overwrites the identity-provider-owned columns (handle,
// display name, avatar) leaving everything the player edits untouched.
func (r *Repository) UpdateSyncFields(ctx context.Context, identityID string, fields types.SyncFields) (*types.PlayerProfile, error) {
	rec, err := r.Get(ctx, selectIdentity(identityID))
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, types.ErrProfileNotFound
		}
		return nil, err
	}

	rec.Handle = fields.Handle
	rec.DisplayName = fields.DisplayName
	rec.AvatarURL = fields.AvatarURL
	rec.UpdatedAt = r.clock.Now()

	updated, err := r.Update(ctx, rec)
	if err != nil {
		return nil, err
	}
	return r.withPlatforms(ctx, updated)
}

// UpdateSettings applies the owner-editable fields and replaces the platform
// set with delete-then-insert. Both steps run inside one transaction so a
// failed insert never leaves the profile without its platforms.
func (r *Repository) UpdateSettings(ctx context.Context, identityID string, settings types.ProfileSettings) (*types.PlayerProfile, error) {
	rec, err := r.Get(ctx, selectIdentity(identityID))
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, types.ErrProfileNotFound
		}
		return nil, err
	}

	rec.Bio = settings.Bio
	rec.Region = string(settings.Region)
	rec.Timezone = settings.Timezone
	rec.CurrentRank = settings.CurrentRank
	rec.MainRole = string(settings.MainRole)
	rec.IsLFT = settings.IsLFT
	rec.UpdatedAt = r.clock.Now()

	if r.db == nil {
		return nil, errors.New("profile: settings update requires bun DB")
	}
	err = r.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewUpdate().Model(rec).WherePK().Exec(ctx); err != nil {
			return err
		}
		if _, err := tx.NewDelete().
			Model((*PlatformRecord)(nil)).
			Where("profile_id = ?", rec.ID).
			Exec(ctx); err != nil {
			return err
		}
		return r.insertPlatforms(ctx, tx, rec.ID, settings.Platforms)
	})
	if err != nil {
		return nil, err
	}
	return r.withPlatforms(ctx, rec)
}

// ListDirectory returns profiles filtered by region/role/LFT for browsing
// panels, newest first.
func (r *Repository) ListDirectory(ctx context.Context, filter types.DirectoryFilter) (types.DirectoryPage, error) {
	pagination := normalizePagination(filter.Pagination, 25, 100)
	criteria := []repository.SelectCriteria{
		func(q *bun.SelectQuery) *bun.SelectQuery {
			q = q.OrderExpr("created_at DESC").
				Limit(pagination.Limit).
				Offset(pagination.Offset)
			if filter.Region != "" {
				q = q.Where("region = ?", string(filter.Region))
			}
			if filter.Role != "" {
				q = q.Where("main_role = ?", string(filter.Role))
			}
			if filter.LFTOnly {
				q = q.Where("is_lft = ?", true)
			}
			return q
		},
	}

	rows, total, err := r.List(ctx, criteria...)
	if err != nil {
		return types.DirectoryPage{}, err
	}

	platformsByProfile, err := r.platformsFor(ctx, rows)
	if err != nil {
		return types.DirectoryPage{}, err
	}
	profiles := make([]types.PlayerProfile, 0, len(rows))
	for _, row := range rows {
		profiles = append(profiles, *toDomain(row, platformsByProfile[row.ID]))
	}
	return types.DirectoryPage{
		Profiles:   profiles,
		Total:      total,
		NextOffset: pagination.Offset + pagination.Limit,
		HasMore:    pagination.Offset+pagination.Limit < total,
	}, nil
}

func (r *Repository) withPlatforms(ctx context.Context, rec *Record) (*types.PlayerProfile, error) {
	platforms, err := r.platformsFor(ctx, []*Record{rec})
	if err != nil {
		return nil, err
	}
	return toDomain(rec, platforms[rec.ID]), nil
}

func (r *Repository) platformsFor(ctx context.Context, recs []*Record) (map[uuid.UUID][]types.Platform, error) {
	out := make(map[uuid.UUID][]types.Platform, len(recs))
	if len(recs) == 0 || r.db == nil {
		return out, nil
	}
	ids := make([]uuid.UUID, 0, len(recs))
	for _, rec := range recs {
		ids = append(ids, rec.ID)
	}
	var rows []*PlatformRecord
	err := r.db.NewSelect().
		Model(&rows).
		Where("profile_id IN (?)", bun.In(ids)).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.ProfileID] = append(out[row.ProfileID], types.Platform(row.Platform))
	}
	return out, nil
}

func (r *Repository) insertPlatforms(ctx context.Context, db bun.IDB, profileID uuid.UUID, platforms []types.Platform) error {
	if len(platforms) == 0 {
		return nil
	}
	rows := make([]*PlatformRecord, 0, len(platforms))
	for _, platform := range platforms {
		rows = append(rows, &PlatformRecord{
			ID:        r.idGen.UUID(),
			ProfileID: profileID,
			Platform:  string(platform),
		})
	}
	_, err := db.NewInsert().Model(&rows).Exec(ctx)
	return err
}

func selectIdentity(identityID string) repository.SelectCriteria {
	return repository.SelectBy("identity_id", "=", strings.TrimSpace(identityID))
}

func selectHandle(handle string) repository.SelectCriteria {
	normalized := strings.ToLower(strings.TrimSpace(handle))
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("LOWER(handle) = ?", normalized)
	}
}

func normalizePagination(p types.Pagination, def, max int) types.Pagination {
	if p.Limit <= 0 {
		p.Limit = def
	}
	if p.Limit > max {
		p.Limit = max
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

// RecordFromDomain converts a domain profile into the Bun model so transports
// can reuse the conversion without duplicating it.
func RecordFromDomain(profile types.PlayerProfile) *Record {
	return fromDomain(profile)
}

// RecordToDomain converts the Bun model into the domain profile.
func RecordToDomain(rec *Record, platforms []types.Platform) *types.PlayerProfile {
	return toDomain(rec, platforms)
}

func fromDomain(profile types.PlayerProfile) *Record {
	return &Record{
		ID:          profile.ID,
		IdentityID:  profile.IdentityID,
		Handle:      profile.Handle,
		DisplayName: profile.DisplayName,
		AvatarURL:   profile.AvatarURL,
		Bio:         profile.Bio,
		Region:      string(profile.Region),
		Timezone:    profile.Timezone,
		CurrentRank: profile.CurrentRank,
		MainRole:    string(profile.MainRole),
		IsLFT:       profile.IsLFT,
		CreatedAt:   profile.CreatedAt,
		UpdatedAt:   profile.UpdatedAt,
	}
}

func toDomain(rec *Record, platforms []types.Platform) *types.PlayerProfile {
	if rec == nil {
		return nil
	}
	return &types.PlayerProfile{
		ID:          rec.ID,
		IdentityID:  rec.IdentityID,
		Handle:      rec.Handle,
		DisplayName: rec.DisplayName,
		AvatarURL:   rec.AvatarURL,
		Bio:         rec.Bio,
		Region:      types.Region(rec.Region),
		Timezone:    rec.Timezone,
		CurrentRank: rec.CurrentRank,
		MainRole:    types.Role(rec.MainRole),
		IsLFT:       rec.IsLFT,
		Platforms:   platforms,
		CreatedAt:   rec.CreatedAt,
		UpdatedAt:   rec.UpdatedAt,
	}
}
