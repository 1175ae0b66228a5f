package command

import (
	"context"
	"strings"
	"time"

	featuregate "github.com/goliatone/go-featuregate/gate"
	"github.com/goliatone/go-players/pkg/types"
)

type fakeProfileRepo struct {
	profiles map[string]*types.PlayerProfile

	handleChecks []string
	getErr       error
	insertErr    error
	updateErr    error

	insertCalled bool
	lastInserted types.PlayerProfile

	syncCalled     bool
	lastSyncFields types.SyncFields

	settingsCalled bool
	lastSettings   types.ProfileSettings
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: map[string]*types.PlayerProfile{}}
}

func (r *fakeProfileRepo) HandleExists(_ context.Context, handle string) (bool, error) {
	normalized := strings.ToLower(strings.TrimSpace(handle))
	r.handleChecks = append(r.handleChecks, normalized)
	for _, p := range r.profiles {
		if strings.ToLower(p.Handle) == normalized {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeProfileRepo) GetByIdentity(_ context.Context, identityID string) (*types.PlayerProfile, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	p, ok := r.profiles[identityID]
	if !ok {
		return nil, nil
	}
	clone := *p
	return &clone, nil
}

func (r *fakeProfileRepo) GetByHandle(_ context.Context, handle string) (*types.PlayerProfile, error) {
	normalized := strings.ToLower(strings.TrimSpace(handle))
	for _, p := range r.profiles {
		if strings.ToLower(p.Handle) == normalized {
			clone := *p
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeProfileRepo) Insert(_ context.Context, profile types.PlayerProfile) (*types.PlayerProfile, error) {
	if r.insertErr != nil {
		return nil, r.insertErr
	}
	r.insertCalled = true
	r.lastInserted = profile
	stored := profile
	r.profiles[profile.IdentityID] = &stored
	clone := stored
	return &clone, nil
}

func (r *fakeProfileRepo) UpdateSyncFields(_ context.Context, identityID string, fields types.SyncFields) (*types.PlayerProfile, error) {
	if r.updateErr != nil {
		return nil, r.updateErr
	}
	p, ok := r.profiles[identityID]
	if !ok {
		return nil, types.ErrProfileNotFound
	}
	r.syncCalled = true
	r.lastSyncFields = fields
	p.Handle = fields.Handle
	p.DisplayName = fields.DisplayName
	p.AvatarURL = fields.AvatarURL
	clone := *p
	return &clone, nil
}

func (r *fakeProfileRepo) UpdateSettings(_ context.Context, identityID string, settings types.ProfileSettings) (*types.PlayerProfile, error) {
	if r.updateErr != nil {
		return nil, r.updateErr
	}
	p, ok := r.profiles[identityID]
	if !ok {
		return nil, types.ErrProfileNotFound
	}
	r.settingsCalled = true
	r.lastSettings = settings
	p.Bio = settings.Bio
	p.Region = settings.Region
	p.Timezone = settings.Timezone
	p.CurrentRank = settings.CurrentRank
	p.MainRole = settings.MainRole
	p.IsLFT = settings.IsLFT
	p.Platforms = append([]types.Platform(nil), settings.Platforms...)
	clone := *p
	return &clone, nil
}

func (r *fakeProfileRepo) ListDirectory(_ context.Context, _ types.DirectoryFilter) (types.DirectoryPage, error) {
	page := types.DirectoryPage{}
	for _, p := range r.profiles {
		page.Profiles = append(page.Profiles, *p)
	}
	page.Total = len(page.Profiles)
	return page, nil
}

type recordingActivitySink struct {
	records []types.ActivityRecord
	onLog   func(types.ActivityRecord)
}

func (s *recordingActivitySink) Log(_ context.Context, record types.ActivityRecord) error {
	s.records = append(s.records, record)
	if s.onLog != nil {
		s.onLog(record)
	}
	return nil
}

type stubFeatureGate struct {
	enabled bool
	err     error
	keys    []string
}

func (s *stubFeatureGate) Enabled(_ context.Context, key string, _ ...featuregate.ResolveOption) (bool, error) {
	s.keys = append(s.keys, key)
	if s.err != nil {
		return false, s.err
	}
	return s.enabled, nil
}

type fixedClock struct {
	at time.Time
}

func (c fixedClock) Now() time.Time { return c.at }
