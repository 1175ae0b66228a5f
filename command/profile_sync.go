package command

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	featuregate "github.com/goliatone/go-featuregate/gate"
	"github.com/goliatone/go-players/handle"
	"github.com/goliatone/go-players/pkg/types"
)

const verbProfileSynced = "profile.synced"

// SyncCommandConfig wires dependencies for the hinted synchronizer.
type SyncCommandConfig struct {
	Repository types.ProfileRepository
	Resolver   *handle.Resolver
	Gate       featuregate.FeatureGate
	Hooks      types.Hooks
	Clock      types.Clock
	Sink       types.ActivitySink
	Logger     types.Logger
}

// ProfileSyncInput requests a create-or-sync pass for the identity.
type ProfileSyncInput struct {
	Identity types.Identity
	Result   *types.SyncResult
}

// Type implements gocommand.Message.
func (ProfileSyncInput) Type() string {
	return "command.profile.sync"
}

// Validate implements gocommand.Message.
func (input ProfileSyncInput) Validate() error {
	if input.Identity.ID == "" {
		return ErrIdentityRequired
	}
	return nil
}

// ProfileSyncCommand makes the create-vs-sync-vs-noop decision for an
// identity and its provider hints. Missing profiles are created under a
// unique handle derived from the hints. Existing profiles are rewritten only
// while their handle still looks machine-assigned; a custom handle is never
// overwritten.
type ProfileSyncCommand struct {
	repo     types.ProfileRepository
	resolver *handle.Resolver
	gate     featuregate.FeatureGate
	hooks    types.Hooks
	clock    types.Clock
	sink     types.ActivitySink
	logger   types.Logger
}

// NewProfileSyncCommand constructs the synchronizer. When no resolver is
// supplied one is built against the repository's handle existence check.
func NewProfileSyncCommand(cfg SyncCommandConfig) (*ProfileSyncCommand, error) {
	resolver := cfg.Resolver
	if resolver == nil && cfg.Repository != nil {
		built, err := handle.NewResolver(handle.ResolverConfig{Checker: cfg.Repository})
		if err != nil {
			return nil, err
		}
		resolver = built
	}
	return &ProfileSyncCommand{
		repo:     cfg.Repository,
		resolver: resolver,
		gate:     cfg.Gate,
		hooks:    safeHooks(cfg.Hooks),
		clock:    safeClock(cfg.Clock),
		sink:     safeActivitySink(cfg.Sink),
		logger:   safeLogger(cfg.Logger),
	}, nil
}

var _ gocommand.Commander[ProfileSyncInput] = (*ProfileSyncCommand)(nil)

// Execute runs one synchronization pass.
func (c *ProfileSyncCommand) Execute(ctx context.Context, input ProfileSyncInput) error {
	if c.repo == nil {
		return types.ErrMissingProfileRepository
	}
	if err := input.Validate(); err != nil {
		return err
	}

	identity := input.Identity
	baseHandle := handle.Normalize(rawHandleHint(identity))
	displayName := displayNameHint(identity)

	existing, err := c.repo.GetByIdentity(ctx, identity.ID)
	if err != nil {
		return err
	}

	if existing == nil {
		return c.create(ctx, identity, baseHandle, displayName, input.Result)
	}
	return c.sync(ctx, identity, *existing, displayName, input.Result)
}

func (c *ProfileSyncCommand) create(ctx context.Context, identity types.Identity, baseHandle, displayName string, result *types.SyncResult) error {
	candidate, err := c.resolver.Resolve(ctx, baseHandle)
	if err != nil {
		return err
	}

	profile := types.PlayerProfile{
		IdentityID:  identity.ID,
		Handle:      candidate,
		DisplayName: displayName,
		AvatarURL:   identity.AvatarURL,
		Region:      types.RegionNA,
		CurrentRank: types.DefaultRank,
		MainRole:    types.RoleSupport,
	}
	created, err := c.repo.Insert(ctx, profile)
	if err != nil {
		return err
	}

	c.logger.Info("player profile created", "identity_id", created.IdentityID, "handle", created.Handle)
	c.notify(ctx, *created, verbProfileCreated)

	if result != nil {
		*result = types.SyncResult{Created: true, Handle: created.Handle}
	}
	return nil
}

func (c *ProfileSyncCommand) sync(ctx context.Context, identity types.Identity, existing types.PlayerProfile, displayName string, result *types.SyncResult) error {
	if identity.Username == "" || !looksGenerated(existing.Handle) {
		if result != nil {
			*result = types.SyncResult{Handle: existing.Handle}
		}
		return nil
	}

	enabled, err := featureEnabled(ctx, c.gate, FeatureHintedSync, identity.ID)
	if err != nil {
		return err
	}
	if !enabled {
		if result != nil {
			*result = types.SyncResult{Handle: existing.Handle}
		}
		return nil
	}

	desired, err := c.resolver.Resolve(ctx, handle.Normalize(identity.Username))
	if err != nil {
		return err
	}

	updated, err := c.repo.UpdateSyncFields(ctx, identity.ID, types.SyncFields{
		Handle:      desired,
		DisplayName: displayName,
		AvatarURL:   identity.AvatarURL,
	})
	if err != nil {
		return err
	}

	c.logger.Info("player profile synced", "identity_id", updated.IdentityID, "handle", updated.Handle)
	c.notify(ctx, *updated, verbProfileSynced)

	if result != nil {
		*result = types.SyncResult{Synced: true, Handle: updated.Handle}
	}
	return nil
}

func (c *ProfileSyncCommand) notify(ctx context.Context, profile types.PlayerProfile, action string) {
	record := types.ActivityRecord{
		IdentityID: profile.IdentityID,
		Verb:       action,
		Handle:     profile.Handle,
		OccurredAt: now(c.clock),
	}
	logActivity(ctx, c.sink, record)
	emitActivityHook(ctx, c.hooks, record)
	emitProfileHook(ctx, c.hooks, types.ProfileEvent{
		IdentityID: profile.IdentityID,
		Action:     action,
		OccurredAt: now(c.clock),
		Profile:    profile,
	})
}
