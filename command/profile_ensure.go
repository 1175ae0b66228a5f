package command

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-players/pkg/types"
)

const (
	// DefaultTimezone is assigned on the deterministic create path only. The
	// hinted synchronizer leaves timezone empty for the player to fill in.
	DefaultTimezone = "America/New_York"

	verbProfileCreated = "profile.created"
)

// EnsureCommandConfig wires dependencies for the idempotent ensure command.
type EnsureCommandConfig struct {
	Repository types.ProfileRepository
	Hooks      types.Hooks
	Clock      types.Clock
	Sink       types.ActivitySink
	Logger     types.Logger
}

// ProfileEnsureInput requests that a profile row exist for the identity.
type ProfileEnsureInput struct {
	Identity types.Identity
	Result   *types.SyncResult
}

// Type implements gocommand.Message.
func (ProfileEnsureInput) Type() string {
	return "command.profile.ensure"
}

// Validate implements gocommand.Message.
func (input ProfileEnsureInput) Validate() error {
	if input.Identity.ID == "" {
		return ErrIdentityRequired
	}
	return nil
}

// ProfileEnsureCommand guarantees a profile row exists for an identity
// without touching rows that already exist. The handle is derived
// deterministically from the subject id, so repeat invocations for the same
// identity are no-ops.
type ProfileEnsureCommand struct {
	repo   types.ProfileRepository
	hooks  types.Hooks
	clock  types.Clock
	sink   types.ActivitySink
	logger types.Logger
}

// NewProfileEnsureCommand constructs the ensure handler.
func NewProfileEnsureCommand(cfg EnsureCommandConfig) *ProfileEnsureCommand {
	return &ProfileEnsureCommand{
		repo:   cfg.Repository,
		hooks:  safeHooks(cfg.Hooks),
		clock:  safeClock(cfg.Clock),
		sink:   safeActivitySink(cfg.Sink),
		logger: safeLogger(cfg.Logger),
	}
}

var _ gocommand.Commander[ProfileEnsureInput] = (*ProfileEnsureCommand)(nil)

// Execute creates the profile when missing and reports what happened.
func (c *ProfileEnsureCommand) Execute(ctx context.Context, input ProfileEnsureInput) error {
	if c.repo == nil {
		return types.ErrMissingProfileRepository
	}
	if err := input.Validate(); err != nil {
		return err
	}

	existing, err := c.repo.GetByIdentity(ctx, input.Identity.ID)
	if err != nil {
		return err
	}
	if existing != nil {
		if input.Result != nil {
			*input.Result = types.SyncResult{Handle: existing.Handle}
		}
		return nil
	}

	profile := types.PlayerProfile{
		IdentityID:  input.Identity.ID,
		Handle:      generatedIdentityPrefix + identityKey(input.Identity.ID),
		DisplayName: defaultDisplayName,
		AvatarURL:   input.Identity.AvatarURL,
		Region:      types.RegionNA,
		Timezone:    DefaultTimezone,
		CurrentRank: types.DefaultRank,
		MainRole:    types.RoleSupport,
	}
	created, err := c.repo.Insert(ctx, profile)
	if err != nil {
		return err
	}

	c.logger.Info("player profile created", "identity_id", created.IdentityID, "handle", created.Handle)
	record := types.ActivityRecord{
		IdentityID: created.IdentityID,
		Verb:       verbProfileCreated,
		Handle:     created.Handle,
		OccurredAt: now(c.clock),
	}
	logActivity(ctx, c.sink, record)
	emitActivityHook(ctx, c.hooks, record)
	emitProfileHook(ctx, c.hooks, types.ProfileEvent{
		IdentityID: created.IdentityID,
		Action:     verbProfileCreated,
		OccurredAt: now(c.clock),
		Profile:    *created,
	})

	if input.Result != nil {
		*input.Result = types.SyncResult{Created: true, Handle: created.Handle}
	}
	return nil
}
