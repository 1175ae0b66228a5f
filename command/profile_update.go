package command

import (
	"context"
	"strings"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-players/pkg/types"
)

const verbSettingsUpdated = "profile.settings_updated"

// SettingsPolicy controls validation behavior for owner-submitted settings.
// The rank field arrives as free text; a submission that trims to nothing is
// rejected, while an omitted rank falls back to the Unranked default unless
// RejectEmptyRank demands an explicit value.
type SettingsPolicy struct {
	RejectEmptyRank bool
}

// UpdateCommandConfig wires dependencies for the settings update command.
type UpdateCommandConfig struct {
	Repository types.ProfileRepository
	Policy     SettingsPolicy
	Hooks      types.Hooks
	Clock      types.Clock
	Sink       types.ActivitySink
	Logger     types.Logger
}

// ProfileUpdateInput captures an owner-submitted settings update.
type ProfileUpdateInput struct {
	IdentityID string
	Settings   types.ProfileSettings
	Result     *types.PlayerProfile
}

// Type implements gocommand.Message.
func (ProfileUpdateInput) Type() string {
	return "command.profile.update"
}

// Validate implements gocommand.Message.
func (input ProfileUpdateInput) Validate() error {
	if input.IdentityID == "" {
		return ErrIdentityRequired
	}
	return nil
}

// ProfileUpdateCommand applies the owner-editable settings slice, replacing
// the platform set wholesale.
type ProfileUpdateCommand struct {
	repo   types.ProfileRepository
	policy SettingsPolicy
	hooks  types.Hooks
	clock  types.Clock
	sink   types.ActivitySink
	logger types.Logger
}

// NewProfileUpdateCommand constructs the settings update handler.
func NewProfileUpdateCommand(cfg UpdateCommandConfig) *ProfileUpdateCommand {
	return &ProfileUpdateCommand{
		repo:   cfg.Repository,
		policy: cfg.Policy,
		hooks:  safeHooks(cfg.Hooks),
		clock:  safeClock(cfg.Clock),
		sink:   safeActivitySink(cfg.Sink),
		logger: safeLogger(cfg.Logger),
	}
}

var _ gocommand.Commander[ProfileUpdateInput] = (*ProfileUpdateCommand)(nil)

// Execute validates and persists the submitted settings.
func (c *ProfileUpdateCommand) Execute(ctx context.Context, input ProfileUpdateInput) error {
	if c.repo == nil {
		return types.ErrMissingProfileRepository
	}
	if err := input.Validate(); err != nil {
		return err
	}

	settings := input.Settings
	trimmed := strings.TrimSpace(settings.CurrentRank)
	if trimmed == "" {
		// A submitted rank that trims to nothing is always rejected. Only a
		// field left empty falls back to the default, and the policy can
		// tighten that to a rejection as well.
		if settings.CurrentRank != "" || c.policy.RejectEmptyRank {
			return ErrRankRequired
		}
		trimmed = types.DefaultRank
	}
	settings.CurrentRank = trimmed
	if !settings.Region.Valid() {
		return types.ErrInvalidRegion
	}
	if !settings.MainRole.Valid() {
		return types.ErrInvalidRole
	}
	for _, platform := range settings.Platforms {
		if !platform.Valid() {
			return types.ErrInvalidPlatform
		}
	}

	updated, err := c.repo.UpdateSettings(ctx, input.IdentityID, settings)
	if err != nil {
		return err
	}

	c.logger.Debug("player settings updated", "identity_id", updated.IdentityID, "handle", updated.Handle)
	record := types.ActivityRecord{
		IdentityID: updated.IdentityID,
		Verb:       verbSettingsUpdated,
		Handle:     updated.Handle,
		OccurredAt: now(c.clock),
	}
	logActivity(ctx, c.sink, record)
	emitActivityHook(ctx, c.hooks, record)
	emitProfileHook(ctx, c.hooks, types.ProfileEvent{
		IdentityID: updated.IdentityID,
		Action:     verbSettingsUpdated,
		OccurredAt: now(c.clock),
		Profile:    *updated,
	})

	if input.Result != nil {
		*input.Result = *updated
	}
	return nil
}
