package command

import (
	"context"
	"testing"

	"github.com/goliatone/go-players/pkg/types"
	"github.com/stretchr/testify/require"
)

func validSettings() types.ProfileSettings {
	return types.ProfileSettings{
		Bio:         "flex player looking for scrims",
		Region:      types.RegionEU,
		Timezone:    "Europe/Berlin",
		CurrentRank: "Platinum",
		MainRole:    types.RoleTank,
		IsLFT:       true,
		Platforms:   []types.Platform{types.PlatformPC, types.PlatformConsole},
	}
}

func seedProfile(repo *fakeProfileRepo) {
	repo.profiles["user_1"] = &types.PlayerProfile{
		IdentityID:  "user_1",
		Handle:      "emistar",
		CurrentRank: "Unranked",
		Region:      types.RegionNA,
		MainRole:    types.RoleSupport,
	}
}

func TestProfileUpdateCommand_PersistsSettings(t *testing.T) {
	repo := newFakeProfileRepo()
	seedProfile(repo)
	sink := &recordingActivitySink{}
	cmd := NewProfileUpdateCommand(UpdateCommandConfig{Repository: repo, Sink: sink})

	result := &types.PlayerProfile{}
	err := cmd.Execute(context.Background(), ProfileUpdateInput{
		IdentityID: "user_1",
		Settings:   validSettings(),
		Result:     result,
	})

	require.NoError(t, err)
	require.True(t, repo.settingsCalled)
	require.Equal(t, "Platinum", result.CurrentRank)
	require.Equal(t, types.RegionEU, result.Region)
	require.Equal(t, []types.Platform{types.PlatformPC, types.PlatformConsole}, result.Platforms)
	require.Len(t, sink.records, 1)
	require.Equal(t, verbSettingsUpdated, sink.records[0].Verb)
	require.Equal(t, "emistar", sink.records[0].Handle)
}

func TestProfileUpdateCommand_EmptyRankDefaultsToUnranked(t *testing.T) {
	repo := newFakeProfileRepo()
	seedProfile(repo)
	cmd := NewProfileUpdateCommand(UpdateCommandConfig{Repository: repo})

	settings := validSettings()
	settings.CurrentRank = ""
	err := cmd.Execute(context.Background(), ProfileUpdateInput{
		IdentityID: "user_1",
		Settings:   settings,
	})

	require.NoError(t, err)
	require.Equal(t, "Unranked", repo.lastSettings.CurrentRank)
}

func TestProfileUpdateCommand_WhitespaceRankRejected(t *testing.T) {
	repo := newFakeProfileRepo()
	seedProfile(repo)
	cmd := NewProfileUpdateCommand(UpdateCommandConfig{Repository: repo})

	settings := validSettings()
	settings.CurrentRank = "   "
	err := cmd.Execute(context.Background(), ProfileUpdateInput{
		IdentityID: "user_1",
		Settings:   settings,
	})

	require.ErrorIs(t, err, ErrRankRequired)
	require.False(t, repo.settingsCalled)
}

func TestProfileUpdateCommand_EmptyRankRejectedByPolicy(t *testing.T) {
	repo := newFakeProfileRepo()
	seedProfile(repo)
	cmd := NewProfileUpdateCommand(UpdateCommandConfig{
		Repository: repo,
		Policy:     SettingsPolicy{RejectEmptyRank: true},
	})

	settings := validSettings()
	settings.CurrentRank = ""
	err := cmd.Execute(context.Background(), ProfileUpdateInput{
		IdentityID: "user_1",
		Settings:   settings,
	})

	require.ErrorIs(t, err, ErrRankRequired)
	require.False(t, repo.settingsCalled)
}

func TestProfileUpdateCommand_RankIsTrimmed(t *testing.T) {
	repo := newFakeProfileRepo()
	seedProfile(repo)
	cmd := NewProfileUpdateCommand(UpdateCommandConfig{Repository: repo})

	settings := validSettings()
	settings.CurrentRank = "  Diamond  "
	err := cmd.Execute(context.Background(), ProfileUpdateInput{
		IdentityID: "user_1",
		Settings:   settings,
	})

	require.NoError(t, err)
	require.Equal(t, "Diamond", repo.lastSettings.CurrentRank)
}

func TestProfileUpdateCommand_ValidatesEnums(t *testing.T) {
	repo := newFakeProfileRepo()
	seedProfile(repo)
	cmd := NewProfileUpdateCommand(UpdateCommandConfig{Repository: repo})

	settings := validSettings()
	settings.Region = "LATAM"
	err := cmd.Execute(context.Background(), ProfileUpdateInput{
		IdentityID: "user_1",
		Settings:   settings,
	})
	require.ErrorIs(t, err, types.ErrInvalidRegion)

	settings = validSettings()
	settings.MainRole = "Coach"
	err = cmd.Execute(context.Background(), ProfileUpdateInput{
		IdentityID: "user_1",
		Settings:   settings,
	})
	require.ErrorIs(t, err, types.ErrInvalidRole)

	settings = validSettings()
	settings.Platforms = []types.Platform{"Mobile"}
	err = cmd.Execute(context.Background(), ProfileUpdateInput{
		IdentityID: "user_1",
		Settings:   settings,
	})
	require.ErrorIs(t, err, types.ErrInvalidPlatform)
	require.False(t, repo.settingsCalled)
}

func TestProfileUpdateCommand_RequiresIdentity(t *testing.T) {
	cmd := NewProfileUpdateCommand(UpdateCommandConfig{Repository: newFakeProfileRepo()})

	err := cmd.Execute(context.Background(), ProfileUpdateInput{Settings: validSettings()})
	require.ErrorIs(t, err, ErrIdentityRequired)
}

func TestProfileUpdateCommand_MissingProfileSurfacesNotFound(t *testing.T) {
	cmd := NewProfileUpdateCommand(UpdateCommandConfig{Repository: newFakeProfileRepo()})

	err := cmd.Execute(context.Background(), ProfileUpdateInput{
		IdentityID: "user_ghost",
		Settings:   validSettings(),
	})
	require.ErrorIs(t, err, types.ErrProfileNotFound)
}
