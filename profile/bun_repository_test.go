package profile

import (
	"context"
	"database/sql"
	"os"
	"strings"
	"testing"

	"github.com/goliatone/go-players/pkg/types"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

func TestRepository_InsertAndGetByIdentity(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	applyDDL(t, db)

	repo, err := NewRepository(RepositoryConfig{DB: db})
	require.NoError(t, err)

	created, err := repo.Insert(ctx, types.PlayerProfile{
		IdentityID:  "user_2abc1234",
		Handle:      "emistar",
		DisplayName: "Emi Star",
		Region:      types.RegionNA,
		CurrentRank: "Unranked",
		MainRole:    types.RoleSupport,
		Platforms:   []types.Platform{types.PlatformPC},
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	require.NotZero(t, created.CreatedAt)
	require.Equal(t, []types.Platform{types.PlatformPC}, created.Platforms)

	fetched, err := repo.GetByIdentity(ctx, "user_2abc1234")
	require.NoError(t, err)
	require.NotNil(t, fetched)
	require.Equal(t, "emistar", fetched.Handle)
	require.Equal(t, types.RegionNA, fetched.Region)
	require.Equal(t, []types.Platform{types.PlatformPC}, fetched.Platforms)

	missing, err := repo.GetByIdentity(ctx, "user_nobody")
	require.NoError(t, err)
	require.Nil(t, missing)
}

func TestRepository_InsertWithoutDBRejectsPlatforms(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	applyDDL(t, db)

	base, err := NewRepository(RepositoryConfig{DB: db})
	require.NoError(t, err)

	repo, err := NewRepository(RepositoryConfig{Repository: base})
	require.NoError(t, err)

	_, err = repo.Insert(ctx, types.PlayerProfile{
		IdentityID:  "user_nodb",
		Handle:      "nodb",
		DisplayName: "No DB",
		Region:      types.RegionNA,
		CurrentRank: "Unranked",
		MainRole:    types.RoleSupport,
		Platforms:   []types.Platform{types.PlatformPC},
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "requires bun DB")
}

func TestRepository_HandleExists(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	applyDDL(t, db)

	repo, err := NewRepository(RepositoryConfig{DB: db})
	require.NoError(t, err)

	_, err = repo.Insert(ctx, types.PlayerProfile{
		IdentityID:  "user_1",
		Handle:      "CoolPlayer",
		DisplayName: "Cool",
		Region:      types.RegionEU,
		CurrentRank: "Diamond",
		MainRole:    types.RoleTank,
	})
	require.NoError(t, err)

	exists, err := repo.HandleExists(ctx, "coolplayer")
	require.NoError(t, err)
	require.True(t, exists)

	exists, err = repo.HandleExists(ctx, "  COOLPLAYER  ")
	require.NoError(t, err)
	require.True(t, exists)

	exists, err = repo.HandleExists(ctx, "someone-else")
	require.NoError(t, err)
	require.False(t, exists)
}

func TestRepository_GetByHandleCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	applyDDL(t, db)

	repo, err := NewRepository(RepositoryConfig{DB: db})
	require.NoError(t, err)

	_, err = repo.Insert(ctx, types.PlayerProfile{
		IdentityID:  "user_1",
		Handle:      "CoolPlayer",
		DisplayName: "Cool",
		Region:      types.RegionNA,
		CurrentRank: "Gold",
		MainRole:    types.RoleDPS,
	})
	require.NoError(t, err)

	fetched, err := repo.GetByHandle(ctx, "coolplayer")
	require.NoError(t, err)
	require.NotNil(t, fetched)
	require.Equal(t, "CoolPlayer", fetched.Handle)

	missing, err := repo.GetByHandle(ctx, "ghost")
	require.NoError(t, err)
	require.Nil(t, missing)
}

func TestRepository_UpdateSyncFieldsLeavesSettingsAlone(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	applyDDL(t, db)

	repo, err := NewRepository(RepositoryConfig{DB: db})
	require.NoError(t, err)

	_, err = repo.Insert(ctx, types.PlayerProfile{
		IdentityID:  "user_1",
		Handle:      "user-ab12cd34",
		DisplayName: "New Player",
		Bio:         "duo seeking flex",
		Region:      types.RegionAPAC,
		CurrentRank: "Masters",
		MainRole:    types.RoleDPS,
		IsLFT:       true,
	})
	require.NoError(t, err)

	updated, err := repo.UpdateSyncFields(ctx, "user_1", types.SyncFields{
		Handle:      "realgamer",
		DisplayName: "Real Gamer",
		AvatarURL:   "https://img.example/avatar.png",
	})
	require.NoError(t, err)
	require.Equal(t, "realgamer", updated.Handle)
	require.Equal(t, "Real Gamer", updated.DisplayName)
	require.Equal(t, "https://img.example/avatar.png", updated.AvatarURL)
	require.Equal(t, "duo seeking flex", updated.Bio)
	require.Equal(t, "Masters", updated.CurrentRank)
	require.True(t, updated.IsLFT)

	_, err = repo.UpdateSyncFields(ctx, "user_unknown", types.SyncFields{Handle: "x"})
	require.ErrorIs(t, err, types.ErrProfileNotFound)
}

func TestRepository_UpdateSettingsReplacesPlatformSet(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	applyDDL(t, db)

	repo, err := NewRepository(RepositoryConfig{DB: db})
	require.NoError(t, err)

	_, err = repo.Insert(ctx, types.PlayerProfile{
		IdentityID:  "user_1",
		Handle:      "emistar",
		DisplayName: "Emi",
		Region:      types.RegionNA,
		CurrentRank: "Unranked",
		MainRole:    types.RoleSupport,
		Platforms:   []types.Platform{types.PlatformPC},
	})
	require.NoError(t, err)

	updated, err := repo.UpdateSettings(ctx, "user_1", types.ProfileSettings{
		Bio:         "flex player",
		Region:      types.RegionEU,
		Timezone:    "Europe/Berlin",
		CurrentRank: "Platinum",
		MainRole:    types.RoleTank,
		IsLFT:       true,
		Platforms:   []types.Platform{types.PlatformConsole},
	})
	require.NoError(t, err)
	require.Equal(t, types.RegionEU, updated.Region)
	require.Equal(t, "Platinum", updated.CurrentRank)
	require.True(t, updated.IsLFT)
	require.Equal(t, []types.Platform{types.PlatformConsole}, updated.Platforms)

	cleared, err := repo.UpdateSettings(ctx, "user_1", types.ProfileSettings{
		Region:      types.RegionEU,
		CurrentRank: "Platinum",
		MainRole:    types.RoleTank,
	})
	require.NoError(t, err)
	require.Empty(t, cleared.Platforms)
}

func TestRepository_ListDirectoryFilters(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	applyDDL(t, db)

	repo, err := NewRepository(RepositoryConfig{DB: db})
	require.NoError(t, err)

	seed := []types.PlayerProfile{
		{IdentityID: "user_1", Handle: "alpha", DisplayName: "A", Region: types.RegionNA, CurrentRank: "Gold", MainRole: types.RoleTank, IsLFT: true},
		{IdentityID: "user_2", Handle: "bravo", DisplayName: "B", Region: types.RegionEU, CurrentRank: "Gold", MainRole: types.RoleDPS, IsLFT: true},
		{IdentityID: "user_3", Handle: "charlie", DisplayName: "C", Region: types.RegionNA, CurrentRank: "Gold", MainRole: types.RoleTank, IsLFT: false},
	}
	for _, p := range seed {
		_, err := repo.Insert(ctx, p)
		require.NoError(t, err)
	}

	page, err := repo.ListDirectory(ctx, types.DirectoryFilter{
		Region:  types.RegionNA,
		LFTOnly: true,
	})
	require.NoError(t, err)
	require.Equal(t, 1, page.Total)
	require.Len(t, page.Profiles, 1)
	require.Equal(t, "alpha", page.Profiles[0].Handle)

	all, err := repo.ListDirectory(ctx, types.DirectoryFilter{})
	require.NoError(t, err)
	require.Equal(t, 3, all.Total)
}

func newTestDB(t *testing.T) *bun.DB {
	sqldb, err := sql.Open("sqlite3", ":memory:?cache=shared")
	require.NoError(t, err)
	sqldb.SetMaxOpenConns(1)
	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() {
		_ = db.Close()
		_ = sqldb.Close()
	})
	return db
}

func applyDDL(t *testing.T, db *bun.DB) {
	content, err := os.ReadFile("../data/sql/migrations/sqlite/00001_player_profiles.up.sql")
	require.NoError(t, err)
	for _, stmt := range splitStatements(string(content)) {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}
}

func splitStatements(sql string) []string {
	lines := strings.Split(sql, "\n")
	var builder strings.Builder
	var statements []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "--") {
			continue
		}
		builder.WriteString(line)
		if strings.HasSuffix(line, ";") {
			statements = append(statements, strings.TrimSuffix(builder.String(), ";"))
			builder.Reset()
		} else {
			builder.WriteString(" ")
		}
	}
	if builder.Len() > 0 {
		statements = append(statements, builder.String())
	}
	return statements
}
