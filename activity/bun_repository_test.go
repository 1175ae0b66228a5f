package activity

import (
	"context"
	"database/sql"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-players/pkg/types"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

func TestRepository_LogAndList(t *testing.T) {
	ctx := context.Background()
	db := newTestActivityDB(t)
	applyActivityDDL(t, db)

	store, err := NewRepository(RepositoryConfig{DB: db})
	require.NoError(t, err)

	record := types.ActivityRecord{
		IdentityID: "user_1",
		Verb:       "profile.created",
		Handle:     "emistar",
		Data: map[string]any{
			"source": "webhook",
		},
	}
	require.NoError(t, store.Log(ctx, record))

	page, err := store.ListActivity(ctx, types.ActivityFilter{
		Verbs:      []string{"profile.created"},
		Pagination: types.Pagination{Limit: 10},
	})
	require.NoError(t, err)
	require.Len(t, page.Records, 1)
	require.Equal(t, "profile.created", page.Records[0].Verb)
	require.Equal(t, "emistar", page.Records[0].Handle)
	require.Equal(t, "webhook", page.Records[0].Data["source"])
	require.NotZero(t, page.Records[0].ID)
	require.False(t, page.Records[0].OccurredAt.IsZero())
}

func TestRepository_ListFiltersByIdentity(t *testing.T) {
	ctx := context.Background()
	db := newTestActivityDB(t)
	applyActivityDDL(t, db)
	store, err := NewRepository(RepositoryConfig{DB: db})
	require.NoError(t, err)

	for _, identity := range []string{"user_1", "user_1", "user_2"} {
		require.NoError(t, store.Log(ctx, types.ActivityRecord{
			IdentityID: identity,
			Verb:       "profile.settings_updated",
		}))
	}

	page, err := store.ListActivity(ctx, types.ActivityFilter{IdentityID: "user_1"})
	require.NoError(t, err)
	require.Equal(t, 2, page.Total)
	for _, record := range page.Records {
		require.Equal(t, "user_1", record.IdentityID)
	}
}

func TestRepository_ListOrdersNewestFirst(t *testing.T) {
	ctx := context.Background()
	db := newTestActivityDB(t)
	applyActivityDDL(t, db)

	clock := &stepClock{at: time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)}
	store, err := NewRepository(RepositoryConfig{DB: db, Clock: clock})
	require.NoError(t, err)

	for _, verb := range []string{"profile.created", "profile.synced"} {
		require.NoError(t, store.Log(ctx, types.ActivityRecord{
			IdentityID: "user_1",
			Verb:       verb,
		}))
	}

	page, err := store.ListActivity(ctx, types.ActivityFilter{IdentityID: "user_1"})
	require.NoError(t, err)
	require.Len(t, page.Records, 2)
	require.Equal(t, "profile.synced", page.Records[0].Verb)
	require.Equal(t, "profile.created", page.Records[1].Verb)
}

type stepClock struct {
	at time.Time
}

func (c *stepClock) Now() time.Time {
	c.at = c.at.Add(time.Minute)
	return c.at
}

func newTestActivityDB(t *testing.T) *bun.DB {
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

func applyActivityDDL(t *testing.T, db *bun.DB) {
	content, err := os.ReadFile("../data/sql/migrations/sqlite/00002_player_activity.up.sql")
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
