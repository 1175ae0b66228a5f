package activity

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// LogEntry models the persisted row in player_activity.
type LogEntry struct {
	bun.BaseModel `bun:"table:player_activity"`

	ID         uuid.UUID      `bun:",pk,type:uuid"`
	IdentityID string         `bun:"identity_id"`
	Verb       string         `bun:"verb"`
	Handle     string         `bun:"handle"`
	Data       map[string]any `bun:"data,type:jsonb"`
	OccurredAt time.Time      `bun:"occurred_at"`
}
