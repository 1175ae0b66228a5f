package profile

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Record models the player_profiles row.
type Record struct {
	bun.BaseModel `bun:"table:player_profiles"`

	ID          uuid.UUID `bun:"id,pk,type:uuid"`
	IdentityID  string    `bun:"identity_id"`
	Handle      string    `bun:"handle"`
	DisplayName string    `bun:"display_name"`
	AvatarURL   string    `bun:"avatar_url"`
	Bio         string    `bun:"bio"`
	Region      string    `bun:"region"`
	Timezone    string    `bun:"timezone"`
	CurrentRank string    `bun:"current_rank"`
	MainRole    string    `bun:"main_role"`
	IsLFT       bool      `bun:"is_lft"`
	CreatedAt   time.Time `bun:"created_at"`
	UpdatedAt   time.Time `bun:"updated_at"`
}

// PlatformRecord models the player_profile_platforms child row. The platform
// set carries no ordering guarantee and is replaced wholesale on update.
type PlatformRecord struct {
	bun.BaseModel `bun:"table:player_profile_platforms"`

	ID        uuid.UUID `bun:"id,pk,type:uuid"`
	ProfileID uuid.UUID `bun:"profile_id,type:uuid"`
	Platform  string    `bun:"platform"`
}
