package types

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Region is the competitive region a player queues from.
type Region string

const (
	RegionNA   Region = "NA"
	RegionEU   Region = "EU"
	RegionAPAC Region = "APAC"
)

// Valid reports whether the region is one of the known values.
func (r Region) Valid() bool {
	switch r {
	case RegionNA, RegionEU, RegionAPAC:
		return true
	}
	return false
}

// ParseRegion normalizes free-form input into a Region.
func ParseRegion(raw string) (Region, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case string(RegionNA):
		return RegionNA, nil
	case string(RegionEU):
		return RegionEU, nil
	case string(RegionAPAC):
		return RegionAPAC, nil
	}
	return "", ErrInvalidRegion
}

// Role is the player's main in-game role.
type Role string

const (
	RoleTank    Role = "Tank"
	RoleDPS     Role = "DPS"
	RoleSupport Role = "Support"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	switch r {
	case RoleTank, RoleDPS, RoleSupport:
		return true
	}
	return false
}

// ParseRole normalizes free-form input into a Role.
func ParseRole(raw string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "tank":
		return RoleTank, nil
	case "dps":
		return RoleDPS, nil
	case "support":
		return RoleSupport, nil
	}
	return "", ErrInvalidRole
}

// DefaultRank is assigned when no rank has been reported yet.
const DefaultRank = "Unranked"

// Platform identifies where a player plays.
type Platform string

const (
	PlatformPC      Platform = "PC"
	PlatformConsole Platform = "Console"
)

// Valid reports whether the platform is one of the known values.
func (p Platform) Valid() bool {
	switch p {
	case PlatformPC, PlatformConsole:
		return true
	}
	return false
}

// ParsePlatform normalizes free-form input into a Platform.
func ParsePlatform(raw string) (Platform, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "pc":
		return PlatformPC, nil
	case "console":
		return PlatformConsole, nil
	}
	return "", ErrInvalidPlatform
}

// Identity carries the external-provider principal for a signed-in user plus
// the optional profile hints the provider exposes. The ID is the provider's
// stable subject (e.g. "user_2abc..."), never an internal row id.
type Identity struct {
	ID        string
	Username  string
	Email     string
	FirstName string
	LastName  string
	AvatarURL string
}

// PlayerProfile is the full profile row plus its platform set.
type PlayerProfile struct {
	ID          uuid.UUID
	IdentityID  string
	Handle      string
	DisplayName string
	AvatarURL   string
	Bio         string
	Region      Region
	Timezone    string
	CurrentRank string
	MainRole    Role
	IsLFT       bool
	Platforms   []Platform
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProfileSettings is the owner-editable slice of a profile. The platform set
// is replaced wholesale on every update, never patched incrementally.
type ProfileSettings struct {
	Bio         string
	Region      Region
	Timezone    string
	CurrentRank string
	MainRole    Role
	IsLFT       bool
	Platforms   []Platform
}

// SyncFields are the identity-provider-owned fields the synchronizer may
// overwrite when the current handle still looks machine-assigned.
type SyncFields struct {
	Handle      string
	DisplayName string
	AvatarURL   string
}

// SyncResult reports what the first-touch handlers did.
type SyncResult struct {
	Created bool
	Synced  bool
	Handle  string
}

// DirectoryFilter narrows player directory listings.
type DirectoryFilter struct {
	Region     Region
	Role       Role
	LFTOnly    bool
	Pagination Pagination
}

// DirectoryPage is a paginated directory listing.
type DirectoryPage struct {
	Profiles   []PlayerProfile
	Total      int
	NextOffset int
	HasMore    bool
}

// Pagination supports query pagination across directory panels.
type Pagination struct {
	Limit  int
	Offset int
}

// ProfileRepository is the two-table persistence surface the commands and
// queries run against. GetByIdentity and GetByHandle return (nil, nil) when
// no row matches so callers can distinguish absence from store failure.
type ProfileRepository interface {
	HandleChecker
	GetByIdentity(ctx context.Context, identityID string) (*PlayerProfile, error)
	GetByHandle(ctx context.Context, handle string) (*PlayerProfile, error)
	Insert(ctx context.Context, profile PlayerProfile) (*PlayerProfile, error)
	UpdateSyncFields(ctx context.Context, identityID string, fields SyncFields) (*PlayerProfile, error)
	UpdateSettings(ctx context.Context, identityID string, settings ProfileSettings) (*PlayerProfile, error)
	ListDirectory(ctx context.Context, filter DirectoryFilter) (DirectoryPage, error)
}

// HandleChecker is the minimal capability the unique-handle resolver needs.
type HandleChecker interface {
	HandleExists(ctx context.Context, handle string) (bool, error)
}

// ProfileEvent signals that a profile mutation occurred.
type ProfileEvent struct {
	IdentityID string
	Action     string
	OccurredAt time.Time
	Profile    PlayerProfile
}

// Hooks groups optional callbacks invoked after key workflows complete.
type Hooks struct {
	AfterProfileChange func(context.Context, ProfileEvent)
	AfterActivity      func(context.Context, ActivityRecord)
}

// ActivityRecord describes audit sink inputs shared across sink and query layers.
type ActivityRecord struct {
	ID         uuid.UUID
	IdentityID string
	Verb       string
	Handle     string
	Data       map[string]any
	OccurredAt time.Time
}

// ActivitySink is the minimal DI contract for emitting audit records. Keep it
// stable and limited to Log so hosts can swap sinks without breaking changes.
type ActivitySink interface {
	Log(ctx context.Context, record ActivityRecord) error
}

// ActivityFilter narrows activity feed listings.
type ActivityFilter struct {
	IdentityID string
	Verbs      []string
	Since      *time.Time
	Until      *time.Time
	Pagination Pagination
}

// ActivityPage is a paginated slice of the activity feed.
type ActivityPage struct {
	Records    []ActivityRecord
	Total      int
	NextOffset int
	HasMore    bool
}

// ActivityRepository extends the sink with feed queries.
type ActivityRepository interface {
	ActivitySink
	ListActivity(ctx context.Context, filter ActivityFilter) (ActivityPage, error)
}

// Clock abstracts time retrieval for deterministic testing.
type Clock interface {
	Now() time.Time
}

// IDGenerator abstracts UUID creation.
type IDGenerator interface {
	UUID() uuid.UUID
}

// Logger captures basic logging hooks used by the service.
type Logger interface {
	Debug(msg string, fields ...any)
	Info(msg string, fields ...any)
	Error(msg string, err error, fields ...any)
}

// SystemClock defers to time.Now for production usage.
type SystemClock struct{}

// Now returns the current UTC time.
func (SystemClock) Now() time.Time { return time.Now().UTC() }

// UUIDGenerator produces UUIDv4 identifiers.
type UUIDGenerator struct{}

// UUID returns a randomly generated UUID.
func (UUIDGenerator) UUID() uuid.UUID { return uuid.New() }

// NopLogger discards all log lines.
type NopLogger struct{}

// Debug implements Logger.
func (NopLogger) Debug(string, ...any) {}

// Info implements Logger.
func (NopLogger) Info(string, ...any) {}

// Error implements Logger.
func (NopLogger) Error(string, error, ...any) {}

var (
	// ErrIdentityRequired indicates no caller identity was supplied.
	ErrIdentityRequired = errors.New("go-players: identity required")
	// ErrHandleRequired indicates a handle lookup was issued without a handle.
	ErrHandleRequired = errors.New("go-players: handle required")
	// ErrRankRequired indicates the submitted rank resolved empty after trimming.
	ErrRankRequired = errors.New("go-players: current rank required")
	// ErrProfileNotFound indicates no profile row matched the lookup.
	ErrProfileNotFound = errors.New("go-players: profile not found")
	// ErrInvalidRegion indicates the region value is outside the enumeration.
	ErrInvalidRegion = errors.New("go-players: invalid region")
	// ErrInvalidRole indicates the role value is outside the enumeration.
	ErrInvalidRole = errors.New("go-players: invalid role")
	// ErrInvalidPlatform indicates the platform value is outside the enumeration.
	ErrInvalidPlatform = errors.New("go-players: invalid platform")
	// ErrMissingProfileRepository occurs when commands lack a storage backend.
	ErrMissingProfileRepository = errors.New("go-players: missing profile repository")
	// ErrServiceNotReady indicates the service has not been properly configured.
	ErrServiceNotReady = errors.New("go-players: service not ready")
)
