package service

import (
	"context"

	featuregate "github.com/goliatone/go-featuregate/gate"
	"github.com/goliatone/go-players/command"
	"github.com/goliatone/go-players/handle"
	"github.com/goliatone/go-players/pkg/types"
	"github.com/goliatone/go-players/query"
)

// Service is the entry point for go-players. It wires the profile store,
// feature gate, hooks, and the command/query facades supplied by the host
// application.
type Service struct {
	cfg          Config
	commands     Commands
	queries      Queries
	profileRepo  types.ProfileRepository
	activityRepo types.ActivityRepository
	resolver     *handle.Resolver
}

// Commands exposes the service command handlers.
type Commands struct {
	EnsureProfile  *command.ProfileEnsureCommand
	SyncProfile    *command.ProfileSyncCommand
	UpdateSettings *command.ProfileUpdateCommand
}

// Queries exposes read-model helpers.
type Queries struct {
	ProfileDetail   *query.ProfileQuery
	ProfileByHandle *query.HandleQuery
	Directory       *query.DirectoryQuery
}

// Config captures all required dependencies so callers can provide their own
// instances (bun.DB repositories, gates, hooks, etc.).
type Config struct {
	ProfileRepository  types.ProfileRepository
	ActivityRepository types.ActivityRepository
	ActivitySink       types.ActivitySink
	FeatureGate        featuregate.FeatureGate
	Hooks              types.Hooks
	Clock              types.Clock
	IDGenerator        types.IDGenerator
	Logger             types.Logger
	SettingsPolicy     command.SettingsPolicy
}

// New constructs a Service from the supplied configuration.
func New(cfg Config) (*Service, error) {
	norm := normalizeConfig(cfg)
	actRepo := norm.ActivityRepository
	if actRepo == nil {
		if sinkRepo, ok := norm.ActivitySink.(types.ActivityRepository); ok {
			actRepo = sinkRepo
		}
	}

	var resolver *handle.Resolver
	if norm.ProfileRepository != nil {
		built, err := handle.NewResolver(handle.ResolverConfig{Checker: norm.ProfileRepository})
		if err != nil {
			return nil, err
		}
		resolver = built
	}

	s := &Service{
		cfg:          norm,
		profileRepo:  norm.ProfileRepository,
		activityRepo: actRepo,
		resolver:     resolver,
	}
	commands, err := s.buildCommands()
	if err != nil {
		return nil, err
	}
	s.commands = commands
	s.queries = s.buildQueries()
	return s, nil
}

func normalizeConfig(cfg Config) Config {
	if cfg.Clock == nil {
		cfg.Clock = types.SystemClock{}
	}
	if cfg.IDGenerator == nil {
		cfg.IDGenerator = types.UUIDGenerator{}
	}
	if cfg.Logger == nil {
		cfg.Logger = types.NopLogger{}
	}
	if cfg.ActivitySink == nil && cfg.ActivityRepository != nil {
		cfg.ActivitySink = cfg.ActivityRepository
	}
	return cfg
}

// Commands returns the command facade.
func (s *Service) Commands() Commands {
	return s.commands
}

// Queries returns the query facade.
func (s *Service) Queries() Queries {
	return s.queries
}

// FirstTouch is the canonical entry point for a freshly observed identity.
// The hinted synchronizer is the default first-touch policy; hosts that want
// the deterministic ensure path instead call Commands().EnsureProfile.
func (s *Service) FirstTouch(ctx context.Context, identity types.Identity) (types.SyncResult, error) {
	if s == nil || s.commands.SyncProfile == nil {
		return types.SyncResult{}, types.ErrServiceNotReady
	}
	result := &types.SyncResult{}
	err := s.commands.SyncProfile.Execute(ctx, command.ProfileSyncInput{
		Identity: identity,
		Result:   result,
	})
	if err != nil {
		return types.SyncResult{}, err
	}
	return *result, nil
}

// Ready reports whether the service has the required dependencies wired in.
func (s *Service) Ready() bool {
	return s != nil &&
		s.profileRepo != nil &&
		s.resolver != nil &&
		s.commands.SyncProfile != nil
}

// HealthCheck surfaces missing configuration to upstream transports.
func (s *Service) HealthCheck(ctx context.Context) error {
	if !s.Ready() {
		return types.ErrServiceNotReady
	}
	if s.profileRepo == nil {
		return types.ErrMissingProfileRepository
	}
	return nil
}

// ActivitySink returns the configured sink so transports can emit activity
// records for auxiliary workflows (e.g. CRUD controllers).
func (s *Service) ActivitySink() types.ActivitySink {
	if s == nil {
		return nil
	}
	return s.cfg.ActivitySink
}

func (s *Service) buildCommands() (Commands, error) {
	sync, err := command.NewProfileSyncCommand(command.SyncCommandConfig{
		Repository: s.cfg.ProfileRepository,
		Resolver:   s.resolver,
		Gate:       s.cfg.FeatureGate,
		Hooks:      s.cfg.Hooks,
		Clock:      s.cfg.Clock,
		Sink:       s.cfg.ActivitySink,
		Logger:     s.cfg.Logger,
	})
	if err != nil {
		return Commands{}, err
	}
	return Commands{
		EnsureProfile: command.NewProfileEnsureCommand(command.EnsureCommandConfig{
			Repository: s.cfg.ProfileRepository,
			Hooks:      s.cfg.Hooks,
			Clock:      s.cfg.Clock,
			Sink:       s.cfg.ActivitySink,
			Logger:     s.cfg.Logger,
		}),
		SyncProfile: sync,
		UpdateSettings: command.NewProfileUpdateCommand(command.UpdateCommandConfig{
			Repository: s.cfg.ProfileRepository,
			Policy:     s.cfg.SettingsPolicy,
			Hooks:      s.cfg.Hooks,
			Clock:      s.cfg.Clock,
			Sink:       s.cfg.ActivitySink,
			Logger:     s.cfg.Logger,
		}),
	}, nil
}

func (s *Service) buildQueries() Queries {
	return Queries{
		ProfileDetail:   query.NewProfileQuery(s.profileRepo),
		ProfileByHandle: query.NewHandleQuery(s.profileRepo),
		Directory:       query.NewDirectoryQuery(s.profileRepo),
	}
}
