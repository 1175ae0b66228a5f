package players

import "github.com/goliatone/go-players/service"

// Re-export the service package entry point so consumers can do `players.New(...)`
// without importing internal wiring helpers.
type (
	Service  = service.Service
	Config   = service.Config
	Commands = service.Commands
	Queries  = service.Queries
)

// New constructs the go-players runtime using the provided configuration.
func New(cfg Config) (*Service, error) {
	return service.New(cfg)
}
