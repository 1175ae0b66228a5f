package bootstrap

import (
	players "github.com/goliatone/go-players"
	"github.com/goliatone/go-players/migrations"
)

func init() {
	migrations.Register(players.GetAuthBootstrapMigrationsFS())
}
