package migrations

import (
	"io/fs"

	players "github.com/goliatone/go-players"
)

func init() {
	coreFS, err := fs.Sub(players.GetMigrationsFS(), "data/sql/migrations")
	if err != nil {
		return
	}
	Register(coreFS)
}
