package players

import "embed"

// migrationsFS contains SQL migrations for both PostgreSQL and SQLite.
//
// The migrations are organized in a dialect-aware structure:
//   - Root files (data/sql/migrations/*.sql) contain PostgreSQL migrations
//   - SQLite overrides are in data/sql/migrations/sqlite/*.sql
//
// The go-persistence-bun loader will automatically select the correct
// migrations based on the database dialect being used.
//
//go:embed data/sql/migrations/*.sql data/sql/migrations/sqlite/*.sql
var migrationsFS embed.FS

// authBootstrapFS contains the minimum auth tables (users, password resets)
// needed to run the web example without a separately provisioned identity
// store.
//
//go:embed data/sql/migrations/auth
var authBootstrapFS embed.FS

// GetMigrationsFS exposes the SQL migration files so host applications can
// register them with go-persistence-bun (or another migration runner).
func GetMigrationsFS() embed.FS {
	return migrationsFS
}

// GetAuthBootstrapMigrationsFS exposes the auth bootstrap tables. Hosts that
// already run go-auth migrations should not register these.
func GetAuthBootstrapMigrationsFS() embed.FS {
	return authBootstrapFS
}
