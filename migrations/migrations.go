// Package migrations embeds the schema migration files for both supported
// backends. internal/migration.Runner reads NNN_name.sql files out of the
// sqlite/ or postgres/ subtree depending on which store is in use.
package migrations

import "embed"

//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS
