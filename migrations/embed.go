package migrations

import "embed"

// FS holds the SQL migrations for every supported dialect, one directory each.
//
//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS
