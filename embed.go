package mytutor

import "embed"

// MigrationsFS carries the SQL migrations so binaries can apply them on boot
// without shipping loose files alongside the executable.
//
//go:embed migrations
var MigrationsFS embed.FS
