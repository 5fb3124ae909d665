package migrations

import "embed"

// FS holds all migration SQL files, embedded so the server
// runs as a standalone binary without a migrations directory on disk.
//
//go:embed *.sql
var FS embed.FS
