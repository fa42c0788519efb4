// AngelaMos | 2026
// migrations.go

// Package migrations embeds the goose SQL migrations applied at startup
// when the postgres storage driver is selected.
package migrations

import (
	"embed"
)

//go:embed *.sql
var FS embed.FS
