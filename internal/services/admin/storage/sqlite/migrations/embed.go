// Package migrations embeds the admin SQLite schema.
package migrations

import "embed"

// FS holds the migration files in apply order.
//
//go:embed *.sql
var FS embed.FS
