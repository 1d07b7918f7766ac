// Package migrations embeds the sqlite schema applied by golang-migrate.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
