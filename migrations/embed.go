// Package migrations embeds the base-table SQL applied by golang-migrate.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
