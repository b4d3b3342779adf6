// Package migrations holds the MySQL schema as goose migrations.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
