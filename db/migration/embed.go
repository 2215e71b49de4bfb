// Package migration embeds the SQL schema migrations applied at startup.
package migration

import "embed"

//go:embed *.sql
var FS embed.FS
