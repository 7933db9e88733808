// Package migrations holds the catalog database schema, compiled into the
// gateway binary.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
