// Package migrations содержит SQL-миграции схемы витрины (goose).
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
