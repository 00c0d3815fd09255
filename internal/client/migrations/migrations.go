// Package migrations embeds the goose migrations of the kiosk journal DB.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
