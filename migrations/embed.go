// Package migrations embeds the SQL migration files shipped with snapcart.
package migrations

import "embed"

//go:embed *.sql
var Files embed.FS
