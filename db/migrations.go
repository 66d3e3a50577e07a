// Package db holds the SQL schema shipped with the service.
package db

import "embed"

//go:embed migrations/*.up.sql
var Migrations embed.FS
