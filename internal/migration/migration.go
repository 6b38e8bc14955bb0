package migration

import _ "embed"

// Create is idempotent and safe to run against an existing database.
//
//go:embed create-tables.sql
var Create string
