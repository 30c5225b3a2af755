package database

import "embed"

// EmbeddedMigrations holds the schema files so the deployed binary does not
// depend on files next to it. Use fs.Sub(EmbeddedMigrations, "migrations").
//
//go:embed migrations/*.sql
var EmbeddedMigrations embed.FS
