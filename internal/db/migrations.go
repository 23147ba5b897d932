package db

import (
	"database/sql"
	"fmt"
)

// migrations are applied in order after schema creation, each once,
// tracked by PRAGMA user_version. Append new migrations at the end.
var migrations = []string{
	// Migration 1: look up cached assets by age when pruning.
	`CREATE INDEX IF NOT EXISTS idx_assets_fetched_at ON assets(fetched_at)`,
}

// Migrate creates the schema and applies pending migrations.
func Migrate(db *sql.DB) error {
	if err := EnsureSchema(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	var version int
	if err := db.QueryRow(`PRAGMA user_version`).Scan(&version); err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}

	for i := version; i < len(migrations); i++ {
		if _, err := db.Exec(migrations[i]); err != nil {
			return fmt.Errorf("running migration %d: %w", i+1, err)
		}
		if _, err := db.Exec(fmt.Sprintf(`PRAGMA user_version = %d`, i+1)); err != nil {
			return fmt.Errorf("recording migration %d: %w", i+1, err)
		}
	}

	return nil
}
