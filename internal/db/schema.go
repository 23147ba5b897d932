package db

import (
	"database/sql"
	"fmt"
)

// schema is the local cache schema. Nothing here is authoritative: the
// server owns every artwork, and the cache only backs offline display,
// the saved session and downloaded 3D assets.
const schema = `
CREATE TABLE IF NOT EXISTS snapshots (
    scope      TEXT PRIMARY KEY CHECK (scope IN ('catalog', 'seller')),
    fetched_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS artworks (
    scope        TEXT NOT NULL REFERENCES snapshots(scope) ON DELETE CASCADE,
    id           INTEGER NOT NULL,
    position     INTEGER NOT NULL,
    name         TEXT NOT NULL,
    artist       TEXT,
    description  TEXT,
    artwork_type TEXT,
    medium       TEXT,
    style        TEXT,
    dimensions   TEXT,
    year_created INTEGER,
    price        REAL CHECK (price IS NULL OR price >= 0),
    is_sold      INTEGER NOT NULL DEFAULT 0,
    filename     TEXT,
    created_at   DATETIME,
    PRIMARY KEY (scope, id)
);

CREATE INDEX IF NOT EXISTS idx_artworks_position ON artworks(scope, position);

CREATE TABLE IF NOT EXISTS assets (
    artwork_id INTEGER PRIMARY KEY,
    data       BLOB NOT NULL,
    mime       TEXT NOT NULL,
    fetched_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS settings (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`

// EnsureSchema creates all tables and indexes if they don't already exist.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
