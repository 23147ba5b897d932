package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/erazemk/artverse/internal/model"
)

// Snapshot scopes.
const (
	ScopeCatalog = "catalog"
	ScopeSeller  = "seller"
)

// Snapshot is the last successfully fetched artwork list of a scope, in
// server order.
type Snapshot struct {
	Scope     string
	FetchedAt time.Time
	Artworks  []model.Artwork
}

// SaveSnapshot replaces the cached list of scope.
func SaveSnapshot(ctx context.Context, db *sql.DB, scope string, artworks []model.Artwork, fetchedAt time.Time) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO snapshots (scope, fetched_at) VALUES (?, ?)
		 ON CONFLICT(scope) DO UPDATE SET fetched_at = excluded.fetched_at`,
		scope, fetchedAt.UTC(),
	); err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM artworks WHERE scope = ?`, scope); err != nil {
		return fmt.Errorf("clearing snapshot: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO artworks (scope, id, position, name, artist, description, artwork_type,
		     medium, style, dimensions, year_created, price, is_sold, filename, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, a := range artworks {
		var year sql.NullInt64
		if a.YearCreated != nil {
			year = sql.NullInt64{Int64: int64(*a.YearCreated), Valid: true}
		}
		var price sql.NullFloat64
		if a.Price != nil {
			price = sql.NullFloat64{Float64: *a.Price, Valid: true}
		}
		var created sql.NullTime
		if a.CreatedAt != nil {
			created = sql.NullTime{Time: a.CreatedAt.UTC(), Valid: true}
		}

		if _, err := stmt.ExecContext(ctx,
			scope, a.ID, i, a.Name, a.Artist, a.Description, a.ArtworkType,
			a.Medium, a.Style, a.Dimensions, year, price, a.IsSold, a.Filename, created,
		); err != nil {
			return fmt.Errorf("caching artwork %d: %w", a.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot returns the cached list of scope, or nil if none was saved.
func LoadSnapshot(ctx context.Context, db *sql.DB, scope string) (*Snapshot, error) {
	snap := &Snapshot{Scope: scope}
	err := db.QueryRowContext(ctx,
		`SELECT fetched_at FROM snapshots WHERE scope = ?`, scope,
	).Scan(&snap.FetchedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting snapshot: %w", err)
	}

	rows, err := db.QueryContext(ctx,
		`SELECT id, name, artist, description, artwork_type, medium, style, dimensions,
		     year_created, price, is_sold, filename, created_at
		 FROM artworks WHERE scope = ? ORDER BY position`, scope,
	)
	if err != nil {
		return nil, fmt.Errorf("listing cached artworks: %w", err)
	}
	defer rows.Close()

	snap.Artworks = []model.Artwork{}
	for rows.Next() {
		var a model.Artwork
		var artist, description, artworkType, medium, style, dimensions, filename sql.NullString
		var year sql.NullInt64
		var price sql.NullFloat64
		var created sql.NullTime
		if err := rows.Scan(&a.ID, &a.Name, &artist, &description, &artworkType, &medium, &style,
			&dimensions, &year, &price, &a.IsSold, &filename, &created); err != nil {
			return nil, fmt.Errorf("scanning cached artwork: %w", err)
		}
		a.Artist = artist.String
		a.Description = description.String
		a.ArtworkType = artworkType.String
		a.Medium = medium.String
		a.Style = style.String
		a.Dimensions = dimensions.String
		a.Filename = filename.String
		if year.Valid {
			y := int(year.Int64)
			a.YearCreated = &y
		}
		if price.Valid {
			p := price.Float64
			a.Price = &p
		}
		if created.Valid {
			a.CreatedAt = &model.Timestamp{Time: created.Time}
		}
		snap.Artworks = append(snap.Artworks, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing cached artworks: %w", err)
	}
	return snap, nil
}

// SnapshotCache binds the snapshot functions to one scope.
type SnapshotCache struct {
	db    *sql.DB
	scope string
}

// NewSnapshotCache returns a cache of scope backed by db.
func NewSnapshotCache(db *sql.DB, scope string) *SnapshotCache {
	return &SnapshotCache{db: db, scope: scope}
}

// Save replaces the cached list with artworks, stamped now.
func (c *SnapshotCache) Save(ctx context.Context, artworks []model.Artwork) error {
	return SaveSnapshot(ctx, c.db, c.scope, artworks, time.Now())
}

// Load returns the cached list, or nil if none.
func (c *SnapshotCache) Load(ctx context.Context) (*Snapshot, error) {
	return LoadSnapshot(ctx, c.db, c.scope)
}
