package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Asset is a downloaded 3D model kept for reuse.
type Asset struct {
	ArtworkID int64
	Data      []byte
	MIME      string
	FetchedAt time.Time
}

// PutAsset stores or replaces the cached asset of an artwork.
func PutAsset(ctx context.Context, db *sql.DB, artworkID int64, data []byte, mime string) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO assets (artwork_id, data, mime, fetched_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(artwork_id) DO UPDATE SET data = excluded.data, mime = excluded.mime,
		     fetched_at = excluded.fetched_at`,
		artworkID, data, mime, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("caching asset: %w", err)
	}
	return nil
}

// GetAsset returns the cached asset of an artwork, or nil if none.
func GetAsset(ctx context.Context, db *sql.DB, artworkID int64) (*Asset, error) {
	a := &Asset{ArtworkID: artworkID}
	err := db.QueryRowContext(ctx,
		`SELECT data, mime, fetched_at FROM assets WHERE artwork_id = ?`, artworkID,
	).Scan(&a.Data, &a.MIME, &a.FetchedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting cached asset: %w", err)
	}
	return a, nil
}

// DeleteAsset drops the cached asset of an artwork.
func DeleteAsset(ctx context.Context, db *sql.DB, artworkID int64) error {
	if _, err := db.ExecContext(ctx, `DELETE FROM assets WHERE artwork_id = ?`, artworkID); err != nil {
		return fmt.Errorf("deleting cached asset: %w", err)
	}
	return nil
}

// PruneAssets drops assets fetched before cutoff and returns how many
// were removed.
func PruneAssets(ctx context.Context, db *sql.DB, cutoff time.Time) (int64, error) {
	res, err := db.ExecContext(ctx, `DELETE FROM assets WHERE fetched_at < ?`, cutoff.UTC())
	if err != nil {
		return 0, fmt.Errorf("pruning assets: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting pruned assets: %w", err)
	}
	return n, nil
}
