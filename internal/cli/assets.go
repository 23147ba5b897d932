package cli

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/erazemk/artverse/internal/ar"
	"github.com/erazemk/artverse/internal/store"
)

const glbMIME = "model/gltf-binary"

// cachedAssets serves 3D models from the local cache and falls back to
// the server. Cache failures only cost a download.
type cachedAssets struct {
	remote ar.AssetLoader
	db     *sql.DB
	log    *slog.Logger
}

func (c *cachedAssets) LoadAsset(ctx context.Context, id int64) ([]byte, error) {
	cached, err := store.GetAsset(ctx, c.db, id)
	switch {
	case err != nil:
		c.log.Warn("failed to read asset cache", "artwork_id", id, "error", err)
	case cached != nil:
		c.log.Debug("asset cache hit", "artwork_id", id, "bytes", len(cached.Data))
		return cached.Data, nil
	}

	data, err := c.remote.LoadAsset(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := store.PutAsset(ctx, c.db, id, data, glbMIME); err != nil {
		c.log.Warn("failed to cache asset", "artwork_id", id, "error", err)
	}
	return data, nil
}

// forget drops a cached model whose artwork changed or went away.
func (c *cachedAssets) forget(ctx context.Context, id int64) {
	if err := store.DeleteAsset(ctx, c.db, id); err != nil {
		c.log.Warn("failed to drop cached asset", "artwork_id", id, "error", err)
	}
}

func (a *App) assets() *cachedAssets {
	return &cachedAssets{remote: a.client, db: a.db, log: a.log}
}
