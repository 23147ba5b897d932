package store

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/erazemk/artverse/internal/db"
)

func TestAssetCache(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	got, err := GetAsset(ctx, database, 1)
	if err != nil || got != nil {
		t.Fatalf("expected no asset, got %v, %v", got, err)
	}

	if err := PutAsset(ctx, database, 1, []byte("glTF-v1"), "model/gltf-binary"); err != nil {
		t.Fatalf("PutAsset: %v", err)
	}
	if err := PutAsset(ctx, database, 1, []byte("glTF-v2"), "model/gltf-binary"); err != nil {
		t.Fatalf("PutAsset replace: %v", err)
	}

	got, err = GetAsset(ctx, database, 1)
	if err != nil {
		t.Fatalf("GetAsset: %v", err)
	}
	if !bytes.Equal(got.Data, []byte("glTF-v2")) || got.MIME != "model/gltf-binary" {
		t.Errorf("unexpected asset: %q %q", got.Data, got.MIME)
	}

	if err := DeleteAsset(ctx, database, 1); err != nil {
		t.Fatalf("DeleteAsset: %v", err)
	}
	if got, _ := GetAsset(ctx, database, 1); got != nil {
		t.Error("expected asset to be gone")
	}
}

func TestPruneAssets(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	for _, id := range []int64{1, 2} {
		if err := PutAsset(ctx, database, id, []byte("glTF"), "model/gltf-binary"); err != nil {
			t.Fatal(err)
		}
	}

	n, err := PruneAssets(ctx, database, time.Now().Add(-time.Hour))
	if err != nil || n != 0 {
		t.Fatalf("prune of fresh assets removed %d (err %v)", n, err)
	}

	n, err = PruneAssets(ctx, database, time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("PruneAssets: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 pruned, got %d", n)
	}
}
