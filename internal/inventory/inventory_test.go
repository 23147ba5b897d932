package inventory

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erazemk/artverse/internal/common"
	"github.com/erazemk/artverse/internal/model"
	"github.com/erazemk/artverse/internal/notify"
)

type fakeCollaborator struct {
	artworks []model.Artwork

	listErr   error
	updateErr error
	deleteErr error
	createErr error

	lists   int
	updates []model.ArtworkUpdate
	deletes []int64
	uploads []model.ArtworkUpload
}

func (f *fakeCollaborator) ListSellerArtworks(ctx context.Context) ([]model.Artwork, error) {
	f.lists++
	return f.artworks, f.listErr
}

func (f *fakeCollaborator) UpdateArtwork(ctx context.Context, id int64, upd model.ArtworkUpdate) (*model.Artwork, error) {
	f.updates = append(f.updates, upd)
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return &model.Artwork{ID: id, Name: upd.Name}, nil
}

func (f *fakeCollaborator) DeleteArtwork(ctx context.Context, id int64) error {
	f.deletes = append(f.deletes, id)
	return f.deleteErr
}

func (f *fakeCollaborator) CreateArtwork(ctx context.Context, upload model.ArtworkUpload) (int64, error) {
	f.uploads = append(f.uploads, upload)
	return 42, f.createErr
}

type recorder struct {
	messages []notify.Notification
}

func (r *recorder) Show(message string, kind notify.Kind) {
	r.messages = append(r.messages, notify.Notification{Message: message, Kind: kind})
}

func (r *recorder) last() notify.Notification {
	if len(r.messages) == 0 {
		return notify.Notification{}
	}
	return r.messages[len(r.messages)-1]
}

var (
	listed = model.Artwork{ID: 1, Name: "Listed"}
	sold   = model.Artwork{ID: 2, Name: "Sold", IsSold: true}
)

func newTestService(collab *fakeCollaborator) (*Service, *recorder) {
	rec := &recorder{}
	return NewService(collab, rec, nil, nil), rec
}

func TestCanMutate(t *testing.T) {
	d := CanMutate(sold)
	assert.False(t, d.Allowed)
	assert.Equal(t, SoldReason, d.Reason)

	d = CanMutate(listed)
	assert.True(t, d.Allowed)
	assert.Empty(t, d.Reason)
}

func TestSoldArtworkNeverReachesCollaborator(t *testing.T) {
	collab := &fakeCollaborator{}
	svc, rec := newTestService(collab)
	ctx := context.Background()

	_, err := svc.OpenEdit(sold)
	assert.ErrorIs(t, err, common.ErrGuardRejected)
	assert.Equal(t, "This artwork is SOLD. You cannot edit it.", rec.last().Message)

	_, err = svc.Update(ctx, sold, model.ArtworkUpdate{Name: "x"})
	assert.ErrorIs(t, err, common.ErrGuardRejected)

	err = svc.Delete(ctx, sold)
	assert.ErrorIs(t, err, common.ErrGuardRejected)
	assert.Equal(t, "This artwork is SOLD. You cannot delete it.", rec.last().Message)
	assert.Equal(t, notify.KindError, rec.last().Kind)

	assert.Empty(t, collab.updates)
	assert.Empty(t, collab.deletes)
}

func TestOpenEditPrefillsForm(t *testing.T) {
	svc, _ := newTestService(&fakeCollaborator{})
	form, err := svc.OpenEdit(model.Artwork{ID: 5, Name: "Dawn", Artist: "Ana", Medium: "oil"})
	require.NoError(t, err)
	assert.Equal(t, "Dawn", form.Name)
	assert.Equal(t, "oil", form.Medium)
}

func TestUpdateValidatesBeforeRequest(t *testing.T) {
	collab := &fakeCollaborator{}
	svc, rec := newTestService(collab)

	_, err := svc.Update(context.Background(), listed, model.ArtworkUpdate{Name: "   "})
	assert.ErrorIs(t, err, common.ErrValidation)
	assert.Equal(t, "Artwork name is required", rec.last().Message)
	assert.Empty(t, collab.updates)

	tests := []struct {
		price float64
		msg   string
	}{
		{-1, "Price cannot be negative"},
		{math.NaN(), "Price must be a number"},
		{math.Inf(1), "Price must be a number"},
		{math.Inf(-1), "Price must be a number"},
	}
	for _, tt := range tests {
		_, err = svc.Update(context.Background(), listed, model.ArtworkUpdate{Name: "ok", Price: &tt.price})
		assert.ErrorIs(t, err, common.ErrValidation)
		assert.Equal(t, tt.msg, rec.last().Message)

		_, err = svc.Create(context.Background(), model.ArtworkUpload{
			ArtworkUpdate: model.ArtworkUpdate{Name: "ok", Price: &tt.price},
			Image:         []byte("img"),
		})
		assert.ErrorIs(t, err, common.ErrValidation)
	}
	assert.Empty(t, collab.updates)
	assert.Empty(t, collab.uploads)
}

func TestUpdateSuccessReloads(t *testing.T) {
	collab := &fakeCollaborator{artworks: []model.Artwork{listed}}
	svc, rec := newTestService(collab)

	updated, err := svc.Update(context.Background(), listed, model.ArtworkUpdate{Name: "  Renamed  "})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	require.Len(t, collab.updates, 1)
	assert.Equal(t, "Renamed", collab.updates[0].Name)
	assert.Equal(t, 1, collab.lists)
	assert.Equal(t, "Artwork updated successfully!", rec.last().Message)
	assert.Equal(t, []model.Artwork{listed}, svc.Artworks())
}

func TestServerRejectionIsSurfaced(t *testing.T) {
	// Sold between list load and submit: the local copy still says listed.
	collab := &fakeCollaborator{
		updateErr: common.Transport("Artwork is sold", errors.New("409 conflict")),
		deleteErr: common.Transport("Artwork is sold", errors.New("409 conflict")),
	}
	svc, rec := newTestService(collab)
	ctx := context.Background()

	_, err := svc.Update(ctx, listed, model.ArtworkUpdate{Name: "x"})
	assert.ErrorIs(t, err, common.ErrTransport)
	assert.Equal(t, notify.Notification{Message: "Artwork is sold", Kind: notify.KindError}, rec.last())

	err = svc.Delete(ctx, listed)
	assert.ErrorIs(t, err, common.ErrTransport)
	assert.Equal(t, "Artwork is sold", rec.last().Message)
	assert.Equal(t, 0, collab.lists, "failed mutations do not reload")
}

func TestDeleteSuccess(t *testing.T) {
	collab := &fakeCollaborator{}
	svc, rec := newTestService(collab)

	require.NoError(t, svc.Delete(context.Background(), listed))
	assert.Equal(t, []int64{1}, collab.deletes)
	assert.Equal(t, `"Listed" deleted successfully`, rec.last().Message)
	assert.Equal(t, 1, collab.lists)
}

func TestCreate(t *testing.T) {
	collab := &fakeCollaborator{}
	rec := &recorder{}
	prepared := false
	svc := NewService(collab, rec, func(data []byte) ([]byte, string, error) {
		prepared = true
		return []byte("jpeg"), "image/jpeg", nil
	}, nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, model.ArtworkUpload{ArtworkUpdate: model.ArtworkUpdate{Name: "x"}})
	assert.ErrorIs(t, err, common.ErrValidation)
	assert.Equal(t, "Please select an image file", rec.last().Message)

	_, err = svc.Create(ctx, model.ArtworkUpload{Image: []byte("png")})
	assert.ErrorIs(t, err, common.ErrValidation)
	assert.Equal(t, "Artwork name is required", rec.last().Message)
	assert.Empty(t, collab.uploads)

	id, err := svc.Create(ctx, model.ArtworkUpload{
		ArtworkUpdate: model.ArtworkUpdate{Name: "Dawn"},
		Image:         []byte("png"),
		Filename:      "dawn.png",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
	assert.True(t, prepared)
	require.Len(t, collab.uploads, 1)
	assert.Equal(t, "image/jpeg", collab.uploads[0].MIME)
	assert.Equal(t, "Artwork created successfully!", rec.last().Message)
	assert.Equal(t, 1, collab.lists)
}

func TestCreateRejectsBadImage(t *testing.T) {
	collab := &fakeCollaborator{}
	rec := &recorder{}
	svc := NewService(collab, rec, func(data []byte) ([]byte, string, error) {
		return nil, "", errors.New("unsupported image format")
	}, nil)

	_, err := svc.Create(context.Background(), model.ArtworkUpload{
		ArtworkUpdate: model.ArtworkUpdate{Name: "Dawn"},
		Image:         []byte("GIF89a"),
	})
	assert.ErrorIs(t, err, common.ErrValidation)
	assert.Empty(t, collab.uploads)
}

func TestLoadFailure(t *testing.T) {
	collab := &fakeCollaborator{listErr: common.Transport("Failed to load artworks (500)", nil)}
	svc, rec := newTestService(collab)

	_, err := svc.Load(context.Background())
	assert.ErrorIs(t, err, common.ErrTransport)
	assert.Equal(t, "Failed to load artworks (500)", rec.last().Message)
}

func TestFind(t *testing.T) {
	collab := &fakeCollaborator{artworks: []model.Artwork{listed, sold}}
	svc, _ := newTestService(collab)
	_, err := svc.Load(context.Background())
	require.NoError(t, err)

	a, ok := svc.Find(2)
	require.True(t, ok)
	assert.True(t, a.IsSold)

	_, ok = svc.Find(9)
	assert.False(t, ok)
}
