package inventory

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"sync"

	"github.com/erazemk/artverse/internal/common"
	"github.com/erazemk/artverse/internal/model"
	"github.com/erazemk/artverse/internal/notify"
)

// Collaborator is the external inventory owner.
type Collaborator interface {
	ListSellerArtworks(ctx context.Context) ([]model.Artwork, error)
	UpdateArtwork(ctx context.Context, id int64, upd model.ArtworkUpdate) (*model.Artwork, error)
	DeleteArtwork(ctx context.Context, id int64) error
	CreateArtwork(ctx context.Context, upload model.ArtworkUpload) (int64, error)
}

// ImagePreparer normalizes an upload image before it is sent.
type ImagePreparer func(data []byte) (out []byte, mime string, err error)

// Service is one seller's inventory view. It keeps the last loaded list
// as a read copy; the collaborator owns the data.
type Service struct {
	collab  Collaborator
	status  notify.Notifier
	prepare ImagePreparer
	log     *slog.Logger

	mu       sync.Mutex
	artworks []model.Artwork
}

// NewService returns a seller inventory service. prepare may be nil, in
// which case images are uploaded as given.
func NewService(collab Collaborator, status notify.Notifier, prepare ImagePreparer, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{collab: collab, status: status, prepare: prepare, log: log}
}

// Artworks returns the last loaded inventory.
func (s *Service) Artworks() []model.Artwork {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Artwork(nil), s.artworks...)
}

// Find returns the loaded artwork with the given id.
func (s *Service) Find(id int64) (model.Artwork, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.artworks {
		if a.ID == id {
			return a, true
		}
	}
	return model.Artwork{}, false
}

// Load fetches the seller's artworks.
func (s *Service) Load(ctx context.Context) ([]model.Artwork, error) {
	artworks, err := s.collab.ListSellerArtworks(ctx)
	if err != nil {
		s.status.Show(common.Message(err, "Failed to load artworks"), notify.KindError)
		return nil, fmt.Errorf("loading seller artworks: %w", err)
	}

	s.mu.Lock()
	s.artworks = artworks
	s.mu.Unlock()
	return artworks, nil
}

func (s *Service) guard(a model.Artwork, action string) error {
	d := CanMutate(a)
	if d.Allowed {
		return nil
	}
	s.log.Warn("blocked mutation of sold artwork", "artwork_id", a.ID, "action", action)
	s.status.Show(fmt.Sprintf("This artwork is SOLD. You cannot %s it.", action), notify.KindError)
	return common.GuardRejected(d.Reason)
}

// OpenEdit returns the edit form for a, or a guard rejection if a is sold.
func (s *Service) OpenEdit(a model.Artwork) (model.ArtworkUpdate, error) {
	if err := s.guard(a, "edit"); err != nil {
		return model.ArtworkUpdate{}, err
	}
	return model.UpdateFrom(a), nil
}

// Update submits an edit of a. The guard is re-checked against a even if
// OpenEdit already passed.
func (s *Service) Update(ctx context.Context, a model.Artwork, upd model.ArtworkUpdate) (*model.Artwork, error) {
	if err := s.guard(a, "edit"); err != nil {
		return nil, err
	}
	upd, err := normalizeUpdate(upd)
	if err != nil {
		s.status.Show(err.Error(), notify.KindError)
		return nil, err
	}

	updated, err := s.collab.UpdateArtwork(ctx, a.ID, upd)
	if err != nil {
		s.status.Show(common.Message(err, "Failed to update"), notify.KindError)
		return nil, fmt.Errorf("updating artwork %d: %w", a.ID, err)
	}

	s.log.Info("artwork updated", "artwork_id", a.ID)
	s.status.Show("Artwork updated successfully!", notify.KindSuccess)
	s.reload(ctx)
	return updated, nil
}

// Delete removes a. Confirmation with the user is the caller's job.
func (s *Service) Delete(ctx context.Context, a model.Artwork) error {
	if err := s.guard(a, "delete"); err != nil {
		return err
	}

	if err := s.collab.DeleteArtwork(ctx, a.ID); err != nil {
		s.status.Show(common.Message(err, "Failed to delete"), notify.KindError)
		return fmt.Errorf("deleting artwork %d: %w", a.ID, err)
	}

	s.log.Info("artwork deleted", "artwork_id", a.ID)
	s.status.Show(fmt.Sprintf("%q deleted successfully", a.Name), notify.KindSuccess)
	s.reload(ctx)
	return nil
}

// Create uploads a new artwork and returns its id.
func (s *Service) Create(ctx context.Context, upload model.ArtworkUpload) (int64, error) {
	if len(upload.Image) == 0 {
		err := common.Validation("Please select an image file")
		s.status.Show(err.Error(), notify.KindError)
		return 0, err
	}
	upd, err := normalizeUpdate(upload.ArtworkUpdate)
	if err != nil {
		s.status.Show(err.Error(), notify.KindError)
		return 0, err
	}
	upload.ArtworkUpdate = upd

	if s.prepare != nil {
		data, mime, err := s.prepare(upload.Image)
		if err != nil {
			verr := common.Validation("Invalid file type. Please upload an image file (JPG, PNG, etc.).")
			s.log.Warn("rejected upload image", "filename", upload.Filename, "error", err)
			s.status.Show(verr.Error(), notify.KindError)
			return 0, verr
		}
		upload.Image = data
		upload.MIME = mime
	}

	id, err := s.collab.CreateArtwork(ctx, upload)
	if err != nil {
		s.status.Show(common.Message(err, "Failed to create artwork"), notify.KindError)
		return 0, fmt.Errorf("creating artwork: %w", err)
	}

	s.log.Info("artwork created", "artwork_id", id)
	s.status.Show("Artwork created successfully!", notify.KindSuccess)
	s.reload(ctx)
	return id, nil
}

// reload refreshes the inventory after a mutation. A failure is already
// surfaced by Load and does not undo the mutation.
func (s *Service) reload(ctx context.Context) {
	if _, err := s.Load(ctx); err != nil {
		s.log.Error("failed to reload seller artworks", "error", err)
	}
}

func normalizeUpdate(upd model.ArtworkUpdate) (model.ArtworkUpdate, error) {
	upd.Name = strings.TrimSpace(upd.Name)
	upd.Description = strings.TrimSpace(upd.Description)
	upd.Artist = strings.TrimSpace(upd.Artist)
	upd.Dimensions = strings.TrimSpace(upd.Dimensions)

	if upd.Name == "" {
		return upd, common.Validation("Artwork name is required")
	}
	if upd.Price != nil && (math.IsNaN(*upd.Price) || math.IsInf(*upd.Price, 0)) {
		return upd, common.Validation("Price must be a number")
	}
	if upd.Price != nil && *upd.Price < 0 {
		return upd, common.Validation("Price cannot be negative")
	}
	return upd, nil
}
