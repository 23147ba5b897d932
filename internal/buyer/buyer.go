// Package buyer is the action layer of the buyer views: it owns the
// loaded catalog, the query parameters and the cart of one session and
// applies the purchase policies the cart itself does not enforce.
package buyer

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/erazemk/artverse/internal/cart"
	"github.com/erazemk/artverse/internal/catalog"
	"github.com/erazemk/artverse/internal/common"
	"github.com/erazemk/artverse/internal/model"
	"github.com/erazemk/artverse/internal/notify"
	"github.com/erazemk/artverse/internal/store"
)

// User-facing messages.
const (
	MsgLoadFailed       = "Failed to load artworks"
	MsgEmptyGallery     = "No artworks yet in our gallery"
	MsgNoMatch          = "No artworks match your search criteria"
	MsgCheckoutSoon     = "Checkout functionality coming soon!"
	MsgNotForSale       = "This artwork is not available for purchase"
	MsgSold             = "This artwork has already been sold"
	MsgArtworkNotFound  = "Artwork not found"
	MsgInvalidArtworkID = "Invalid artwork ID"
)

// Catalog is the server side of the buyer views.
type Catalog interface {
	ListArtworks(ctx context.Context) ([]model.Artwork, error)
	GetArtwork(ctx context.Context, id int64) (*model.Artwork, error)
	Recommendations(ctx context.Context, id int64) ([]model.Recommendation, error)
}

// Snapshots keeps the last fetched catalog for offline display.
type Snapshots interface {
	Save(ctx context.Context, artworks []model.Artwork) error
	Load(ctx context.Context) (*store.Snapshot, error)
}

// Options configures a Session. Snapshots and Logger may be nil.
type Options struct {
	Catalog      Catalog
	Snapshots    Snapshots
	Engine       *catalog.Engine
	Status       *notify.Status
	Confirmation *notify.Confirmation
	PageSize     int
	Logger       *slog.Logger

	// ImageURL derives an artwork's image link. Defaults to the server path.
	ImageURL func(id int64) string
}

// Session is one buyer's browsing session.
type Session struct {
	catalog   Catalog
	snapshots Snapshots
	engine    *catalog.Engine
	status    *notify.Status
	confirm   *notify.Confirmation
	log       *slog.Logger
	imageURL  func(id int64) string

	mu        sync.Mutex
	artworks  []model.Artwork
	params    catalog.Parameters
	cart      cart.Cart
	offline   bool
	fetchedAt time.Time
}

// New returns a buyer session with an empty catalog and cart.
func New(opts Options) *Session {
	s := &Session{
		catalog:   opts.Catalog,
		snapshots: opts.Snapshots,
		engine:    opts.Engine,
		status:    opts.Status,
		confirm:   opts.Confirmation,
		log:       opts.Logger,
		imageURL:  opts.ImageURL,
		params:    catalog.DefaultParameters(),
	}
	if s.imageURL == nil {
		s.imageURL = model.ImagePath
	}
	if s.engine == nil {
		s.engine = catalog.DefaultEngine()
	}
	if s.status == nil {
		s.status = notify.NewStatus(notify.SystemClock, notify.StatusTTL)
	}
	if s.confirm == nil {
		s.confirm = notify.NewConfirmation(notify.SystemClock, notify.ConfirmTTL)
	}
	if s.log == nil {
		s.log = slog.Default()
	}
	if opts.PageSize > 0 {
		s.params.PageSize = opts.PageSize
	}
	return s
}

// Load fetches the catalog. When the fetch fails and a saved snapshot
// exists, the snapshot is shown instead; the failure is still returned.
func (s *Session) Load(ctx context.Context) error {
	artworks, err := s.catalog.ListArtworks(ctx)
	if err == nil {
		s.mu.Lock()
		s.artworks = artworks
		s.offline = false
		s.fetchedAt = time.Now()
		s.mu.Unlock()

		if s.snapshots != nil {
			if serr := s.snapshots.Save(ctx, artworks); serr != nil {
				s.log.Warn("failed to save catalog snapshot", "error", serr)
			}
		}
		s.log.Debug("catalog loaded", "count", len(artworks))
		return nil
	}

	s.log.Error("failed to load catalog", "error", err)
	s.status.Error(common.Message(err, MsgLoadFailed))

	if s.snapshots != nil {
		snap, serr := s.snapshots.Load(ctx)
		switch {
		case serr != nil:
			s.log.Warn("failed to read catalog snapshot", "error", serr)
		case snap != nil:
			s.mu.Lock()
			s.artworks = snap.Artworks
			s.offline = true
			s.fetchedAt = snap.FetchedAt
			s.mu.Unlock()
			s.log.Info("showing cached catalog", "count", len(snap.Artworks), "fetched_at", snap.FetchedAt)
		}
	}
	return fmt.Errorf("loading catalog: %w", err)
}

// Search sets the search term.
func (s *Session) Search(term string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.params = s.params.WithSearch(strings.TrimSpace(term))
}

// FilterType sets the type filter. "" or "all" shows every type.
func (s *Session) FilterType(t string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.params = s.params.WithType(strings.TrimSpace(t))
}

// FilterPrice sets the price bracket from its name.
func (s *Session) FilterPrice(bracket string) error {
	b, err := catalog.ParseBracket(bracket)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.params = s.params.WithBracket(b)
	return nil
}

// SortBy sets the sort key from its name.
func (s *Session) SortBy(key string) error {
	k, err := catalog.ParseSortKey(key)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.params = s.params.WithSort(k)
	return nil
}

// GoToPage moves to page n; out of range pages are clamped.
func (s *Session) GoToPage(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.params = s.params.WithPage(s.clampedLocked(n))
}

// NextPage and PrevPage step one page, stopping at the ends.
func (s *Session) NextPage() { s.step(1) }
func (s *Session) PrevPage() { s.step(-1) }

func (s *Session) step(delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur := s.engine.Project(s.artworks, s.params).Page
	s.params = s.params.WithPage(s.clampedLocked(cur + delta))
}

func (s *Session) clampedLocked(n int) int {
	return s.engine.Project(s.artworks, s.params.WithPage(n)).Page
}

// Params returns the current query.
func (s *Session) Params() catalog.Parameters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.params
}

// View is everything the catalog view renders.
type View struct {
	catalog.Projection
	Params    catalog.Parameters
	Types     []string
	Total     int
	Empty     string
	Offline   bool
	FetchedAt time.Time
	Status    *notify.Notification
	Added     *model.Artwork
	Cart      cart.Cart
}

// Stats is the "Showing N of M artworks" line.
func (v View) Stats() string {
	return fmt.Sprintf("Showing %d of %d artworks", v.TotalCount, v.Total)
}

// View projects the loaded catalog with the current parameters.
func (s *Session) View() View {
	s.mu.Lock()
	proj := s.engine.Project(s.artworks, s.params)
	v := View{
		Projection: proj,
		Params:     s.params,
		Types:      catalog.UniqueTypes(s.artworks),
		Total:      len(s.artworks),
		Offline:    s.offline,
		FetchedAt:  s.fetchedAt,
		Cart:       s.cart,
	}
	s.mu.Unlock()

	switch {
	case v.Total == 0:
		v.Empty = MsgEmptyGallery
	case v.TotalCount == 0:
		v.Empty = MsgNoMatch
	}
	if n, ok := s.status.Current(); ok {
		v.Status = &n
	}
	if a, ok := s.confirm.Current(); ok {
		v.Added = &a
	}
	return v
}

func (s *Session) findLocked(id int64) (model.Artwork, bool) {
	for _, a := range s.artworks {
		if a.ID == id {
			return a, true
		}
	}
	return model.Artwork{}, false
}

// CanAdd reports whether a may be put in the cart: it must carry a price
// and must not be sold.
func CanAdd(a model.Artwork) error {
	switch {
	case a.IsSold:
		return common.Validation(MsgSold)
	case !a.Priced():
		return common.Validation(MsgNotForSale)
	}
	return nil
}

// AddToCart adds one of the loaded artwork id to the cart and raises the
// added-to-cart confirmation.
func (s *Session) AddToCart(id int64) error {
	s.mu.Lock()
	a, ok := s.findLocked(id)
	if !ok {
		s.mu.Unlock()
		return common.NotFound(MsgArtworkNotFound)
	}
	if err := CanAdd(a); err != nil {
		s.mu.Unlock()
		return err
	}
	s.cart = s.cart.Add(a)
	s.mu.Unlock()

	s.confirm.Added(a)
	s.log.Debug("added to cart", "artwork_id", id)
	return nil
}

// SetQuantity sets a cart line's quantity; n <= 0 removes the line.
func (s *Session) SetQuantity(id int64, n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = s.cart.SetQuantity(id, n)
}

// RemoveFromCart drops a cart line.
func (s *Session) RemoveFromCart(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = s.cart.Remove(id)
}

// ClearCart empties the cart.
func (s *Session) ClearCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = s.cart.Clear()
}

// Cart returns the current cart.
func (s *Session) Cart() cart.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart
}

// Checkout tells the user checkout is not available. The cart is kept.
func (s *Session) Checkout() error {
	err := s.Cart().Checkout()
	if err != nil {
		s.status.Info(MsgCheckoutSoon)
	}
	return err
}

// Status returns the current status notification.
func (s *Session) Status() (notify.Notification, bool) {
	return s.status.Current()
}

// Detail is an artwork page with its recommendations.
type Detail struct {
	Artwork         model.Artwork
	ImageURL        string
	Recommendations []model.Recommendation
}

// ParseArtworkID validates an artwork id typed or linked by the user.
func ParseArtworkID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, common.Validation(MsgInvalidArtworkID)
	}
	return id, nil
}

// Detail fetches an artwork page. Recommendations are best effort.
func (s *Session) Detail(ctx context.Context, rawID string) (*Detail, error) {
	id, err := ParseArtworkID(rawID)
	if err != nil {
		return nil, err
	}

	a, err := s.catalog.GetArtwork(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loading artwork %d: %w", id, err)
	}

	d := &Detail{Artwork: *a, ImageURL: s.imageURL(id)}
	recs, err := s.catalog.Recommendations(ctx, id)
	if err != nil {
		s.log.Warn("failed to load recommendations", "artwork_id", id, "error", err)
	} else {
		d.Recommendations = recs
	}
	return d, nil
}
