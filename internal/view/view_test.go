package view

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erazemk/artverse/internal/ar"
	"github.com/erazemk/artverse/internal/buyer"
	"github.com/erazemk/artverse/internal/cart"
	"github.com/erazemk/artverse/internal/catalog"
	"github.com/erazemk/artverse/internal/model"
	"github.com/erazemk/artverse/internal/notify"
)

func ptr[T any](v T) *T { return &v }

func TestFormatting(t *testing.T) {
	assert.Equal(t, "Price on request", Price(nil))
	assert.Equal(t, "Price on request", Price(ptr(0.0)))
	assert.Equal(t, "$1500.50", Price(ptr(1500.5)))

	assert.Equal(t, "$4300.50", Money(decimal.RequireFromString("4300.5")))
	assert.Equal(t, "Price on request", Money(decimal.NullDecimal{}))
	assert.Equal(t, "$12.00", Money(decimal.NewNullDecimal(decimal.NewFromInt(12))))

	assert.Equal(t, "Unknown Artist", Artist("  "))
	assert.Equal(t, "Rodin", Artist("Rodin"))

	assert.Equal(t, "Mixed Media", Label("mixed_media"))
	assert.Equal(t, "Pop Art", Label("pop_art"))
	assert.Equal(t, "", Label(""))

	assert.Equal(t, "May 1, 2024", Date(time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)))
	assert.Equal(t, "", Date(time.Time{}))
}

func load(t *testing.T) *Templates {
	t.Helper()
	ts, err := Load()
	require.NoError(t, err)
	return ts
}

func TestStatusLine(t *testing.T) {
	assert.Equal(t, "✓ Saved", StatusLine(notify.Notification{Message: "Saved", Kind: notify.KindSuccess}))
	assert.Equal(t, "✖ Nope", StatusLine(notify.Notification{Message: "Nope", Kind: notify.KindError}))
}

func TestCatalogPage(t *testing.T) {
	ts := load(t)
	items := []model.Artwork{
		{ID: 1, Name: "Mona Lisa", Artist: "Leonardo", ArtworkType: "painting", Price: ptr(900.0)},
		{ID: 3, Name: "Thinker", ArtworkType: "sculpture", IsSold: true},
	}
	c := cart.Cart{}.Add(items[0]).Add(items[0])
	v := buyer.View{
		Projection: catalog.Project(items, catalog.DefaultParameters()),
		Types:      catalog.UniqueTypes(items),
		Total:      2,
		Cart:       c,
		Status:     &notify.Notification{Message: "Failed to load artworks", Kind: notify.KindError},
		Added:      &items[0],
	}

	var buf bytes.Buffer
	require.NoError(t, ts.Catalog(&buf, v))
	out := buf.String()

	assert.Contains(t, out, "🎨 ArtVerse · Gallery")
	assert.Contains(t, out, "✖ Failed to load artworks")
	assert.Contains(t, out, `✓ "Mona Lisa" has been added to your cart!`)
	assert.Contains(t, out, "[1] Mona Lisa")
	assert.Contains(t, out, "Leonardo · Painting · $900.00")
	assert.Contains(t, out, "[3] Thinker (SOLD)")
	assert.Contains(t, out, "Unknown Artist · Sculpture · Price on request")
	assert.Contains(t, out, "Page 1 of 1")
	assert.Contains(t, out, "Showing 2 of 2 artworks · types: painting, sculpture")
	assert.Contains(t, out, "Cart: 2 item(s), $1800.00")
}

func TestCatalogEmptyStates(t *testing.T) {
	ts := load(t)

	var buf bytes.Buffer
	require.NoError(t, ts.Catalog(&buf, buyer.View{Empty: buyer.MsgEmptyGallery}))
	assert.Contains(t, buf.String(), "🎨 No artworks yet in our gallery")

	buf.Reset()
	require.NoError(t, ts.Catalog(&buf, buyer.View{Total: 3, Empty: buyer.MsgNoMatch}))
	assert.Contains(t, buf.String(), "🔍 No artworks match your search criteria")

	buf.Reset()
	fetched := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, ts.Catalog(&buf, buyer.View{Offline: true, FetchedAt: fetched, Empty: buyer.MsgEmptyGallery}))
	assert.Contains(t, buf.String(), "Offline: showing saved catalog from June 1, 2024")
}

func TestCartPage(t *testing.T) {
	ts := load(t)
	c := cart.Cart{}.
		Add(model.Artwork{ID: 1, Name: "Mona Lisa", Price: ptr(900.0)}).
		Add(model.Artwork{ID: 2, Name: "Sketch", Price: nil})
	c = c.SetQuantity(1, 3)

	var buf bytes.Buffer
	require.NoError(t, ts.Cart(&buf, buyer.View{Cart: c}))
	out := buf.String()
	assert.Contains(t, out, "$900.00 × 3 = $2700.00")
	assert.Contains(t, out, "Price on request × 1 = $0.00")
	assert.Contains(t, out, "Items: 4")
	assert.Contains(t, out, "Total: $2700.00")

	buf.Reset()
	require.NoError(t, ts.Cart(&buf, buyer.View{}))
	assert.Contains(t, buf.String(), "Your cart is empty")
}

func TestArtworkPage(t *testing.T) {
	ts := load(t)
	d := &buyer.Detail{
		Artwork: model.Artwork{
			ID: 1, Name: "Mona Lisa", Artist: "Leonardo", Description: "A portrait.",
			ArtworkType: "painting", Medium: "oil", Style: "classical", YearCreated: ptr(1503),
			Dimensions: "77 x 53 cm", Price: ptr(900.0),
			CreatedAt: &model.Timestamp{Time: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)},
		},
		ImageURL:        "https://gallery.example.com/artwork/1/image",
		Recommendations: []model.Recommendation{{ID: 2, Name: "Lady with an Ermine", Artist: "Leonardo"}},
	}

	var buf bytes.Buffer
	require.NoError(t, ts.Artwork(&buf, d))
	out := buf.String()
	for _, want := range []string{
		"by Leonardo", "$900.00", "A portrait.", "Type:       Painting", "Year:       1503",
		"Dimensions: 77 x 53 cm", "Medium:     Oil", "Style:      Classical", "Listed:     May 1, 2024",
		"Image:      https://gallery.example.com/artwork/1/image",
		"You may also like:", "[2] Lady with an Ermine · Leonardo",
	} {
		assert.Contains(t, out, want)
	}

	buf.Reset()
	require.NoError(t, ts.Artwork(&buf, &buyer.Detail{Artwork: model.Artwork{Name: "Bare"}}))
	assert.Contains(t, buf.String(), "by Unknown Artist")
	assert.NotContains(t, buf.String(), "Year:")
}

func TestSellerPage(t *testing.T) {
	ts := load(t)

	var buf bytes.Buffer
	require.NoError(t, ts.Seller(&buf, nil, SellerData{Artworks: []model.Artwork{
		{ID: 4, Name: "Sold One", IsSold: true, Price: ptr(10.0)},
		{ID: 5, Name: "Open One"},
	}}))
	out := buf.String()
	assert.Contains(t, out, "[4] Sold One · SOLD (locked)")
	assert.Contains(t, out, "[5] Open One\n")

	buf.Reset()
	require.NoError(t, ts.Seller(&buf, nil, SellerData{}))
	assert.Contains(t, buf.String(), "No artworks yet")
}

func TestARPage(t *testing.T) {
	ts := load(t)

	var buf bytes.Buffer
	require.NoError(t, ts.AR(&buf, nil, ARData{State: ar.State{Phase: ar.Error, Err: "Artwork not found"}}))
	assert.Contains(t, buf.String(), "❌ Failed to load artwork: Artwork not found")

	buf.Reset()
	require.NoError(t, ts.AR(&buf, nil, ARData{State: ar.State{Phase: ar.Loading}}))
	assert.Contains(t, buf.String(), "Loading AR experience")

	buf.Reset()
	st := ar.State{
		Phase:    ar.Ready,
		Artwork:  &model.Artwork{ID: 7, Name: "Mona Lisa", Artist: "Leonardo", Price: ptr(900.0)},
		AssetURL: "https://gallery.example.com/artwork/7/glb",
	}
	status := &notify.Notification{Message: "3D model loaded successfully!", Kind: notify.KindSuccess}
	require.NoError(t, ts.AR(&buf, status, ARData{State: st, Guidance: ar.Guidance(ar.Device{}), Intent: "intent://x"}))
	out := buf.String()
	assert.Contains(t, out, "✓ 3D model loaded successfully!")
	assert.Contains(t, out, "by Leonardo")
	assert.Contains(t, out, "Model:  https://gallery.example.com/artwork/7/glb (ready)")
	assert.Contains(t, out, "Open in AR: intent://x")
	assert.True(t, strings.Contains(out, "For best AR experience"))
}

func TestRenderUnknownPage(t *testing.T) {
	assert.Error(t, load(t).Render(&bytes.Buffer{}, "nope", Page{}))
}
