package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erazemk/artverse/internal/model"
)

func price(v float64) *float64 { return &v }

var (
	mona   = model.Artwork{ID: 1, Name: "Mona Lisa", Artist: "Leonardo", Price: price(900)}
	starry = model.Artwork{ID: 2, Name: "Starry Night", Artist: "Van Gogh", Price: price(2500.5)}
	onAsk  = model.Artwork{ID: 3, Name: "Untitled"}
)

func TestAddSameArtworkTwice(t *testing.T) {
	c := Cart{}.Add(mona).Add(mona)

	require.Equal(t, 1, c.Len())
	line, ok := c.Line(mona.ID)
	require.True(t, ok)
	assert.Equal(t, 2, line.Quantity)
	assert.Equal(t, 2, c.TotalItems())
}

func TestAddKeepsSnapshot(t *testing.T) {
	c := Cart{}.Add(mona)

	repriced := mona
	repriced.Price = price(1)
	repriced.Name = "Renamed"
	c = c.Add(repriced)

	line, _ := c.Line(mona.ID)
	assert.Equal(t, "Mona Lisa", line.Name)
	assert.True(t, line.Price.Decimal.Equal(decimal.NewFromInt(900)))
	assert.Equal(t, "/artwork/1/image", line.ImageURL)
}

func TestMutationsDoNotAlterPreviousValue(t *testing.T) {
	before := Cart{}.Add(mona)
	after := before.Add(mona).Add(starry)

	line, _ := before.Line(mona.ID)
	assert.Equal(t, 1, line.Quantity)
	assert.Equal(t, 1, before.Len())
	assert.Equal(t, 2, after.Len())

	removed := after.Remove(mona.ID)
	assert.Equal(t, 2, after.Len())
	assert.Equal(t, 1, removed.Len())
}

func TestSetQuantity(t *testing.T) {
	c := Cart{}.Add(mona).Add(starry)

	c = c.SetQuantity(mona.ID, 4)
	line, _ := c.Line(mona.ID)
	assert.Equal(t, 4, line.Quantity)

	c = c.SetQuantity(mona.ID, 0)
	_, ok := c.Line(mona.ID)
	assert.False(t, ok)

	c = c.SetQuantity(starry.ID, -1)
	assert.Equal(t, 0, c.Len())

	// Unknown ids are a no-op.
	c = c.SetQuantity(99, 3)
	assert.Equal(t, 0, c.Len())
}

func TestRemoveUnknownIsNoop(t *testing.T) {
	c := Cart{}.Add(mona)
	assert.Equal(t, c.Lines(), c.Remove(42).Lines())
}

func TestTotals(t *testing.T) {
	c := Cart{}.Add(mona).Add(mona).Add(starry).Add(onAsk).Add(onAsk).Add(onAsk)

	assert.Equal(t, 6, c.TotalItems())
	// 900*2 + 2500.5*1 + 0*3
	assert.Equal(t, "4300.5", c.TotalPrice().String())

	sum := 0
	for _, l := range c.Lines() {
		sum += l.Quantity
	}
	assert.Equal(t, sum, c.TotalItems())
}

func TestTotalPriceAvoidsFloatDrift(t *testing.T) {
	item := model.Artwork{ID: 7, Name: "Dime", Price: price(0.1)}
	c := Cart{}.Add(item).SetQuantity(item.ID, 3)
	assert.Equal(t, "0.3", c.TotalPrice().String())
}

func TestUnpricedArtworkCanBeAdded(t *testing.T) {
	c := Cart{}.Add(onAsk)
	line, ok := c.Line(onAsk.ID)
	require.True(t, ok)
	assert.False(t, line.Price.Valid)
	assert.True(t, c.TotalPrice().IsZero())
}

func TestClear(t *testing.T) {
	c := Cart{}.Add(mona).Add(starry).Clear()
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, 0, c.TotalItems())
}

func TestLinesKeepInsertionOrder(t *testing.T) {
	c := Cart{}.Add(starry).Add(mona).Add(starry)
	lines := c.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, starry.ID, lines[0].ArtworkID)
	assert.Equal(t, mona.ID, lines[1].ArtworkID)
}

func TestCheckoutIsStub(t *testing.T) {
	assert.ErrorIs(t, Cart{}.Add(mona).Checkout(), ErrCheckoutUnavailable)
}
