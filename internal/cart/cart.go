// Package cart holds a buyer's in-session selection of artworks.
//
// A Cart is an immutable value: every mutation returns a new Cart and
// leaves the receiver untouched, so a view holding the previous value never
// observes a half-applied change. Carts are never persisted.
package cart

import (
	"errors"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/erazemk/artverse/internal/model"
)

// ErrCheckoutUnavailable is returned by Checkout. Payment is handled
// elsewhere.
var ErrCheckoutUnavailable = errors.New("checkout is not available yet")

// Line is one cart entry. The name, artist, price and image reference are
// captured when the artwork is first added and do not follow later price
// changes.
type Line struct {
	ArtworkID int64
	Quantity  int
	Name      string
	Artist    string
	Price     decimal.NullDecimal
	ImageURL  string
}

// Subtotal is price × quantity, with a missing price counted as 0.
func (l Line) Subtotal() decimal.Decimal {
	if !l.Price.Valid {
		return decimal.Zero
	}
	return l.Price.Decimal.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart is an ordered set of lines, at most one per artwork.
type Cart struct {
	lines []Line
}

func snapshot(a model.Artwork) Line {
	l := Line{
		ArtworkID: a.ID,
		Quantity:  1,
		Name:      a.Name,
		Artist:    a.Artist,
		ImageURL:  model.ImagePath(a.ID),
	}
	if a.Price != nil {
		l.Price = decimal.NewNullDecimal(decimal.NewFromFloat(*a.Price))
	}
	return l
}

func (c Cart) index(id int64) int {
	return slices.IndexFunc(c.lines, func(l Line) bool { return l.ArtworkID == id })
}

// Add increments the line for a.ID, or appends a fresh line with quantity 1.
// Unpriced artworks are accepted; whether to offer "add" for them is the
// caller's decision.
func (c Cart) Add(a model.Artwork) Cart {
	lines := slices.Clone(c.lines)
	if i := c.index(a.ID); i >= 0 {
		lines[i].Quantity++
		return Cart{lines: lines}
	}
	return Cart{lines: append(lines, snapshot(a))}
}

// SetQuantity sets the quantity of the line for id. n <= 0 removes it.
// Unknown ids are ignored.
func (c Cart) SetQuantity(id int64, n int) Cart {
	if n <= 0 {
		return c.Remove(id)
	}
	i := c.index(id)
	if i < 0 {
		return c
	}
	lines := slices.Clone(c.lines)
	lines[i].Quantity = n
	return Cart{lines: lines}
}

// Remove drops the line for id if present.
func (c Cart) Remove(id int64) Cart {
	i := c.index(id)
	if i < 0 {
		return c
	}
	lines := slices.Clone(c.lines)
	return Cart{lines: slices.Delete(lines, i, i+1)}
}

// Clear returns an empty cart.
func (c Cart) Clear() Cart {
	return Cart{}
}

// Lines returns a copy of the cart lines in insertion order.
func (c Cart) Lines() []Line {
	return slices.Clone(c.lines)
}

// Line returns the line for id.
func (c Cart) Line(id int64) (Line, bool) {
	i := c.index(id)
	if i < 0 {
		return Line{}, false
	}
	return c.lines[i], true
}

// Len is the number of distinct artworks in the cart.
func (c Cart) Len() int {
	return len(c.lines)
}

// TotalItems is the sum of all line quantities.
func (c Cart) TotalItems() int {
	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

// TotalPrice is the sum of line subtotals.
func (c Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// Checkout is a stub.
func (c Cart) Checkout() error {
	return ErrCheckoutUnavailable
}
