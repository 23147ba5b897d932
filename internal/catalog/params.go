package catalog

import (
	"fmt"

	"github.com/erazemk/artverse/internal/common"
)

// DefaultPageSize is the number of artworks shown per catalog page.
const DefaultPageSize = 12

// TypeAll disables the type filter. An empty type does the same.
const TypeAll = "all"

// PriceBracket is a price range filter bucket.
type PriceBracket string

// Price brackets. Bounds are in the catalog currency.
const (
	BracketNone   PriceBracket = ""
	BracketLow    PriceBracket = "low"
	BracketMedium PriceBracket = "medium"
	BracketHigh   PriceBracket = "high"
)

const (
	lowCeiling = 500
	highFloor  = 2000
)

// Contains reports whether a price falls in the bracket. A nil price only
// belongs to BracketNone.
func (b PriceBracket) Contains(price *float64) bool {
	if b == BracketNone {
		return true
	}
	if price == nil {
		return false
	}
	p := *price
	switch b {
	case BracketLow:
		return p < lowCeiling
	case BracketMedium:
		return p >= lowCeiling && p < highFloor
	case BracketHigh:
		return p >= highFloor
	}
	return false
}

// ParseBracket parses a bracket name; "none" and "" mean no bracket.
func ParseBracket(s string) (PriceBracket, error) {
	switch s {
	case "", "none", "all":
		return BracketNone, nil
	case string(BracketLow), string(BracketMedium), string(BracketHigh):
		return PriceBracket(s), nil
	}
	return BracketNone, common.Validation(fmt.Sprintf("unknown price range %q (use low, medium or high)", s))
}

// SortKey selects the catalog ordering.
type SortKey string

// Sort keys.
const (
	SortNameAsc   SortKey = "name"
	SortArtistAsc SortKey = "artist"
	SortPriceAsc  SortKey = "price-low"
	SortPriceDesc SortKey = "price-high"
)

// ParseSortKey parses a sort key name.
func ParseSortKey(s string) (SortKey, error) {
	switch SortKey(s) {
	case SortNameAsc, SortArtistAsc, SortPriceAsc, SortPriceDesc:
		return SortKey(s), nil
	case "":
		return SortNameAsc, nil
	}
	return SortNameAsc, common.Validation(fmt.Sprintf("unknown sort %q (use name, artist, price-low or price-high)", s))
}

// Parameters is the buyer's current catalog query. Changing any filter or
// the sort through the With* setters resets Page to 1.
type Parameters struct {
	Search   string
	Type     string
	Bracket  PriceBracket
	Sort     SortKey
	Page     int
	PageSize int
}

// DefaultParameters returns the catalog's initial query.
func DefaultParameters() Parameters {
	return Parameters{
		Sort:     SortNameAsc,
		Page:     1,
		PageSize: DefaultPageSize,
	}
}

func (p Parameters) WithSearch(term string) Parameters {
	p.Search = term
	p.Page = 1
	return p
}

func (p Parameters) WithType(t string) Parameters {
	p.Type = t
	p.Page = 1
	return p
}

func (p Parameters) WithBracket(b PriceBracket) Parameters {
	p.Bracket = b
	p.Page = 1
	return p
}

func (p Parameters) WithSort(k SortKey) Parameters {
	p.Sort = k
	p.Page = 1
	return p
}

// WithPage moves to page n. The page is clamped at projection time.
func (p Parameters) WithPage(n int) Parameters {
	p.Page = n
	return p
}

func (p Parameters) allTypes() bool {
	return p.Type == "" || p.Type == TypeAll
}

func (p Parameters) pageSize() int {
	if p.PageSize <= 0 {
		return DefaultPageSize
	}
	return p.PageSize
}
