// Package catalog projects a raw artwork collection into the ordered,
// paginated page a buyer sees. Projection is pure: identical inputs give
// identical output and the source slice is never modified.
package catalog

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/erazemk/artverse/internal/model"
)

// Projection is one rendered catalog page.
type Projection struct {
	Items      []model.Artwork
	Page       int
	TotalPages int
	TotalCount int
}

// Engine projects catalogs using the ordering rules of one locale.
type Engine struct {
	tag language.Tag
}

// NewEngine returns an engine collating names and artists for tag.
func NewEngine(tag language.Tag) *Engine {
	return &Engine{tag: tag}
}

var defaultEngine = NewEngine(language.English)

// DefaultEngine returns the English engine behind Project.
func DefaultEngine() *Engine {
	return defaultEngine
}

// Project runs the default English engine.
func Project(items []model.Artwork, p Parameters) Projection {
	return defaultEngine.Project(items, p)
}

// Project filters by search term, type and price bracket (in that order),
// sorts stably by p.Sort and slices out the requested page. The returned
// Page is p.Page clamped to [1, TotalPages].
func (e *Engine) Project(items []model.Artwork, p Parameters) Projection {
	fold := cases.Fold()
	term := fold.String(p.Search)

	filtered := make([]model.Artwork, 0, len(items))
	for _, a := range items {
		if term != "" && !strings.Contains(fold.String(a.Name), term) && !strings.Contains(fold.String(a.Artist), term) {
			continue
		}
		if !p.allTypes() && a.ArtworkType != p.Type {
			continue
		}
		if !p.Bracket.Contains(a.Price) {
			continue
		}
		filtered = append(filtered, a)
	}

	e.sort(filtered, p.Sort)

	size := p.pageSize()
	total := len(filtered)
	pages := max(1, (total+size-1)/size)
	page := min(max(p.Page, 1), pages)

	start := (page - 1) * size
	end := min(start+size, total)

	return Projection{
		Items:      filtered[start:end],
		Page:       page,
		TotalPages: pages,
		TotalCount: total,
	}
}

// sort orders items in place. A collator keeps scratch buffers, so one is
// built per call.
func (e *Engine) sort(items []model.Artwork, key SortKey) {
	var compare func(a, b model.Artwork) int

	switch key {
	case SortNameAsc, "":
		c := collate.New(e.tag)
		compare = func(a, b model.Artwork) int { return c.CompareString(a.Name, b.Name) }
	case SortArtistAsc:
		c := collate.New(e.tag)
		compare = func(a, b model.Artwork) int { return c.CompareString(a.Artist, b.Artist) }
	case SortPriceAsc:
		compare = func(a, b model.Artwork) int { return cmp.Compare(a.PriceOrZero(), b.PriceOrZero()) }
	case SortPriceDesc:
		compare = func(a, b model.Artwork) int { return cmp.Compare(b.PriceOrZero(), a.PriceOrZero()) }
	default:
		return
	}

	slices.SortStableFunc(items, compare)
}

// UniqueTypes lists the distinct non-empty artwork types of the full
// catalog in first-seen order. It feeds the type filter options, so it
// must be given the unfiltered source.
func UniqueTypes(items []model.Artwork) []string {
	seen := make(map[string]bool)
	var types []string
	for _, a := range items {
		if a.ArtworkType == "" || seen[a.ArtworkType] {
			continue
		}
		seen[a.ArtworkType] = true
		types = append(types, a.ArtworkType)
	}
	return types
}
