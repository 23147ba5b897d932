// Package view renders the terminal views from the embedded templates.
package view

import (
	"fmt"
	"io"
	"io/fs"
	"strings"
	"text/template"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/erazemk/artverse/internal/ar"
	"github.com/erazemk/artverse/internal/buyer"
	"github.com/erazemk/artverse/internal/model"
	"github.com/erazemk/artverse/internal/notify"
	webembed "github.com/erazemk/artverse/web"
)

// Page names.
const (
	PageCatalog = "catalog"
	PageCart    = "cart"
	PageArtwork = "artwork"
	PageSeller  = "seller"
	PageAR      = "ar"
)

const (
	priceOnRequest = "Price on request"
	unknownArtist  = "Unknown Artist"
)

var titleCaser = cases.Title(language.English)

// Price formats an artwork price; nil or zero is "Price on request".
func Price(p *float64) string {
	if p == nil || *p == 0 {
		return priceOnRequest
	}
	return fmt.Sprintf("$%.2f", *p)
}

// Money formats a cart amount. An invalid NullDecimal is
// "Price on request".
func Money(v any) string {
	switch m := v.(type) {
	case decimal.Decimal:
		return "$" + m.StringFixed(2)
	case decimal.NullDecimal:
		if !m.Valid {
			return priceOnRequest
		}
		return "$" + m.Decimal.StringFixed(2)
	case *float64:
		return Price(m)
	case float64:
		return fmt.Sprintf("$%.2f", m)
	default:
		return fmt.Sprint(v)
	}
}

// Artist falls back to "Unknown Artist".
func Artist(name string) string {
	if strings.TrimSpace(name) == "" {
		return unknownArtist
	}
	return name
}

// Label turns an option value such as "mixed_media" into "Mixed Media".
func Label(s string) string {
	if s == "" {
		return ""
	}
	return titleCaser.String(strings.ReplaceAll(s, "_", " "))
}

// Date formats t as "January 2, 2006".
func Date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("January 2, 2006")
}

func statusIcon(k notify.Kind) string {
	switch k {
	case notify.KindSuccess:
		return "✓"
	case notify.KindError:
		return "✖"
	default:
		return "ℹ"
	}
}

// StatusLine formats a notification outside a page.
func StatusLine(n notify.Notification) string {
	return statusIcon(n.Kind) + " " + n.Message
}

// FuncMap returns the template function map.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"price":      Price,
		"money":      Money,
		"artist":     Artist,
		"label":      Label,
		"date":       Date,
		"join":       strings.Join,
		"statusIcon": statusIcon,
		"rule":       func() string { return strings.Repeat("─", 48) },
	}
}

// Templates holds parsed page templates.
type Templates struct {
	templates map[string]*template.Template
}

// Load parses all page templates with the layout.
func Load() (*Templates, error) {
	tfs, err := webembed.TemplatesFS()
	if err != nil {
		return nil, fmt.Errorf("opening templates: %w", err)
	}

	layoutBytes, err := fs.ReadFile(tfs, "layout.tmpl")
	if err != nil {
		return nil, fmt.Errorf("reading layout template: %w", err)
	}

	pages := []string{PageCatalog, PageCart, PageArtwork, PageSeller, PageAR}
	ts := &Templates{templates: make(map[string]*template.Template)}

	for _, page := range pages {
		pageBytes, err := fs.ReadFile(tfs, page+".tmpl")
		if err != nil {
			return nil, fmt.Errorf("reading template %s: %w", page, err)
		}

		tmpl, err := template.New(page).Funcs(FuncMap()).Parse(string(layoutBytes))
		if err != nil {
			return nil, fmt.Errorf("parsing layout for %s: %w", page, err)
		}
		if tmpl, err = tmpl.Parse(string(pageBytes)); err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", page, err)
		}
		ts.templates[page] = tmpl
	}

	return ts, nil
}

// Page is the data passed to the layout.
type Page struct {
	Title  string
	Status *notify.Notification
	Data   any
}

// Render renders a page.
func (ts *Templates) Render(w io.Writer, name string, p Page) error {
	tmpl, ok := ts.templates[name]
	if !ok {
		return fmt.Errorf("template %q not found", name)
	}
	if err := tmpl.ExecuteTemplate(w, "layout", p); err != nil {
		return fmt.Errorf("rendering %s: %w", name, err)
	}
	return nil
}

// Catalog renders the buyer catalog.
func (ts *Templates) Catalog(w io.Writer, v buyer.View) error {
	return ts.Render(w, PageCatalog, Page{Title: "Gallery", Status: v.Status, Data: v})
}

// Cart renders the buyer cart.
func (ts *Templates) Cart(w io.Writer, v buyer.View) error {
	return ts.Render(w, PageCart, Page{Title: "Cart", Status: v.Status, Data: v})
}

// Artwork renders an artwork detail page.
func (ts *Templates) Artwork(w io.Writer, d *buyer.Detail) error {
	return ts.Render(w, PageArtwork, Page{Title: d.Artwork.Name, Data: d})
}

// SellerData is the seller dashboard.
type SellerData struct {
	Artworks  []model.Artwork
	Offline   bool
	FetchedAt time.Time
}

// Seller renders the seller dashboard.
func (ts *Templates) Seller(w io.Writer, status *notify.Notification, d SellerData) error {
	return ts.Render(w, PageSeller, Page{Title: "My Artworks", Status: status, Data: d})
}

// ARData is an AR session view.
type ARData struct {
	State    ar.State
	Guidance string
	Intent   string
}

// AR renders an AR session.
func (ts *Templates) AR(w io.Writer, status *notify.Notification, d ARData) error {
	return ts.Render(w, PageAR, Page{Title: "AR", Status: status, Data: d})
}
