package model

import "fmt"

// Artwork is a listed piece as served by the inventory collaborator.
// Price is nil when the artwork is "price on request".
type Artwork struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Artist      string     `json:"artist,omitempty"`
	Description string     `json:"description,omitempty"`
	ArtworkType string     `json:"artwork_type,omitempty"`
	Medium      string     `json:"medium,omitempty"`
	Style       string     `json:"style,omitempty"`
	Dimensions  string     `json:"dimensions,omitempty"`
	YearCreated *int       `json:"year_created,omitempty"`
	Price       *float64   `json:"price"`
	IsSold      bool       `json:"is_sold"`
	Filename    string     `json:"filename,omitempty"`
	CreatedAt   *Timestamp `json:"created_at,omitempty"`
}

// Priced reports whether the artwork carries a purchasable price.
func (a Artwork) Priced() bool {
	return a.Price != nil && *a.Price > 0
}

// PriceOrZero returns the price, treating "price on request" as 0.
func (a Artwork) PriceOrZero() float64 {
	if a.Price == nil {
		return 0
	}
	return *a.Price
}

// ArtworkUpdate is the body of PUT /api/artwork/{id}.
type ArtworkUpdate struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       *float64 `json:"price"`
	ArtworkType string   `json:"artwork_type"`
	Artist      string   `json:"artist"`
	YearCreated *int     `json:"year_created"`
	Dimensions  string   `json:"dimensions"`
	Medium      string   `json:"medium"`
	Style       string   `json:"style"`
}

// UpdateFrom prefills an edit form from an existing artwork.
func UpdateFrom(a Artwork) ArtworkUpdate {
	return ArtworkUpdate{
		Name:        a.Name,
		Description: a.Description,
		Price:       a.Price,
		ArtworkType: a.ArtworkType,
		Artist:      a.Artist,
		YearCreated: a.YearCreated,
		Dimensions:  a.Dimensions,
		Medium:      a.Medium,
		Style:       a.Style,
	}
}

// ArtworkUpload is the multipart payload of POST /make-glb.
type ArtworkUpload struct {
	ArtworkUpdate
	Image    []byte
	Filename string
	MIME     string
}

// Recommendation is one entry of GET /api/artwork/{id}/recommendations.
type Recommendation struct {
	ID     int64   `json:"id"`
	Name   string  `json:"name"`
	Artist string  `json:"artist,omitempty"`
	Style  string  `json:"style,omitempty"`
	Medium string  `json:"medium,omitempty"`
	Score  float64 `json:"score"`
}

// ImagePath is the collaborator path of an artwork's image.
func ImagePath(id int64) string {
	return fmt.Sprintf("/artwork/%d/image", id)
}

// AssetPath is the collaborator path of an artwork's binary glTF asset.
func AssetPath(id int64) string {
	return fmt.Sprintf("/artwork/%d/glb", id)
}

// Field option lists offered by the seller forms.
var (
	ArtworkTypes = []string{"painting", "sculpture", "photography", "digital", "print", "mixed_media", "other"}
	Mediums      = []string{"oil", "acrylic", "watercolor", "gouache", "pastel", "charcoal", "pencil", "ink", "mixed_media", "photography", "digital", "printmaking", "other"}
	Styles       = []string{"abstract", "realistic", "impressionist", "expressionist", "surrealist", "cubist", "minimalist", "pop_art", "contemporary", "modern", "classical", "other"}
)
