package client

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strconv"

	"github.com/erazemk/artverse/internal/common"
	"github.com/erazemk/artverse/internal/model"
)

const (
	artworkNotFound = "Artwork not found"
	assetNotFound   = "3D model not found"

	// maxAssetSize bounds a downloaded .glb.
	maxAssetSize = 256 << 20
)

// ListArtworks returns the buyer catalog, newest first.
func (c *Client) ListArtworks(ctx context.Context) ([]model.Artwork, error) {
	var artworks []model.Artwork
	if err := c.doJSON(ctx, http.MethodGet, "/artworks", nil, &artworks, ""); err != nil {
		return nil, err
	}
	return artworks, nil
}

// ListSellerArtworks returns the signed-in seller's inventory.
func (c *Client) ListSellerArtworks(ctx context.Context) ([]model.Artwork, error) {
	var artworks []model.Artwork
	if err := c.doJSON(ctx, http.MethodGet, "/seller/artworks", nil, &artworks, ""); err != nil {
		return nil, err
	}
	return artworks, nil
}

// GetArtwork returns one artwork. A missing artwork is ErrNotFound.
func (c *Client) GetArtwork(ctx context.Context, id int64) (*model.Artwork, error) {
	var a model.Artwork
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/api/artwork/%d", id), nil, &a, artworkNotFound); err != nil {
		return nil, err
	}
	return &a, nil
}

// UpdateArtwork replaces the editable fields of an artwork and returns
// the stored result.
func (c *Client) UpdateArtwork(ctx context.Context, id int64, upd model.ArtworkUpdate) (*model.Artwork, error) {
	var resp struct {
		result
		Artwork *model.Artwork `json:"artwork"`
	}
	if err := c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/api/artwork/%d", id), upd, &resp, artworkNotFound); err != nil {
		return nil, err
	}
	if err := resp.check("updating artwork"); err != nil {
		return nil, err
	}
	if resp.Artwork == nil {
		return nil, common.Transport("", fmt.Errorf("updating artwork %d: response carries no artwork", id))
	}
	return resp.Artwork, nil
}

// DeleteArtwork removes an artwork.
func (c *Client) DeleteArtwork(ctx context.Context, id int64) error {
	var resp result
	if err := c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/api/artwork/%d", id), nil, &resp, artworkNotFound); err != nil {
		return err
	}
	return resp.check("deleting artwork")
}

// CreateArtwork submits an image and its metadata to the asset pipeline,
// which stores the artwork together with its generated 3D asset.
func (c *Client) CreateArtwork(ctx context.Context, upload model.ArtworkUpload) (int64, error) {
	body, contentType, err := encodeUpload(upload)
	if err != nil {
		return 0, err
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/make-glb", body, contentType)
	if err != nil {
		return 0, err
	}
	resp, err := c.send(req, "")
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	var out struct {
		result
		ArtworkID int64 `json:"artwork_id"`
	}
	if err := decodeJSON(resp.Body, &out); err != nil {
		return 0, err
	}
	if err := out.check("creating artwork"); err != nil {
		return 0, err
	}
	return out.ArtworkID, nil
}

func encodeUpload(upload model.ArtworkUpload) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	filename := upload.Filename
	if filename == "" {
		filename = "artwork.jpg"
	}
	mime := upload.MIME
	if mime == "" {
		mime = http.DetectContentType(upload.Image)
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename=%q`, filename))
	h.Set("Content-Type", mime)
	part, err := w.CreatePart(h)
	if err != nil {
		return nil, "", fmt.Errorf("creating image part: %w", err)
	}
	if _, err := part.Write(upload.Image); err != nil {
		return nil, "", fmt.Errorf("writing image part: %w", err)
	}

	fields := []struct{ key, value string }{
		{"name", upload.Name},
		{"description", upload.Description},
		{"artwork_type", upload.ArtworkType},
		{"artist", upload.Artist},
		{"dimensions", upload.Dimensions},
		{"medium", upload.Medium},
		{"style", upload.Style},
	}
	if upload.Price != nil {
		fields = append(fields, struct{ key, value string }{"price", strconv.FormatFloat(*upload.Price, 'f', -1, 64)})
	}
	if upload.YearCreated != nil {
		fields = append(fields, struct{ key, value string }{"year_created", strconv.Itoa(*upload.YearCreated)})
	}
	for _, f := range fields {
		if err := w.WriteField(f.key, f.value); err != nil {
			return nil, "", fmt.Errorf("writing field %s: %w", f.key, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("closing multipart body: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}

// LoadAsset downloads an artwork's binary glTF asset and checks its
// header.
func (c *Client) LoadAsset(ctx context.Context, id int64) ([]byte, error) {
	req, err := c.newRequest(ctx, http.MethodGet, model.AssetPath(id), nil, "")
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "model/gltf-binary")

	resp, err := c.send(req, assetNotFound)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxAssetSize+1))
	if err != nil {
		return nil, common.Transport("", fmt.Errorf("reading asset %d: %w", id, err))
	}
	if len(data) > maxAssetSize {
		return nil, common.Transport("", fmt.Errorf("asset %d exceeds %d bytes", id, maxAssetSize))
	}
	if err := checkGLB(data); err != nil {
		return nil, common.Transport("", fmt.Errorf("asset %d: %w", id, err))
	}
	return data, nil
}

// checkGLB validates the 12-byte binary glTF header: magic, version 2,
// and a total length that fits the payload.
func checkGLB(data []byte) error {
	if len(data) < 12 {
		return fmt.Errorf("truncated glTF header (%d bytes)", len(data))
	}
	if string(data[:4]) != "glTF" {
		return fmt.Errorf("not a binary glTF file")
	}
	if v := binary.LittleEndian.Uint32(data[4:8]); v != 2 {
		return fmt.Errorf("unsupported glTF version %d", v)
	}
	if n := binary.LittleEndian.Uint32(data[8:12]); int(n) > len(data) {
		return fmt.Errorf("glTF length %d exceeds payload of %d bytes", n, len(data))
	}
	return nil
}

// ImageURL is the absolute URL of an artwork's image.
func (c *Client) ImageURL(id int64) string {
	return c.url(model.ImagePath(id))
}

// AssetURL is the absolute URL of an artwork's 3D asset.
func (c *Client) AssetURL(id int64) string {
	return c.url(model.AssetPath(id))
}

// Recommendations returns artworks similar to id, best match first.
func (c *Client) Recommendations(ctx context.Context, id int64) ([]model.Recommendation, error) {
	var resp struct {
		ArtworkID       int64                  `json:"artwork_id"`
		Recommendations []model.Recommendation `json:"recommendations"`
	}
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/api/artwork/%d/recommendations", id), nil, &resp, artworkNotFound); err != nil {
		return nil, err
	}
	return resp.Recommendations, nil
}

// Health is the server's /health report.
type Health struct {
	Status         string `json:"status"`
	Timestamp      string `json:"timestamp"`
	MobileDetected bool   `json:"mobile_detected"`
	UserAgent      string `json:"user_agent"`
}

// Health probes server connectivity.
func (c *Client) Health(ctx context.Context) (*Health, error) {
	var h Health
	if err := c.doJSON(ctx, http.MethodGet, "/health", nil, &h, ""); err != nil {
		return nil, err
	}
	return &h, nil
}
