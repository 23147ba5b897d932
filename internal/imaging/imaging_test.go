package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
)

func createTestJPEG(w, h int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{200, 120, 40, 255})
		}
	}
	var buf bytes.Buffer
	jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90})
	return buf.Bytes()
}

func createTestPNG(w, h int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{0, 0, 255, 255})
		}
	}
	var buf bytes.Buffer
	png.Encode(&buf, img)
	return buf.Bytes()
}

func TestProcessJPEG(t *testing.T) {
	result, err := Process(createTestJPEG(100, 80))
	if err != nil {
		t.Fatalf("Process JPEG: %v", err)
	}
	if result.MIME != "image/jpeg" {
		t.Errorf("expected image/jpeg, got %s", result.MIME)
	}
	if result.Width != 100 || result.Height != 80 {
		t.Errorf("expected 100x80, got %dx%d", result.Width, result.Height)
	}
}

func TestProcessPNGBecomesJPEG(t *testing.T) {
	result, err := Process(createTestPNG(64, 64))
	if err != nil {
		t.Fatalf("Process PNG: %v", err)
	}
	if result.MIME != "image/jpeg" {
		t.Errorf("expected image/jpeg, got %s", result.MIME)
	}
	if _, format, err := image.Decode(bytes.NewReader(result.Data)); err != nil || format != "jpeg" {
		t.Errorf("expected decodable jpeg, got format %q err %v", format, err)
	}
}

func TestProcessDownscaleKeepsAspect(t *testing.T) {
	result, err := Process(createTestPNG(4096, 1024))
	if err != nil {
		t.Fatalf("Process large image: %v", err)
	}
	if result.Width != MaxDimension || result.Height != MaxDimension/4 {
		t.Errorf("expected %dx%d, got %dx%d", MaxDimension, MaxDimension/4, result.Width, result.Height)
	}
}

func TestProcessTallImage(t *testing.T) {
	result, err := Process(createTestPNG(512, 4096))
	if err != nil {
		t.Fatalf("Process tall image: %v", err)
	}
	if result.Height != MaxDimension || result.Width != MaxDimension/8 {
		t.Errorf("expected %dx%d, got %dx%d", MaxDimension/8, MaxDimension, result.Width, result.Height)
	}
}

func TestProcessSmallImageNotUpscaled(t *testing.T) {
	result, err := Process(createTestJPEG(50, 50))
	if err != nil {
		t.Fatalf("Process small image: %v", err)
	}
	if result.Width != 50 || result.Height != 50 {
		t.Errorf("small image should not be resized: got %dx%d", result.Width, result.Height)
	}
}

func TestProcessRejectsNonImages(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"text", []byte("not an image")},
		{"gif", []byte("GIF89a...")},
		{"empty", nil},
	}

	for _, tt := range tests {
		if _, err := Process(tt.data); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}
}

func TestPrepare(t *testing.T) {
	data, mime, err := Prepare(createTestPNG(10, 10))
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if mime != "image/jpeg" || len(data) == 0 {
		t.Errorf("unexpected result: mime=%q len=%d", mime, len(data))
	}

	if _, _, err := Prepare([]byte("nope")); err == nil {
		t.Error("expected error for invalid input")
	}
}
