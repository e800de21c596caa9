package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// createTestImage creates a simple test image with the given dimensions.
func createTestImage(width, height int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	return img
}

func encodeTestJPEG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("encoding test image: %v", err)
	}
	return buf.Bytes()
}

func TestProcessTeamPhoto(t *testing.T) {
	dir := t.TempDir()
	p := NewProcessor(dir)

	data := encodeTestJPEG(t, createTestImage(1600, 1200))
	result, err := p.ProcessTeamPhoto(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ProcessTeamPhoto: %v", err)
	}

	// Fitted into the 800px box keeping aspect ratio
	if result.Width != 800 || result.Height != 600 {
		t.Errorf("dimensions = %dx%d, want 800x600", result.Width, result.Height)
	}
	if !strings.HasPrefix(result.URL, "/uploads/team/") {
		t.Errorf("URL = %q, want /uploads/team/ prefix", result.URL)
	}
	if !strings.HasSuffix(result.ThumbnailURL, "_thumb.jpg") {
		t.Errorf("ThumbnailURL = %q, want _thumb.jpg suffix", result.ThumbnailURL)
	}

	// Both files exist on disk
	for _, url := range []string{result.URL, result.ThumbnailURL} {
		path := filepath.Join(dir, "team", filepath.Base(url))
		if _, err := os.Stat(path); err != nil {
			t.Errorf("stored file missing: %v", err)
		}
	}

	// Thumbnail is a square of the configured size
	thumbFile, err := os.Open(filepath.Join(dir, "team", filepath.Base(result.ThumbnailURL)))
	if err != nil {
		t.Fatalf("opening thumbnail: %v", err)
	}
	defer thumbFile.Close()
	cfg, _, err := image.DecodeConfig(thumbFile)
	if err != nil {
		t.Fatalf("decoding thumbnail config: %v", err)
	}
	if cfg.Width != ThumbnailSize || cfg.Height != ThumbnailSize {
		t.Errorf("thumbnail = %dx%d, want %dx%d", cfg.Width, cfg.Height, ThumbnailSize, ThumbnailSize)
	}
}

func TestProcessTeamPhoto_SmallImageNotUpscaled(t *testing.T) {
	p := NewProcessor(t.TempDir())

	data := encodeTestJPEG(t, createTestImage(400, 300))
	result, err := p.ProcessTeamPhoto(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ProcessTeamPhoto: %v", err)
	}
	if result.Width != 400 || result.Height != 300 {
		t.Errorf("dimensions = %dx%d, small images must not be upscaled", result.Width, result.Height)
	}
}

func TestProcessTeamPhoto_PNGInput(t *testing.T) {
	p := NewProcessor(t.TempDir())

	var buf bytes.Buffer
	if err := png.Encode(&buf, createTestImage(100, 100)); err != nil {
		t.Fatalf("encoding png: %v", err)
	}

	result, err := p.ProcessTeamPhoto(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("ProcessTeamPhoto: %v", err)
	}
	// Output is always JPEG
	if !strings.HasSuffix(result.URL, ".jpg") {
		t.Errorf("URL = %q, want .jpg output", result.URL)
	}
}

func TestProcessTeamPhoto_RejectsNonImage(t *testing.T) {
	p := NewProcessor(t.TempDir())

	_, err := p.ProcessTeamPhoto(strings.NewReader("definitely not an image"))
	if err == nil {
		t.Error("expected error for non-image data")
	}
}

func TestDeletePhoto(t *testing.T) {
	dir := t.TempDir()
	p := NewProcessor(dir)

	data := encodeTestJPEG(t, createTestImage(100, 100))
	result, err := p.ProcessTeamPhoto(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ProcessTeamPhoto: %v", err)
	}

	if err := p.DeletePhoto(result.URL); err != nil {
		t.Fatalf("DeletePhoto: %v", err)
	}

	for _, url := range []string{result.URL, result.ThumbnailURL} {
		path := filepath.Join(dir, "team", filepath.Base(url))
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Errorf("file still exists after delete: %s", path)
		}
	}

	// Deleting again is a no-op
	if err := p.DeletePhoto(result.URL); err != nil {
		t.Errorf("second DeletePhoto: %v", err)
	}
}

func TestIsSupportedType(t *testing.T) {
	p := NewProcessor("./uploads")

	tests := []struct {
		mimeType string
		want     bool
	}{
		{"image/jpeg", true},
		{"image/png", true},
		{"image/gif", true},
		{"image/webp", true},
		{"image/tiff", false},
		{"application/pdf", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := p.IsSupportedType(tt.mimeType); got != tt.want {
			t.Errorf("IsSupportedType(%q) = %v, want %v", tt.mimeType, got, tt.want)
		}
	}
}

func TestDetectMimeType(t *testing.T) {
	p := NewProcessor("./uploads")

	data := encodeTestJPEG(t, createTestImage(10, 10))
	if got := p.DetectMimeType(data); got != "image/jpeg" {
		t.Errorf("DetectMimeType = %q, want image/jpeg", got)
	}
}
