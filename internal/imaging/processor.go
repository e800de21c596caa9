// Copyright (c) 2025-2026 Avenra GmbH
// SPDX-License-Identifier: GPL-3.0-or-later

// Package imaging processes uploaded team photos: decode, resize, thumbnail
// and save under the uploads directory with generated names.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	_ "golang.org/x/image/webp" // WebP decoder
)

// Photo size limits. Photos are fitted into MaxPhotoSize, thumbnails are
// center-cropped squares.
const (
	MaxPhotoSize  = 800
	ThumbnailSize = 256
	JPEGQuality   = 90
)

// PhotoResult describes a processed team photo on disk.
type PhotoResult struct {
	// URL is the public path of the full-size photo, e.g. /uploads/team/<id>.jpg.
	URL string
	// ThumbnailURL is the public path of the square thumbnail.
	ThumbnailURL string
	Width        int
	Height       int
	Size         int64
}

// Processor handles photo processing using pure Go libraries.
type Processor struct {
	uploadDir string
}

// NewProcessor creates a photo processor writing under uploadDir.
func NewProcessor(uploadDir string) *Processor {
	return &Processor{uploadDir: uploadDir}
}

// ProcessTeamPhoto reads an uploaded image, resizes it to fit MaxPhotoSize,
// creates a square thumbnail and stores both as JPEG under uploads/team/.
// All output is re-encoded, which also strips any metadata from the upload.
func (p *Processor) ProcessTeamPhoto(reader io.Reader) (*PhotoResult, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("reading image data: %w", err)
	}

	if format := detectFormat(data); format == "" {
		return nil, fmt.Errorf("unsupported image format")
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}

	photo := imaging.Fit(img, MaxPhotoSize, MaxPhotoSize, imaging.Lanczos)
	thumb := imaging.Fill(img, ThumbnailSize, ThumbnailSize, imaging.Center, imaging.Lanczos)

	id := uuid.New().String()
	photoName := id + ".jpg"
	thumbName := id + "_thumb.jpg"

	photoBytes, err := encodeJPEG(photo)
	if err != nil {
		return nil, fmt.Errorf("encoding photo: %w", err)
	}
	if err := p.savePhotoFile(photoName, photoBytes); err != nil {
		return nil, fmt.Errorf("saving photo: %w", err)
	}

	thumbBytes, err := encodeJPEG(thumb)
	if err != nil {
		return nil, fmt.Errorf("encoding thumbnail: %w", err)
	}
	if err := p.savePhotoFile(thumbName, thumbBytes); err != nil {
		return nil, fmt.Errorf("saving thumbnail: %w", err)
	}

	bounds := photo.Bounds()
	return &PhotoResult{
		URL:          "/uploads/team/" + photoName,
		ThumbnailURL: "/uploads/team/" + thumbName,
		Width:        bounds.Dx(),
		Height:       bounds.Dy(),
		Size:         int64(len(photoBytes)),
	}, nil
}

// DeletePhoto removes a stored photo and its thumbnail given the public URL
// returned by ProcessTeamPhoto. Unknown URLs are ignored.
func (p *Processor) DeletePhoto(photoURL string) error {
	name := filepath.Base(photoURL)
	if name == "." || name == "/" || !strings.HasSuffix(name, ".jpg") {
		return nil
	}

	photoPath := filepath.Join(p.uploadDir, "team", name)
	if err := os.Remove(photoPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("deleting photo: %w", err)
	}

	thumbName := strings.TrimSuffix(name, ".jpg") + "_thumb.jpg"
	thumbPath := filepath.Join(p.uploadDir, "team", thumbName)
	if err := os.Remove(thumbPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("deleting thumbnail: %w", err)
	}

	return nil
}

// IsSupportedType checks if a MIME type can be processed.
func (p *Processor) IsSupportedType(mimeType string) bool {
	switch mimeType {
	case "image/jpeg", "image/png", "image/gif", "image/webp":
		return true
	default:
		return false
	}
}

// DetectMimeType detects the MIME type of image data.
func (p *Processor) DetectMimeType(data []byte) string {
	contentType := http.DetectContentType(data)
	if idx := strings.Index(contentType, ";"); idx != -1 {
		contentType = contentType[:idx]
	}
	return contentType
}

func encodeJPEG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// detectFormat detects the image format from raw bytes.
func detectFormat(data []byte) string {
	contentType := http.DetectContentType(data)
	// Explicitly reject TIFF (CVE-2023-36308 in disintegration/imaging)
	if strings.Contains(contentType, "tiff") {
		return ""
	}
	switch {
	case strings.Contains(contentType, "jpeg"):
		return "jpeg"
	case strings.Contains(contentType, "png"):
		return "png"
	case strings.Contains(contentType, "gif"):
		return "gif"
	case strings.Contains(contentType, "webp"):
		return "webp"
	default:
		return ""
	}
}

// savePhotoFile writes data under uploads/team/ creating the directory if
// needed. The filename is generated by the caller, never user input.
func (p *Processor) savePhotoFile(filename string, data []byte) error {
	dir := filepath.Join(p.uploadDir, "team")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating upload directory: %w", err)
	}
	return os.WriteFile(filepath.Join(dir, filename), data, 0o644)
}
