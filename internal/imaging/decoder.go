// Package imaging decodes data-URI encoded images into stored media files.
package imaging

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var (
	// ErrInvalidEncoding indicates a malformed data URI or broken base64 payload.
	ErrInvalidEncoding = errors.New("invalid image encoding")
	// ErrUnsupportedFormat indicates the decoded content is not a supported
	// image format or does not match the declared extension.
	ErrUnsupportedFormat = errors.New("unsupported image format")
)

const dataURIPrefix = "data:image/"

// Decoder writes decoded images under a media directory. subdir separates
// recipe images from avatars.
type Decoder struct {
	mediaDir string
}

// NewDecoder returns a Decoder rooted at mediaDir.
func NewDecoder(mediaDir string) *Decoder {
	return &Decoder{mediaDir: mediaDir}
}

// Decode parses a `data:image/<ext>;base64,<payload>` string, verifies the
// payload really is a jpeg or png matching the declared extension, and
// writes it to <mediaDir>/<subdir>/<uuid>.<ext>. It returns the path
// relative to the media directory.
func (d *Decoder) Decode(dataURI, subdir string) (string, error) {
	if !strings.HasPrefix(dataURI, dataURIPrefix) {
		return "", fmt.Errorf("%w: expected a data:image/ URI", ErrInvalidEncoding)
	}

	meta, payload, ok := strings.Cut(dataURI, ";base64,")
	if !ok {
		return "", fmt.Errorf("%w: missing base64 marker", ErrInvalidEncoding)
	}
	declared := normalizeExt(strings.TrimPrefix(meta, dataURIPrefix))

	content, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidEncoding, err)
	}

	format, err := sniffFormat(content)
	if err != nil {
		return "", err
	}
	if declared != format {
		return "", fmt.Errorf("%w: declared %s, got %s", ErrUnsupportedFormat, declared, format)
	}

	dir := filepath.Join(d.mediaDir, subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create media dir: %w", err)
	}

	name := fmt.Sprintf("%s.%s", uuid.New().String(), format)
	if err := os.WriteFile(filepath.Join(dir, name), content, 0o644); err != nil {
		return "", fmt.Errorf("write image file: %w", err)
	}

	return filepath.ToSlash(filepath.Join(subdir, name)), nil
}

// Remove deletes a previously stored media file. Missing files are ignored.
func (d *Decoder) Remove(relPath string) error {
	if relPath == "" {
		return nil
	}
	err := os.Remove(filepath.Join(d.mediaDir, filepath.FromSlash(relPath)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// sniffFormat detects the actual image format from content. Only jpeg and
// png are accepted.
func sniffFormat(content []byte) (string, error) {
	switch http.DetectContentType(content) {
	case "image/jpeg", "image/png":
	default:
		return "", fmt.Errorf("%w: only jpeg and png are accepted", ErrUnsupportedFormat)
	}

	_, format, err := image.DecodeConfig(bytes.NewReader(content))
	if err != nil {
		return "", fmt.Errorf("%w: undecodable image data", ErrUnsupportedFormat)
	}
	return normalizeExt(format), nil
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(ext)
	if ext == "jpg" {
		return "jpeg"
	}
	return ext
}
