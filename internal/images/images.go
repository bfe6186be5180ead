// Package images turns uploaded product pictures into the string stored in
// Product.Image.
package images

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// MaxUploadBytes bounds a single product image.
const MaxUploadBytes = 2 << 20

var (
	// ErrNotImage indicates the upload is not a recognised image type.
	ErrNotImage = errors.New("images: not an image")
	// ErrTooLarge indicates the upload exceeds MaxUploadBytes.
	ErrTooLarge = errors.New("images: upload too large")
	// ErrEmpty indicates an empty upload.
	ErrEmpty = errors.New("images: empty upload")
)

// Uploader stores an image and returns the reference saved on the product.
type Uploader interface {
	Upload(ctx context.Context, filename string, data []byte) (string, error)
}

// DataURIUploader inlines the image as a base64 data URI.
type DataURIUploader struct{}

// Upload returns data as a data: URI.
func (DataURIUploader) Upload(ctx context.Context, filename string, data []byte) (string, error) {
	mime, err := Check(data)
	if err != nil {
		return "", err
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// Check validates size and content type and returns the detected MIME type.
func Check(data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrEmpty
	}
	if len(data) > MaxUploadBytes {
		return "", fmt.Errorf("%w: %d bytes", ErrTooLarge, len(data))
	}
	detected := mimetype.Detect(data)
	if !strings.HasPrefix(detected.String(), "image/") {
		return "", fmt.Errorf("%w: %s", ErrNotImage, detected.String())
	}
	mime, _, _ := strings.Cut(detected.String(), ";")
	return mime, nil
}
