package images

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

const cloudinaryFolder = "rama-toys/products"

// CloudinaryUploader stores images on Cloudinary and keeps the secure URL.
type CloudinaryUploader struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinaryUploader builds an uploader from a cloudinary:// URL.
func NewCloudinaryUploader(rawURL string) (*CloudinaryUploader, error) {
	cld, err := cloudinary.NewFromURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("images: cloudinary config: %w", err)
	}
	return &CloudinaryUploader{cld: cld}, nil
}

// Upload sends data to Cloudinary.
func (u *CloudinaryUploader) Upload(ctx context.Context, filename string, data []byte) (string, error) {
	if _, err := Check(data); err != nil {
		return "", err
	}
	publicID := strings.TrimSuffix(path.Base(filename), path.Ext(filename))
	params := uploader.UploadParams{Folder: cloudinaryFolder}
	if publicID != "" && publicID != "." {
		params.PublicID = publicID
	}
	result, err := u.cld.Upload.Upload(ctx, bytes.NewReader(data), params)
	if err != nil {
		return "", fmt.Errorf("images: cloudinary upload: %w", err)
	}
	if result.Error.Message != "" {
		return "", fmt.Errorf("images: cloudinary upload: %s", result.Error.Message)
	}
	return result.SecureURL, nil
}

var _ Uploader = (*CloudinaryUploader)(nil)
