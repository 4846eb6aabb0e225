package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryDisk uploads images to Cloudinary. Keys are public ids.
type CloudinaryDisk struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinaryDisk(cloudinaryURL, folder string) (*CloudinaryDisk, error) {
	if cloudinaryURL == "" {
		return nil, fmt.Errorf("storage/cloudinary: CLOUDINARY_URL is not configured")
	}
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("storage/cloudinary: init: %w", err)
	}
	return &CloudinaryDisk{cld: cld, folder: folder}, nil
}

func (d *CloudinaryDisk) Put(ctx context.Context, key string, r io.Reader, _ string) (Object, error) {
	publicID := strings.TrimSuffix(key, path.Ext(key))

	result, err := d.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		PublicID: publicID,
		Folder:   d.folder,
	})
	if err != nil {
		return Object{}, fmt.Errorf("storage/cloudinary: upload %s: %w", key, err)
	}
	if result.Error.Message != "" {
		return Object{}, fmt.Errorf("storage/cloudinary: upload %s: %s", key, result.Error.Message)
	}

	return Object{Key: result.PublicID, URL: result.SecureURL}, nil
}

func (d *CloudinaryDisk) Delete(ctx context.Context, key string) error {
	result, err := d.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: key})
	if err != nil {
		return fmt.Errorf("storage/cloudinary: destroy %s: %w", key, err)
	}
	if result.Error.Message != "" {
		return fmt.Errorf("storage/cloudinary: destroy %s: %s", key, result.Error.Message)
	}
	return nil
}
