// Package storage saves uploaded motorcycle photos on the local disk, an
// S3-compatible bucket, or Cloudinary.
package storage

import (
	"context"
	"fmt"
	"io"

	"kustommania/config"
)

// Object identifies a stored file
type Object struct {
	// Key is what Delete needs: a path, an S3 key or a Cloudinary public id.
	Key string
	URL string
}

// Disk is a write/delete object store
type Disk interface {
	Put(ctx context.Context, key string, r io.Reader, contentType string) (Object, error)
	Delete(ctx context.Context, key string) error
}

// New builds the disk selected by STORAGE_DRIVER
func New(ctx context.Context, cfg *config.Config) (Disk, error) {
	switch cfg.StorageDriver {
	case "", "local":
		return NewLocalDisk(cfg.StorageLocalRoot, cfg.StoragePublicURL)
	case "s3":
		return NewS3Disk(ctx, S3Options{
			Bucket:   cfg.S3Bucket,
			Region:   cfg.S3Region,
			Key:      cfg.S3Key,
			Secret:   cfg.S3Secret,
			Endpoint: cfg.S3Endpoint,
			BaseURL:  cfg.S3URL,
		})
	case "cloudinary":
		return NewCloudinaryDisk(cfg.CloudinaryURL, "kustommania")
	default:
		return nil, fmt.Errorf("storage: unsupported STORAGE_DRIVER %q (supported: local, s3, cloudinary)", cfg.StorageDriver)
	}
}
