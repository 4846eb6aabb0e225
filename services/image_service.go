// File: /services/image_service.go
package services

import (
	"context"
	"fmt"
	"mime"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	applog "kustommania/logger"
	"kustommania/models"
	"kustommania/repositories"
	"kustommania/storage"
)

// ImageGroup is one motorcycle's gallery on the admin images page
type ImageGroup struct {
	MotorcycleID   string
	MotorcycleName string
	Images         []models.MotorcycleImage
}

type ImageService struct {
	imageRepo      *repositories.ImageRepository
	motorcycleRepo *repositories.MotorcycleRepository
	disk           storage.Disk
	maxBytes       int64
}

func NewImageService(imageRepo *repositories.ImageRepository, motorcycleRepo *repositories.MotorcycleRepository, disk storage.Disk, maxBytes int64) *ImageService {
	return &ImageService{
		imageRepo:      imageRepo,
		motorcycleRepo: motorcycleRepo,
		disk:           disk,
		maxBytes:       maxBytes,
	}
}

// Upload stores each file and appends it to the gallery. Files are
// validated up front so a bad file rejects the whole batch.
func (s *ImageService) Upload(ctx context.Context, motorcycleID string, files []*multipart.FileHeader) ([]models.MotorcycleImage, error) {
	if len(files) == 0 {
		return nil, invalid("no files uploaded")
	}
	if _, err := s.motorcycleRepo.FindByID(ctx, motorcycleID); err != nil {
		return nil, translate(err, "find motorcycle")
	}
	for _, fh := range files {
		if err := s.validate(fh); err != nil {
			return nil, err
		}
	}

	order, err := s.imageRepo.NextDisplayOrder(ctx, motorcycleID)
	if err != nil {
		return nil, translate(err, "next display order")
	}

	created := make([]models.MotorcycleImage, 0, len(files))
	for _, fh := range files {
		img, err := s.store(ctx, motorcycleID, fh, order)
		if err != nil {
			return created, err
		}
		created = append(created, *img)
		order++
	}

	applog.FromContext(ctx).Info("images uploaded",
		zap.String("motorcycle_id", motorcycleID),
		zap.Int("count", len(created)),
	)
	return created, nil
}

func (s *ImageService) validate(fh *multipart.FileHeader) error {
	if !IsImageContentType(fh.Header.Get("Content-Type")) {
		return invalid("%s is not an image", fh.Filename)
	}
	if s.maxBytes > 0 && fh.Size > s.maxBytes {
		return invalid("%s exceeds %d bytes", fh.Filename, s.maxBytes)
	}
	return nil
}

func (s *ImageService) store(ctx context.Context, motorcycleID string, fh *multipart.FileHeader, order int) (*models.MotorcycleImage, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload %s: %w", fh.Filename, err)
	}
	defer f.Close()

	key := ImageKey(motorcycleID, fh.Filename)
	obj, err := s.disk.Put(ctx, key, f, fh.Header.Get("Content-Type"))
	if err != nil {
		return nil, fmt.Errorf("store %s: %w", fh.Filename, err)
	}

	img := &models.MotorcycleImage{
		ID:           uuid.New().String(),
		MotorcycleID: motorcycleID,
		ImageURL:     obj.URL,
		StorageKey:   obj.Key,
		DisplayOrder: order,
	}
	if err := s.imageRepo.Create(ctx, img); err != nil {
		if derr := s.disk.Delete(ctx, obj.Key); derr != nil {
			applog.FromContext(ctx).Warn("could not remove orphaned upload", zap.String("key", obj.Key), zap.Error(derr))
		}
		return nil, translate(err, "create image")
	}
	return img, nil
}

// ImageKey is motorcycles/{id}/{uuid}{ext} with a lowercased extension
func ImageKey(motorcycleID, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return fmt.Sprintf("motorcycles/%s/%s%s", motorcycleID, uuid.New().String(), ext)
}

// IsImageContentType accepts image/* media types only
func IsImageContentType(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return strings.HasPrefix(mediaType, "image/")
}

// Delete removes the row, then the stored file. File errors are logged.
func (s *ImageService) Delete(ctx context.Context, imageID string) (*models.MotorcycleImage, error) {
	img, err := s.imageRepo.Delete(ctx, imageID)
	if err != nil {
		return nil, translate(err, "delete image")
	}

	log := applog.FromContext(ctx)
	if img.StorageKey != "" {
		if err := s.disk.Delete(ctx, img.StorageKey); err != nil {
			log.Warn("could not delete stored image",
				zap.String("image_id", img.ID),
				zap.String("key", img.StorageKey),
				zap.Error(err),
			)
		}
	}
	log.Info("image deleted", zap.String("image_id", img.ID), zap.String("motorcycle_id", img.MotorcycleID))
	return img, nil
}

func (s *ImageService) SetPrimary(ctx context.Context, imageID string) (*models.MotorcycleImage, error) {
	img, err := s.imageRepo.SetPrimary(ctx, imageID)
	if err != nil {
		return nil, translate(err, "set primary image")
	}
	applog.FromContext(ctx).Info("primary image set",
		zap.String("image_id", img.ID),
		zap.String("motorcycle_id", img.MotorcycleID),
	)
	return img, nil
}

// Reorder applies new display orders; negative values are rejected
func (s *ImageService) Reorder(ctx context.Context, motorcycleID string, orders map[string]int) error {
	for id, order := range orders {
		if order < 0 {
			return invalid("display order for %s must not be negative", id)
		}
	}
	if err := s.imageRepo.UpdateOrder(ctx, motorcycleID, orders); err != nil {
		return translate(err, "reorder images")
	}
	return nil
}

func (s *ImageService) ListByMotorcycle(ctx context.Context, motorcycleID string) ([]models.MotorcycleImage, error) {
	images, err := s.imageRepo.ListByMotorcycle(ctx, motorcycleID)
	if err != nil {
		return nil, translate(err, "list images")
	}
	return images, nil
}

// Groups returns every image grouped by motorcycle, in inventory order.
// Motorcycles without images are left out.
func (s *ImageService) Groups(ctx context.Context) ([]ImageGroup, error) {
	motorcycles, err := s.motorcycleRepo.List(ctx)
	if err != nil {
		return nil, translate(err, "list motorcycles")
	}
	images, err := s.imageRepo.ListAll(ctx)
	if err != nil {
		return nil, translate(err, "list images")
	}

	byMotorcycle := map[string][]models.MotorcycleImage{}
	for _, img := range images {
		byMotorcycle[img.MotorcycleID] = append(byMotorcycle[img.MotorcycleID], img)
	}

	groups := make([]ImageGroup, 0, len(byMotorcycle))
	for _, m := range motorcycles {
		imgs, ok := byMotorcycle[m.ID]
		if !ok {
			continue
		}
		groups = append(groups, ImageGroup{MotorcycleID: m.ID, MotorcycleName: m.Name, Images: imgs})
	}
	return groups, nil
}
