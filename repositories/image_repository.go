// File: /repositories/image_repository.go
package repositories

import (
	"context"
	"database/sql"
	"errors"

	"gorm.io/gorm"

	"kustommania/models"
)

// ImageRepository keeps exactly one primary image per motorcycle that has
// images. Every write that can change the primary flag runs in a
// transaction.
type ImageRepository struct {
	db *gorm.DB
}

func NewImageRepository(db *gorm.DB) *ImageRepository {
	return &ImageRepository{db: db}
}

func (r *ImageRepository) ListByMotorcycle(ctx context.Context, motorcycleID string) ([]models.MotorcycleImage, error) {
	var images []models.MotorcycleImage
	err := r.db.WithContext(ctx).
		Where("motorcycle_id = ?", motorcycleID).
		Order("display_order ASC, created_at ASC").
		Find(&images).Error
	return images, err
}

// ListAll returns every image grouped by motorcycle
func (r *ImageRepository) ListAll(ctx context.Context) ([]models.MotorcycleImage, error) {
	var images []models.MotorcycleImage
	err := r.db.WithContext(ctx).
		Order("motorcycle_id ASC, display_order ASC, created_at ASC").
		Find(&images).Error
	return images, err
}

func (r *ImageRepository) FindByID(ctx context.Context, id string) (*models.MotorcycleImage, error) {
	var image models.MotorcycleImage
	if err := r.db.WithContext(ctx).First(&image, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &image, nil
}

// NextDisplayOrder returns the order slot after the last image
func (r *ImageRepository) NextDisplayOrder(ctx context.Context, motorcycleID string) (int, error) {
	var max sql.NullInt64
	err := r.db.WithContext(ctx).Model(&models.MotorcycleImage{}).
		Where("motorcycle_id = ?", motorcycleID).
		Select("MAX(display_order)").
		Row().Scan(&max)
	if err != nil {
		return 0, err
	}
	if !max.Valid {
		return 0, nil
	}
	return int(max.Int64) + 1, nil
}

// Create inserts an image. The first image of a motorcycle becomes primary,
// and an image created as primary demotes its siblings.
func (r *ImageRepository) Create(ctx context.Context, image *models.MotorcycleImage) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var primaries int64
		if err := tx.Model(&models.MotorcycleImage{}).
			Where("motorcycle_id = ? AND is_primary = ?", image.MotorcycleID, true).
			Count(&primaries).Error; err != nil {
			return err
		}

		if primaries == 0 {
			image.IsPrimary = true
		} else if image.IsPrimary {
			if err := clearPrimary(tx, image.MotorcycleID); err != nil {
				return err
			}
		}

		return tx.Create(image).Error
	})
}

// SetPrimary flags one image as primary and clears the flag on its siblings
func (r *ImageRepository) SetPrimary(ctx context.Context, imageID string) (*models.MotorcycleImage, error) {
	var image models.MotorcycleImage
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&image, "id = ?", imageID).Error; err != nil {
			return err
		}
		if err := clearPrimary(tx, image.MotorcycleID); err != nil {
			return err
		}
		image.IsPrimary = true
		return tx.Model(&models.MotorcycleImage{}).
			Where("id = ?", image.ID).
			Update("is_primary", true).Error
	})
	if err != nil {
		return nil, err
	}
	return &image, nil
}

func clearPrimary(tx *gorm.DB, motorcycleID string) error {
	return tx.Model(&models.MotorcycleImage{}).
		Where("motorcycle_id = ? AND is_primary = ?", motorcycleID, true).
		Update("is_primary", false).Error
}

// UpdateOrder rewrites display orders for images of one motorcycle
func (r *ImageRepository) UpdateOrder(ctx context.Context, motorcycleID string, orders map[string]int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for id, order := range orders {
			if err := tx.Model(&models.MotorcycleImage{}).
				Where("id = ? AND motorcycle_id = ?", id, motorcycleID).
				Update("display_order", order).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes an image. When it was the primary one the lowest ordered
// sibling is promoted.
func (r *ImageRepository) Delete(ctx context.Context, imageID string) (*models.MotorcycleImage, error) {
	var image models.MotorcycleImage
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&image, "id = ?", imageID).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.MotorcycleImage{}, "id = ?", image.ID).Error; err != nil {
			return err
		}
		if !image.IsPrimary {
			return nil
		}

		var next models.MotorcycleImage
		err := tx.Where("motorcycle_id = ?", image.MotorcycleID).
			Order("display_order ASC, created_at ASC").
			First(&next).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return tx.Model(&models.MotorcycleImage{}).
			Where("id = ?", next.ID).
			Update("is_primary", true).Error
	})
	if err != nil {
		return nil, err
	}
	return &image, nil
}

func (r *ImageRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.MotorcycleImage{}).Count(&count).Error
	return count, err
}
