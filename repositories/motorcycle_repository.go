// File: /repositories/motorcycle_repository.go
package repositories

import (
	"context"

	"gorm.io/gorm"

	"kustommania/models"
)

type MotorcycleRepository struct {
	db *gorm.DB
}

func NewMotorcycleRepository(db *gorm.DB) *MotorcycleRepository {
	return &MotorcycleRepository{db: db}
}

func preloadImages(db *gorm.DB) *gorm.DB {
	return db.Order("display_order ASC, created_at ASC")
}

// List returns every motorcycle in manual display order with images
func (r *MotorcycleRepository) List(ctx context.Context) ([]models.Motorcycle, error) {
	var motorcycles []models.Motorcycle
	err := r.db.WithContext(ctx).
		Preload("Images", preloadImages).
		Order("display_order ASC, created_at DESC").
		Find(&motorcycles).Error
	return motorcycles, err
}

// ListByStatus returns motorcycles in one stage. Stock also matches rows
// with no status.
func (r *MotorcycleRepository) ListByStatus(ctx context.Context, status models.MotorcycleStatus) ([]models.Motorcycle, error) {
	var motorcycles []models.Motorcycle
	err := statusScope(r.db.WithContext(ctx), status).
		Order("display_order ASC, created_at DESC").
		Find(&motorcycles).Error
	return motorcycles, err
}

// Latest returns the most recently created motorcycles in a stage
func (r *MotorcycleRepository) Latest(ctx context.Context, status models.MotorcycleStatus, limit int) ([]models.Motorcycle, error) {
	var motorcycles []models.Motorcycle
	err := statusScope(r.db.WithContext(ctx), status).
		Preload("Images", preloadImages).
		Order("created_at DESC").
		Limit(limit).
		Find(&motorcycles).Error
	return motorcycles, err
}

func statusScope(db *gorm.DB, status models.MotorcycleStatus) *gorm.DB {
	if status == models.StatusStock {
		return db.Where("status = ? OR status IS NULL OR status = ''", status)
	}
	return db.Where("status = ?", status)
}

// FindByIDs returns the motorcycles with the given ids, unordered
func (r *MotorcycleRepository) FindByIDs(ctx context.Context, ids []string) ([]models.Motorcycle, error) {
	var motorcycles []models.Motorcycle
	if len(ids) == 0 {
		return motorcycles, nil
	}
	err := r.db.WithContext(ctx).
		Preload("Images", preloadImages).
		Where("id IN ?", ids).
		Find(&motorcycles).Error
	return motorcycles, err
}

func (r *MotorcycleRepository) FindByID(ctx context.Context, id string) (*models.Motorcycle, error) {
	var motorcycle models.Motorcycle
	err := r.db.WithContext(ctx).
		Preload("Images", preloadImages).
		First(&motorcycle, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &motorcycle, nil
}

func (r *MotorcycleRepository) FindBySlug(ctx context.Context, slug string) (*models.Motorcycle, error) {
	var motorcycle models.Motorcycle
	err := r.db.WithContext(ctx).
		Preload("Images", preloadImages).
		First(&motorcycle, "slug = ?", slug).Error
	if err != nil {
		return nil, err
	}
	return &motorcycle, nil
}

// SlugExists reports whether another motorcycle already uses slug
func (r *MotorcycleRepository) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&models.Motorcycle{}).Where("slug = ?", slug)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *MotorcycleRepository) Create(ctx context.Context, motorcycle *models.Motorcycle) error {
	return r.db.WithContext(ctx).Omit("Images").Create(motorcycle).Error
}

// Update writes every editable column, including nil values
func (r *MotorcycleRepository) Update(ctx context.Context, motorcycle *models.Motorcycle) error {
	return r.db.WithContext(ctx).Model(motorcycle).
		Select("*").
		Omit("id", "created_at", "Images").
		Updates(motorcycle).Error
}

// UpdateStatus writes a stage and optional sale date
func (r *MotorcycleRepository) UpdateStatus(ctx context.Context, id string, status models.MotorcycleStatus, updates map[string]interface{}) error {
	if updates == nil {
		updates = map[string]interface{}{}
	}
	updates["status"] = status

	result := r.db.WithContext(ctx).Model(&models.Motorcycle{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes a motorcycle and its image rows in one transaction
func (r *MotorcycleRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("motorcycle_id = ?", id).Delete(&models.MotorcycleImage{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&models.Motorcycle{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *MotorcycleRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Motorcycle{}).Count(&count).Error
	return count, err
}
