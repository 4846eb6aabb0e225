// File: /repositories/site_config_repository.go
package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"kustommania/models"
)

type SiteConfigRepository struct {
	db *gorm.DB
}

func NewSiteConfigRepository(db *gorm.DB) *SiteConfigRepository {
	return &SiteConfigRepository{db: db}
}

// Get returns the singleton row or gorm.ErrRecordNotFound
func (r *SiteConfigRepository) Get(ctx context.Context) (*models.SiteConfig, error) {
	var cfg models.SiteConfig
	if err := r.db.WithContext(ctx).First(&cfg, "id = ?", models.SiteConfigID).Error; err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save updates or creates the singleton row
func (r *SiteConfigRepository) Save(ctx context.Context, cfg *models.SiteConfig) error {
	cfg.ID = models.SiteConfigID

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.SiteConfig
		err := tx.First(&existing, "id = ?", cfg.ID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tx.Create(cfg).Error
		}
		if err != nil {
			return err
		}

		return tx.Model(&existing).Updates(map[string]interface{}{
			"whatsapp_number":     cfg.WhatsAppNumber,
			"hero_title":          cfg.HeroTitle,
			"hero_subtitle":       cfg.HeroSubtitle,
			"hero_description":    cfg.HeroDescription,
			"hero_button_text":    cfg.HeroButtonText,
			"hero_background_url": cfg.HeroBackgroundURL,
			"instagram_url":       cfg.InstagramURL,
			"facebook_url":        cfg.FacebookURL,
			"updated_at":          time.Now(),
		}).Error
	})
}
