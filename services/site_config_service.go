// File: /services/site_config_service.go
package services

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	applog "kustommania/logger"
	"kustommania/models"
	"kustommania/repositories"
)

type SiteConfigService struct {
	repo *repositories.SiteConfigRepository
}

func NewSiteConfigService(repo *repositories.SiteConfigRepository) *SiteConfigService {
	return &SiteConfigService{repo: repo}
}

// Get never fails: a missing or unreadable row yields the defaults.
func (s *SiteConfigService) Get(ctx context.Context) models.SiteConfig {
	cfg, err := s.repo.Get(ctx)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			applog.FromContext(ctx).Warn("could not load site config", zap.Error(err))
		}
		return models.DefaultSiteConfig()
	}
	return *cfg
}

func (s *SiteConfigService) Save(ctx context.Context, req models.SiteConfigRequest) (models.SiteConfig, error) {
	cfg := models.SiteConfig{
		WhatsAppNumber:    strings.TrimSpace(req.WhatsAppNumber),
		HeroTitle:         strings.TrimSpace(req.HeroTitle),
		HeroSubtitle:      strings.TrimSpace(req.HeroSubtitle),
		HeroDescription:   strings.TrimSpace(req.HeroDescription),
		HeroButtonText:    strings.TrimSpace(req.HeroButtonText),
		HeroBackgroundURL: optional(req.HeroBackgroundURL),
		InstagramURL:      optional(req.InstagramURL),
		FacebookURL:       optional(req.FacebookURL),
	}
	if StripNonDigits(cfg.WhatsAppNumber) == "" {
		return cfg, invalid("whatsapp number must contain digits")
	}
	if cfg.HeroTitle == "" {
		return cfg, invalid("hero title is required")
	}

	if err := s.repo.Save(ctx, &cfg); err != nil {
		return cfg, translate(err, "save site config")
	}
	applog.FromContext(ctx).Info("site config updated")
	return cfg, nil
}
