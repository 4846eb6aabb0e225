// File: /services/lead_service.go
package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	applog "kustommania/logger"
	"kustommania/metrics"
	"kustommania/models"
	"kustommania/repositories"
)

// LeadService records contact intents and builds the WhatsApp hand-off.
type LeadService struct {
	leadRepo       *repositories.LeadRepository
	motorcycleRepo *repositories.MotorcycleRepository
	siteConfig     *SiteConfigService
	notifier       LeadNotifier
	fallback       string
	now            func() time.Time
}

func NewLeadService(
	leadRepo *repositories.LeadRepository,
	motorcycleRepo *repositories.MotorcycleRepository,
	siteConfig *SiteConfigService,
	notifier LeadNotifier,
	defaultWhatsAppNumber string,
) *LeadService {
	return &LeadService{
		leadRepo:       leadRepo,
		motorcycleRepo: motorcycleRepo,
		siteConfig:     siteConfig,
		notifier:       notifier,
		fallback:       defaultWhatsAppNumber,
		now:            time.Now,
	}
}

// SubmitContact stores the contact form and returns the WhatsApp link the
// visitor is forwarded to. A storage failure is logged and the link is
// still returned.
func (s *LeadService) SubmitContact(ctx context.Context, req models.ContactRequest, attr models.Attribution) (string, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Location = strings.TrimSpace(req.Location)
	if req.Name == "" || req.Location == "" {
		return "", invalid("name and location are required")
	}

	lead := &models.Lead{
		Name:               req.Name,
		Location:           req.Location,
		DNI:                optional(req.DNI),
		ConsultationReason: optional(req.ConsultationReason),
		InterestArea:       optional(req.InterestArea),
		SpecificQuestion:   optional(req.SpecificQuestion),
		MotorcycleName:     optional(req.Model),
		Source:             models.LeadSourceContactForm,
	}
	applyAttribution(lead, attr)
	s.record(ctx, lead)

	return s.link(ctx, ContactMessage(req)), nil
}

// SubmitWhatsApp records a click on a detail page button and returns the
// prefilled link for that motorcycle.
func (s *LeadService) SubmitWhatsApp(ctx context.Context, req models.WhatsAppLeadRequest) (string, error) {
	moto, err := s.motorcycleRepo.FindByID(ctx, req.MotorcycleID)
	if err != nil {
		return "", translate(err, "find motorcycle")
	}
	return s.whatsAppFor(ctx, moto, req.Location, req.Attribution), nil
}

// SubmitWhatsAppBySlug is the redirect variant used by plain links
func (s *LeadService) SubmitWhatsAppBySlug(ctx context.Context, slug, location string, attr models.Attribution) (string, error) {
	moto, err := s.motorcycleRepo.FindBySlug(ctx, slug)
	if err != nil {
		return "", translate(err, "find motorcycle")
	}
	return s.whatsAppFor(ctx, moto, location, attr), nil
}

func (s *LeadService) whatsAppFor(ctx context.Context, moto *models.Motorcycle, location string, attr models.Attribution) string {
	location = strings.TrimSpace(location)
	if location == "" {
		location = DetailLeadLocation
	}

	lead := &models.Lead{
		Name:           DetailLeadName,
		Location:       location,
		MotorcycleID:   &moto.ID,
		MotorcycleName: &moto.Name,
		Source:         models.LeadSourceWhatsApp,
	}
	applyAttribution(lead, attr)
	s.record(ctx, lead)

	return s.link(ctx, DetailMessage(moto.Name, location))
}

func (s *LeadService) record(ctx context.Context, lead *models.Lead) {
	log := applog.FromContext(ctx)

	lead.ID = uuid.New().String()
	if err := s.leadRepo.Create(ctx, lead); err != nil {
		log.Error("failed to save lead",
			zap.String("source", string(lead.Source)),
			zap.Error(err),
		)
		return
	}

	metrics.LeadsCreated.WithLabelValues(string(lead.Source)).Inc()
	log.Info("lead created",
		zap.String("lead_id", lead.ID),
		zap.String("source", string(lead.Source)),
	)

	if s.notifier == nil {
		return
	}
	saved := *lead
	go func() {
		// the request context is gone once the redirect is written
		notifyCtx := applog.WithContext(context.Background(), log)
		if err := s.notifier.NotifyLead(notifyCtx, &saved); err != nil {
			log.Warn("lead notification failed", zap.String("lead_id", saved.ID), zap.Error(err))
		}
	}()
}

// WhatsAppNumber returns the configured number, falling back to the default
func (s *LeadService) WhatsAppNumber(ctx context.Context) string {
	cfg := s.siteConfig.Get(ctx)
	if StripNonDigits(cfg.WhatsAppNumber) != "" {
		return cfg.WhatsAppNumber
	}
	return s.fallback
}

func (s *LeadService) link(ctx context.Context, text string) string {
	return WhatsAppLink(s.WhatsAppNumber(ctx), s.fallback, text)
}

func (s *LeadService) List(ctx context.Context) ([]models.Lead, error) {
	leads, err := s.leadRepo.List(ctx)
	if err != nil {
		return nil, translate(err, "list leads")
	}
	return leads, nil
}

func (s *LeadService) Delete(ctx context.Context, id string) error {
	if err := s.leadRepo.Delete(ctx, id); err != nil {
		return translate(err, "delete lead")
	}
	applog.FromContext(ctx).Info("lead deleted", zap.String("lead_id", id))
	return nil
}

// Stats summarizes leads for the admin list
func (s *LeadService) Stats(leads []models.Lead) models.LeadStats {
	return LeadStats(leads, s.now())
}

func LeadStats(leads []models.Lead, now time.Time) models.LeadStats {
	stats := models.LeadStats{Total: len(leads)}
	counts := map[string]int{}

	for _, l := range leads {
		if l.MotorcycleID != nil && *l.MotorcycleID != "" {
			stats.WithMotorcycle++
		}
		if l.CreatedAt.Year() == now.Year() && l.CreatedAt.Month() == now.Month() {
			stats.ThisMonth++
		}
		if l.MotorcycleName != nil && *l.MotorcycleName != "" {
			counts[*l.MotorcycleName]++
		}
	}

	for name, count := range counts {
		stats.ByMotorcycle = append(stats.ByMotorcycle, models.LeadCount{MotorcycleName: name, Count: count})
	}
	sort.Slice(stats.ByMotorcycle, func(i, j int) bool {
		a, b := stats.ByMotorcycle[i], stats.ByMotorcycle[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.MotorcycleName < b.MotorcycleName
	})
	return stats
}

func applyAttribution(lead *models.Lead, attr models.Attribution) {
	lead.UTMSource = optional(attr.UTMSource)
	lead.UTMMedium = optional(attr.UTMMedium)
	lead.UTMCampaign = optional(attr.UTMCampaign)
	lead.OriginRoute = optional(attr.OriginRoute)
}

// optional turns a blank form value into nil
func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
