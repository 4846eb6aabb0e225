// File: /services/seo_service.go
package services

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"kustommania/models"
	"kustommania/repositories"
)

const sitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

type SitemapURL struct {
	Loc        string  `xml:"loc"`
	LastMod    string  `xml:"lastmod,omitempty"`
	ChangeFreq string  `xml:"changefreq,omitempty"`
	Priority   float64 `xml:"priority,omitempty"`
}

type URLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []SitemapURL `xml:"url"`
}

// SEOService renders the crawler-facing documents and JSON-LD blocks
type SEOService struct {
	motorcycleRepo *repositories.MotorcycleRepository
	siteURL        string
	siteName       string
	adminPath      string
	now            func() time.Time
}

func NewSEOService(motorcycleRepo *repositories.MotorcycleRepository, siteURL, siteName, adminPath string) *SEOService {
	return &SEOService{
		motorcycleRepo: motorcycleRepo,
		siteURL:        strings.TrimRight(siteURL, "/"),
		siteName:       siteName,
		adminPath:      adminPath,
		now:            time.Now,
	}
}

// Sitemap lists the static pages and every in-stock motorcycle
func (s *SEOService) Sitemap(ctx context.Context) ([]byte, error) {
	motorcycles, err := s.motorcycleRepo.ListByStatus(ctx, models.StatusStock)
	if err != nil {
		return nil, translate(err, "list motorcycles")
	}
	return BuildSitemap(s.siteURL, motorcycles, s.now())
}

func BuildSitemap(siteURL string, motorcycles []models.Motorcycle, now time.Time) ([]byte, error) {
	today := now.Format(time.RFC3339)
	set := URLSet{
		Xmlns: sitemapNamespace,
		URLs: []SitemapURL{
			{Loc: siteURL, LastMod: today, ChangeFreq: "daily", Priority: 1.0},
			{Loc: siteURL + "/coleccion", LastMod: today, ChangeFreq: "hourly", Priority: 0.9},
			{Loc: siteURL + "/nosotros", LastMod: today, ChangeFreq: "monthly", Priority: 0.7},
			{Loc: siteURL + "/comparar", LastMod: today, ChangeFreq: "weekly", Priority: 0.6},
		},
	}
	for _, m := range motorcycles {
		set.URLs = append(set.URLs, SitemapURL{
			Loc:        siteURL + "/coleccion/" + m.Slug,
			LastMod:    m.UpdatedAt.Format(time.RFC3339),
			ChangeFreq: "daily",
			Priority:   0.8,
		})
	}

	out, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal sitemap: %w", err)
	}
	return append([]byte(xml.Header), out...), nil
}

// Robots returns robots.txt for both the generic and the Googlebot agent
func (s *SEOService) Robots() string {
	return BuildRobots(s.siteURL, s.adminPath)
}

func BuildRobots(siteURL, adminPath string) string {
	var b strings.Builder
	for i, agent := range []string{"*", "Googlebot"} {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "User-agent: %s\n", agent)
		b.WriteString("Allow: /\n")
		fmt.Fprintf(&b, "Disallow: %s/\n", strings.TrimRight(adminPath, "/"))
		b.WriteString("Disallow: /api/\n")
	}
	fmt.Fprintf(&b, "\nSitemap: %s/sitemap.xml\n", siteURL)
	return b.String()
}

// OrganizationLD is the AutoDealer block rendered on every public page
func (s *SEOService) OrganizationLD(cfg models.SiteConfig) map[string]interface{} {
	org := map[string]interface{}{
		"@context":    "https://schema.org",
		"@type":       "AutoDealer",
		"name":        s.siteName,
		"url":         s.siteURL,
		"description": cfg.HeroDescription,
		"slogan":      strings.TrimSpace(cfg.HeroSubtitle),
		"address": map[string]interface{}{
			"@type":          "PostalAddress",
			"addressCountry": "AR",
		},
	}
	if digits := StripNonDigits(cfg.WhatsAppNumber); digits != "" {
		org["telephone"] = "+" + digits
	}

	var sameAs []string
	for _, u := range []*string{cfg.InstagramURL, cfg.FacebookURL} {
		if u != nil && *u != "" {
			sameAs = append(sameAs, *u)
		}
	}
	if len(sameAs) > 0 {
		org["sameAs"] = sameAs
	}
	return org
}

// ProductLD describes one motorcycle with its offer
func (s *SEOService) ProductLD(m *models.Motorcycle) map[string]interface{} {
	brand := m.BrandName()
	if brand == "" {
		brand = "Custom"
	}

	offer := map[string]interface{}{
		"@type":         "Offer",
		"url":           s.siteURL + "/coleccion/" + m.Slug,
		"priceCurrency": "ARS",
		"availability":  Availability(m.Stage()),
		"seller": map[string]interface{}{
			"@type": "Organization",
			"name":  s.siteName,
		},
	}
	if view := NewPriceView(m.Price, nil, m.OfferPercentage); view.HasARS {
		offer["price"] = RoundPrice(view.FinalARS)
	}

	product := map[string]interface{}{
		"@context":    "https://schema.org",
		"@type":       "Product",
		"name":        m.Name,
		"description": m.Description,
		"brand": map[string]interface{}{
			"@type": "Brand",
			"name":  brand,
		},
		"offers": offer,
	}
	if cover := m.PrimaryImage(); cover != nil {
		product["image"] = cover.ImageURL
	}
	if m.Year != nil {
		product["productionDate"] = fmt.Sprintf("%d", *m.Year)
	}
	return product
}

// ProductsLD is the list rendered on the home page
func (s *SEOService) ProductsLD(motorcycles []models.Motorcycle) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(motorcycles))
	for i := range motorcycles {
		out = append(out, s.ProductLD(&motorcycles[i]))
	}
	return out
}

// Availability maps a stage onto a schema.org ItemAvailability
func Availability(stage models.MotorcycleStatus) string {
	switch stage {
	case models.StatusStock:
		return "https://schema.org/InStock"
	case models.StatusReserved:
		return "https://schema.org/LimitedAvailability"
	default:
		return "https://schema.org/SoldOut"
	}
}

// MarshalLD encodes a JSON-LD value for a script tag
func MarshalLD(v interface{}) (string, error) {
	out, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("marshal json-ld: %w", err)
	}
	return string(out), nil
}
