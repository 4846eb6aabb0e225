// File: /controllers/page.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kustommania/models"
	"kustommania/services"
)

// Site is the static identity rendered in every public layout
type Site struct {
	Name        string
	URL         string
	AnalyticsID string
}

// Layout collects what the public layout needs on every page: the site
// configuration, the WhatsApp link and the organization JSON-LD.
type Layout struct {
	site          Site
	siteConfig    *services.SiteConfigService
	seo           *services.SEOService
	defaultNumber string
}

func NewLayout(site Site, siteConfig *services.SiteConfigService, seo *services.SEOService, defaultWhatsAppNumber string) *Layout {
	return &Layout{
		site:          site,
		siteConfig:    siteConfig,
		seo:           seo,
		defaultNumber: defaultWhatsAppNumber,
	}
}

// Page returns the base template data for a public page. path is the
// canonical path of the page.
func (l *Layout) Page(c *gin.Context, nav, title, description, path string) gin.H {
	ctx := c.Request.Context()
	cfg := l.siteConfig.Get(ctx)

	if description == "" {
		description = cfg.HeroDescription
	}
	return gin.H{
		"Title":          title,
		"Description":    description,
		"Canonical":      l.site.URL + path,
		"Site":           l.site,
		"Config":         cfg,
		"Nav":            nav,
		"WhatsAppURL":    services.WhatsAppLink(cfg.WhatsAppNumber, l.defaultNumber, ""),
		"OrganizationLD": l.seo.OrganizationLD(cfg),
	}
}

// NotFound renders the 404 page with an optional message
func (l *Layout) NotFound(c *gin.Context, message string) {
	data := l.Page(c, "", "Página no encontrada", "", c.Request.URL.Path)
	data["Message"] = message
	c.HTML(http.StatusNotFound, "not_found", data)
}

// attribution reads UTM parameters from the query string
func attribution(c *gin.Context) models.Attribution {
	return models.Attribution{
		UTMSource:   c.Query("utm_source"),
		UTMMedium:   c.Query("utm_medium"),
		UTMCampaign: c.Query("utm_campaign"),
	}
}
