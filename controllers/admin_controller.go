// File: /controllers/admin_controller.go
package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"kustommania/logger"
	"kustommania/models"
	"kustommania/services"
)

var flashMessages = map[string]string{
	"saved":    "Cambios guardados.",
	"created":  "Moto creada.",
	"deleted":  "Eliminado correctamente.",
	"uploaded": "Imágenes subidas.",
	"primary":  "Portada actualizada.",
	"ordered":  "Orden actualizado.",
	"advanced": "Moto movida de etapa.",
	"rate_ok":  "Cotización actualizada.",
}

var errorMessages = map[string]string{
	"rate_error": "No se pudo obtener la cotización del dólar blue.",
	"failed":     "La operación no se pudo completar.",
	"final":      "La moto ya está entregada.",
}

// adminPage builds the base data of every admin view
func adminPage(c *gin.Context, admin, nav, title string) gin.H {
	return gin.H{
		"Title": title,
		"Admin": admin,
		"Nav":   nav,
		"Flash": flashMessages[c.Query("msg")],
		"Error": errorMessages[c.Query("err")],
	}
}

// formError turns a service error into the flat message shown above a form
func formError(err error) string {
	switch {
	case errors.Is(err, services.ErrSlugTaken):
		return "Ya existe una moto con ese slug."
	case errors.Is(err, services.ErrInvalidInput):
		return "Revisá los datos del formulario: " + err.Error()
	case errors.Is(err, services.ErrNotFound):
		return "El registro no existe."
	default:
		return "No se pudo guardar. Intentá nuevamente."
	}
}

// AdminController serves the dashboard, site configuration, leads and the
// image overview.
type AdminController struct {
	admin      string
	siteConfig *services.SiteConfigService
	analytics  *services.AnalyticsService
	currency   *services.CurrencyService
	leads      *services.LeadService
	images     *services.ImageService
}

func NewAdminController(
	admin string,
	siteConfig *services.SiteConfigService,
	analytics *services.AnalyticsService,
	currency *services.CurrencyService,
	leads *services.LeadService,
	images *services.ImageService,
) *AdminController {
	return &AdminController{
		admin:      admin,
		siteConfig: siteConfig,
		analytics:  analytics,
		currency:   currency,
		leads:      leads,
		images:     images,
	}
}

func (ac *AdminController) Dashboard(c *gin.Context) {
	counts, err := ac.analytics.Counts(c.Request.Context())
	if err != nil {
		logger.FromGin(c).Error("failed to count records", zap.Error(err))
	}

	data := adminPage(c, ac.admin, "dashboard", "Dashboard")
	data["Counts"] = counts
	data["Rate"] = ac.currency.Last()
	c.HTML(http.StatusOK, "admin_dashboard", data)
}

func (ac *AdminController) Config(c *gin.Context) {
	data := adminPage(c, ac.admin, "config", "Configuración")
	data["Config"] = ac.siteConfig.Get(c.Request.Context())
	c.HTML(http.StatusOK, "admin_config", data)
}

func (ac *AdminController) SaveConfig(c *gin.Context) {
	var req models.SiteConfigRequest
	if err := c.ShouldBind(&req); err != nil {
		ac.renderConfigError(c, req, "Revisá los datos del formulario: el número de WhatsApp y el título son obligatorios y las URLs deben ser válidas.")
		return
	}

	if _, err := ac.siteConfig.Save(c.Request.Context(), req); err != nil {
		if !errors.Is(err, services.ErrInvalidInput) {
			logger.FromGin(c).Error("failed to save site config", zap.Error(err))
		}
		ac.renderConfigError(c, req, formError(err))
		return
	}
	c.Redirect(http.StatusSeeOther, ac.admin+"/config?msg=saved")
}

func (ac *AdminController) renderConfigError(c *gin.Context, req models.SiteConfigRequest, message string) {
	data := adminPage(c, ac.admin, "config", "Configuración")
	data["Config"] = models.SiteConfig{
		WhatsAppNumber:    req.WhatsAppNumber,
		HeroTitle:         req.HeroTitle,
		HeroSubtitle:      req.HeroSubtitle,
		HeroDescription:   req.HeroDescription,
		HeroButtonText:    req.HeroButtonText,
		HeroBackgroundURL: &req.HeroBackgroundURL,
		InstagramURL:      &req.InstagramURL,
		FacebookURL:       &req.FacebookURL,
	}
	data["Error"] = message
	c.HTML(http.StatusBadRequest, "admin_config", data)
}

// RefreshRate forces one fetch of the blue dollar feed
func (ac *AdminController) RefreshRate(c *gin.Context) {
	if _, err := ac.currency.Refresh(c.Request.Context()); err != nil {
		logger.FromGin(c).Warn("manual rate refresh failed", zap.Error(err))
		c.Redirect(http.StatusSeeOther, ac.admin+"?err=rate_error")
		return
	}
	c.Redirect(http.StatusSeeOther, ac.admin+"?msg=rate_ok")
}

func (ac *AdminController) Leads(c *gin.Context) {
	leads, err := ac.leads.List(c.Request.Context())
	if err != nil {
		logger.FromGin(c).Error("failed to list leads", zap.Error(err))
	}

	data := adminPage(c, ac.admin, "leads", "Leads")
	data["Leads"] = leads
	data["Stats"] = ac.leads.Stats(leads)
	c.HTML(http.StatusOK, "admin_leads", data)
}

func (ac *AdminController) DeleteLead(c *gin.Context) {
	if err := ac.leads.Delete(c.Request.Context(), c.Param("id")); err != nil {
		logger.FromGin(c).Error("failed to delete lead", zap.String("lead_id", c.Param("id")), zap.Error(err))
		c.Redirect(http.StatusSeeOther, ac.admin+"/leads?err=failed")
		return
	}
	c.Redirect(http.StatusSeeOther, ac.admin+"/leads?msg=deleted")
}

// Images lists every stored image grouped by motorcycle
func (ac *AdminController) Images(c *gin.Context) {
	groups, err := ac.images.Groups(c.Request.Context())
	if err != nil {
		logger.FromGin(c).Error("failed to list images", zap.Error(err))
	}

	data := adminPage(c, ac.admin, "images", "Imágenes")
	data["Groups"] = groups
	c.HTML(http.StatusOK, "admin_all_images", data)
}
