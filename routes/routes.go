// File: /routes/routes.go
package routes

import (
	"html/template"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"kustommania/config"
	"kustommania/controllers"
	"kustommania/metrics"
	"kustommania/middleware"
	"kustommania/services"
)

// Services are the dependencies the HTTP layer is built from
type Services struct {
	Motorcycles *services.MotorcycleService
	Images      *services.ImageService
	Leads       *services.LeadService
	SiteConfig  *services.SiteConfigService
	Currency    *services.CurrencyService
	Pipeline    *services.PipelineService
	Analytics   *services.AnalyticsService
	SEO         *services.SEOService
	Auth        *services.AuthService
}

func SetupRoutes(r *gin.Engine, cfg *config.Config, svc Services, templates *template.Template, static http.FileSystem) {
	r.SetHTMLTemplate(templates)

	r.Use(metrics.Middleware())
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	r.StaticFS("/static", static)
	if cfg.StorageDriver == "local" && strings.HasPrefix(cfg.StoragePublicURL, "/") {
		r.Static(cfg.StoragePublicURL, cfg.StorageLocalRoot)
	}

	// Controllers
	layout := controllers.NewLayout(controllers.Site{
		Name:        cfg.SiteName,
		URL:         cfg.SiteURL,
		AnalyticsID: cfg.AnalyticsID,
	}, svc.SiteConfig, svc.SEO, cfg.DefaultWhatsAppNumber)
	publicController := controllers.NewPublicController(layout, svc.Motorcycles, svc.Leads, svc.SEO)
	contactController := controllers.NewContactController(layout, svc.Leads)
	seoController := controllers.NewSEOController(svc.SEO)
	apiController := controllers.NewAPIController(svc.Motorcycles, svc.Currency, svc.Leads)
	adminAuthController := controllers.NewAdminAuthController(cfg.AdminPath, svc.Auth, cfg.IsProduction())
	adminController := controllers.NewAdminController(cfg.AdminPath, svc.SiteConfig, svc.Analytics, svc.Currency, svc.Leads, svc.Images)
	adminMotorcycleController := controllers.NewAdminMotorcycleController(cfg.AdminPath, svc.Motorcycles, svc.Images)
	adminReportController := controllers.NewAdminReportController(cfg.AdminPath, svc.Pipeline, svc.Analytics)

	leadLimit := middleware.RateLimit(cfg.LeadRatePerMinute, cfg.LeadRateBurst)
	loginLimit := middleware.RateLimit(5, 5)

	// Public site
	site := r.Group("/")
	site.Use(middleware.SecurityHeaders())
	{
		site.GET("/", publicController.Home)
		site.GET("/coleccion", publicController.Collection)
		site.GET("/coleccion/:slug", publicController.Detail)
		site.GET("/coleccion/:slug/whatsapp", leadLimit, publicController.WhatsAppRedirect)
		site.GET("/comparar", publicController.Compare)
		site.GET("/nosotros", publicController.About)
		site.GET("/contacto", contactController.Show)
		site.POST("/contacto", leadLimit, contactController.Submit)
	}

	r.GET("/sitemap.xml", seoController.Sitemap)
	r.GET("/robots.txt", seoController.Robots)

	// API version 1
	v1 := r.Group("/api/v1")
	v1.Use(middleware.ValidateJSON())
	{
		v1.GET("/health", apiController.Health)
		v1.GET("/motorcycles", apiController.Motorcycles)
		v1.GET("/motorcycles/:slug", apiController.Motorcycle)
		v1.GET("/rates/blue", apiController.BlueRate)
		v1.GET("/rates/convert", apiController.Convert)
		v1.POST("/leads/whatsapp", leadLimit, apiController.WhatsAppLead)
	}

	// Admin panel
	admin := r.Group(cfg.AdminPath)
	admin.Use(middleware.NoIndex(), middleware.SecurityHeaders(), middleware.AdminAuth(svc.Auth, cfg.AdminPath+"/login"))
	{
		admin.GET("/login", adminAuthController.LoginForm)
		admin.POST("/login", loginLimit, adminAuthController.Login)
		admin.POST("/logout", adminAuthController.Logout)

		admin.GET("", adminController.Dashboard)
		admin.GET("/config", adminController.Config)
		admin.POST("/config", adminController.SaveConfig)
		admin.POST("/rates/refresh", adminController.RefreshRate)
		admin.GET("/leads", adminController.Leads)
		admin.POST("/leads/:id/delete", adminController.DeleteLead)
		admin.GET("/images", adminController.Images)

		admin.GET("/motorcycles", adminMotorcycleController.List)
		admin.GET("/motorcycles/new", adminMotorcycleController.New)
		admin.POST("/motorcycles", adminMotorcycleController.Create)
		admin.GET("/motorcycles/:id/edit", adminMotorcycleController.Edit)
		admin.POST("/motorcycles/:id", adminMotorcycleController.Update)
		admin.POST("/motorcycles/:id/delete", adminMotorcycleController.Delete)
		admin.GET("/motorcycles/:id/images", adminMotorcycleController.Images)
		admin.POST("/motorcycles/:id/images", adminMotorcycleController.Upload)
		admin.POST("/motorcycles/:id/images/reorder", adminMotorcycleController.Reorder)
		admin.POST("/images/:id/primary", adminMotorcycleController.SetPrimary)
		admin.POST("/images/:id/delete", adminMotorcycleController.DeleteImage)

		admin.GET("/pipeline", adminReportController.Pipeline)
		admin.POST("/pipeline/:id/advance", adminReportController.Advance)
		admin.GET("/operations", adminReportController.Operations)
		admin.GET("/operations/export", adminReportController.ExportOperations)
		admin.GET("/analytics", adminReportController.Analytics)
	}

	r.NoRoute(publicController.NotFound)
}
