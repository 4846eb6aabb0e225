// File: /controllers/public_controller.go
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

// PublicController serves the storefront pages. Failed reads are logged
// and the page renders with whatever data is left.
type PublicController struct {
	layout      *Layout
	motorcycles *services.MotorcycleService
	leads       *services.LeadService
	seo         *services.SEOService
}

func NewPublicController(layout *Layout, motorcycles *services.MotorcycleService, leads *services.LeadService, seo *services.SEOService) *PublicController {
	return &PublicController{
		layout:      layout,
		motorcycles: motorcycles,
		leads:       leads,
		seo:         seo,
	}
}

func (pc *PublicController) Home(c *gin.Context) {
	latest, err := pc.motorcycles.Latest(c.Request.Context())
	if err != nil {
		logger.FromGin(c).Error("failed to load latest motorcycles", zap.Error(err))
	}

	data := pc.layout.Page(c, "inicio",
		"",
		"Compra y venta de motos custom, Harley Davidson, choppers y bobbers en Argentina.",
		"/",
	)
	data["Latest"] = latest
	data["ProductsLD"] = pc.seo.ProductsLD(latest)
	c.HTML(http.StatusOK, "home", data)
}

func (pc *PublicController) Collection(c *gin.Context) {
	q := services.ParseCatalogQuery(c.Request.URL.Query())
	page, err := pc.motorcycles.Catalog(c.Request.Context(), q)
	if err != nil {
		logger.FromGin(c).Error("failed to load catalog", zap.Error(err))
	}

	data := pc.layout.Page(c, "coleccion",
		"Colección",
		"Explorá nuestra colección de motos custom: choppers, bobbers, café racers y Harley Davidson.",
		"/coleccion",
	)
	data["Query"] = page.Query
	data["Motorcycles"] = page.Motorcycles
	data["Brands"] = page.Brands
	data["Types"] = page.Types
	data["PriceRanges"] = page.PriceRanges
	data["Total"] = page.Total
	c.HTML(http.StatusOK, "collection", data)
}

func (pc *PublicController) Detail(c *gin.Context) {
	slug := c.Param("slug")
	moto, err := pc.motorcycles.FindBySlug(c.Request.Context(), slug)
	if err != nil {
		if !errors.Is(err, services.ErrNotFound) {
			logger.FromGin(c).Error("failed to load motorcycle", zap.String("slug", slug), zap.Error(err))
		}
		pc.layout.NotFound(c, "La moto que buscás no está disponible.")
		return
	}

	data := pc.layout.Page(c, "coleccion", moto.Name, detailDescription(moto), "/coleccion/"+moto.Slug)
	data["Motorcycle"] = moto
	data["ProductLD"] = pc.seo.ProductLD(moto)
	data["Attribution"] = attribution(c)
	c.HTML(http.StatusOK, "detail", data)
}

func detailDescription(m *models.Motorcycle) string {
	desc := m.Description
	if len([]rune(desc)) > 160 {
		desc = string([]rune(desc)[:157]) + "..."
	}
	if desc == "" {
		desc = m.Name + " en venta en Kustom Mania."
	}
	return desc
}

// WhatsAppRedirect records the detail page click and forwards the visitor
// to the prefilled chat.
func (pc *PublicController) WhatsAppRedirect(c *gin.Context) {
	slug := c.Param("slug")
	attr := attribution(c)
	attr.OriginRoute = "/coleccion/" + slug

	link, err := pc.leads.SubmitWhatsAppBySlug(c.Request.Context(), slug, c.Query("location"), attr)
	if err != nil {
		if !errors.Is(err, services.ErrNotFound) {
			logger.FromGin(c).Error("failed to resolve motorcycle for whatsapp", zap.String("slug", slug), zap.Error(err))
		}
		pc.layout.NotFound(c, "La moto que buscás no está disponible.")
		return
	}
	c.Redirect(http.StatusFound, link)
}

// Compare accepts repeated ids params as well as comma separated lists
func (pc *PublicController) Compare(c *gin.Context) {
	ctx := c.Request.Context()
	log := logger.FromGin(c)

	var ids []string
	for _, raw := range c.QueryArray("ids") {
		ids = append(ids, services.ParseCompareIDs(raw)...)
	}

	var selected []models.Motorcycle
	if len(ids) > 0 {
		var err error
		if selected, err = pc.motorcycles.Compare(ctx, ids); err != nil {
			log.Error("failed to load motorcycles to compare", zap.Error(err))
		}
	}

	available, err := pc.motorcycles.List(ctx)
	if err != nil {
		log.Error("failed to list motorcycles", zap.Error(err))
	}
	chosen := make(map[string]bool, len(selected))
	for _, m := range selected {
		chosen[m.ID] = true
	}

	data := pc.layout.Page(c, "",
		"Comparar Motos",
		"Compará hasta tres motos custom lado a lado: precio, motor, escape y pintura.",
		"/comparar",
	)
	data["Motorcycles"] = selected
	data["Available"] = available
	data["Selected"] = chosen
	data["Max"] = services.MaxCompare
	c.HTML(http.StatusOK, "compare", data)
}

func (pc *PublicController) About(c *gin.Context) {
	data := pc.layout.Page(c, "nosotros",
		"Nosotros",
		"Más de 9 años en la compra y venta de motos custom en Argentina. +130 motos vendidas.",
		"/nosotros",
	)
	c.HTML(http.StatusOK, "about", data)
}

func (pc *PublicController) NotFound(c *gin.Context) {
	pc.layout.NotFound(c, "")
}
