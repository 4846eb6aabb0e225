// File: /controllers/seo_controller.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"kustommania/logger"
	"kustommania/services"
)

type SEOController struct {
	seo *services.SEOService
}

func NewSEOController(seo *services.SEOService) *SEOController {
	return &SEOController{seo: seo}
}

func (sc *SEOController) Sitemap(c *gin.Context) {
	body, err := sc.seo.Sitemap(c.Request.Context())
	if err != nil {
		logger.FromGin(c).Error("failed to build sitemap", zap.Error(err))
		c.String(http.StatusInternalServerError, "sitemap unavailable")
		return
	}
	c.Data(http.StatusOK, "application/xml; charset=utf-8", body)
}

func (sc *SEOController) Robots(c *gin.Context) {
	c.String(http.StatusOK, sc.seo.Robots())
}
