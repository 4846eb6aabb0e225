// File: /controllers/api_controller.go
package controllers

import (
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"kustommania/logger"
	"kustommania/models"
	"kustommania/services"
	"kustommania/utils"
)

// APIController is the JSON surface under /api/v1
type APIController struct {
	motorcycles *services.MotorcycleService
	currency    *services.CurrencyService
	leads       *services.LeadService
}

func NewAPIController(motorcycles *services.MotorcycleService, currency *services.CurrencyService, leads *services.LeadService) *APIController {
	return &APIController{
		motorcycles: motorcycles,
		currency:    currency,
		leads:       leads,
	}
}

func (ac *APIController) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":         "healthy",
		"rate_available": ac.currency.Last() != nil,
		"time":           time.Now().UTC(),
	})
}

type CatalogResponse struct {
	Data   []models.Motorcycle `json:"data"`
	Total  int                 `json:"total"`
	Brands []string            `json:"brands"`
	Types  []string            `json:"types"`
}

func (ac *APIController) Motorcycles(c *gin.Context) {
	q := services.ParseCatalogQuery(c.Request.URL.Query())
	page, err := ac.motorcycles.Catalog(c.Request.Context(), q)
	if err != nil {
		utils.SendServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, CatalogResponse{
		Data:   page.Motorcycles,
		Total:  len(page.Motorcycles),
		Brands: page.Brands,
		Types:  page.Types,
	})
}

func (ac *APIController) Motorcycle(c *gin.Context) {
	moto, err := ac.motorcycles.FindBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		utils.SendServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, moto)
}

// BlueRate returns the cached quote; refresh=1 forces a feed fetch
func (ac *APIController) BlueRate(c *gin.Context) {
	var (
		rate *models.BlueRate
		err  error
	)
	if c.Query("refresh") == "1" {
		rate, err = ac.currency.Refresh(c.Request.Context())
	} else {
		rate, err = ac.currency.Current(c.Request.Context())
	}
	if err != nil {
		logger.FromGin(c).Warn("blue rate unavailable", zap.Error(err))
		utils.SendServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, rate)
}

func (ac *APIController) Convert(c *gin.Context) {
	amount, err := strconv.ParseFloat(strings.Replace(c.Query("amount"), ",", ".", 1), 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
		utils.SendValidationError(c, "amount must be a non-negative number")
		return
	}

	to := strings.ToLower(c.DefaultQuery("to", "usd"))
	if to != "usd" && to != "ars" {
		utils.SendValidationError(c, "to must be usd or ars")
		return
	}

	rate, err := ac.currency.Current(c.Request.Context())
	if err != nil {
		utils.SendServiceError(c, err)
		return
	}

	resp := models.ConversionResponse{
		Amount:    amount,
		To:        strings.ToUpper(to),
		Rate:      rate.Sell,
		UpdatedAt: rate.UpdatedAt,
	}
	if to == "usd" {
		resp.From = "ARS"
		resp.Result = services.ConvertToUSD(rate, amount)
	} else {
		resp.From = "USD"
		resp.Result = services.ConvertToARS(rate, amount)
	}
	c.JSON(http.StatusOK, resp)
}

// WhatsAppLead records a detail page click sent by script and returns the
// link to open.
func (ac *APIController) WhatsAppLead(c *gin.Context) {
	var req models.WhatsAppLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	link, err := ac.leads.SubmitWhatsApp(c.Request.Context(), req)
	if err != nil {
		utils.SendServiceError(c, err)
		return
	}
	utils.SendCreated(c, "Lead recorded", gin.H{"whatsapp_url": link})
}
