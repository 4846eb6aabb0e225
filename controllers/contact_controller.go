// File: /controllers/contact_controller.go
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

// ConsultationReasons are the options of the contact form select
var ConsultationReasons = [][2]string{
	{"Compra", "Compra de motocicleta"},
	{"Consulta técnica", "Consulta técnica"},
	{"Personalización", "Personalización"},
	{"Financiación", "Financiación"},
	{"Otro", "Otro"},
}

const contactRequiredMessage = "Por favor completá tu nombre y localidad."

type ContactController struct {
	layout *Layout
	leads  *services.LeadService
}

func NewContactController(layout *Layout, leads *services.LeadService) *ContactController {
	return &ContactController{layout: layout, leads: leads}
}

func (cc *ContactController) Show(c *gin.Context) {
	cc.render(c, http.StatusOK, models.ContactRequest{}, attribution(c), "")
}

// Submit stores the lead and sends the visitor to WhatsApp with the
// composed message.
func (cc *ContactController) Submit(c *gin.Context) {
	var req models.ContactRequest
	bindErr := c.ShouldBind(&req)

	var attr models.Attribution
	_ = c.ShouldBind(&attr)
	if attr.OriginRoute == "" {
		attr.OriginRoute = "/contacto"
	}

	if bindErr != nil {
		logger.FromGin(c).Info("contact form rejected", zap.Error(bindErr))
		cc.render(c, http.StatusBadRequest, req, attr, contactRequiredMessage)
		return
	}

	link, err := cc.leads.SubmitContact(c.Request.Context(), req, attr)
	if err != nil {
		if errors.Is(err, services.ErrInvalidInput) {
			cc.render(c, http.StatusBadRequest, req, attr, contactRequiredMessage)
			return
		}
		logger.FromGin(c).Error("contact submission failed", zap.Error(err))
		cc.render(c, http.StatusInternalServerError, req, attr, "No pudimos procesar tu consulta. Intentá nuevamente.")
		return
	}

	c.Redirect(http.StatusSeeOther, link)
}

func (cc *ContactController) render(c *gin.Context, status int, form models.ContactRequest, attr models.Attribution, message string) {
	data := cc.layout.Page(c, "contacto",
		"Contacto",
		"Consultanos por motos custom, financiación, permutas o personalización. Te respondemos por WhatsApp.",
		"/contacto",
	)
	data["Form"] = form
	data["Attribution"] = attr
	data["Reasons"] = ConsultationReasons
	data["Error"] = message
	c.HTML(status, "contact", data)
}
