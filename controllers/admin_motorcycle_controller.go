// File: /controllers/admin_motorcycle_controller.go
package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"kustommania/logger"
	"kustommania/models"
	"kustommania/services"
)

const orderFieldPrefix = "order_"

// AdminMotorcycleController manages the inventory and its galleries
type AdminMotorcycleController struct {
	admin       string
	motorcycles *services.MotorcycleService
	images      *services.ImageService
}

func NewAdminMotorcycleController(admin string, motorcycles *services.MotorcycleService, images *services.ImageService) *AdminMotorcycleController {
	return &AdminMotorcycleController{
		admin:       admin,
		motorcycles: motorcycles,
		images:      images,
	}
}

func (mc *AdminMotorcycleController) List(c *gin.Context) {
	motorcycles, err := mc.motorcycles.List(c.Request.Context())
	if err != nil {
		logger.FromGin(c).Error("failed to list motorcycles", zap.Error(err))
	}

	data := adminPage(c, mc.admin, "motorcycles", "Motos")
	data["Motorcycles"] = motorcycles
	c.HTML(http.StatusOK, "admin_motorcycles", data)
}

func (mc *AdminMotorcycleController) New(c *gin.Context) {
	mc.renderForm(c, http.StatusOK, &models.Motorcycle{Status: models.StatusStock}, mc.admin+"/motorcycles", "")
}

func (mc *AdminMotorcycleController) Create(c *gin.Context) {
	var req models.MotorcycleRequest
	if err := c.ShouldBind(&req); err != nil {
		draft := &models.Motorcycle{}
		services.FillFromForm(draft, req)
		mc.renderForm(c, http.StatusBadRequest, draft, mc.admin+"/motorcycles", "El nombre es obligatorio.")
		return
	}

	moto, err := mc.motorcycles.Create(c.Request.Context(), req)
	if err != nil {
		mc.rejectForm(c, err, &models.Motorcycle{}, req, mc.admin+"/motorcycles")
		return
	}
	c.Redirect(http.StatusSeeOther, mc.admin+"/motorcycles/"+moto.ID+"/images?msg=created")
}

func (mc *AdminMotorcycleController) Edit(c *gin.Context) {
	moto, err := mc.motorcycles.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		mc.missing(c, err)
		return
	}
	mc.renderForm(c, http.StatusOK, moto, mc.admin+"/motorcycles/"+moto.ID, "")
}

func (mc *AdminMotorcycleController) Update(c *gin.Context) {
	id := c.Param("id")
	action := mc.admin + "/motorcycles/" + id

	var req models.MotorcycleRequest
	if err := c.ShouldBind(&req); err != nil {
		draft := &models.Motorcycle{ID: id}
		services.FillFromForm(draft, req)
		mc.renderForm(c, http.StatusBadRequest, draft, action, "El nombre es obligatorio.")
		return
	}

	if _, err := mc.motorcycles.Update(c.Request.Context(), id, req); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			mc.missing(c, err)
			return
		}
		mc.rejectForm(c, err, &models.Motorcycle{ID: id}, req, action)
		return
	}
	c.Redirect(http.StatusSeeOther, mc.admin+"/motorcycles?msg=saved")
}

func (mc *AdminMotorcycleController) Delete(c *gin.Context) {
	if err := mc.motorcycles.Delete(c.Request.Context(), c.Param("id")); err != nil {
		logger.FromGin(c).Error("failed to delete motorcycle", zap.String("motorcycle_id", c.Param("id")), zap.Error(err))
		c.Redirect(http.StatusSeeOther, mc.admin+"/motorcycles?err=failed")
		return
	}
	c.Redirect(http.StatusSeeOther, mc.admin+"/motorcycles?msg=deleted")
}

func (mc *AdminMotorcycleController) rejectForm(c *gin.Context, err error, draft *models.Motorcycle, req models.MotorcycleRequest, action string) {
	if !errors.Is(err, services.ErrInvalidInput) && !errors.Is(err, services.ErrSlugTaken) {
		logger.FromGin(c).Error("failed to save motorcycle", zap.Error(err))
	}
	services.FillFromForm(draft, req)
	mc.renderForm(c, http.StatusBadRequest, draft, action, formError(err))
}

func (mc *AdminMotorcycleController) renderForm(c *gin.Context, status int, moto *models.Motorcycle, action, message string) {
	title := "Nueva moto"
	if moto.ID != "" {
		title = "Editar " + moto.Name
	}

	all, err := mc.motorcycles.List(c.Request.Context())
	if err != nil {
		logger.FromGin(c).Error("failed to list trade-in candidates", zap.Error(err))
	}
	tradeIns := make([]models.Motorcycle, 0, len(all))
	for _, m := range all {
		if m.ID != moto.ID {
			tradeIns = append(tradeIns, m)
		}
	}

	data := adminPage(c, mc.admin, "motorcycles", title)
	data["Motorcycle"] = moto
	data["Action"] = action
	data["TradeIns"] = tradeIns
	if message != "" {
		data["Error"] = message
	}
	c.HTML(status, "admin_motorcycle_form", data)
}

func (mc *AdminMotorcycleController) missing(c *gin.Context, err error) {
	if !errors.Is(err, services.ErrNotFound) {
		logger.FromGin(c).Error("failed to load motorcycle", zap.Error(err))
	}
	c.Redirect(http.StatusSeeOther, mc.admin+"/motorcycles?err=failed")
}

// Images shows the gallery of one motorcycle
func (mc *AdminMotorcycleController) Images(c *gin.Context) {
	mc.renderImages(c, http.StatusOK, "")
}

func (mc *AdminMotorcycleController) renderImages(c *gin.Context, status int, message string) {
	ctx := c.Request.Context()
	moto, err := mc.motorcycles.FindByID(ctx, c.Param("id"))
	if err != nil {
		mc.missing(c, err)
		return
	}
	images, err := mc.images.ListByMotorcycle(ctx, moto.ID)
	if err != nil {
		logger.FromGin(c).Error("failed to list images", zap.Error(err))
	}

	data := adminPage(c, mc.admin, "motorcycles", "Imágenes de "+moto.Name)
	data["Motorcycle"] = moto
	data["Images"] = images
	if message != "" {
		data["Error"] = message
	}
	c.HTML(status, "admin_images", data)
}

func (mc *AdminMotorcycleController) Upload(c *gin.Context) {
	id := c.Param("id")
	form, err := c.MultipartForm()
	if err != nil {
		mc.renderImages(c, http.StatusBadRequest, "Seleccioná al menos una imagen.")
		return
	}

	if _, err := mc.images.Upload(c.Request.Context(), id, form.File["files"]); err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			mc.missing(c, err)
		case errors.Is(err, services.ErrInvalidInput):
			mc.renderImages(c, http.StatusBadRequest, "No se pudieron subir las imágenes: "+err.Error())
		default:
			logger.FromGin(c).Error("image upload failed", zap.String("motorcycle_id", id), zap.Error(err))
			mc.renderImages(c, http.StatusInternalServerError, "Error al subir las imágenes. Intentá nuevamente.")
		}
		return
	}
	c.Redirect(http.StatusSeeOther, mc.admin+"/motorcycles/"+id+"/images?msg=uploaded")
}

func (mc *AdminMotorcycleController) SetPrimary(c *gin.Context) {
	img, err := mc.images.SetPrimary(c.Request.Context(), c.Param("id"))
	if err != nil {
		mc.imageFailed(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, mc.admin+"/motorcycles/"+img.MotorcycleID+"/images?msg=primary")
}

func (mc *AdminMotorcycleController) DeleteImage(c *gin.Context) {
	img, err := mc.images.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		mc.imageFailed(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, mc.admin+"/motorcycles/"+img.MotorcycleID+"/images?msg=deleted")
}

// Reorder reads order_<imageID> fields from the gallery form
func (mc *AdminMotorcycleController) Reorder(c *gin.Context) {
	id := c.Param("id")
	if err := c.Request.ParseForm(); err != nil {
		mc.renderImages(c, http.StatusBadRequest, "Formulario inválido.")
		return
	}

	orders := map[string]int{}
	for key, values := range c.Request.PostForm {
		if !strings.HasPrefix(key, orderFieldPrefix) || len(values) == 0 {
			continue
		}
		order, err := strconv.Atoi(strings.TrimSpace(values[0]))
		if err != nil {
			mc.renderImages(c, http.StatusBadRequest, "El orden debe ser un número entero.")
			return
		}
		orders[strings.TrimPrefix(key, orderFieldPrefix)] = order
	}

	if err := mc.images.Reorder(c.Request.Context(), id, orders); err != nil {
		if errors.Is(err, services.ErrInvalidInput) {
			mc.renderImages(c, http.StatusBadRequest, "El orden no puede ser negativo.")
			return
		}
		logger.FromGin(c).Error("failed to reorder images", zap.String("motorcycle_id", id), zap.Error(err))
		mc.renderImages(c, http.StatusInternalServerError, "No se pudo guardar el orden.")
		return
	}
	c.Redirect(http.StatusSeeOther, mc.admin+"/motorcycles/"+id+"/images?msg=ordered")
}

func (mc *AdminMotorcycleController) imageFailed(c *gin.Context, err error) {
	if !errors.Is(err, services.ErrNotFound) {
		logger.FromGin(c).Error("image operation failed", zap.String("image_id", c.Param("id")), zap.Error(err))
	}
	c.Redirect(http.StatusSeeOther, mc.admin+"/images?err=failed")
}
