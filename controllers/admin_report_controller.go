// File: /controllers/admin_report_controller.go
package controllers

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"kustommania/logger"
	"kustommania/services"
)

// AdminReportController serves the pipeline board, the operations table
// and the analytics summary.
type AdminReportController struct {
	admin     string
	pipeline  *services.PipelineService
	analytics *services.AnalyticsService
}

func NewAdminReportController(admin string, pipeline *services.PipelineService, analytics *services.AnalyticsService) *AdminReportController {
	return &AdminReportController{
		admin:     admin,
		pipeline:  pipeline,
		analytics: analytics,
	}
}

func (rc *AdminReportController) Pipeline(c *gin.Context) {
	columns, err := rc.pipeline.Board(c.Request.Context())
	if err != nil {
		logger.FromGin(c).Error("failed to load pipeline", zap.Error(err))
	}

	data := adminPage(c, rc.admin, "pipeline", "Pipeline de ventas")
	data["Columns"] = columns
	c.HTML(http.StatusOK, "admin_pipeline", data)
}

func (rc *AdminReportController) Advance(c *gin.Context) {
	id := c.Param("id")
	if _, err := rc.pipeline.Advance(c.Request.Context(), id); err != nil {
		if errors.Is(err, services.ErrFinalStage) {
			c.Redirect(http.StatusSeeOther, rc.admin+"/pipeline?err=final")
			return
		}
		if !errors.Is(err, services.ErrNotFound) {
			logger.FromGin(c).Error("failed to advance motorcycle", zap.String("motorcycle_id", id), zap.Error(err))
		}
		c.Redirect(http.StatusSeeOther, rc.admin+"/pipeline?err=failed")
		return
	}
	c.Redirect(http.StatusSeeOther, rc.admin+"/pipeline?msg=advanced")
}

func (rc *AdminReportController) Operations(c *gin.Context) {
	var filter services.OperationsFilter
	_ = c.ShouldBindQuery(&filter)

	rows, err := rc.analytics.Operations(c.Request.Context(), filter)
	if err != nil {
		logger.FromGin(c).Error("failed to load operations", zap.Error(err))
	}

	data := adminPage(c, rc.admin, "operations", "Operaciones")
	data["Filter"] = filter
	data["Rows"] = rows
	c.HTML(http.StatusOK, "admin_operations", data)
}

// ExportOperations downloads the filtered operations table as CSV
func (rc *AdminReportController) ExportOperations(c *gin.Context) {
	var filter services.OperationsFilter
	_ = c.ShouldBindQuery(&filter)

	rows, err := rc.analytics.Operations(c.Request.Context(), filter)
	if err != nil {
		logger.FromGin(c).Error("failed to load operations", zap.Error(err))
		c.String(http.StatusInternalServerError, "export failed")
		return
	}

	var buf bytes.Buffer
	if err := services.ExportCSV(&buf, rows); err != nil {
		logger.FromGin(c).Error("failed to write csv", zap.Error(err))
		c.String(http.StatusInternalServerError, "export failed")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+rc.analytics.OperationsFilename()+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

func (rc *AdminReportController) Analytics(c *gin.Context) {
	summary, err := rc.analytics.Summary(c.Request.Context())
	if err != nil {
		logger.FromGin(c).Error("failed to load analytics", zap.Error(err))
	}

	data := adminPage(c, rc.admin, "analytics", "Analytics")
	data["Summary"] = summary
	c.HTML(http.StatusOK, "admin_analytics", data)
}
