package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vacantvectors/postcraft/internal/analytics"
	"github.com/vacantvectors/postcraft/internal/middleware"
)

// AnalyticsHandler serves cached dataset reports
type AnalyticsHandler struct {
	service *analytics.Service
	logger  *zap.Logger
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(service *analytics.Service, logger *zap.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{service: service, logger: logger}
}

// Engagement returns engagement statistics for a dataset
func (h *AnalyticsHandler) Engagement(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		middleware.BadRequest(c, "invalid dataset id")
		return
	}

	report, err := h.service.Engagement(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("failed to compute engagement report", zap.Error(err))
		middleware.InternalError(c, "failed to compute engagement report")
		return
	}

	c.JSON(http.StatusOK, report)
}

// Content returns content-shape statistics for a dataset
func (h *AnalyticsHandler) Content(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		middleware.BadRequest(c, "invalid dataset id")
		return
	}

	report, err := h.service.Content(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("failed to compute content report", zap.Error(err))
		middleware.InternalError(c, "failed to compute content report")
		return
	}

	c.JSON(http.StatusOK, report)
}

// Distributions returns language, length and tag distributions for a dataset
func (h *AnalyticsHandler) Distributions(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		middleware.BadRequest(c, "invalid dataset id")
		return
	}

	stats, err := h.service.Distributions(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("failed to compute distributions", zap.Error(err))
		middleware.InternalError(c, "failed to compute distributions")
		return
	}

	c.JSON(http.StatusOK, stats)
}
