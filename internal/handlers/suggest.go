package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vacantvectors/postcraft/internal/middleware"
	"github.com/vacantvectors/postcraft/internal/suggest"
)

// SuggestHandler proposes generation parameters for a topic
type SuggestHandler struct {
	engine *suggest.Engine
	logger *zap.Logger
}

// NewSuggestHandler creates a new suggest handler
func NewSuggestHandler(engine *suggest.Engine, logger *zap.Logger) *SuggestHandler {
	return &SuggestHandler{engine: engine, logger: logger}
}

// SuggestRequest is the request body for parameter suggestions
type SuggestRequest struct {
	Topic string `json:"topic" binding:"required"`
}

// Suggest analyzes a topic and returns parameter suggestions
func (h *SuggestHandler) Suggest(c *gin.Context) {
	var req SuggestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.BadRequest(c, err.Error())
		return
	}

	suggestions := h.engine.AnalyzeTopic(c.Request.Context(), req.Topic)
	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions, "count": len(suggestions)})
}
