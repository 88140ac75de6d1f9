package handlers

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"go.uber.org/zap"

	"github.com/vacantvectors/postcraft/internal/dataset"
	"github.com/vacantvectors/postcraft/internal/generator"
	"github.com/vacantvectors/postcraft/internal/middleware"
	"github.com/vacantvectors/postcraft/internal/models"
	"github.com/vacantvectors/postcraft/internal/signing"
	"github.com/vacantvectors/postcraft/internal/usage"
)

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.Linkify, extension.Strikethrough),
)

// PostsHandler handles generation and history endpoints
type PostsHandler struct {
	service *generator.Service
	store   *dataset.Store
	history *dataset.History
	usage   *usage.Service
	certs   *signing.CertificateService
	logger  *zap.Logger
}

// NewPostsHandler creates a new posts handler
func NewPostsHandler(service *generator.Service, store *dataset.Store, history *dataset.History, usageService *usage.Service, certs *signing.CertificateService, logger *zap.Logger) *PostsHandler {
	return &PostsHandler{service: service, store: store, history: history, usage: usageService, certs: certs, logger: logger}
}

// GenerateResponse is the response for generation endpoints
type GenerateResponse struct {
	Post      *models.GeneratedPost `json:"post"`
	LineCount int                   `json:"line_count"`
	WordCount int                   `json:"word_count"`
	Warnings  []string              `json:"warnings,omitempty"`
}

// Generate produces a post in the style of a dataset's examples
func (h *PostsHandler) Generate(c *gin.Context) {
	var req models.GenerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.BadRequest(c, err.Error())
		return
	}
	if !req.Length.Valid() {
		middleware.BadRequest(c, "length must be Short, Medium or Long")
		return
	}
	if !req.Language.Valid() {
		middleware.BadRequest(c, "language must be English or Hinglish")
		return
	}
	if req.Tone != "" && !req.Tone.Valid() {
		middleware.BadRequest(c, "unknown tone")
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		middleware.Unauthorized(c, "unauthorized")
		return
	}
	if !h.checkQuota(c, userID) {
		return
	}

	var snapshot []models.ExamplePost
	if req.DatasetID != uuid.Nil {
		ds, err := h.store.Get(c.Request.Context(), req.DatasetID)
		if err != nil {
			if errors.Is(err, dataset.ErrNotFound) {
				middleware.NotFound(c, "dataset not found")
				return
			}
			h.logger.Error("failed to load dataset", zap.Error(err))
			middleware.InternalError(c, "failed to load dataset")
			return
		}
		if ds.Status != models.DatasetStatusReady {
			middleware.RespondError(c, http.StatusConflict, middleware.ErrCodeDatasetNotReady,
				"dataset is still being processed")
			return
		}

		snapshot, err = h.store.Snapshot(c.Request.Context(), req.DatasetID)
		if err != nil {
			h.logger.Error("failed to load dataset snapshot", zap.Error(err))
			middleware.InternalError(c, "failed to load dataset")
			return
		}
	}

	post, validated, err := h.service.Generate(c.Request.Context(), req, snapshot, userID)
	if err != nil {
		h.respondGenerationError(c, err)
		return
	}
	middleware.LLMCircuitBreaker.RecordSuccess()

	c.JSON(http.StatusOK, GenerateResponse{
		Post:      post,
		LineCount: validated.LineCount,
		WordCount: validated.WordCount,
		Warnings:  validated.Warnings,
	})
}

// GenerateCustom produces a post from explicit audience and purpose parameters
func (h *PostsHandler) GenerateCustom(c *gin.Context) {
	var req models.CustomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.BadRequest(c, err.Error())
		return
	}
	if !req.Length.Valid() {
		middleware.BadRequest(c, "length must be Short, Medium or Long")
		return
	}
	if !req.Language.Valid() {
		middleware.BadRequest(c, "language must be English or Hinglish")
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		middleware.Unauthorized(c, "unauthorized")
		return
	}
	if !h.checkQuota(c, userID) {
		return
	}

	post, validated, err := h.service.GenerateCustom(c.Request.Context(), req, userID)
	if err != nil {
		h.respondGenerationError(c, err)
		return
	}
	middleware.LLMCircuitBreaker.RecordSuccess()

	c.JSON(http.StatusOK, GenerateResponse{
		Post:      post,
		LineCount: validated.LineCount,
		WordCount: validated.WordCount,
		Warnings:  validated.Warnings,
	})
}

// PreviewRequest is the request body for markdown preview
type PreviewRequest struct {
	Text string `json:"text" binding:"required"`
}

// Preview renders post text as HTML for client-side display
func (h *PostsHandler) Preview(c *gin.Context) {
	var req PreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.BadRequest(c, err.Error())
		return
	}

	var buf bytes.Buffer
	if err := markdown.Convert([]byte(req.Text), &buf); err != nil {
		h.logger.Error("failed to render preview", zap.Error(err))
		middleware.InternalError(c, "failed to render preview")
		return
	}

	c.JSON(http.StatusOK, gin.H{"html": buf.String()})
}

// ListHistory returns the caller's recent generations
func (h *PostsHandler) ListHistory(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		middleware.Unauthorized(c, "unauthorized")
		return
	}

	limit := 20
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}

	posts, err := h.history.ListByUser(c.Request.Context(), userID, limit)
	if err != nil {
		h.logger.Error("failed to list history", zap.Error(err))
		middleware.InternalError(c, "failed to list history")
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": posts, "count": len(posts)})
}

// GetHistoryPost returns one generated post owned by the caller
func (h *PostsHandler) GetHistoryPost(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		middleware.Unauthorized(c, "unauthorized")
		return
	}

	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		middleware.BadRequest(c, "invalid post id")
		return
	}

	post, err := h.history.Get(c.Request.Context(), userID, postID)
	if err != nil {
		middleware.NotFound(c, "post not found")
		return
	}

	c.JSON(http.StatusOK, post)
}

// DeleteHistoryPost removes one generated post owned by the caller
func (h *PostsHandler) DeleteHistoryPost(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		middleware.Unauthorized(c, "unauthorized")
		return
	}

	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		middleware.BadRequest(c, "invalid post id")
		return
	}

	if err := h.history.Delete(c.Request.Context(), userID, postID); err != nil {
		middleware.NotFound(c, "post not found")
		return
	}

	c.Status(http.StatusNoContent)
}

// Certificate issues a signed authenticity certificate for a post
func (h *PostsHandler) Certificate(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		middleware.Unauthorized(c, "unauthorized")
		return
	}

	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		middleware.BadRequest(c, "invalid post id")
		return
	}

	post, err := h.history.Get(c.Request.Context(), userID, postID)
	if err != nil {
		middleware.NotFound(c, "post not found")
		return
	}

	c.JSON(http.StatusOK, h.certs.Issue(post))
}

// UserUsage returns the caller's generation usage for the current month
func (h *PostsHandler) UserUsage(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		middleware.Unauthorized(c, "unauthorized")
		return
	}

	summary, err := h.usage.UserSummary(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("failed to read usage", zap.Error(err))
		middleware.InternalError(c, "failed to read usage")
		return
	}

	c.JSON(http.StatusOK, summary)
}

// checkQuota rejects the request when the user is over their monthly token
// limit. Returns false if the response has been written.
func (h *PostsHandler) checkQuota(c *gin.Context, userID uuid.UUID) bool {
	if h.usage == nil {
		return true
	}

	status, err := h.usage.CheckQuota(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("failed to check quota", zap.Error(err))
		return true
	}
	if !status.Allowed {
		middleware.RespondError(c, http.StatusTooManyRequests,
			middleware.ErrCodeQuotaExceeded, "monthly generation quota exceeded")
		return false
	}
	return true
}

func (h *PostsHandler) respondGenerationError(c *gin.Context, err error) {
	var verr *generator.ValidationError
	if errors.As(err, &verr) {
		// The provider answered; a validation miss is not a provider failure
		middleware.LLMCircuitBreaker.RecordSuccess()
		middleware.RespondErrorWithDetails(c, http.StatusUnprocessableEntity,
			middleware.ErrCodeValidationFailed, "generated output failed validation", verr.Error())
		return
	}

	middleware.LLMCircuitBreaker.RecordFailure()
	h.logger.Error("generation failed", zap.Error(err))
	middleware.LLMUnavailable(c)
}
