package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vacantvectors/postcraft/internal/analytics"
	"github.com/vacantvectors/postcraft/internal/dataset"
	"github.com/vacantvectors/postcraft/internal/middleware"
	"github.com/vacantvectors/postcraft/internal/models"
	"github.com/vacantvectors/postcraft/internal/orchestration"
)

// DatasetsHandler handles dataset management endpoints
type DatasetsHandler struct {
	store      *dataset.Store
	dispatcher *orchestration.Dispatcher
	analytics  *analytics.Service
	logger     *zap.Logger
}

// NewDatasetsHandler creates a new datasets handler
func NewDatasetsHandler(store *dataset.Store, dispatcher *orchestration.Dispatcher, analytics *analytics.Service, logger *zap.Logger) *DatasetsHandler {
	return &DatasetsHandler{store: store, dispatcher: dispatcher, analytics: analytics, logger: logger}
}

// CreateDatasetRequest is the request body for dataset creation
type CreateDatasetRequest struct {
	Name  string               `json:"name" binding:"required,min=2"`
	Posts []models.ExamplePost `json:"posts" binding:"required,min=1"`
}

// AddPostsRequest is the request body for appending posts
type AddPostsRequest struct {
	Posts []models.ExamplePost `json:"posts" binding:"required,min=1"`
}

// List returns all datasets
func (h *DatasetsHandler) List(c *gin.Context) {
	datasets, err := h.store.List(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list datasets", zap.Error(err))
		middleware.InternalError(c, "failed to list datasets")
		return
	}
	c.JSON(http.StatusOK, gin.H{"datasets": datasets, "count": len(datasets)})
}

// Create uploads a new dataset and queues it for processing
func (h *DatasetsHandler) Create(c *gin.Context) {
	var req CreateDatasetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.BadRequest(c, err.Error())
		return
	}
	if err := dataset.ValidateUpload(req.Posts); err != nil {
		middleware.RespondErrorWithDetails(c, http.StatusBadRequest,
			middleware.ErrCodeValidationFailed, "invalid posts in upload", err.Error())
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		middleware.Unauthorized(c, "unauthorized")
		return
	}

	ds, err := h.store.Create(c.Request.Context(), req.Name, userID)
	if err != nil {
		h.logger.Error("failed to create dataset", zap.Error(err))
		middleware.RespondError(c, http.StatusConflict, middleware.ErrCodeBadRequest, "dataset name already exists")
		return
	}

	if err := h.store.AddPosts(c.Request.Context(), ds.ID, req.Posts); err != nil {
		h.logger.Error("failed to store posts", zap.Error(err))
		middleware.InternalError(c, "failed to store posts")
		return
	}
	ds.PostCount = len(req.Posts)

	if err := h.dispatcher.StartProcessing(c.Request.Context(), ds.ID); err != nil {
		h.logger.Error("failed to start dataset processing", zap.Error(err))
		middleware.InternalError(c, "failed to start dataset processing")
		return
	}

	c.JSON(http.StatusAccepted, ds)
}

// Get returns one dataset's metadata
func (h *DatasetsHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		middleware.BadRequest(c, "invalid dataset id")
		return
	}

	ds, err := h.store.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, dataset.ErrNotFound) {
			middleware.NotFound(c, "dataset not found")
			return
		}
		h.logger.Error("failed to load dataset", zap.Error(err))
		middleware.InternalError(c, "failed to load dataset")
		return
	}

	c.JSON(http.StatusOK, ds)
}

// AddPosts appends posts to an existing dataset and re-queues processing
func (h *DatasetsHandler) AddPosts(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		middleware.BadRequest(c, "invalid dataset id")
		return
	}

	var req AddPostsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.BadRequest(c, err.Error())
		return
	}
	if err := dataset.ValidateUpload(req.Posts); err != nil {
		middleware.RespondErrorWithDetails(c, http.StatusBadRequest,
			middleware.ErrCodeValidationFailed, "invalid posts in upload", err.Error())
		return
	}

	if _, err := h.store.Get(c.Request.Context(), id); err != nil {
		if errors.Is(err, dataset.ErrNotFound) {
			middleware.NotFound(c, "dataset not found")
			return
		}
		h.logger.Error("failed to load dataset", zap.Error(err))
		middleware.InternalError(c, "failed to load dataset")
		return
	}

	if err := h.store.AddPosts(c.Request.Context(), id, req.Posts); err != nil {
		h.logger.Error("failed to store posts", zap.Error(err))
		middleware.InternalError(c, "failed to store posts")
		return
	}

	h.analytics.Invalidate(c.Request.Context(), id)

	if err := h.dispatcher.StartProcessing(c.Request.Context(), id); err != nil {
		h.logger.Error("failed to start dataset processing", zap.Error(err))
		middleware.InternalError(c, "failed to start dataset processing")
		return
	}

	c.Status(http.StatusAccepted)
}

// Process re-runs metadata enrichment for a dataset
func (h *DatasetsHandler) Process(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		middleware.BadRequest(c, "invalid dataset id")
		return
	}

	if _, err := h.store.Get(c.Request.Context(), id); err != nil {
		if errors.Is(err, dataset.ErrNotFound) {
			middleware.NotFound(c, "dataset not found")
			return
		}
		h.logger.Error("failed to load dataset", zap.Error(err))
		middleware.InternalError(c, "failed to load dataset")
		return
	}

	h.analytics.Invalidate(c.Request.Context(), id)

	if err := h.dispatcher.StartProcessing(c.Request.Context(), id); err != nil {
		h.logger.Error("failed to start dataset processing", zap.Error(err))
		middleware.InternalError(c, "failed to start dataset processing")
		return
	}

	c.Status(http.StatusAccepted)
}

// Posts returns the full ordered contents of a dataset
func (h *DatasetsHandler) Posts(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		middleware.BadRequest(c, "invalid dataset id")
		return
	}

	posts, err := h.store.Snapshot(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("failed to load posts", zap.Error(err))
		middleware.InternalError(c, "failed to load posts")
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": posts, "count": len(posts)})
}

// Search returns posts whose text matches the query
func (h *DatasetsHandler) Search(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		middleware.BadRequest(c, "invalid dataset id")
		return
	}

	query := c.Query("q")
	if query == "" {
		middleware.BadRequest(c, "query parameter q is required")
		return
	}

	posts, err := h.store.Search(c.Request.Context(), id, query)
	if err != nil {
		h.logger.Error("failed to search posts", zap.Error(err))
		middleware.InternalError(c, "failed to search posts")
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": posts, "count": len(posts)})
}

// Tags returns the distinct tags across a dataset
func (h *DatasetsHandler) Tags(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		middleware.BadRequest(c, "invalid dataset id")
		return
	}

	tags, err := h.store.Tags(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("failed to list tags", zap.Error(err))
		middleware.InternalError(c, "failed to list tags")
		return
	}

	c.JSON(http.StatusOK, gin.H{"tags": tags, "count": len(tags)})
}

// Stats returns aggregate distributions for a dataset
func (h *DatasetsHandler) Stats(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		middleware.BadRequest(c, "invalid dataset id")
		return
	}

	stats, err := h.store.Stats(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("failed to compute stats", zap.Error(err))
		middleware.InternalError(c, "failed to compute stats")
		return
	}

	c.JSON(http.StatusOK, stats)
}
