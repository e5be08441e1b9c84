package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/seasonsofindia/the-vault-gate-27/internal/cache"
	"github.com/seasonsofindia/the-vault-gate-27/internal/catalog"
	"github.com/seasonsofindia/the-vault-gate-27/internal/events"
	"github.com/seasonsofindia/the-vault-gate-27/internal/logger"
)

type SyncHandler struct {
	syncer *catalog.Syncer
	events catalog.Publisher
	cache  *cache.Client
	logger *logger.Logger
}

// NewSyncHandler exposes the full pull and bulk import entry points.
// events and cache may be nil.
func NewSyncHandler(syncer *catalog.Syncer, events catalog.Publisher, cache *cache.Client, logger *logger.Logger) *SyncHandler {
	return &SyncHandler{
		syncer: syncer,
		events: events,
		cache:  cache,
		logger: logger,
	}
}

// Pull runs a full remote-to-local catalog pull inline.
func (h *SyncHandler) Pull(c *gin.Context) {
	count, err := h.syncer.Pull(c.Request.Context())
	if err != nil {
		h.logger.Error("Catalog pull failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	h.invalidate(c)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   count,
		"message": "Products synced successfully",
	})
}

// Enqueue publishes a sync request; the worker picks it up. Keeps slow
// pulls off the request path.
func (h *SyncHandler) Enqueue(c *gin.Context) {
	if h.events == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Event publishing is not configured"})
		return
	}

	if err := h.events.Publish(c.Request.Context(), events.TypeSyncRequested, "", nil); err != nil {
		h.logger.Error("Failed to enqueue sync: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to enqueue sync"})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"message": "Sync requested"})
}

// Import ingests CSV content. Bad rows are reported, never fatal; the
// response always carries the aggregate count plus per-item errors.
func (h *SyncHandler) Import(c *gin.Context) {
	var request struct {
		CSVContent string `json:"csv_content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.syncer.Import(c.Request.Context(), request.CSVContent)
	if err != nil {
		h.logger.Error("Import aborted: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "result": result})
		return
	}

	h.invalidate(c)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   result.Created,
		"errors":  result.Errors,
	})
}

func (h *SyncHandler) invalidate(c *gin.Context) {
	if h.cache != nil {
		h.cache.Invalidate(c.Request.Context())
	}
}
