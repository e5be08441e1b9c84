package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/seasonsofindia/the-vault-gate-27/internal/cache"
	"github.com/seasonsofindia/the-vault-gate-27/internal/catalog"
	"github.com/seasonsofindia/the-vault-gate-27/internal/logger"
)

type InventoryHandler struct {
	db     *gorm.DB
	syncer *catalog.Syncer
	cache  *cache.Client
	logger *logger.Logger
}

func NewInventoryHandler(db *gorm.DB, syncer *catalog.Syncer, cache *cache.Client, logger *logger.Logger) *InventoryHandler {
	return &InventoryHandler{
		db:     db,
		syncer: syncer,
		cache:  cache,
		logger: logger,
	}
}

type variantRow struct {
	ID               string  `json:"id"`
	ProductID        string  `json:"product_id"`
	ProductName      string  `json:"product_name"`
	Size             *string `json:"size"`
	Color            *string `json:"color"`
	SKU              string  `json:"sku"`
	Stock            int     `json:"stock"`
	ShopifyVariantID *string `json:"shopify_variant_id"`
	Linked           bool    `json:"linked"`
}

// List returns every variant with its product name, flagging variants
// that have no remote link (their stock edits stay local-only).
func (h *InventoryHandler) List(c *gin.Context) {
	var rows []variantRow
	err := h.db.Table("product_variants").
		Select("product_variants.id, product_variants.product_id, products.name AS product_name, "+
			"product_variants.size, product_variants.color, product_variants.sku, "+
			"product_variants.stock, product_variants.shopify_variant_id").
		Joins("JOIN products ON products.id = product_variants.product_id").
		Order("products.name, product_variants.size, product_variants.color").
		Scan(&rows).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch variants"})
		return
	}

	for i := range rows {
		rows[i].Linked = rows[i].ShopifyVariantID != nil && *rows[i].ShopifyVariantID != ""
	}

	c.JSON(http.StatusOK, gin.H{"data": rows})
}

// UpdateStock writes the submitted stock values locally and propagates
// them to the remote ledger best-effort. Success reflects local writes
// only; propagation issues come back as warnings.
func (h *InventoryHandler) UpdateStock(c *gin.Context) {
	var request struct {
		Updates []catalog.StockUpdate `json:"updates" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := h.syncer.UpdateStock(c.Request.Context(), request.Updates)

	if h.cache != nil {
		h.cache.Invalidate(c.Request.Context())
	}

	status := http.StatusOK
	if result.Updated == 0 && len(result.Errors) > 0 {
		status = http.StatusInternalServerError
	}
	c.JSON(status, gin.H{
		"updated":  result.Updated,
		"warnings": result.Warnings,
		"errors":   result.Errors,
	})
}
