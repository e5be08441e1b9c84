package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/seasonsofindia/the-vault-gate-27/internal/cache"
	"github.com/seasonsofindia/the-vault-gate-27/internal/catalog"
	"github.com/seasonsofindia/the-vault-gate-27/internal/logger"
	"github.com/seasonsofindia/the-vault-gate-27/internal/services/shopify"
)

type ShopifyHandler struct {
	client *shopify.Client
	syncer *catalog.Syncer
	cache  *cache.Client
	logger *logger.Logger
}

// NewShopifyHandler exposes the direct remote-catalog operations used by
// the admin screens.
func NewShopifyHandler(client *shopify.Client, syncer *catalog.Syncer, cache *cache.Client, logger *logger.Logger) *ShopifyHandler {
	return &ShopifyHandler{
		client: client,
		syncer: syncer,
		cache:  cache,
		logger: logger,
	}
}

// ListProducts proxies the remote product list.
func (h *ShopifyHandler) ListProducts(c *gin.Context) {
	products, err := h.client.GetProducts(c.Request.Context(), 250)
	if err != nil {
		h.logger.Error("Failed to fetch remote products: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": products})
}

type createProductRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Price       float64  `json:"price" binding:"required"`
	Category    string   `json:"category"`
	Sizes       []string `json:"sizes"`
	Colors      []string `json:"colors"`
	Images      []string `json:"images"`
	Featured    bool     `json:"featured"`
	Discount    float64  `json:"discount"`
	Stock       int      `json:"stock"`
}

// CreateProduct creates the product remotely (variants expanded from the
// size/color axes) and persists it locally with the remote ids. A remote
// failure propagates to the caller; nothing is written locally.
func (h *ShopifyHandler) CreateProduct(c *gin.Context) {
	var request createProductRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	row := catalog.ProductRow{
		Name:        request.Name,
		Description: request.Description,
		Price:       request.Price,
		Discount:    request.Discount,
		Category:    request.Category,
		Sizes:       request.Sizes,
		Colors:      request.Colors,
		Images:      request.Images,
		Featured:    request.Featured,
		Stock:       request.Stock,
	}

	product, err := h.syncer.CreateProduct(c.Request.Context(), &row)
	if err != nil {
		h.logger.Error("Failed to create product %q: %v", request.Name, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	if h.cache != nil {
		h.cache.Invalidate(c.Request.Context())
	}
	c.JSON(http.StatusCreated, gin.H{"data": product})
}

// DeleteProduct deletes a product on the remote side only.
func (h *ShopifyHandler) DeleteProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
		return
	}

	if err := h.client.DeleteProduct(c.Request.Context(), id); err != nil {
		h.logger.Error("Failed to delete remote product %d: %v", id, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
