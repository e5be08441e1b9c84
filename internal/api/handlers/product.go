package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/seasonsofindia/the-vault-gate-27/internal/cache"
	"github.com/seasonsofindia/the-vault-gate-27/internal/logger"
	"github.com/seasonsofindia/the-vault-gate-27/internal/models"
)

type ProductHandler struct {
	db     *gorm.DB
	cache  *cache.Client
	logger *logger.Logger
}

// NewProductHandler serves the local catalog CRUD. cache may be nil.
func NewProductHandler(db *gorm.DB, cache *cache.Client, logger *logger.Logger) *ProductHandler {
	return &ProductHandler{
		db:     db,
		cache:  cache,
		logger: logger,
	}
}

func (h *ProductHandler) List(c *gin.Context) {
	// Pagination
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * limit

	// Filters
	category := c.Query("category")
	search := c.Query("search")

	// The unfiltered first page is the storefront's hot path; serve it
	// from the cache when possible.
	cacheable := h.cache != nil && category == "" && search == "" && page == 1
	if cacheable {
		if products, ok := h.cache.GetProducts(c.Request.Context()); ok {
			c.JSON(http.StatusOK, gin.H{"data": products})
			return
		}
	}

	query := h.db.Model(&models.Product{})

	if category != "" {
		query = query.Where("category = ?", category)
	}

	if search != "" {
		query = query.Where("LOWER(name) LIKE LOWER(?) OR LOWER(sku) LIKE LOWER(?)", "%"+search+"%", "%"+search+"%")
	}

	var total int64
	query.Count(&total)

	var products []models.Product
	if err := query.Preload("Variants").Offset(offset).Limit(limit).Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}

	if cacheable {
		h.cache.SetProducts(c.Request.Context(), products)
	}

	c.JSON(http.StatusOK, gin.H{
		"data": products,
		"pagination": gin.H{
			"page":  page,
			"limit": limit,
			"total": total,
		},
	})
}

func (h *ProductHandler) Get(c *gin.Context) {
	id := c.Param("id")

	var product models.Product
	if err := h.db.Preload("Variants").First(&product, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": product})
}

func (h *ProductHandler) Create(c *gin.Context) {
	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.db.Create(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		return
	}

	h.invalidate(c)
	c.JSON(http.StatusCreated, gin.H{"data": product})
}

// updateProductRequest carries the writable product fields; the id and
// timestamps never come from the payload.
type updateProductRequest struct {
	Name        string   `json:"name" binding:"required"`
	SKU         string   `json:"sku"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Category    string   `json:"category"`
	Images      []string `json:"images"`
	Featured    bool     `json:"featured"`
	Discount    float64  `json:"discount"`
	Stock       int      `json:"stock"`
}

func (h *ProductHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var product models.Product
	if err := h.db.First(&product, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
		return
	}

	var request updateProductRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product.Name = request.Name
	product.SKU = request.SKU
	product.Description = request.Description
	product.Price = request.Price
	product.Category = request.Category
	product.Images = request.Images
	product.Featured = request.Featured
	product.Discount = request.Discount
	product.Stock = request.Stock

	if err := h.db.Save(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		return
	}

	h.invalidate(c)
	c.JSON(http.StatusOK, gin.H{"data": product})
}

func (h *ProductHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	if err := h.db.Delete(&models.Product{}, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		return
	}

	h.invalidate(c)
	c.JSON(http.StatusNoContent, nil)
}

func (h *ProductHandler) invalidate(c *gin.Context) {
	if h.cache != nil {
		h.cache.Invalidate(c.Request.Context())
	}
}
