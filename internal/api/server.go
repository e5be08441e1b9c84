package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"

	"github.com/seasonsofindia/the-vault-gate-27/internal/api/handlers"
	"github.com/seasonsofindia/the-vault-gate-27/internal/api/middleware"
	"github.com/seasonsofindia/the-vault-gate-27/internal/cache"
	"github.com/seasonsofindia/the-vault-gate-27/internal/catalog"
	"github.com/seasonsofindia/the-vault-gate-27/internal/config"
	"github.com/seasonsofindia/the-vault-gate-27/internal/database"
	"github.com/seasonsofindia/the-vault-gate-27/internal/logger"
	"github.com/seasonsofindia/the-vault-gate-27/internal/services/shopify"
)

// Deps are the shared components the API serves. Cache and Events may be
// nil; the handlers degrade gracefully.
type Deps struct {
	Shopify *shopify.Client
	Syncer  *catalog.Syncer
	Cache   *cache.Client
	Events  catalog.Publisher
}

type Server struct {
	config *config.Config
	logger *logger.Logger
	db     *database.Database
	router *gin.Engine
	server *http.Server
}

func New(cfg *config.Config, logger *logger.Logger, db *database.Database, deps Deps) *Server {
	// Set Gin mode
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Recovery(logger))

	// Initialize handlers
	productHandler := handlers.NewProductHandler(db.DB, deps.Cache, logger)
	inventoryHandler := handlers.NewInventoryHandler(db.DB, deps.Syncer, deps.Cache, logger)
	syncHandler := handlers.NewSyncHandler(deps.Syncer, deps.Events, deps.Cache, logger)
	shopifyHandler := handlers.NewShopifyHandler(deps.Shopify, deps.Syncer, deps.Cache, logger)

	// Routes
	v1 := router.Group("/api/v1")
	{
		// Local catalog
		products := v1.Group("/products")
		{
			products.GET("", productHandler.List)
			products.GET("/:id", productHandler.Get)
			products.POST("", productHandler.Create)
			products.PUT("/:id", productHandler.Update)
			products.DELETE("/:id", productHandler.Delete)
		}

		// Variant stock
		inventory := v1.Group("/inventory")
		{
			inventory.GET("", inventoryHandler.List)
			inventory.POST("/stock", inventoryHandler.UpdateStock)
		}

		// Catalog sync
		sync := v1.Group("/sync")
		{
			sync.POST("", syncHandler.Pull)
			sync.POST("/enqueue", syncHandler.Enqueue)
			sync.POST("/import", syncHandler.Import)
		}

		// Remote catalog passthrough
		remote := v1.Group("/shopify")
		{
			remote.GET("/products", shopifyHandler.ListProducts)
			remote.POST("/products", shopifyHandler.CreateProduct)
			remote.DELETE("/products/:id", shopifyHandler.DeleteProduct)
		}
	}

	return &Server{
		config: cfg,
		logger: logger,
		db:     db,
		router: router,
	}
}

func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%s", s.config.APIHost, s.config.APIPort)

	corsWrapper := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	})

	s.server = &http.Server{
		Addr:         addr,
		Handler:      corsWrapper.Handler(s.router),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second, // inline pulls and imports are slow
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("Starting server on " + addr)
	return s.server.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Shutting down server...")
	return s.server.Shutdown(ctx)
}

func (s *Server) Router() *gin.Engine {
	return s.router
}
