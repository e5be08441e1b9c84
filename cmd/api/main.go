package main

import (
	"log"

	"github.com/seasonsofindia/the-vault-gate-27/internal/api"
	"github.com/seasonsofindia/the-vault-gate-27/internal/cache"
	"github.com/seasonsofindia/the-vault-gate-27/internal/catalog"
	"github.com/seasonsofindia/the-vault-gate-27/internal/config"
	"github.com/seasonsofindia/the-vault-gate-27/internal/database"
	"github.com/seasonsofindia/the-vault-gate-27/internal/events"
	"github.com/seasonsofindia/the-vault-gate-27/internal/logger"
	"github.com/seasonsofindia/the-vault-gate-27/internal/services/shopify"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Initialize logger
	logger := logger.New(cfg.LogLevel)

	// Initialize database
	db, err := database.New(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("Failed to connect to database: %v", err)
	}
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to migrate database: %v", err)
	}

	// Remote catalog client
	client := shopify.NewClient(shopify.Config{
		StoreDomain: cfg.ShopifyStoreDomain,
		AccessToken: cfg.ShopifyAccessToken,
		APIVersion:  cfg.ShopifyAPIVersion,
	}, logger)

	// Optional infrastructure: cache and events degrade to nil.
	var cacheClient *cache.Client
	if c, err := cache.New(cfg.RedisAddr, logger); err != nil {
		logger.Warn("Redis unavailable, product list cache disabled: %v", err)
	} else {
		cacheClient = c
	}

	publisher := events.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, logger)
	defer publisher.Close()

	// Sync pipeline
	reconciler := catalog.NewReconciler(db.DB, logger)
	propagator := catalog.NewPropagator(client, cfg.ShopifyLocationID, logger)
	syncer := catalog.NewSyncer(db.DB, client, reconciler, propagator, publisher, logger)

	// Initialize API server
	server := api.New(cfg, logger, db, api.Deps{
		Shopify: client,
		Syncer:  syncer,
		Cache:   cacheClient,
		Events:  publisher,
	})

	// Start server
	logger.Info("Starting API server on port " + cfg.APIPort)
	if err := server.Start(); err != nil {
		logger.Fatal("Failed to start server: %v", err)
	}
}
