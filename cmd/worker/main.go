package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/seasonsofindia/the-vault-gate-27/internal/catalog"
	"github.com/seasonsofindia/the-vault-gate-27/internal/config"
	"github.com/seasonsofindia/the-vault-gate-27/internal/database"
	"github.com/seasonsofindia/the-vault-gate-27/internal/events"
	"github.com/seasonsofindia/the-vault-gate-27/internal/logger"
	"github.com/seasonsofindia/the-vault-gate-27/internal/services/shopify"
	"github.com/seasonsofindia/the-vault-gate-27/internal/worker"
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
	defer db.Close()

	client := shopify.NewClient(shopify.Config{
		StoreDomain: cfg.ShopifyStoreDomain,
		AccessToken: cfg.ShopifyAccessToken,
		APIVersion:  cfg.ShopifyAPIVersion,
	}, logger)

	publisher := events.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, logger)
	defer publisher.Close()

	reconciler := catalog.NewReconciler(db.DB, logger)
	propagator := catalog.NewPropagator(client, cfg.ShopifyLocationID, logger)
	syncer := catalog.NewSyncer(db.DB, client, reconciler, propagator, publisher, logger)

	// Initialize worker
	w := worker.New(cfg, logger, syncer)

	// Start worker
	logger.Info("Starting worker...")
	go w.Start()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down worker...")
	w.Stop()
}
