package worker

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/seasonsofindia/the-vault-gate-27/internal/catalog"
	"github.com/seasonsofindia/the-vault-gate-27/internal/config"
	"github.com/seasonsofindia/the-vault-gate-27/internal/events"
	"github.com/seasonsofindia/the-vault-gate-27/internal/logger"
	"github.com/seasonsofindia/the-vault-gate-27/internal/models"
	"github.com/seasonsofindia/the-vault-gate-27/internal/services/shopify"
)

func newTestWorker(t *testing.T) (*Worker, *gorm.DB) {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"products":[{"id":9001,"title":"Vault Tee","variants":[{"id":101,"sku":"VAU-S-Black","price":"25.00","inventory_quantity":3}]}]}`))
	}))
	t.Cleanup(server.Close)

	client := shopify.NewClient(shopify.Config{
		APIVersion: "2025-07",
		BaseURL:    server.URL,
	}, logger.New("error"))

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.Product{}, &models.Variant{}))

	log := logger.New("error")
	reconciler := catalog.NewReconciler(db, log)
	propagator := catalog.NewPropagator(client, 0, log)
	syncer := catalog.NewSyncer(db, client, reconciler, propagator, nil, log)

	cfg := &config.Config{KafkaBrokers: "localhost:9092", KafkaTopic: "catalog-events"}
	return New(cfg, log, syncer), db
}

func TestWorker_Handle(t *testing.T) {
	t.Run("sync request runs a pull", func(t *testing.T) {
		w, db := newTestWorker(t)
		t.Cleanup(w.Stop)

		err := w.handle(events.Event{Type: events.TypeSyncRequested, Timestamp: time.Now()})
		require.NoError(t, err)

		var count int64
		db.Model(&models.Product{}).Count(&count)
		assert.EqualValues(t, 1, count)
	})

	t.Run("other event types are ignored", func(t *testing.T) {
		w, db := newTestWorker(t)
		t.Cleanup(w.Stop)

		require.NoError(t, w.handle(events.Event{Type: events.TypeProductImported}))

		var count int64
		db.Model(&models.Product{}).Count(&count)
		assert.EqualValues(t, 0, count)
	})

	t.Run("stop cancels a pull", func(t *testing.T) {
		w, db := newTestWorker(t)
		w.Stop()

		err := w.handle(events.Event{Type: events.TypeSyncRequested, Timestamp: time.Now()})
		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)

		var count int64
		db.Model(&models.Product{}).Count(&count)
		assert.EqualValues(t, 0, count)
	})
}
