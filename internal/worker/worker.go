package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/seasonsofindia/the-vault-gate-27/internal/catalog"
	"github.com/seasonsofindia/the-vault-gate-27/internal/config"
	"github.com/seasonsofindia/the-vault-gate-27/internal/events"
	"github.com/seasonsofindia/the-vault-gate-27/internal/logger"
)

// Worker consumes catalog events and runs the sync operations they
// request, keeping long pulls off the API request path.
type Worker struct {
	config *config.Config
	logger *logger.Logger
	reader *kafka.Reader
	syncer *catalog.Syncer

	// ctx is cancelled by Stop so an in-flight pull aborts at its next
	// per-product boundary.
	ctx    context.Context
	cancel context.CancelFunc
}

func New(cfg *config.Config, logger *logger.Logger, syncer *catalog.Syncer) *Worker {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        []string{cfg.KafkaBrokers},
		GroupID:        "catalog-worker",
		Topic:          cfg.KafkaTopic,
		MinBytes:       10e3, // 10KB
		MaxBytes:       10e6, // 10MB
		CommitInterval: time.Second,
	})

	ctx, cancel := context.WithCancel(context.Background())

	return &Worker{
		config: cfg,
		logger: logger,
		reader: reader,
		syncer: syncer,
		ctx:    ctx,
		cancel: cancel,
	}
}

func (w *Worker) Start() {
	w.logger.Info("Worker started, listening for catalog events...")

	for {
		ctx, cancel := context.WithTimeout(w.ctx, 10*time.Second)
		message, err := w.reader.ReadMessage(ctx)
		cancel()

		if err != nil {
			if w.ctx.Err() != nil {
				return
			}
			w.logger.Error("Failed to read message: %v", err)
			continue
		}

		var event events.Event
		if err := json.Unmarshal(message.Value, &event); err != nil {
			w.logger.Error("Failed to parse event: %v", err)
			continue
		}

		if err := w.handle(event); err != nil {
			w.logger.Error("Failed to process event: %v", err)
		}
	}
}

func (w *Worker) handle(event events.Event) error {
	switch event.Type {
	case events.TypeSyncRequested:
		w.logger.Info("Sync requested at %s, starting pull", event.Timestamp.Format(time.RFC3339))
		count, err := w.syncer.Pull(w.ctx)
		if err != nil {
			return fmt.Errorf("catalog pull failed: %w", err)
		}
		w.logger.Info("Catalog pull finished: %d products", count)
	default:
		// Other event types are informational; downstream consumers
		// (feeds, analytics) pick them up from the same topic.
		w.logger.Debug("Ignoring event %s (%s)", event.Type, event.Subject)
	}
	return nil
}

func (w *Worker) Stop() {
	w.logger.Info("Stopping worker...")
	w.cancel()
	w.reader.Close()
}
