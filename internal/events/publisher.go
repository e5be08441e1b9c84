package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/seasonsofindia/the-vault-gate-27/internal/logger"
)

// Event is the message shape on the catalog-events topic.
type Event struct {
	Type      string                 `json:"type"`
	Subject   string                 `json:"subject"`
	Data      map[string]interface{} `json:"data"`
	Timestamp time.Time              `json:"timestamp"`
}

const (
	TypeSyncRequested    = "sync.requested"
	TypeCatalogSynced    = "catalog.synced"
	TypeProductImported  = "product.imported"
	TypeInventoryUpdated = "inventory.updated"
)

// Publisher writes catalog events to Kafka. It satisfies
// catalog.Publisher.
type Publisher struct {
	writer *kafka.Writer
	logger *logger.Logger
}

func NewPublisher(brokers, topic string, logger *logger.Logger) *Publisher {
	writer := &kafka.Writer{
		Addr:     kafka.TCP(brokers),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}

	return &Publisher{
		writer: writer,
		logger: logger,
	}
}

func (p *Publisher) Publish(ctx context.Context, eventType, subject string, data map[string]interface{}) error {
	event := Event{
		Type:      eventType,
		Subject:   subject,
		Data:      data,
		Timestamp: time.Now().UTC(),
	}

	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(eventType),
		Value: value,
	}); err != nil {
		return fmt.Errorf("failed to write event: %w", err)
	}

	p.logger.Debug("Published event %s (%s)", eventType, subject)
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
