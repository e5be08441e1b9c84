package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/seasonsofindia/the-vault-gate-27/internal/logger"
	"github.com/seasonsofindia/the-vault-gate-27/internal/models"
)

const (
	productListKey = "catalog:products"
	productListTTL = 5 * time.Minute
)

// Client caches the storefront product list in Redis. A cache failure is
// never surfaced to callers as anything other than a miss; the database
// remains the source of truth.
type Client struct {
	rdb    *redis.Client
	logger *logger.Logger
}

func New(addr string, logger *logger.Logger) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return NewFromClient(rdb, logger), nil
}

// NewFromClient wraps an existing redis client without the startup ping.
func NewFromClient(rdb *redis.Client, logger *logger.Logger) *Client {
	return &Client{rdb: rdb, logger: logger}
}

// GetProducts returns the cached product list, or ok=false on a miss or
// any cache error.
func (c *Client) GetProducts(ctx context.Context) ([]models.Product, bool) {
	raw, err := c.rdb.Get(ctx, productListKey).Result()
	if err != nil {
		if err != redis.Nil {
			c.logger.Error("Cache read failed: %v", err)
		}
		return nil, false
	}

	var products []models.Product
	if err := json.Unmarshal([]byte(raw), &products); err != nil {
		c.logger.Error("Failed to decode cached products: %v", err)
		return nil, false
	}
	return products, true
}

// SetProducts stores the product list with a TTL so stale entries age out
// even if an invalidation is missed.
func (c *Client) SetProducts(ctx context.Context, products []models.Product) {
	raw, err := json.Marshal(products)
	if err != nil {
		c.logger.Error("Failed to encode products for cache: %v", err)
		return
	}
	if err := c.rdb.Set(ctx, productListKey, raw, productListTTL).Err(); err != nil {
		c.logger.Error("Cache write failed: %v", err)
	}
}

// Invalidate drops the cached product list. Called after any catalog
// mutation (CRUD, import, pull).
func (c *Client) Invalidate(ctx context.Context) {
	if err := c.rdb.Del(ctx, productListKey).Err(); err != nil {
		c.logger.Error("Cache invalidation failed: %v", err)
	}
}

func (c *Client) Close() error {
	return c.rdb.Close()
}
