package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/seasonsofindia/the-vault-gate-27/internal/logger"
)

// Config carries the remote store credentials. Credentials are injected
// here once; no component reads them from the environment at call time.
type Config struct {
	StoreDomain string
	AccessToken string
	APIVersion  string

	// BaseURL overrides the URL derived from StoreDomain. Tests point this
	// at a local server.
	BaseURL string

	// Timeout applies per request. Defaults to 30s.
	Timeout time.Duration
}

type Client struct {
	config     Config
	httpClient *http.Client
	logger     *logger.Logger
}

func NewClient(cfg Config, logger *logger.Logger) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		config: cfg,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

func (c *Client) url(endpoint string) string {
	base := c.config.BaseURL
	if base == "" {
		base = fmt.Sprintf("https://%s", c.config.StoreDomain)
	}
	return fmt.Sprintf("%s/admin/api/%s/%s", base, c.config.APIVersion, endpoint)
}

// request performs one authenticated call and decodes the response into out
// when out is non-nil. Non-2xx responses surface the response body text.
func (c *Client) request(ctx context.Context, method, endpoint string, payload, out interface{}) error {
	var body io.Reader
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		body = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(endpoint), body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("X-Shopify-Access-Token", c.config.AccessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("shopify API request failed: %d - %s", resp.StatusCode, string(respBody))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// GetProducts fetches up to limit products. Shopify caps a page at 250;
// only the first page is fetched.
func (c *Client) GetProducts(ctx context.Context, limit int) ([]Product, error) {
	var resp ProductsResponse
	endpoint := fmt.Sprintf("products.json?limit=%d", limit)
	if err := c.request(ctx, http.MethodGet, endpoint, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Products, nil
}

// CreateProduct creates a product with its options, variants and images.
func (c *Client) CreateProduct(ctx context.Context, product *ProductCreate) (*Product, error) {
	payload := struct {
		Product *ProductCreate `json:"product"`
	}{Product: product}

	var resp struct {
		Product Product `json:"product"`
	}
	if err := c.request(ctx, http.MethodPost, "products.json", payload, &resp); err != nil {
		return nil, err
	}
	return &resp.Product, nil
}

// DeleteProduct deletes a product by its remote id.
func (c *Client) DeleteProduct(ctx context.Context, productID int64) error {
	endpoint := fmt.Sprintf("products/%d.json", productID)
	return c.request(ctx, http.MethodDelete, endpoint, nil, nil)
}

// GetVariant fetches a single variant, including its inventory item id.
func (c *Client) GetVariant(ctx context.Context, variantID int64) (*Variant, error) {
	var resp struct {
		Variant Variant `json:"variant"`
	}
	endpoint := fmt.Sprintf("variants/%d.json", variantID)
	if err := c.request(ctx, http.MethodGet, endpoint, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Variant, nil
}

// GetLocations fetches the store's inventory locations.
func (c *Client) GetLocations(ctx context.Context) ([]Location, error) {
	var resp struct {
		Locations []Location `json:"locations"`
	}
	if err := c.request(ctx, http.MethodGet, "locations.json", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Locations, nil
}

// SetInventoryLevel sets the available quantity for an inventory item at a
// location.
func (c *Client) SetInventoryLevel(ctx context.Context, locationID, inventoryItemID int64, available int) (*InventoryLevel, error) {
	payload := map[string]interface{}{
		"location_id":       locationID,
		"inventory_item_id": inventoryItemID,
		"available":         available,
	}

	var resp struct {
		InventoryLevel InventoryLevel `json:"inventory_level"`
	}
	if err := c.request(ctx, http.MethodPost, "inventory_levels/set.json", payload, &resp); err != nil {
		return nil, err
	}
	return &resp.InventoryLevel, nil
}
