package catalog

import (
	"context"
	"fmt"
	"strconv"

	"github.com/seasonsofindia/the-vault-gate-27/internal/logger"
	"github.com/seasonsofindia/the-vault-gate-27/internal/services/shopify"
)

// Propagator pushes a single variant's stock value to the remote
// inventory ledger. Stock has no field on the remote variant itself; it
// lives in a per-location ledger keyed by the variant's inventory item.
type Propagator struct {
	client *shopify.Client

	// locationID selects the inventory location; 0 falls back to the
	// first location the store returns.
	locationID int64

	logger *logger.Logger
}

func NewPropagator(client *shopify.Client, locationID int64, logger *logger.Logger) *Propagator {
	return &Propagator{
		client:     client,
		locationID: locationID,
		logger:     logger,
	}
}

// PushStock resolves the variant's inventory item and the target location,
// then sets the available quantity. The three remote calls are not
// transactional; a failure leaves the remote ledger as it was.
func (p *Propagator) PushStock(ctx context.Context, shopifyVariantID string, stock int) error {
	variantID, err := strconv.ParseInt(shopifyVariantID, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid shopify variant id %q: %w", shopifyVariantID, err)
	}

	variant, err := p.client.GetVariant(ctx, variantID)
	if err != nil {
		return fmt.Errorf("failed to fetch variant %d: %w", variantID, err)
	}

	locationID, err := p.resolveLocation(ctx)
	if err != nil {
		return err
	}

	if _, err := p.client.SetInventoryLevel(ctx, locationID, variant.InventoryItemID, stock); err != nil {
		return fmt.Errorf("failed to set inventory level for variant %d: %w", variantID, err)
	}

	p.logger.Debug("Propagated stock %d for variant %s to location %d", stock, shopifyVariantID, locationID)
	return nil
}

func (p *Propagator) resolveLocation(ctx context.Context) (int64, error) {
	if p.locationID != 0 {
		return p.locationID, nil
	}

	locations, err := p.client.GetLocations(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch locations: %w", err)
	}
	if len(locations) == 0 {
		return 0, fmt.Errorf("no inventory location found")
	}
	return locations[0].ID, nil
}
