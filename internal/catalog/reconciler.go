package catalog

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"gorm.io/gorm"

	"github.com/seasonsofindia/the-vault-gate-27/internal/logger"
	"github.com/seasonsofindia/the-vault-gate-27/internal/models"
	"github.com/seasonsofindia/the-vault-gate-27/internal/services/shopify"
)

// Reconciler merges freshly fetched remote products into the local store.
//
// The merge policy is local-wins-unless-absent: featured, discount,
// description, category, price and images are local enrichments and are
// never overwritten on an existing product; only an empty SKU is filled
// from the remote side. For variants the split is by field: once a variant
// is linked, remote owns its descriptive fields (size, color, SKU) and the
// local store owns its stock. Remote stock seeds a local variant exactly
// once, at first sight.
type Reconciler struct {
	db     *gorm.DB
	logger *logger.Logger
}

func NewReconciler(db *gorm.DB, logger *logger.Logger) *Reconciler {
	return &Reconciler{
		db:     db,
		logger: logger,
	}
}

// SyncProduct merges one remote product and its variants. Variant-level
// store errors are logged and skipped; the remaining variants still sync.
func (r *Reconciler) SyncProduct(ctx context.Context, remote *shopify.Product) error {
	productID, err := r.syncProductRecord(ctx, remote)
	if err != nil {
		return err
	}

	for i := range remote.Variants {
		if err := r.syncVariant(ctx, productID, remote, &remote.Variants[i]); err != nil {
			r.logger.Error("Failed to sync variant %d of %q: %v", remote.Variants[i].ID, remote.Title, err)
		}
	}

	return nil
}

// syncProductRecord matches the remote product to a local one by exact
// name and returns the local product id, inserting a new record when no
// match exists.
func (r *Reconciler) syncProductRecord(ctx context.Context, remote *shopify.Product) (string, error) {
	var local models.Product
	err := r.db.WithContext(ctx).Where("name = ?", remote.Title).First(&local).Error

	if err == nil {
		// Only an empty SKU is filled in; everything else stays local.
		if local.SKU == "" {
			if sku := firstVariantSKU(remote); sku != "" {
				if err := r.db.WithContext(ctx).Model(&local).Update("sku", sku).Error; err != nil {
					return "", fmt.Errorf("failed to update product %q: %w", remote.Title, err)
				}
			}
		}
		r.logger.Debug("Matched existing product: %s", remote.Title)
		return local.ID, nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", fmt.Errorf("failed to look up product %q: %w", remote.Title, err)
	}

	product := models.Product{
		SKU:         firstVariantSKU(remote),
		Name:        remote.Title,
		Description: remote.BodyHTML,
		Category:    remote.ProductType,
		Price:       firstVariantPrice(remote),
		Images:      imageSources(remote),
		Featured:    false,
		Discount:    0,
		Stock:       0, // stock lives on variants
	}
	if product.Category == "" {
		product.Category = "Uncategorized"
	}

	if err := r.db.WithContext(ctx).Create(&product).Error; err != nil {
		return "", fmt.Errorf("failed to insert product %q: %w", remote.Title, err)
	}
	r.logger.Info("Inserted new product: %s", remote.Title)
	return product.ID, nil
}

func (r *Reconciler) syncVariant(ctx context.Context, productID string, remote *shopify.Product, variant *shopify.Variant) error {
	remoteID := strconv.FormatInt(variant.ID, 10)
	size := remote.OptionValue(variant, "Size")
	color := remote.OptionValue(variant, "Color")

	var local models.Variant
	err := r.db.WithContext(ctx).
		Where("product_id = ? AND shopify_variant_id = ?", productID, remoteID).
		First(&local).Error

	if err == nil {
		// Linked variant: remote owns size/color/SKU, local keeps stock.
		updates := map[string]interface{}{
			"size":  size,
			"color": color,
		}
		if variant.Sku != "" {
			updates["sku"] = variant.Sku
		}
		if err := r.db.WithContext(ctx).Model(&local).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update variant: %w", err)
		}
		return nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to look up variant: %w", err)
	}

	// First time this remote variant is seen: remote stock seeds local.
	record := models.Variant{
		ProductID:        productID,
		Size:             size,
		Color:            color,
		Stock:            variant.InventoryQuantity,
		SKU:              variant.Sku,
		ShopifyVariantID: &remoteID,
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return fmt.Errorf("failed to insert variant: %w", err)
	}
	return nil
}

func firstVariantSKU(p *shopify.Product) string {
	if len(p.Variants) == 0 {
		return ""
	}
	return p.Variants[0].Sku
}

func firstVariantPrice(p *shopify.Product) float64 {
	if len(p.Variants) == 0 {
		return 0
	}
	price, err := strconv.ParseFloat(p.Variants[0].Price, 64)
	if err != nil {
		return 0
	}
	return price
}

func imageSources(p *shopify.Product) []string {
	images := make([]string, 0, len(p.Images))
	for _, img := range p.Images {
		images = append(images, img.Src)
	}
	return images
}
