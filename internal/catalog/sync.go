package catalog

import (
	"context"
	"fmt"
	"strconv"

	"gorm.io/gorm"

	"github.com/seasonsofindia/the-vault-gate-27/internal/logger"
	"github.com/seasonsofindia/the-vault-gate-27/internal/models"
	"github.com/seasonsofindia/the-vault-gate-27/internal/services/shopify"
)

// pullPageLimit is Shopify's per-page maximum. Only the first page is
// fetched; catalogs beyond 250 products need cursor pagination.
// TODO: follow Link headers once the catalog approaches the page limit.
const pullPageLimit = 250

// Publisher emits catalog events after sync operations complete.
type Publisher interface {
	Publish(ctx context.Context, eventType, subject string, data map[string]interface{}) error
}

// Syncer sequences the parser, expander, reconciler and propagator into
// the three catalog entry operations: full pull, bulk import and stock
// update. Products are processed one at a time; the store's rate limits
// are respected by serialization.
type Syncer struct {
	db         *gorm.DB
	client     *shopify.Client
	reconciler *Reconciler
	propagator *Propagator
	events     Publisher
	logger     *logger.Logger
}

// NewSyncer wires the sync pipeline. events may be nil, which disables
// event publishing.
func NewSyncer(db *gorm.DB, client *shopify.Client, reconciler *Reconciler, propagator *Propagator, events Publisher, logger *logger.Logger) *Syncer {
	return &Syncer{
		db:         db,
		client:     client,
		reconciler: reconciler,
		propagator: propagator,
		events:     events,
		logger:     logger,
	}
}

// ImportResult is the aggregate outcome of a bulk import. Errors carries
// one entry per dropped row or failed product; a bad entry never fails
// the import as a whole.
type ImportResult struct {
	Created int      `json:"created"`
	Errors  []string `json:"errors"`
}

// StockUpdate is one requested stock change.
type StockUpdate struct {
	VariantID string `json:"variant_id"`
	Stock     int    `json:"stock"`
}

// StockResult reports a bulk stock save. Updated counts local writes;
// remote propagation is best-effort and reported through Warnings.
type StockResult struct {
	Updated  int      `json:"updated"`
	Warnings []string `json:"warnings"`
	Errors   []string `json:"errors"`
}

// Pull fetches the remote catalog (first page, up to 250 products) and
// merges each product through the reconciler. The merge is
// non-destructive: nothing is cleared, and a failing product is skipped
// while the pass continues. The loop is cancellable between products.
func (s *Syncer) Pull(ctx context.Context) (int, error) {
	products, err := s.client.GetProducts(ctx, pullPageLimit)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch remote catalog: %w", err)
	}
	s.logger.Info("Fetched %d products from Shopify", len(products))

	synced := 0
	for i := range products {
		if err := ctx.Err(); err != nil {
			return synced, err
		}
		if err := s.reconciler.SyncProduct(ctx, &products[i]); err != nil {
			s.logger.Error("Failed to sync product %q: %v", products[i].Title, err)
			continue
		}
		synced++
	}

	s.publish(ctx, "catalog.synced", "", map[string]interface{}{"count": synced})
	s.logger.Info("Synced %d of %d products", synced, len(products))
	return synced, nil
}

// Import parses CSV content, expands each row's variants, creates the
// products remotely and persists them locally with the remote-assigned
// variant ids. A row or product failure is recorded and skipped; the
// failed product contributes nothing to Created and is not retried.
func (s *Syncer) Import(ctx context.Context, csvContent string) (*ImportResult, error) {
	rows, rowErrs := ParseProducts(csvContent)

	result := &ImportResult{}
	for _, re := range rowErrs {
		result.Errors = append(result.Errors, re.String())
	}

	for i := range rows {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		product, err := s.CreateProduct(ctx, &rows[i])
		if err != nil {
			s.logger.Error("Failed to import product %q: %v", rows[i].Name, err)
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", rows[i].Name, err))
			continue
		}
		result.Created++
		s.publish(ctx, "product.imported", product.ID, map[string]interface{}{"name": product.Name})
	}

	s.logger.Info("Imported %d products (%d errors)", result.Created, len(result.Errors))
	return result, nil
}

// CreateProduct creates one product remotely and persists it locally with
// the remote-assigned variant ids attached. The local record keeps the
// row's enrichment fields (featured, discount) that have no remote
// equivalent.
func (s *Syncer) CreateProduct(ctx context.Context, row *ProductRow) (*models.Product, error) {
	expanded := ExpandVariants(row.Name, row.Sizes, row.Colors)

	images := make([]shopify.ImageCreate, 0, len(row.Images))
	for _, src := range row.Images {
		images = append(images, shopify.ImageCreate{Src: src})
	}

	created, err := s.client.CreateProduct(ctx, &shopify.ProductCreate{
		Title:       row.Name,
		BodyHTML:    row.Description,
		ProductType: row.Category,
		Options:     BuildOptions(row.Sizes, row.Colors),
		Variants:    BuildVariantCreates(expanded, row.Price, row.Stock),
		Images:      images,
	})
	if err != nil {
		return nil, fmt.Errorf("remote create failed: %w", err)
	}

	product := models.Product{
		SKU:         firstVariantSKU(created),
		Name:        row.Name,
		Description: row.Description,
		Price:       row.Price,
		Category:    row.Category,
		Images:      row.Images,
		Featured:    row.Featured,
		Discount:    row.Discount,
		Stock:       0,
	}
	if err := s.db.WithContext(ctx).Create(&product).Error; err != nil {
		return nil, fmt.Errorf("local insert failed: %w", err)
	}

	for i := range created.Variants {
		v := &created.Variants[i]
		remoteID := strconv.FormatInt(v.ID, 10)
		record := models.Variant{
			ProductID:        product.ID,
			Size:             created.OptionValue(v, "Size"),
			Color:            created.OptionValue(v, "Color"),
			Stock:            row.Stock,
			SKU:              v.Sku,
			ShopifyVariantID: &remoteID,
		}
		if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
			s.logger.Error("Failed to insert variant %s of %q: %v", remoteID, row.Name, err)
		}
	}

	return &product, nil
}

// UpdateStock writes each requested stock value locally, then best-effort
// propagates it to the remote ledger. The local store is authoritative:
// a propagation failure is a warning, never a rollback, and success is
// judged on local writes only. Unlinked variants are reported explicitly
// instead of being skipped silently.
func (s *Syncer) UpdateStock(ctx context.Context, updates []StockUpdate) *StockResult {
	result := &StockResult{}

	for _, update := range updates {
		var variant models.Variant
		if err := s.db.WithContext(ctx).First(&variant, "id = ?", update.VariantID).Error; err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("variant %s: %v", update.VariantID, err))
			continue
		}

		if err := s.db.WithContext(ctx).Model(&variant).Update("stock", update.Stock).Error; err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("variant %s: %v", update.VariantID, err))
			continue
		}
		result.Updated++
		s.publish(ctx, "inventory.updated", variant.ID, map[string]interface{}{"stock": update.Stock})

		if !variant.Linked() {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("variant %s has no remote link; stock not propagated", variant.ID))
			continue
		}
		if err := s.propagator.PushStock(ctx, *variant.ShopifyVariantID, update.Stock); err != nil {
			s.logger.Error("Failed to propagate stock for variant %s: %v", variant.ID, err)
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("variant %s: remote propagation failed: %v", variant.ID, err))
		}
	}

	return result
}

func (s *Syncer) publish(ctx context.Context, eventType, subject string, data map[string]interface{}) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, eventType, subject, data); err != nil {
		s.logger.Error("Failed to publish %s event: %v", eventType, err)
	}
}
