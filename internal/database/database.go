package database

import (
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/seasonsofindia/the-vault-gate-27/internal/models"
)

type Database struct {
	DB *gorm.DB
}

// Schema is the catalog schema. cmd/migrate applies the same statements
// against production Postgres.
const Schema = `
CREATE TABLE IF NOT EXISTS products (
	id UUID PRIMARY KEY,
	sku TEXT,
	name TEXT NOT NULL,
	description TEXT,
	price DECIMAL(10,2),
	category TEXT,
	images TEXT,
	featured BOOLEAN DEFAULT false,
	discount DECIMAL DEFAULT 0,
	stock INTEGER DEFAULT 0,
	created_at TIMESTAMPTZ DEFAULT NOW(),
	updated_at TIMESTAMPTZ DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_products_name ON products(name);

CREATE TABLE IF NOT EXISTS product_variants (
	id UUID PRIMARY KEY,
	product_id UUID NOT NULL REFERENCES products(id) ON DELETE CASCADE,
	size TEXT,
	color TEXT,
	stock INTEGER DEFAULT 0,
	sku TEXT,
	shopify_variant_id TEXT,
	created_at TIMESTAMPTZ DEFAULT NOW(),
	updated_at TIMESTAMPTZ DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_product_variants_product_id ON product_variants(product_id);
CREATE INDEX IF NOT EXISTS idx_product_variants_shopify_variant_id ON product_variants(shopify_variant_id);
`

func New(databaseURL string) (*Database, error) {
	var db *gorm.DB
	var err error

	if strings.HasPrefix(databaseURL, "sqlite://") {
		// SQLite for development
		dbPath := strings.TrimPrefix(databaseURL, "sqlite://")
		db, err = gorm.Open(sqlite.Open(dbPath), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Warn),
		})
	} else {
		// PostgreSQL for production
		db, err = gorm.Open(postgres.Open(databaseURL), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Warn),
		})
	}

	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &Database{DB: db}, nil
}

// Migrate creates the catalog tables if they do not exist. Production
// Postgres deployments run cmd/migrate with Schema instead.
func (d *Database) Migrate() error {
	if err := d.DB.AutoMigrate(&models.Product{}, &models.Variant{}); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}
	return nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
