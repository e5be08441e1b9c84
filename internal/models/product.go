package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Product struct {
	ID          string   `json:"id" gorm:"type:uuid;primary_key"`
	SKU         string   `json:"sku"`
	Name        string   `json:"name" gorm:"not null;index"`
	Description string   `json:"description"`
	Price       float64  `json:"price" gorm:"type:decimal(10,2)"`
	Category    string   `json:"category"`
	Images      []string `json:"images" gorm:"serializer:json"`
	Featured    bool     `json:"featured" gorm:"default:false"`
	Discount    float64  `json:"discount" gorm:"default:0"`

	// Stock is a legacy product-level rollup; stock is tracked per variant now.
	Stock int `json:"stock" gorm:"default:0"`

	Variants []Variant `json:"variants,omitempty" gorm:"foreignKey:ProductID"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Variant struct {
	ID        string  `json:"id" gorm:"type:uuid;primary_key"`
	ProductID string  `json:"product_id" gorm:"type:uuid;not null;index"`
	Size      *string `json:"size"`
	Color     *string `json:"color"`
	Stock     int     `json:"stock" gorm:"default:0"`
	SKU       string  `json:"sku"`

	// ShopifyVariantID links this variant to its remote counterpart.
	// Nil until the variant has been seen by a sync or created remotely.
	ShopifyVariantID *string `json:"shopify_variant_id" gorm:"index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Variant) TableName() string {
	return "product_variants"
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

func (v *Variant) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	return nil
}

// Linked reports whether the variant carries a remote variant identifier.
func (v *Variant) Linked() bool {
	return v.ShopifyVariantID != nil && *v.ShopifyVariantID != ""
}
