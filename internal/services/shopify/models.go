package shopify

import (
	"time"
)

// Product represents a Shopify product
type Product struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	BodyHTML    string     `json:"body_html"`
	Vendor      string     `json:"vendor"`
	ProductType string     `json:"product_type"`
	Handle      string     `json:"handle"`
	Status      string     `json:"status"`
	Tags        string     `json:"tags"`
	Variants    []Variant  `json:"variants"`
	Images      []Image    `json:"images"`
	Options     []Option   `json:"options"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	PublishedAt *time.Time `json:"published_at"`
}

// Variant represents a product variant. Option1..Option3 are positional;
// their meaning is defined by the owning product's Options list.
type Variant struct {
	ID                int64     `json:"id"`
	ProductID         int64     `json:"product_id"`
	Title             string    `json:"title"`
	Price             string    `json:"price"`
	Sku               string    `json:"sku"`
	Position          int       `json:"position"`
	Option1           *string   `json:"option1"`
	Option2           *string   `json:"option2"`
	Option3           *string   `json:"option3"`
	InventoryItemID   int64     `json:"inventory_item_id"`
	InventoryQuantity int       `json:"inventory_quantity"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// Image represents a product image
type Image struct {
	ID        int64   `json:"id"`
	ProductID int64   `json:"product_id"`
	Position  int     `json:"position"`
	Alt       *string `json:"alt"`
	Src       string  `json:"src"`
}

// Option represents a named axis of variation. Position ties the option to
// the variants' option1/option2/option3 slots.
type Option struct {
	ID        int64    `json:"id"`
	ProductID int64    `json:"product_id"`
	Name      string   `json:"name"`
	Position  int      `json:"position"`
	Values    []string `json:"values"`
}

// Location represents a Shopify inventory location
type Location struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Active  bool   `json:"active"`
	Country string `json:"country"`
	City    string `json:"city"`
}

// InventoryLevel is the (inventory item, location, available) triple that
// carries stock on the Shopify side.
type InventoryLevel struct {
	InventoryItemID int64 `json:"inventory_item_id"`
	LocationID      int64 `json:"location_id"`
	Available       int   `json:"available"`
}

// ProductCreate is the payload for creating a product
type ProductCreate struct {
	Title       string          `json:"title"`
	BodyHTML    string          `json:"body_html,omitempty"`
	Vendor      string          `json:"vendor,omitempty"`
	ProductType string          `json:"product_type,omitempty"`
	Tags        string          `json:"tags,omitempty"`
	Options     []OptionCreate  `json:"options,omitempty"`
	Variants    []VariantCreate `json:"variants"`
	Images      []ImageCreate   `json:"images,omitempty"`
}

type OptionCreate struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

type VariantCreate struct {
	Option1           *string `json:"option1,omitempty"`
	Option2           *string `json:"option2,omitempty"`
	Option3           *string `json:"option3,omitempty"`
	Price             string  `json:"price"`
	Sku               string  `json:"sku,omitempty"`
	InventoryQuantity int     `json:"inventory_quantity,omitempty"`
}

type ImageCreate struct {
	Src string  `json:"src"`
	Alt *string `json:"alt,omitempty"`
}

// ProductsResponse represents the response from the products API
type ProductsResponse struct {
	Products []Product `json:"products"`
}

// OptionValue resolves a variant's value for the option named name by
// looking up the option's position on the product. Returns nil when the
// product has no such option.
func (p *Product) OptionValue(v *Variant, name string) *string {
	for _, opt := range p.Options {
		if opt.Name != name {
			continue
		}
		switch opt.Position {
		case 1:
			return v.Option1
		case 2:
			return v.Option2
		case 3:
			return v.Option3
		}
	}
	return nil
}
