package catalog

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/seasonsofindia/the-vault-gate-27/internal/services/shopify"
)

// ExpandedVariant is one concrete variant produced from a product's
// size/color cross-product.
type ExpandedVariant struct {
	Size  *string
	Color *string
	SKU   string
}

var whitespace = regexp.MustCompile(`\s+`)

// GenerateSKU builds a deterministic SKU from the first three characters
// of the product name (uppercased) and the option values, joined with "-".
// Whitespace runs collapse to "-" so identical inputs always yield
// identical SKUs, which is what makes re-imports detectable.
func GenerateSKU(name string, values ...string) string {
	prefix := name
	if runes := []rune(name); len(runes) > 3 {
		prefix = string(runes[:3])
	}
	parts := append([]string{strings.ToUpper(prefix)}, values...)
	return whitespace.ReplaceAllString(strings.Join(parts, "-"), "-")
}

// ExpandVariants produces the full cross-product of sizes and colors.
// With both axes empty it returns a single default variant with no
// options and no SKU.
func ExpandVariants(name string, sizes, colors []string) []ExpandedVariant {
	var variants []ExpandedVariant

	switch {
	case len(sizes) > 0 && len(colors) > 0:
		for _, size := range sizes {
			for _, color := range colors {
				s, c := size, color
				variants = append(variants, ExpandedVariant{
					Size:  &s,
					Color: &c,
					SKU:   GenerateSKU(name, size, color),
				})
			}
		}
	case len(sizes) > 0:
		for _, size := range sizes {
			s := size
			variants = append(variants, ExpandedVariant{
				Size: &s,
				SKU:  GenerateSKU(name, size),
			})
		}
	case len(colors) > 0:
		for _, color := range colors {
			c := color
			variants = append(variants, ExpandedVariant{
				Color: &c,
				SKU:   GenerateSKU(name, color),
			})
		}
	default:
		variants = append(variants, ExpandedVariant{})
	}

	return variants
}

// BuildOptions returns the remote option definitions for the given axes,
// Size before Color.
func BuildOptions(sizes, colors []string) []shopify.OptionCreate {
	var options []shopify.OptionCreate
	if len(sizes) > 0 {
		options = append(options, shopify.OptionCreate{Name: "Size", Values: sizes})
	}
	if len(colors) > 0 {
		options = append(options, shopify.OptionCreate{Name: "Color", Values: colors})
	}
	return options
}

// BuildVariantCreates maps expanded variants onto the remote create
// payload. Option slots follow the option definitions: with both axes
// present size is option1 and color option2; with a single axis its value
// is option1.
func BuildVariantCreates(variants []ExpandedVariant, price float64, stock int) []shopify.VariantCreate {
	creates := make([]shopify.VariantCreate, 0, len(variants))
	priceStr := strconv.FormatFloat(price, 'f', 2, 64)

	for _, v := range variants {
		create := shopify.VariantCreate{
			Price:             priceStr,
			Sku:               v.SKU,
			InventoryQuantity: stock,
		}
		switch {
		case v.Size != nil && v.Color != nil:
			create.Option1 = v.Size
			create.Option2 = v.Color
		case v.Size != nil:
			create.Option1 = v.Size
		case v.Color != nil:
			create.Option1 = v.Color
		}
		creates = append(creates, create)
	}

	return creates
}
