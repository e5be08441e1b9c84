package catalog

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ProductRow is one parsed catalog row, ready for variant expansion.
type ProductRow struct {
	Name        string
	Description string
	Price       float64
	Discount    float64
	Category    string
	Sizes       []string
	Colors      []string
	Images      []string
	Featured    bool
	Stock       int
}

// RowError records a row that could not be parsed. The surrounding rows
// are unaffected.
type RowError struct {
	Line    int
	Message string
}

func (e RowError) String() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

// minFields is the smallest number of resolved fields a row needs to carry
// the basic product columns. Shorter rows are skipped silently.
const minFields = 7

// ParseProducts parses delimiter-separated product data. Two historical
// layouts are accepted and detected per row: the wide layout carries
// sizes/colors/images as JSON-array strings on one row per product; the
// narrow layout carries singular size/color/image_url columns on one row
// per (product, size, color) combination.
//
// Bad rows are recorded and skipped; parsing always continues. Parsing the
// same content twice yields identical output.
func ParseProducts(content string) ([]ProductRow, []RowError) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, nil
	}
	lines := strings.Split(content, "\n")

	// Delimiter is sniffed once from the header line and applied globally.
	delimiter := byte(',')
	if strings.ContainsRune(lines[0], ';') {
		delimiter = ';'
	}

	headers := strings.Split(lines[0], string(delimiter))
	for i := range headers {
		headers[i] = strings.TrimSpace(headers[i])
	}

	var rows []ProductRow
	var errs []RowError

	for i := 1; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}

		values := splitFields(line, delimiter)
		if len(values) < minFields {
			continue
		}

		row := make(map[string]string, len(headers))
		for j, header := range headers {
			if j < len(values) {
				row[header] = values[j]
			} else {
				row[header] = ""
			}
		}

		parsed, err := parseRow(row)
		if err != nil {
			errs = append(errs, RowError{Line: i + 1, Message: err.Error()})
			continue
		}
		rows = append(rows, *parsed)
	}

	return rows, errs
}

// splitFields splits a line on the delimiter, honoring double quotes: a
// quote toggles an in-quotes state and delimiters inside quotes are
// literal. Quotes are kept in the field value; decodeArrayField strips
// them where the column is JSON.
func splitFields(line string, delimiter byte) []string {
	var values []string
	var current strings.Builder
	inQuotes := false

	for i := 0; i < len(line); i++ {
		ch := line[i]
		switch {
		case ch == '"':
			inQuotes = !inQuotes
			current.WriteByte(ch)
		case ch == delimiter && !inQuotes:
			values = append(values, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteByte(ch)
		}
	}
	values = append(values, strings.TrimSpace(current.String()))

	return values
}

func parseRow(row map[string]string) (*ProductRow, error) {
	var sizes, colors, images []string
	var discount float64

	// The narrow layout is selected only when all three of its marker
	// columns are present and non-empty.
	if row["color"] != "" && row["size"] != "" && row["image_url"] != "" {
		sizes = []string{row["size"]}
		colors = []string{row["color"]}
		images = []string{row["image_url"]}
		if dp := row["discount_price"]; dp != "" {
			parsed, err := strconv.ParseFloat(dp, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid discount_price %q: %v", dp, err)
			}
			discount = parsed
		}
	} else {
		var err error
		if sizes, err = decodeArrayField(row["sizes"], `["One Size"]`); err != nil {
			return nil, fmt.Errorf("invalid sizes: %v", err)
		}
		if colors, err = decodeArrayField(row["colors"], `["Default"]`); err != nil {
			return nil, fmt.Errorf("invalid colors: %v", err)
		}
		if images, err = decodeArrayField(row["images"], `[]`); err != nil {
			return nil, fmt.Errorf("invalid images: %v", err)
		}
	}

	price, err := strconv.ParseFloat(row["price"], 64)
	if err != nil {
		return nil, fmt.Errorf("invalid price %q: %v", row["price"], err)
	}

	stock, err := strconv.Atoi(row["stock"])
	if err != nil {
		stock = 0
	}

	return &ProductRow{
		Name:        row["name"],
		Description: row["description"],
		Price:       price,
		Discount:    discount,
		Category:    row["category"],
		Sizes:       sizes,
		Colors:      colors,
		Images:      images,
		Featured:    strings.EqualFold(row["featured"], "true"),
		Stock:       stock,
	}, nil
}

// decodeArrayField JSON-decodes a wide-layout array column. Exports from
// the old admin tool double-escape quotes, so runs of four quotes collapse
// to one and a single stray leading/trailing quote is stripped before
// decoding.
func decodeArrayField(value, fallback string) ([]string, error) {
	if value == "" {
		value = fallback
	}
	value = strings.ReplaceAll(value, `""""`, `"`)
	value = strings.TrimPrefix(value, `"`)
	value = strings.TrimSuffix(value, `"`)

	var out []string
	if err := json.Unmarshal([]byte(value), &out); err != nil {
		return nil, err
	}
	return out, nil
}
