// Package importer loads catalog data from CSV files. Rows are applied through
// the store one by one, so a bad row never blocks the rest of the file.
package importer

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"grocerypos/backend/internal/domain"
	"grocerypos/backend/internal/store"
)

type Importer struct {
	store *store.Store
}

func New(st *store.Store) *Importer {
	return &Importer{store: st}
}

// ImportProducts reads a product CSV and adds each valid row. Headers are
// matched case-insensitively and common synonyms are accepted (qty, sku,
// product_name). Unknown category names are created on the fly; a blank
// category falls back to category 1. Unparsable prices and quantities import
// as zero rather than failing the row.
func (im *Importer) ImportProducts(path string) domain.ImportResult {
	var result domain.ImportResult

	rows, header, err := readCSV(path)
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		return result
	}

	categoryIDs := make(map[string]int)
	for _, c := range im.store.Categories() {
		categoryIDs[strings.ToLower(c.Name)] = c.ID
	}

	for i, row := range rows {
		line := i + 2 // 1-based, after the header

		name := strings.TrimSpace(field(row, header, "name", "productname", "product_name"))
		if name == "" {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: product name is required", line))
			continue
		}

		categoryID := 1
		if categoryName := strings.TrimSpace(field(row, header, "category", "categoryname", "category_name")); categoryName != "" {
			id, ok := categoryIDs[strings.ToLower(categoryName)]
			if !ok {
				created, err := im.store.AddCategory(categoryName)
				if err != nil {
					result.Skipped++
					result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", line, err))
					continue
				}
				id = created.ID
				categoryIDs[strings.ToLower(categoryName)] = id
			}
			categoryID = id
		}

		product := domain.Product{
			Name:        name,
			CategoryID:  categoryID,
			Price:       parsePrice(field(row, header, "price")),
			Quantity:    parseQuantity(field(row, header, "quantity", "qty", "stock")),
			Unit:        strings.TrimSpace(field(row, header, "unit", "unittype")),
			Barcode:     strings.TrimSpace(field(row, header, "barcode", "sku", "code")),
			Description: strings.TrimSpace(field(row, header, "description", "desc")),
		}

		if _, err := im.store.AddProduct(product); err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", line, err))
			continue
		}
		result.Imported++
	}
	return result
}

// ImportCategories reads a category CSV. Names already present in the store
// are skipped, compared case-insensitively.
func (im *Importer) ImportCategories(path string) domain.ImportResult {
	var result domain.ImportResult

	rows, header, err := readCSV(path)
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		return result
	}

	seen := make(map[string]bool)
	for _, c := range im.store.Categories() {
		seen[strings.ToLower(c.Name)] = true
	}

	for i, row := range rows {
		line := i + 2

		name := strings.TrimSpace(field(row, header, "name", "categoryname", "category_name", "category"))
		if name == "" {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: category name is required", line))
			continue
		}
		if seen[strings.ToLower(name)] {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: category %q already exists", line, name))
			continue
		}

		if _, err := im.store.AddCategory(name); err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", line, err))
			continue
		}
		seen[strings.ToLower(name)] = true
		result.Imported++
	}
	return result
}

// readCSV returns the data rows and a column index keyed by normalized header
// name. Rows may have ragged lengths; short rows read as blank fields.
func readCSV(path string) ([][]string, map[string]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("read csv: file %s is empty", path)
	}

	header := make(map[string]int, len(records[0]))
	for i, col := range records[0] {
		header[normalizeHeader(col)] = i
	}
	return records[1:], header, nil
}

func normalizeHeader(col string) string {
	return strings.ToLower(strings.TrimSpace(col))
}

// field returns the first matching column's value, or "" when no synonym is
// present or the row is too short.
func field(row []string, header map[string]int, names ...string) string {
	for _, name := range names {
		idx, ok := header[name]
		if !ok || idx >= len(row) {
			continue
		}
		return row[idx]
	}
	return ""
}

func parsePrice(raw string) decimal.Decimal {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero
	}
	price, err := decimal.NewFromString(raw)
	if err != nil || price.IsNegative() {
		return decimal.Zero
	}
	return price
}

func parseQuantity(raw string) int {
	qty, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || qty < 0 {
		return 0
	}
	return qty
}
