package importer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grocerypos/backend/internal/domain"
	"grocerypos/backend/internal/store"
)

func newTestImporter(t *testing.T) (*Importer, *store.Store) {
	t.Helper()
	st, err := store.Open(t.TempDir())
	require.NoError(t, err)
	return New(st), st
}

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "import.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestImportProducts(t *testing.T) {
	im, st := newTestImporter(t)
	path := writeCSV(t, "Name,Category,Price,Quantity,Unit\n"+
		"Apple,Fruits & Vegetables,0.50,100,kg\n"+
		"Milk,Dairy Products,1.20,40,liter\n")

	result := im.ImportProducts(path)

	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, 0, result.Skipped)
	assert.Empty(t, result.Errors)

	products := st.Products()
	require.Len(t, products, 2)
	assert.Equal(t, "Apple", products[0].Name)
	assert.Equal(t, "Fruits & Vegetables", products[0].CategoryName)
	assert.True(t, products[0].Price.Equal(decimal.RequireFromString("0.50")))
	assert.Equal(t, 100, products[0].Quantity)
}

func TestImportProductsHeaderSynonyms(t *testing.T) {
	im, st := newTestImporter(t)
	path := writeCSV(t, "product_name,category_name,price,Qty,SKU,desc\n"+
		"Bread,Bakery,2.00,12,4006381333931,Sliced white bread\n")

	result := im.ImportProducts(path)

	require.Equal(t, 1, result.Imported)
	products := st.Products()
	require.Len(t, products, 1)
	assert.Equal(t, "Bread", products[0].Name)
	assert.Equal(t, 12, products[0].Quantity)
	assert.Equal(t, "4006381333931", products[0].Barcode)
	assert.Equal(t, "Sliced white bread", products[0].Description)
}

func TestImportProductsCreatesUnknownCategory(t *testing.T) {
	im, st := newTestImporter(t)
	path := writeCSV(t, "Name,Category,Price,Quantity\n"+
		"Shampoo,Personal Care,3.50,20\n"+
		"Soap,personal care,1.00,30\n")

	result := im.ImportProducts(path)

	assert.Equal(t, 2, result.Imported)

	var created *domain.Category
	for _, c := range st.Categories() {
		if c.Name == "Personal Care" {
			created = &c
			break
		}
	}
	require.NotNil(t, created, "category should be auto-created once")
	assert.Equal(t, 6, created.ID)

	products := st.Products()
	require.Len(t, products, 2)
	assert.Equal(t, created.ID, products[0].CategoryID)
	assert.Equal(t, created.ID, products[1].CategoryID, "case-insensitive match must reuse the category")
}

func TestImportProductsBlankAndBadRows(t *testing.T) {
	im, st := newTestImporter(t)
	path := writeCSV(t, "Name,Category,Price,Quantity,Unit\n"+
		",Beverages,1.00,5,bottle\n"+
		"Water,,not-a-price,oops,\n")

	result := im.ImportProducts(path)

	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 1, result.Skipped)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "row 2")
	assert.Contains(t, result.Errors[0], "product name is required")

	products := st.Products()
	require.Len(t, products, 1)
	assert.Equal(t, "Water", products[0].Name)
	assert.Equal(t, 1, products[0].CategoryID, "blank category falls back to the first category")
	assert.True(t, products[0].Price.IsZero(), "unparsable price imports as zero")
	assert.Equal(t, 0, products[0].Quantity, "unparsable quantity imports as zero")
	assert.Equal(t, "piece", products[0].Unit)
}

func TestImportProductsMissingFile(t *testing.T) {
	im, _ := newTestImporter(t)

	result := im.ImportProducts(filepath.Join(t.TempDir(), "nope.csv"))

	assert.Equal(t, 0, result.Imported)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "open csv")
}

func TestImportCategories(t *testing.T) {
	im, st := newTestImporter(t)
	path := writeCSV(t, "Name\nBakery\nFrozen Food\n")

	result := im.ImportCategories(path)

	assert.Equal(t, 2, result.Imported)
	assert.Len(t, st.Categories(), 7)
}

func TestImportCategoriesSkipsDuplicates(t *testing.T) {
	im, st := newTestImporter(t)
	path := writeCSV(t, "Name\nbeverages\nBakery\nBAKERY\n\" \"\n")

	result := im.ImportCategories(path)

	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 3, result.Skipped)
	require.Len(t, result.Errors, 3)
	assert.Contains(t, result.Errors[0], "already exists")
	assert.Contains(t, result.Errors[2], "category name is required")
	assert.Len(t, st.Categories(), 6)
}
