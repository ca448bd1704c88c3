package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Product struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	CategoryID  int             `json:"categoryId"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	Unit        string          `json:"unit"`
	Barcode     string          `json:"barcode"`
	Description string          `json:"description"`

	// Derived from current categories and settings, never persisted.
	CategoryName string `json:"-"`
	IsLowStock   bool   `json:"-"`
}

// TransactionItem snapshots the product name and unit price at sale time so
// later product edits do not rewrite historical receipts.
type TransactionItem struct {
	ProductID   int             `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	TotalPrice  decimal.Decimal `json:"totalPrice"`
}

type Transaction struct {
	ID          int               `json:"id"`
	Date        time.Time         `json:"date"`
	Items       []TransactionItem `json:"items"`
	SubTotal    decimal.Decimal   `json:"subTotal"`
	TaxAmount   decimal.Decimal   `json:"taxAmount"`
	TotalAmount decimal.Decimal   `json:"totalAmount"`
}

// Settings is the singleton configuration record. TaxRate is a percentage,
// e.g. 5.0 means 5%.
type Settings struct {
	StoreName         string          `json:"storeName"`
	TaxRate           decimal.Decimal `json:"taxRate"`
	CurrencySymbol    string          `json:"currencySymbol"`
	LowStockThreshold int             `json:"lowStockThreshold"`
}

func DefaultSettings() Settings {
	return Settings{
		StoreName:         "My Grocery Store",
		TaxRate:           decimal.NewFromFloat(5.0),
		CurrencySymbol:    "$",
		LowStockThreshold: 10,
	}
}

// DefaultCategories seeds a fresh store the first time it opens.
func DefaultCategories() []Category {
	return []Category{
		{ID: 1, Name: "Fruits & Vegetables"},
		{ID: 2, Name: "Dairy Products"},
		{ID: 3, Name: "Beverages"},
		{ID: 4, Name: "Snacks"},
		{ID: 5, Name: "Household"},
	}
}

// SaleLine is one line of a sale to be recorded. A zero UnitPrice means
// "charge the product's current price".
type SaleLine struct {
	ProductID int             `json:"productId"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

type ImportResult struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors"`
}

// ProductSales is one row of the top-selling-products report, grouped by the
// snapshot product name.
type ProductSales struct {
	ProductName  string `json:"productName"`
	QuantitySold int    `json:"quantitySold"`
}
