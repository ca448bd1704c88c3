// Package report derives read-only views from the catalog and the sales
// ledger. Queries never mutate state; they work on snapshots taken from the
// source at call time.
package report

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"grocerypos/backend/internal/domain"
)

// Source is the slice of store state the engine reads. *store.Store
// satisfies it.
type Source interface {
	Categories() []domain.Category
	Products() []domain.Product
	Transactions() []domain.Transaction
	Settings() domain.Settings
}

type Engine struct {
	src Source
}

func NewEngine(src Source) *Engine {
	return &Engine{src: src}
}

// LowStockProducts returns products with a quantity strictly between zero and
// the configured threshold, ascending by quantity.
func (e *Engine) LowStockProducts() []domain.Product {
	threshold := e.src.Settings().LowStockThreshold

	low := make([]domain.Product, 0, 8)
	for _, p := range e.src.Products() {
		if p.Quantity > 0 && p.Quantity < threshold {
			low = append(low, p)
		}
	}

	slices.SortStableFunc(low, func(a, b domain.Product) int {
		return a.Quantity - b.Quantity
	})
	return low
}

// SalesInRange returns transactions whose date falls within [start, end],
// comparing calendar dates only, newest first.
func (e *Engine) SalesInRange(start, end time.Time) []domain.Transaction {
	startDay := dateOf(start)
	endDay := dateOf(end)

	result := make([]domain.Transaction, 0, 16)
	for _, tx := range e.src.Transactions() {
		day := dateOf(tx.Date)
		if day.Before(startDay) || day.After(endDay) {
			continue
		}
		result = append(result, tx)
	}

	sortByDateDesc(result)
	return result
}

// TodaySales sums the total amount of today's transactions.
func (e *Engine) TodaySales() decimal.Decimal {
	today := dateOf(time.Now())

	total := decimal.Zero
	for _, tx := range e.src.Transactions() {
		if dateOf(tx.Date).Equal(today) {
			total = total.Add(tx.TotalAmount)
		}
	}
	return total
}

// TodayTransactionCount counts today's transactions.
func (e *Engine) TodayTransactionCount() int {
	today := dateOf(time.Now())

	count := 0
	for _, tx := range e.src.Transactions() {
		if dateOf(tx.Date).Equal(today) {
			count++
		}
	}
	return count
}

// RecentTransactions returns the n newest transactions.
func (e *Engine) RecentTransactions(n int) []domain.Transaction {
	txs := e.src.Transactions()
	sortByDateDesc(txs)
	if n > 0 && len(txs) > n {
		txs = txs[:n]
	}
	return txs
}

// SalesByCategory sums item totals in the date range, keyed by the sold
// product's *current* category. Moving a product to another category
// re-attributes its historical sales; items whose product no longer exists
// are skipped.
func (e *Engine) SalesByCategory(start, end time.Time) map[int]decimal.Decimal {
	categoryOf := make(map[int]int)
	for _, p := range e.src.Products() {
		categoryOf[p.ID] = p.CategoryID
	}

	result := make(map[int]decimal.Decimal)
	for _, tx := range e.SalesInRange(start, end) {
		for _, item := range tx.Items {
			categoryID, ok := categoryOf[item.ProductID]
			if !ok {
				continue
			}
			result[categoryID] = result[categoryID].Add(item.TotalPrice)
		}
	}
	return result
}

// TopSellingProducts returns the n best sellers in the date range by quantity
// sold, grouped by the snapshot product name so renames do not merge
// historical rows with new ones.
func (e *Engine) TopSellingProducts(start, end time.Time, n int) []domain.ProductSales {
	sold := make(map[string]int)
	for _, tx := range e.SalesInRange(start, end) {
		for _, item := range tx.Items {
			sold[item.ProductName] += item.Quantity
		}
	}

	rows := make([]domain.ProductSales, 0, len(sold))
	for name, qty := range sold {
		rows = append(rows, domain.ProductSales{ProductName: name, QuantitySold: qty})
	}

	slices.SortFunc(rows, func(a, b domain.ProductSales) int {
		if a.QuantitySold != b.QuantitySold {
			return b.QuantitySold - a.QuantitySold
		}
		if a.ProductName < b.ProductName {
			return -1
		}
		if a.ProductName > b.ProductName {
			return 1
		}
		return 0
	})

	if n > 0 && len(rows) > n {
		rows = rows[:n]
	}
	return rows
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func sortByDateDesc(txs []domain.Transaction) {
	slices.SortStableFunc(txs, func(a, b domain.Transaction) int {
		if a.Date.After(b.Date) {
			return -1
		}
		if a.Date.Before(b.Date) {
			return 1
		}
		return 0
	})
}
