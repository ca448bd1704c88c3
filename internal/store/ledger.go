package store

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"grocerypos/backend/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// RecordSale builds a transaction from the given lines, appends it to the
// ledger, and decrements the sold products' stock clamped at zero. A sale may
// exceed stock; the quantity simply bottoms out. The ledger write and the
// product write are two separate files, in that order.
func (s *Store) RecordSale(lines []domain.SaleLine) (domain.Transaction, error) {
	if len(lines) == 0 {
		return domain.Transaction{}, ErrEmptySale
	}

	s.mu.Lock()

	items := make([]domain.TransactionItem, 0, len(lines))
	for _, line := range lines {
		if line.Quantity < 1 {
			s.mu.Unlock()
			return domain.Transaction{}, fmt.Errorf("product %d: sale quantity must be positive", line.ProductID)
		}
		product, ok := s.findProduct(line.ProductID)
		if !ok {
			s.mu.Unlock()
			return domain.Transaction{}, fmt.Errorf("product %d: %w", line.ProductID, ErrNotFound)
		}
		unitPrice := line.UnitPrice
		if unitPrice.IsZero() {
			unitPrice = product.Price
		}
		qty := decimal.NewFromInt(int64(line.Quantity))
		items = append(items, domain.TransactionItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    line.Quantity,
			UnitPrice:   unitPrice,
			TotalPrice:  unitPrice.Mul(qty),
		})
	}

	subTotal := decimal.Zero
	for _, item := range items {
		subTotal = subTotal.Add(item.TotalPrice)
	}
	taxAmount := subTotal.Mul(s.settings.TaxRate).Div(hundred)
	totalAmount := subTotal.Add(taxAmount)

	tx := domain.Transaction{
		ID:          nextID(s.transactions, func(t domain.Transaction) int { return t.ID }),
		Date:        time.Now(),
		Items:       items,
		SubTotal:    subTotal,
		TaxAmount:   taxAmount,
		TotalAmount: totalAmount,
	}
	s.transactions = append(s.transactions, tx)
	s.persist(transactionsFile, s.transactions)

	for _, item := range tx.Items {
		for i := range s.products {
			if s.products[i].ID != item.ProductID {
				continue
			}
			s.products[i].Quantity -= item.Quantity
			if s.products[i].Quantity < 0 {
				s.products[i].Quantity = 0
			}
			break
		}
	}
	s.persist(productsFile, s.products)
	s.derive()
	s.mu.Unlock()

	s.notify()
	return cloneTransaction(tx), nil
}

// findProduct must be called with s.mu held.
func (s *Store) findProduct(id int) (domain.Product, bool) {
	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Product{}, false
}
