package store

import "grocerypos/backend/internal/domain"

// Annotate recomputes the derived product fields (categoryName, isLowStock)
// from current base state. It is a pure projection: the inputs are left
// untouched and the result is a fresh slice. A dangling category reference
// resolves to "Unknown"; low stock means a quantity strictly between zero and
// the configured threshold.
func Annotate(categories []domain.Category, products []domain.Product, settings domain.Settings) []domain.Product {
	names := make(map[int]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}

	out := make([]domain.Product, len(products))
	for i, p := range products {
		name, ok := names[p.CategoryID]
		if !ok {
			name = "Unknown"
		}
		p.CategoryName = name
		p.IsLowStock = p.Quantity > 0 && p.Quantity < settings.LowStockThreshold
		out[i] = p
	}
	return out
}
