package store

import (
	"testing"

	"github.com/shopspring/decimal"

	"grocerypos/backend/internal/domain"
)

func TestAnnotateResolvesCategoryNames(t *testing.T) {
	categories := []domain.Category{{ID: 1, Name: "Beverages"}}
	products := []domain.Product{
		{ID: 1, Name: "Cola", CategoryID: 1, Price: decimal.Zero},
		{ID: 2, Name: "Orphan", CategoryID: 9, Price: decimal.Zero},
	}

	annotated := Annotate(categories, products, domain.DefaultSettings())

	if annotated[0].CategoryName != "Beverages" {
		t.Fatalf("expected Beverages, got %q", annotated[0].CategoryName)
	}
	if annotated[1].CategoryName != "Unknown" {
		t.Fatalf("dangling reference must resolve to Unknown, got %q", annotated[1].CategoryName)
	}
	if products[0].CategoryName != "" {
		t.Fatalf("Annotate must not modify its input")
	}
}

func TestAnnotateLowStockBoundaries(t *testing.T) {
	settings := domain.DefaultSettings() // threshold 10
	cases := []struct {
		quantity int
		low      bool
	}{
		{quantity: 5, low: true},
		{quantity: 0, low: false},
		{quantity: 15, low: false},
		{quantity: 9, low: true},
		{quantity: 10, low: false},
		{quantity: 1, low: true},
	}

	for _, tc := range cases {
		annotated := Annotate(nil, []domain.Product{{ID: 1, Name: "X", Quantity: tc.quantity, Price: decimal.Zero}}, settings)
		if annotated[0].IsLowStock != tc.low {
			t.Fatalf("quantity %d: expected isLowStock=%t", tc.quantity, tc.low)
		}
	}
}
