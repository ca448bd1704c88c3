package main

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseSaleLines(t *testing.T) {
	lines, err := parseSaleLines([]string{"3:2", "7:1:1.25"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}

	if lines[0].ProductID != 3 || lines[0].Quantity != 2 {
		t.Fatalf("unexpected first line: %+v", lines[0])
	}
	if !lines[0].UnitPrice.IsZero() {
		t.Fatalf("no price override must leave UnitPrice zero")
	}

	if lines[1].ProductID != 7 || lines[1].Quantity != 1 {
		t.Fatalf("unexpected second line: %+v", lines[1])
	}
	if !lines[1].UnitPrice.Equal(decimal.RequireFromString("1.25")) {
		t.Fatalf("expected price override 1.25, got %s", lines[1].UnitPrice)
	}
}

func TestParseSaleLinesRejectsMalformedInput(t *testing.T) {
	for _, arg := range []string{"3", "a:2", "3:b", "3:2:x", "3:2:-1", "1:2:3:4"} {
		if _, err := parseSaleLines([]string{arg}); err == nil {
			t.Fatalf("expected error for %q", arg)
		}
	}
}
