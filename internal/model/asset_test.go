package model

import "testing"

func TestLowStock(t *testing.T) {
	tests := []struct {
		available int
		quantity  int
		expected  bool
	}{
		{0, 0, false},
		{10, 10, false},
		{3, 10, false},
		{2, 10, true},
		{1, 10, true},
		{0, 10, true},
		{1, 5, true},
		{2, 5, false},
	}

	for _, tt := range tests {
		a := &Asset{Quantity: tt.quantity, AvailableQty: tt.available}
		if got := a.LowStock(); got != tt.expected {
			t.Errorf("LowStock(%d/%d) = %v, want %v", tt.available, tt.quantity, got, tt.expected)
		}
	}
}

func TestOutOfStock(t *testing.T) {
	a := &Asset{Quantity: 5, AvailableQty: 0}
	if !a.OutOfStock() {
		t.Error("expected out of stock at 0 available")
	}
	a.AvailableQty = 1
	if a.OutOfStock() {
		t.Error("expected in stock at 1 available")
	}
}
