package models

import "testing"

func TestStockStatus(t *testing.T) {
	tests := []struct {
		name    string
		stock   int
		reorder int
		want    string
	}{
		{"well stocked", 100, 10, StockOK},
		{"just above reorder", 11, 10, StockOK},
		{"at reorder level", 10, 10, StockLow},
		{"below reorder level", 5, 10, StockLow},
		{"one unit left", 1, 10, StockLow},
		{"out of stock", 0, 10, StockOut},
		{"zero reorder level in stock", 3, 0, StockOK},
		{"zero reorder level empty", 0, 0, StockOut},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Drug{StockQuantity: tt.stock, ReorderLevel: tt.reorder}
			if got := d.StockStatus(); got != tt.want {
				t.Errorf("StockStatus() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestVisitCompleted(t *testing.T) {
	v := Visit{Status: StatusBilling}
	if v.Completed() {
		t.Error("billing visit reported completed")
	}
	v.Status = StatusCompleted
	if !v.Completed() {
		t.Error("completed visit not reported completed")
	}
}
