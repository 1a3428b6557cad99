package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeStockLevel(t *testing.T) {
	tests := []struct {
		name     string
		quantity int
		reorder  int
		want     string
	}{
		{"below reorder is low", 3, 10, StockLow},
		{"at reorder is low", 10, 10, StockLow},
		{"up to double reorder is medium", 15, 10, StockMedium},
		{"at double reorder is medium", 20, 10, StockMedium},
		{"above double reorder is high", 21, 10, StockHigh},
		{"zero quantity zero reorder is low", 0, 0, StockLow},
		{"positive quantity zero reorder is high", 1, 0, StockHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := InventoryItem{Quantity: tt.quantity, ReorderLevel: tt.reorder}
			assert.Equal(t, tt.want, item.ComputeStockLevel())
		})
	}
}
