package stats_test

import (
	"testing"

	"github.com/fpemc/crm-api/internal/stats"
	"github.com/stretchr/testify/assert"
)

func TestExtractRevenue(t *testing.T) {
	items := []stats.LineItem{
		{Quantity: 2, CustomPrice: dec("150"), ServicePrice: dec("999"), PackagePrice: dec("999")},
		{Quantity: 1, ServicePrice: dec("300"), PackagePrice: dec("999")},
		{Quantity: 3, PackagePrice: dec("100")},
		{Quantity: 5, ServicePrice: dec("80"), Offered: true},
	}

	tests := []struct {
		name     string
		sale     stats.Sale
		expected string
	}{
		{
			name:     "financial section price wins over line items",
			sale:     stats.Sale{Financial: &stats.FinancialSection{Price: dec("12500.50")}, Items: items},
			expected: "12500.5",
		},
		{
			name:     "missing financial section falls back to line items",
			sale:     stats.Sale{Items: items},
			expected: "900",
		},
		{
			name:     "financial section without price falls back to line items",
			sale:     stats.Sale{Financial: &stats.FinancialSection{TotalTax: dec("20")}, Items: items},
			expected: "900",
		},
		{
			name:     "negative price is not usable",
			sale:     stats.Sale{Financial: &stats.FinancialSection{Price: dec("-10")}, Items: items},
			expected: "900",
		},
		{
			name:     "zero price is a real price",
			sale:     stats.Sale{Financial: &stats.FinancialSection{Price: dec("0")}, Items: items},
			expected: "0",
		},
		{
			name:     "no price and no items",
			sale:     stats.Sale{},
			expected: "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := stats.ExtractRevenue(tt.sale)
			assert.True(t, got.Equal(*dec(tt.expected)), "got %s, want %s", got, tt.expected)
			assert.False(t, got.IsNegative())
		})
	}
}

func TestLineItem_Total(t *testing.T) {
	t.Run("non positive quantity contributes nothing", func(t *testing.T) {
		assert.True(t, stats.LineItem{Quantity: 0, ServicePrice: dec("50")}.Total().IsZero())
		assert.True(t, stats.LineItem{Quantity: -2, ServicePrice: dec("50")}.Total().IsZero())
	})

	t.Run("negative unit price is floored", func(t *testing.T) {
		assert.True(t, stats.LineItem{Quantity: 2, CustomPrice: dec("-50")}.Total().IsZero())
	})

	t.Run("custom price of zero overrides the catalogue", func(t *testing.T) {
		item := stats.LineItem{Quantity: 2, CustomPrice: dec("0"), ServicePrice: dec("50")}
		assert.True(t, item.UnitPrice().IsZero())
	})
}
