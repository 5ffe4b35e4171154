package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTotal(t *testing.T) {
	tests := []struct {
		name      string
		quantity  int
		unitPrice string
		want      string
	}{
		{"whole numbers", 3, "10000", "30000"},
		{"single unit", 1, "150000", "150000"},
		{"cents survive", 4, "19.99", "79.96"},
		{"free item", 2, "0", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			unitPrice := decimal.RequireFromString(tt.unitPrice)
			want := decimal.RequireFromString(tt.want)

			assert.True(t, Total(tt.quantity, unitPrice).Equal(want))
		})
	}
}

func TestIsHighValue(t *testing.T) {
	threshold := decimal.NewFromInt(3000000)

	tests := []struct {
		name  string
		total string
		want  bool
	}{
		{"above", "3500000", true},
		{"below", "150000", false},
		{"equal is not high value", "3000000", false},
		{"one over", "3000000.01", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transaction := &Transaction{Total: decimal.RequireFromString(tt.total)}
			assert.Equal(t, tt.want, transaction.IsHighValue(threshold))
		})
	}
}

func TestStatusTerminal(t *testing.T) {
	assert.False(t, StatusPending.Terminal())
	assert.True(t, StatusApproved.Terminal())
	assert.True(t, StatusRejected.Terminal())
}

func TestTransactionTypeValid(t *testing.T) {
	assert.True(t, TypeSale.Valid())
	assert.True(t, TypePurchase.Valid())
	assert.False(t, TransactionType("trade").Valid())
	assert.False(t, TransactionType("").Valid())
}
