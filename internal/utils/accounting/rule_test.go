package accounting

import (
	"testing"

	"github.com/bizledger/bizledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBalanceDelta(t *testing.T) {
	tests := []struct {
		name        string
		accountType domain.AccountType
		debit       string
		credit      string
		expected    string
	}{
		{"debit to asset increases balance", domain.Asset, "100", "0", "100"},
		{"credit to asset decreases balance", domain.Asset, "0", "40", "-40"},
		{"credit to income increases balance", domain.Income, "0", "100", "100"},
		{"debit to income decreases balance", domain.Income, "100", "0", "-100"},
		{"debit to liability decreases balance", domain.Liability, "50", "0", "-50"},
		{"credit to liability increases balance", domain.Liability, "0", "50", "50"},
		{"debit to expense increases balance", domain.Expense, "25.50", "0", "25.50"},
		{"credit to equity increases balance", domain.Equity, "0", "1000", "1000"},
		{"mixed amounts net out", domain.Asset, "100", "30", "70"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			delta, err := BalanceDelta(tt.accountType, decimal.RequireFromString(tt.debit), decimal.RequireFromString(tt.credit))
			require.NoError(t, err)
			assert.True(t, delta.Equal(decimal.RequireFromString(tt.expected)),
				"expected delta %s, got %s", tt.expected, delta.String())
		})
	}
}

func TestBalanceDeltaUnknownType(t *testing.T) {
	_, err := BalanceDelta(domain.AccountType("suspense"), decimal.NewFromInt(10), decimal.Zero)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown account type")
}
