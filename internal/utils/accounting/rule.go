package accounting

import (
	"fmt"

	"github.com/bizledger/bizledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceDelta computes the signed effect of one entry on an account balance.
// This is the single source of truth for the accounting sign convention and
// must be used at every posting site.
//
// Debit-normal accounts (asset, expense) increase on debit:  delta = debit - credit.
// Credit-normal accounts (liability, equity, income) increase on credit: delta = credit - debit.
func BalanceDelta(accountType domain.AccountType, debit, credit decimal.Decimal) (decimal.Decimal, error) {
	switch accountType {
	case domain.Asset, domain.Expense:
		return debit.Sub(credit), nil
	case domain.Liability, domain.Equity, domain.Income:
		return credit.Sub(debit), nil
	default:
		return decimal.Zero, fmt.Errorf("unknown account type %q", accountType)
	}
}
