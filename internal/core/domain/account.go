package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "asset"
	Liability AccountType = "liability"
	Equity    AccountType = "equity"
	Income    AccountType = "income"
	Expense   AccountType = "expense"
)

// IsValid reports whether the account type is one of the five known types.
func (t AccountType) IsValid() bool {
	switch t {
	case Asset, Liability, Equity, Income, Expense:
		return true
	}
	return false
}

// Account represents a named ledger account within a company.
// CurrentBalance is mutated exclusively by the posting service; it always
// equals OpeningBalance plus the signed sum of all postings applied to it.
type Account struct {
	AccountID      string          `json:"accountID"`   // Primary Key (UUID)
	CompanyID      string          `json:"companyID"`   // Tenant scoping key (NON-NULL)
	Name           string          `json:"name"`        // Unique per company
	Type           AccountType     `json:"type"`        // asset, liability, equity, income, expense
	Group          string          `json:"group"`       // Free-text classification, e.g. "Current Assets"
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	IsActive       bool            `json:"isActive"` // Soft delete flag
	AuditFields
}
