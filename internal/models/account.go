package models

import (
	"github.com/shopspring/decimal"
)

// AccountType mirrors domain.AccountType at the storage layer.
type AccountType string

// Account is the database representation of a ledger account.
type Account struct {
	AccountID      string          `db:"account_id"`
	CompanyID      string          `db:"company_id"`
	Name           string          `db:"name"`
	AccountType    AccountType     `db:"account_type"`
	Group          string          `db:"account_group"`
	OpeningBalance decimal.Decimal `db:"opening_balance"`
	CurrentBalance decimal.Decimal `db:"current_balance"`
	IsActive       bool            `db:"is_active"`
	AuditFields
}
