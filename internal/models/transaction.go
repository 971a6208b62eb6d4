package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the database representation of a journal entry header.
type Transaction struct {
	TransactionID string          `db:"transaction_id"`
	CompanyID     string          `db:"company_id"`
	Date          time.Time       `db:"transaction_date"`
	Reference     string          `db:"reference"`
	Description   string          `db:"description"`
	TotalAmount   decimal.Decimal `db:"total_amount"`
	IsActive      bool            `db:"is_active"`
	AuditFields
}

// Entry is the database representation of a single transaction line.
type Entry struct {
	EntryID       string          `db:"entry_id"`
	TransactionID string          `db:"transaction_id"`
	AccountID     string          `db:"account_id"`
	Debit         decimal.Decimal `db:"debit"`
	Credit        decimal.Decimal `db:"credit"`
	LineNo        int             `db:"line_no"`
}
