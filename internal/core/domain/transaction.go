package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Entry is a single (account, debit, credit) line within a transaction.
// Entries are embedded in their transaction and are not independently
// addressable; they reference accounts by id only.
type Entry struct {
	EntryID       string          `json:"entryID"`       // Primary Key (UUID)
	TransactionID string          `json:"transactionID"` // FK -> Transaction.transactionID
	AccountID     string          `json:"accountID"`     // FK -> Account.accountID (weak reference)
	Debit         decimal.Decimal `json:"debit"`         // >= 0
	Credit        decimal.Decimal `json:"credit"`        // >= 0
	LineNo        int             `json:"lineNo"`        // Position within the transaction, starting at 1
}

// Transaction is an immutable, balanced journal entry. It is created exactly
// once, atomically with its account balance side effects, and never updated.
type Transaction struct {
	TransactionID string          `json:"transactionID"` // Primary Key (UUID)
	CompanyID     string          `json:"companyID"`     // Tenant scoping key (NON-NULL)
	Date          time.Time       `json:"date"`          // Date the event occurred
	Reference     string          `json:"reference"`     // Free-text, not unique
	Description   string          `json:"description"`
	TotalAmount   decimal.Decimal `json:"totalAmount"` // max(sum of debits, sum of credits)
	Entries       []Entry         `json:"entries"`     // Ordered, length >= 2
	IsActive      bool            `json:"isActive"`    // Soft delete flag, default true
	AuditFields
}
