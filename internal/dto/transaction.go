package dto

import (
	"time"

	"github.com/bizledger/bizledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// EntryRequest is one debit/credit line of a posting request.
type EntryRequest struct {
	AccountID string          `json:"account" binding:"required"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
}

// CreateTransactionRequest is the payload for posting a journal entry.
// The service re-validates everything; binding tags catch the obvious cases
// before the request reaches it.
type CreateTransactionRequest struct {
	Date        time.Time      `json:"date" binding:"required"`
	Reference   string         `json:"reference" binding:"required"`
	Description string         `json:"description" binding:"required"`
	Entries     []EntryRequest `json:"entries" binding:"required,min=2,dive"`
}

// EntryResponse is one line of a posted transaction.
type EntryResponse struct {
	AccountID string          `json:"account"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
}

// TransactionResponse is the representation of a posted transaction.
type TransactionResponse struct {
	TransactionID string          `json:"transactionID"`
	Date          time.Time       `json:"date"`
	Reference     string          `json:"reference"`
	Description   string          `json:"description"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	Entries       []EntryResponse `json:"entries"`
	CreatedAt     time.Time       `json:"createdAt"`
	CreatedBy     string          `json:"createdBy"`
}

// ListTransactionsParams holds query parameters for listing transactions.
type ListTransactionsParams struct {
	Limit     int
	NextToken *string
	Date      *time.Time // Restrict to a single calendar day
}

// ListTransactionsResponse is a page of transactions plus the cursor for the
// next page, if any.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// ToTransactionResponse converts a domain.Transaction to a TransactionResponse.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	entries := make([]EntryResponse, len(t.Entries))
	for i, e := range t.Entries {
		entries[i] = EntryResponse{AccountID: e.AccountID, Debit: e.Debit, Credit: e.Credit}
	}
	return TransactionResponse{
		TransactionID: t.TransactionID,
		Date:          t.Date,
		Reference:     t.Reference,
		Description:   t.Description,
		TotalAmount:   t.TotalAmount,
		Entries:       entries,
		CreatedAt:     t.CreatedAt,
		CreatedBy:     t.CreatedBy,
	}
}

// ToTransactionResponses converts a slice of domain transactions.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i := range txns {
		responses[i] = ToTransactionResponse(&txns[i])
	}
	return responses
}
