package services

import (
	"context"

	"github.com/bizledger/bizledger_app/internal/core/domain"
	"github.com/bizledger/bizledger_app/internal/dto"
)

// PostingSvcFacade defines the ledger posting operations exposed to handlers.
// It is the only entry point allowed to mutate account balances or create
// transaction records.
type PostingSvcFacade interface {
	// PostTransaction validates the entry set and atomically persists the
	// transaction together with its account balance updates. The caller
	// observes either a fully posted transaction or no change at all.
	PostTransaction(ctx context.Context, companyID, creatorUserID string, req dto.CreateTransactionRequest) (*domain.Transaction, error)

	// GetTransactionByID retrieves a posted transaction with its entries.
	GetTransactionByID(ctx context.Context, companyID, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves a page of the company's transactions.
	ListTransactions(ctx context.Context, companyID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)
}
