package repositories

import (
	"context"
	"time"

	"github.com/bizledger/bizledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransactionWriter defines the atomic posting operation.
type TransactionWriter interface {
	// SaveTransaction persists the transaction header and its entries and
	// applies the given balance deltas to the referenced accounts, all within
	// a single database transaction. On any failure nothing is persisted.
	SaveTransaction(ctx context.Context, txn domain.Transaction, deltas map[string]decimal.Decimal) error
}

// TransactionReader defines read operations for posted transactions.
type TransactionReader interface {
	// FindTransactionByID retrieves an active transaction with its entries.
	FindTransactionByID(ctx context.Context, companyID, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves a page of active transactions for a company,
	// newest first, using token-based pagination. The optional date filter
	// restricts results to a single calendar day.
	ListTransactions(ctx context.Context, companyID string, limit int, nextToken *string, date *time.Time) ([]domain.Transaction, *string, error)
}

// TransactionRepositoryFacade combines transaction reads and writes.
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}

// TransactionRepositoryWithTx extends the facade with database transaction
// management.
type TransactionRepositoryWithTx interface {
	TransactionRepositoryFacade
	TransactionManager
}
