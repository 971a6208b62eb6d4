package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bizledger/bizledger_app/internal/apperrors"
	"github.com/bizledger/bizledger_app/internal/core/domain"
	portsrepo "github.com/bizledger/bizledger_app/internal/core/ports/repositories"
	portssvc "github.com/bizledger/bizledger_app/internal/core/ports/services"
	"github.com/bizledger/bizledger_app/internal/dto"
	"github.com/bizledger/bizledger_app/internal/middleware"
	"github.com/bizledger/bizledger_app/internal/utils/accounting"
)

// ErrAccountNotFound is returned when an entry references an account id that
// does not resolve within the caller's company.
var ErrAccountNotFound = fmt.Errorf("account %w", apperrors.ErrNotFound)

// postingService is the only component allowed to create transaction records
// and mutate account balances.
type postingService struct {
	accountRepo portsrepo.AccountRepositoryFacade
	txnRepo     portsrepo.TransactionRepositoryWithTx
}

// NewPostingService creates the ledger posting service.
func NewPostingService(txnRepo portsrepo.TransactionRepositoryWithTx, accountRepo portsrepo.AccountRepositoryFacade) portssvc.PostingSvcFacade {
	return &postingService{
		accountRepo: accountRepo,
		txnRepo:     txnRepo,
	}
}

var _ portssvc.PostingSvcFacade = (*postingService)(nil)

// PostTransaction validates the entry set, then persists the transaction and
// its balance effects as one atomic unit. Validation failures abort before any
// storage is touched; storage failures roll back everything. There is no
// automatic retry and no idempotency across retries: each successful call
// creates a new transaction.
func (s *postingService) PostTransaction(ctx context.Context, companyID, creatorUserID string, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	transactionID := uuid.NewString()

	entries := make([]domain.Entry, len(req.Entries))
	for i, entryReq := range req.Entries {
		entries[i] = domain.Entry{
			EntryID:       uuid.NewString(),
			TransactionID: transactionID,
			AccountID:     entryReq.AccountID,
			Debit:         entryReq.Debit,
			Credit:        entryReq.Credit,
			LineNo:        i + 1,
		}
	}

	totalAmount, err := accounting.ValidateEntrySet(req.Date, req.Reference, req.Description, entries)
	if err != nil {
		return nil, err
	}

	accountIDs := make([]string, 0, len(entries))
	for _, e := range entries {
		accountIDs = append(accountIDs, e.AccountID)
	}
	uniqueAccountIDs := uniqueStrings(accountIDs)

	accountsMap, err := s.accountRepo.FindAccountsByIDs(ctx, companyID, uniqueAccountIDs)
	if err != nil {
		logger.Error("Failed to fetch accounts for posting", slog.String("error", err.Error()), slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}
	for _, id := range uniqueAccountIDs {
		if _, found := accountsMap[id]; !found {
			return nil, fmt.Errorf("%w: ID %s", ErrAccountNotFound, id)
		}
	}

	// Aggregate the net balance change per account. The sign convention lives
	// in exactly one place: accounting.BalanceDelta.
	deltas := make(map[string]decimal.Decimal, len(uniqueAccountIDs))
	for _, e := range entries {
		acc := accountsMap[e.AccountID]
		delta, err := accounting.BalanceDelta(acc.Type, e.Debit, e.Credit)
		if err != nil {
			logger.Error("Failed to compute balance delta", slog.String("error", err.Error()), slog.String("account_id", e.AccountID))
			return nil, fmt.Errorf("%w: computing balance delta: %v", apperrors.ErrInternal, err)
		}
		deltas[e.AccountID] = deltas[e.AccountID].Add(delta)
	}

	txn := domain.Transaction{
		TransactionID: transactionID,
		CompanyID:     companyID,
		Date:          req.Date,
		Reference:     req.Reference,
		Description:   req.Description,
		TotalAmount:   totalAmount,
		Entries:       entries,
		IsActive:      true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.txnRepo.SaveTransaction(ctx, txn, deltas); err != nil {
		logger.Error("Failed to save transaction", slog.String("error", err.Error()), slog.String("company_id", companyID))
		// Keep the not-found distinction intact: the repository re-checks
		// account existence under lock.
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %v", ErrAccountNotFound, err)
		}
		return nil, fmt.Errorf("failed to save transaction: %w", err)
	}

	logger.Info("Transaction posted",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("company_id", companyID),
		slog.String("total_amount", totalAmount.String()),
	)
	return &txn, nil
}

// GetTransactionByID retrieves an active transaction with its entries.
func (s *postingService) GetTransactionByID(ctx context.Context, companyID, transactionID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	txn, err := s.txnRepo.FindTransactionByID(ctx, companyID, transactionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find transaction", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		}
		return nil, err
	}
	return txn, nil
}

// ListTransactions retrieves a page of the company's transactions, newest first.
func (s *postingService) ListTransactions(ctx context.Context, companyID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	txns, nextToken, err := s.txnRepo.ListTransactions(ctx, companyID, limit, params.NextToken, params.Date)
	if err != nil {
		logger.Error("Failed to list transactions", slog.String("error", err.Error()), slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to retrieve transactions: %w", err)
	}

	resp := &dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(txns),
		NextToken:    nextToken,
	}
	logger.Debug("Transactions listed", slog.Int("count", len(txns)))
	return resp, nil
}

// uniqueStrings returns a slice containing only the unique strings from the input.
func uniqueStrings(input []string) []string {
	seen := make(map[string]struct{}, len(input))
	result := make([]string, 0, len(input))
	for _, str := range input {
		if _, ok := seen[str]; !ok {
			seen[str] = struct{}{}
			result = append(result, str)
		}
	}
	return result
}
