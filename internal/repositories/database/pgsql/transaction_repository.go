package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/bizledger/bizledger_app/internal/apperrors"
	"github.com/bizledger/bizledger_app/internal/core/domain"
	portsrepo "github.com/bizledger/bizledger_app/internal/core/ports/repositories"
	"github.com/bizledger/bizledger_app/internal/models"
	"github.com/bizledger/bizledger_app/internal/utils/mapping"
	"github.com/bizledger/bizledger_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const transactionColumns = `transaction_id, company_id, transaction_date, reference, description, total_amount, is_active, created_at, created_by, last_updated_at, last_updated_by`

// PgxTransactionRepository is the pgx implementation of the transaction
// repository. It owns the atomic posting path.
type PgxTransactionRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewPgxTransactionRepository creates a new repository for transaction data.
func NewPgxTransactionRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountRepositoryFacade) portsrepo.TransactionRepositoryWithTx {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

var _ portsrepo.TransactionRepositoryWithTx = (*PgxTransactionRepository)(nil)

// SaveTransaction persists the transaction header and its entries and applies
// the balance deltas to the referenced accounts, all within a single database
// transaction. Account rows are locked before the balance update so that
// concurrent postings to the same account serialize instead of losing updates.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, deltas map[string]decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	// Ignored if the transaction commits.
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelTransaction(txn)

	headerQuery := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err = tx.Exec(ctx, headerQuery,
		m.TransactionID,
		m.CompanyID,
		m.Date,
		m.Reference,
		m.Description,
		m.TotalAmount,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert transaction "+m.TransactionID, err)
	}

	accountIDs := make([]string, 0, len(deltas))
	for accID := range deltas {
		accountIDs = append(accountIDs, accID)
	}

	// Lock the affected accounts. This also re-verifies, under lock, that
	// every referenced account exists in the company.
	if _, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, txn.CompanyID, accountIDs); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		return apperrors.NewAppError(500, "failed to lock accounts for update", err)
	}

	if err := r.accountRepo.ApplyBalanceDeltasInTx(ctx, tx, deltas, txn.CreatedBy, txn.CreatedAt); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		return apperrors.NewAppError(500, "failed to update account balances", err)
	}

	entryQuery := `
		INSERT INTO transaction_entries (entry_id, transaction_id, account_id, debit, credit, line_no)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	batch := &pgx.Batch{}
	for _, entry := range txn.Entries {
		me := mapping.ToModelEntry(entry)
		batch.Queue(entryQuery,
			me.EntryID,
			me.TransactionID,
			me.AccountID,
			me.Debit,
			me.Credit,
			me.LineNo,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert entries for transaction "+m.TransactionID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction "+m.TransactionID, err)
	}
	return nil
}

func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.CompanyID,
		&m.Date,
		&m.Reference,
		&m.Description,
		&m.TotalAmount,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// FindTransactionByID retrieves an active transaction with its entries,
// scoped to the company.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, companyID, transactionID string) (*domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE transaction_id = $1 AND company_id = $2 AND is_active = TRUE;
	`
	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find transaction by ID "+transactionID, err)
	}

	entries, err := r.findEntriesByTransactionID(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	txn := mapping.ToDomainTransaction(m)
	txn.Entries = entries
	return &txn, nil
}

func (r *PgxTransactionRepository) findEntriesByTransactionID(ctx context.Context, transactionID string) ([]domain.Entry, error) {
	query := `
		SELECT entry_id, transaction_id, account_id, debit, credit, line_no
		FROM transaction_entries
		WHERE transaction_id = $1
		ORDER BY line_no;
	`
	rows, err := r.Pool.Query(ctx, query, transactionID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query entries for transaction "+transactionID, err)
	}
	defer rows.Close()

	entries := []models.Entry{}
	for rows.Next() {
		var e models.Entry
		if err := rows.Scan(&e.EntryID, &e.TransactionID, &e.AccountID, &e.Debit, &e.Credit, &e.LineNo); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan entry row for transaction "+transactionID, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating entry rows for transaction "+transactionID, err)
	}
	return mapping.ToDomainEntrySlice(entries), nil
}

// findEntriesByTransactionIDs retrieves entries for multiple transactions in
// one round trip, grouped by transaction ID.
func (r *PgxTransactionRepository) findEntriesByTransactionIDs(ctx context.Context, transactionIDs []string) (map[string][]domain.Entry, error) {
	if len(transactionIDs) == 0 {
		return map[string][]domain.Entry{}, nil
	}

	query := `
		SELECT entry_id, transaction_id, account_id, debit, credit, line_no
		FROM transaction_entries
		WHERE transaction_id = ANY($1)
		ORDER BY transaction_id, line_no;
	`
	rows, err := r.Pool.Query(ctx, query, transactionIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query entries for transaction batch", err)
	}
	defer rows.Close()

	entriesMap := make(map[string][]domain.Entry)
	for rows.Next() {
		var e models.Entry
		if err := rows.Scan(&e.EntryID, &e.TransactionID, &e.AccountID, &e.Debit, &e.Credit, &e.LineNo); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan entry row during batch fetch", err)
		}
		entriesMap[e.TransactionID] = append(entriesMap[e.TransactionID], mapping.ToDomainEntry(e))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating entry rows during batch fetch", err)
	}
	return entriesMap, nil
}

// ListTransactions retrieves a page of active transactions for a company,
// newest first, using token-based pagination on (transaction_date, created_at).
// The optional date filter restricts results to a single calendar day.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, companyID string, limit int, nextToken *string, date *time.Time) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra row to detect whether another page exists.
	fetchLimit := limit + 1

	baseQuery := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE company_id = $1 AND is_active = TRUE
	`
	orderByClause := `ORDER BY transaction_date DESC, created_at DESC`

	args := []interface{}{companyID}

	if date != nil {
		dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
		dayEnd := dayStart.AddDate(0, 0, 1)
		baseQuery += ` AND transaction_date >= $2 AND transaction_date < $3`
		args = append(args, dayStart, dayEnd)
	}

	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		baseQuery += fmt.Sprintf(" AND (transaction_date, created_at) < ($%d, $%d)", len(args)+1, len(args)+2)
		args = append(args, lastDate, lastCreatedAt)
	}

	query := baseQuery + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query transactions for company "+companyID, err)
	}
	defer rows.Close()

	modelTxns := make([]models.Transaction, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanTransaction(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan transaction row for company "+companyID, scanErr)
		}
		modelTxns = append(modelTxns, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating transaction rows for company "+companyID, err)
	}

	var nextTokenVal *string
	results := modelTxns
	if len(modelTxns) > limit {
		last := modelTxns[limit-1]
		token := pagination.EncodeToken(last.Date, last.CreatedAt)
		nextTokenVal = &token
		results = modelTxns[:limit]
	}

	txnIDs := make([]string, len(results))
	for i, m := range results {
		txnIDs[i] = m.TransactionID
	}
	entriesMap, err := r.findEntriesByTransactionIDs(ctx, txnIDs)
	if err != nil {
		return nil, nil, err
	}

	txns := make([]domain.Transaction, len(results))
	for i, m := range results {
		txns[i] = mapping.ToDomainTransaction(m)
		txns[i].Entries = entriesMap[m.TransactionID]
	}
	return txns, nextTokenVal, nil
}
