package pgsql

import (
	portsrepo "github.com/bizledger/bizledger_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires all pgx repositories over a shared pool.
func NewRepositoryProvider(pool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	accountRepo := NewPgxAccountRepository(pool)
	return &portsrepo.RepositoryProvider{
		AccountRepo:     accountRepo,
		TransactionRepo: NewPgxTransactionRepository(pool, accountRepo),
	}
}
