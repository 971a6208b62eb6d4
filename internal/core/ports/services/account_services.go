package services

import (
	"context"

	"github.com/bizledger/bizledger_app/internal/core/domain"
	"github.com/bizledger/bizledger_app/internal/dto"
)

// AccountSvcFacade defines the account management operations exposed to handlers.
type AccountSvcFacade interface {
	// CreateAccount creates a new ledger account for the company. The current
	// balance starts equal to the opening balance.
	CreateAccount(ctx context.Context, companyID string, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error)

	// GetAccountByID retrieves a single account scoped to the company.
	GetAccountByID(ctx context.Context, companyID, accountID string) (*domain.Account, error)

	// ListAccounts retrieves the company's active accounts, sorted by name.
	ListAccounts(ctx context.Context, companyID string) ([]domain.Account, error)

	// DeactivateAccount soft-deletes an account.
	DeactivateAccount(ctx context.Context, companyID, accountID string, userID string) error
}
