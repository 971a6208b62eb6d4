package dto

import (
	"time"

	"github.com/bizledger/bizledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest is the payload for creating a ledger account.
type CreateAccountRequest struct {
	Name           string          `json:"name" binding:"required"`
	Type           string          `json:"type" binding:"required,oneof=asset liability equity income expense"`
	Group          string          `json:"group" binding:"required"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
}

// AccountResponse is the representation of an account returned to clients.
type AccountResponse struct {
	AccountID      string          `json:"accountID"`
	Name           string          `json:"name"`
	Type           string          `json:"type"`
	Group          string          `json:"group"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	IsActive       bool            `json:"isActive"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// ToAccountResponse converts a domain.Account to an AccountResponse.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:      a.AccountID,
		Name:           a.Name,
		Type:           string(a.Type),
		Group:          a.Group,
		OpeningBalance: a.OpeningBalance,
		CurrentBalance: a.CurrentBalance,
		IsActive:       a.IsActive,
		CreatedAt:      a.CreatedAt,
	}
}

// ToAccountResponses converts a slice of domain accounts.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	responses := make([]AccountResponse, len(accounts))
	for i := range accounts {
		responses[i] = ToAccountResponse(&accounts[i])
	}
	return responses
}

// ListAccountsResponse wraps the company's accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// ToListAccountsResponse converts a slice of domain accounts to a list response.
func ToListAccountsResponse(accounts []domain.Account) ListAccountsResponse {
	return ListAccountsResponse{Accounts: ToAccountResponses(accounts)}
}
