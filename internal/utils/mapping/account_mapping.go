package mapping

import (
	"github.com/bizledger/bizledger_app/internal/core/domain"
	"github.com/bizledger/bizledger_app/internal/models"
)

// ToModelAccount converts a domain Account to a model Account.
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:      d.AccountID,
		CompanyID:      d.CompanyID,
		Name:           d.Name,
		AccountType:    models.AccountType(d.Type),
		Group:          d.Group,
		OpeningBalance: d.OpeningBalance,
		CurrentBalance: d.CurrentBalance,
		IsActive:       d.IsActive,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account.
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:      m.AccountID,
		CompanyID:      m.CompanyID,
		Name:           m.Name,
		Type:           domain.AccountType(m.AccountType),
		Group:          m.Group,
		OpeningBalance: m.OpeningBalance,
		CurrentBalance: m.CurrentBalance,
		IsActive:       m.IsActive,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}
