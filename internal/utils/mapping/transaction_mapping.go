package mapping

import (
	"github.com/bizledger/bizledger_app/internal/core/domain"
	"github.com/bizledger/bizledger_app/internal/models"
)

// ToModelTransaction converts a domain Transaction header to a model Transaction.
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID: d.TransactionID,
		CompanyID:     d.CompanyID,
		Date:          d.Date,
		Reference:     d.Reference,
		Description:   d.Description,
		TotalAmount:   d.TotalAmount,
		IsActive:      d.IsActive,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a model Transaction header to a domain Transaction.
// Entries are loaded and attached separately.
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID: m.TransactionID,
		CompanyID:     m.CompanyID,
		Date:          m.Date,
		Reference:     m.Reference,
		Description:   m.Description,
		TotalAmount:   m.TotalAmount,
		IsActive:      m.IsActive,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelEntry converts a domain Entry to a model Entry.
func ToModelEntry(d domain.Entry) models.Entry {
	return models.Entry{
		EntryID:       d.EntryID,
		TransactionID: d.TransactionID,
		AccountID:     d.AccountID,
		Debit:         d.Debit,
		Credit:        d.Credit,
		LineNo:        d.LineNo,
	}
}

// ToDomainEntry converts a model Entry to a domain Entry.
func ToDomainEntry(m models.Entry) domain.Entry {
	return domain.Entry{
		EntryID:       m.EntryID,
		TransactionID: m.TransactionID,
		AccountID:     m.AccountID,
		Debit:         m.Debit,
		Credit:        m.Credit,
		LineNo:        m.LineNo,
	}
}

// ToDomainEntrySlice converts a slice of model entries to domain entries.
func ToDomainEntrySlice(ms []models.Entry) []domain.Entry {
	ds := make([]domain.Entry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainEntry(m)
	}
	return ds
}
