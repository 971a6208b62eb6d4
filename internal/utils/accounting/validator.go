package accounting

import (
	"fmt"
	"time"

	"github.com/bizledger/bizledger_app/internal/apperrors"
	"github.com/bizledger/bizledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

var (
	// ErrMissingField is returned when date, reference or description is absent.
	ErrMissingField = fmt.Errorf("%w: date, reference and description are required", apperrors.ErrValidation)

	// ErrInsufficientEntries is returned when fewer than two entries are submitted.
	ErrInsufficientEntries = fmt.Errorf("%w: at least two entries are required", apperrors.ErrValidation)

	// ErrEntryFieldInvalid is returned when an entry has no account reference
	// or a negative debit or credit amount.
	ErrEntryFieldInvalid = fmt.Errorf("%w: entry account is required and debit/credit must not be negative", apperrors.ErrValidation)

	// ErrUnbalanced is returned when total debits and total credits differ.
	ErrUnbalanced = fmt.Errorf("%w: total debits must equal total credits", apperrors.ErrValidation)
)

// balanceTolerance absorbs client-side floating-point rounding at the API
// boundary. Amounts are exact decimals internally.
var balanceTolerance = decimal.RequireFromString("0.01")

// ValidateEntrySet decides whether a candidate entry set may be posted, before
// any storage is touched. On success it returns the transaction total amount,
// max(sum of debits, sum of credits). Pure function: no I/O, fully
// deterministic given its inputs.
func ValidateEntrySet(date time.Time, reference, description string, entries []domain.Entry) (decimal.Decimal, error) {
	if date.IsZero() || reference == "" || description == "" {
		return decimal.Zero, ErrMissingField
	}
	if len(entries) < 2 {
		return decimal.Zero, ErrInsufficientEntries
	}

	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for _, e := range entries {
		if e.AccountID == "" || e.Debit.IsNegative() || e.Credit.IsNegative() {
			return decimal.Zero, ErrEntryFieldInvalid
		}
		totalDebit = totalDebit.Add(e.Debit)
		totalCredit = totalCredit.Add(e.Credit)
	}

	if totalDebit.Sub(totalCredit).Abs().GreaterThan(balanceTolerance) {
		return decimal.Zero, fmt.Errorf("%w: debits sum to %s, credits sum to %s",
			ErrUnbalanced, totalDebit.String(), totalCredit.String())
	}

	totalAmount := totalDebit
	if totalCredit.GreaterThan(totalDebit) {
		totalAmount = totalCredit
	}
	return totalAmount, nil
}
