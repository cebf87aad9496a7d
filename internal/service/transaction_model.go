package service

import (
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/insights-server/internal/storage"
)

// TransactionKind distinguishes money coming in from money going out.
type TransactionKind string

const (
	KindIncome  TransactionKind = "income"
	KindExpense TransactionKind = "expense"
)

var (
	ErrInvalidAmount    = errors.New("amount must be positive")
	ErrEmptyDescription = errors.New("description must not be empty")
	ErrEmptyCategory    = errors.New("category must not be empty")
	ErrInvalidKind      = errors.New("kind must be income or expense")
	ErrZeroDate         = errors.New("date must be set")
)

// Transaction represents a transaction in the service layer. Date is a
// calendar date, normalized to midnight UTC.
type Transaction struct {
	ID          uuid.UUID
	Amount      decimal.Decimal
	Description string
	Category    string
	Kind        TransactionKind
	Date        time.Time
	CreatedAt   time.Time
}

// Validate checks the creation-boundary invariants. Malformed values must
// never reach the aggregation core.
func (t Transaction) Validate() error {
	if !t.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if len(t.Description) == 0 {
		return ErrEmptyDescription
	}
	if len(t.Category) == 0 {
		return ErrEmptyCategory
	}
	if t.Kind != KindIncome && t.Kind != KindExpense {
		return ErrInvalidKind
	}
	if t.Date.IsZero() {
		return ErrZeroDate
	}
	return nil
}

func transactionFromStorage(row *storage.Transaction) Transaction {
	return Transaction{
		ID:          row.ID,
		Amount:      row.Amount,
		Description: row.Description,
		Category:    row.Category,
		Kind:        TransactionKind(row.Kind),
		Date:        row.Date,
		CreatedAt:   row.CreatedAt,
	}
}
