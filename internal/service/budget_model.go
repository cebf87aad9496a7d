package service

import (
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/insights-server/internal/storage"
)

// BudgetStatus classifies a budget's utilization for the current period.
type BudgetStatus string

const (
	StatusOnTrack    BudgetStatus = "on_track"
	StatusNearLimit  BudgetStatus = "near_limit"
	StatusOverBudget BudgetStatus = "over_budget"
)

var ErrDuplicateCategory = errors.New("a budget for this category already exists")

// Budget represents a monthly category budget in the service layer. Spent
// is deliberately absent: it is derived from transactions on every read so
// it can never go stale.
type Budget struct {
	ID        uuid.UUID
	Category  string
	Amount    decimal.Decimal
	CreatedAt time.Time
}

// Validate checks the creation-boundary invariants.
func (b Budget) Validate() error {
	if len(b.Category) == 0 {
		return ErrEmptyCategory
	}
	if !b.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	return nil
}

// BudgetReport is the evaluated view of a budget: the configured limit
// combined with the derived spent total for the current period.
//
// Utilization is spent/amount expressed as a percentage. When amount is not
// positive the division is undefined, so utilization is reported as 0; the
// status comparison still runs on the raw amounts.
type BudgetReport struct {
	Budget
	Spent       decimal.Decimal
	Remaining   decimal.Decimal
	Utilization decimal.Decimal
	Status      BudgetStatus
}

// BudgetUpdate carries the updatable fields of a budget. Nil fields are
// left unchanged.
type BudgetUpdate struct {
	Category *string
	Amount   *decimal.Decimal
}

func budgetFromStorage(row *storage.Budget) Budget {
	return Budget{
		ID:        row.ID,
		Category:  row.Category,
		Amount:    row.Amount,
		CreatedAt: row.CreatedAt,
	}
}
