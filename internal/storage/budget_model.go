package storage

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// Budget is a budget row in the storage layer. Spent is never stored; it is
// always derived from transactions at read time by the service layer.
type Budget struct {
	ID        uuid.UUID
	Category  string
	Amount    decimal.Decimal
	CreatedAt time.Time
}

// BudgetCreate carries the insertable fields of a budget.
type BudgetCreate struct {
	Category string
	Amount   decimal.Decimal
}

// BudgetUpdate carries the updatable fields of a budget. Nil fields are
// left unchanged.
type BudgetUpdate struct {
	Category *string
	Amount   *decimal.Decimal
}

// BudgetFilter narrows a List call. Nil fields match everything.
type BudgetFilter struct {
	Category *string
}

type IBudgetTable interface {
	Insert(ctx context.Context, create *BudgetCreate) (uuid.UUID, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Budget, error)
	List(ctx context.Context, filter *BudgetFilter) ([]*Budget, error)
	Update(ctx context.Context, id uuid.UUID, update *BudgetUpdate) error
	Delete(ctx context.Context, id uuid.UUID) error
}
