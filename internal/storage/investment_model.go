package storage

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// Investment is an investment row in the storage layer. CurrentPrice is the
// only field mutated after creation; the price-refresh collaborator drives
// that through UpdatePrice.
type Investment struct {
	ID            uuid.UUID
	Symbol        string
	Name          string
	Shares        decimal.Decimal
	PurchasePrice decimal.Decimal
	CurrentPrice  decimal.Decimal
	PurchaseDate  time.Time
	Type          string
	CreatedAt     time.Time
}

// InvestmentCreate carries the insertable fields of an investment.
type InvestmentCreate struct {
	Symbol        string
	Name          string
	Shares        decimal.Decimal
	PurchasePrice decimal.Decimal
	CurrentPrice  decimal.Decimal
	PurchaseDate  time.Time
	Type          string
}

// InvestmentFilter narrows a List call. Nil fields match everything.
type InvestmentFilter struct {
	Symbol *string
	Type   *string
}

type IInvestmentTable interface {
	Insert(ctx context.Context, create *InvestmentCreate) (uuid.UUID, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Investment, error)
	List(ctx context.Context, filter *InvestmentFilter) ([]*Investment, error)
	UpdatePrice(ctx context.Context, id uuid.UUID, price decimal.Decimal) error
	Delete(ctx context.Context, id uuid.UUID) error
}
