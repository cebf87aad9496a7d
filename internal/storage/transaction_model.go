package storage

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// Transaction is a transaction row in the storage layer. Kind is stored as
// its raw string form; the service layer owns the typed enum.
type Transaction struct {
	ID          uuid.UUID
	Amount      decimal.Decimal
	Description string
	Category    string
	Kind        string
	Date        time.Time
	CreatedAt   time.Time
}

// TransactionCreate carries the insertable fields of a transaction.
type TransactionCreate struct {
	Amount      decimal.Decimal
	Description string
	Category    string
	Kind        string
	Date        time.Time
}

// TransactionFilter narrows a List call. Nil fields match everything.
// From is inclusive, To is exclusive.
type TransactionFilter struct {
	Category *string
	Kind     *string
	From     *time.Time
	To       *time.Time
}

type ITransactionTable interface {
	Insert(ctx context.Context, create *TransactionCreate) (uuid.UUID, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Transaction, error)
	List(ctx context.Context, filter *TransactionFilter) ([]*Transaction, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
