package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

var _ IInvestmentTable = (*InvestmentsTable)(nil)

// InvestmentsTable is a mutex-guarded in-memory investment table.
type InvestmentsTable struct {
	mu   sync.RWMutex
	rows map[uuid.UUID]*Investment
}

func NewInvestmentsTable() *InvestmentsTable {
	return &InvestmentsTable{rows: make(map[uuid.UUID]*Investment)}
}

// Insert creates a new investment and returns its generated ID.
func (t *InvestmentsTable) Insert(_ context.Context, create *InvestmentCreate) (uuid.UUID, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return uuid.Nil, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.rows[id] = &Investment{
		ID:            id,
		Symbol:        create.Symbol,
		Name:          create.Name,
		Shares:        create.Shares,
		PurchasePrice: create.PurchasePrice,
		CurrentPrice:  create.CurrentPrice,
		PurchaseDate:  create.PurchaseDate,
		Type:          create.Type,
		CreatedAt:     time.Now().UTC(),
	}
	return id, nil
}

// FindByID retrieves an investment by primary key.
func (t *InvestmentsTable) FindByID(_ context.Context, id uuid.UUID) (*Investment, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	row, ok := t.rows[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *row
	return &copied, nil
}

// List returns copies of investments matching the filter, ordered by symbol.
func (t *InvestmentsTable) List(_ context.Context, filter *InvestmentFilter) ([]*Investment, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	result := make([]*Investment, 0, len(t.rows))
	for _, row := range t.rows {
		if filter != nil && filter.Symbol != nil && row.Symbol != *filter.Symbol {
			continue
		}
		if filter != nil && filter.Type != nil && row.Type != *filter.Type {
			continue
		}
		copied := *row
		result = append(result, &copied)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Symbol != result[j].Symbol {
			return result[i].Symbol < result[j].Symbol
		}
		return result[i].ID.String() < result[j].ID.String()
	})

	return result, nil
}

// UpdatePrice sets the current price of an existing investment.
func (t *InvestmentsTable) UpdatePrice(_ context.Context, id uuid.UUID, price decimal.Decimal) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	row, ok := t.rows[id]
	if !ok {
		return ErrNotFound
	}
	row.CurrentPrice = price
	return nil
}

// Delete removes an investment by primary key.
func (t *InvestmentsTable) Delete(_ context.Context, id uuid.UUID) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.rows[id]; !ok {
		return ErrNotFound
	}
	delete(t.rows, id)
	return nil
}
