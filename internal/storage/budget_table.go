package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/gofrs/uuid/v5"
)

var _ IBudgetTable = (*BudgetsTable)(nil)

// BudgetsTable is a mutex-guarded in-memory budget table.
type BudgetsTable struct {
	mu   sync.RWMutex
	rows map[uuid.UUID]*Budget
}

func NewBudgetsTable() *BudgetsTable {
	return &BudgetsTable{rows: make(map[uuid.UUID]*Budget)}
}

// Insert creates a new budget and returns its generated ID.
func (t *BudgetsTable) Insert(_ context.Context, create *BudgetCreate) (uuid.UUID, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return uuid.Nil, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.rows[id] = &Budget{
		ID:        id,
		Category:  create.Category,
		Amount:    create.Amount,
		CreatedAt: time.Now().UTC(),
	}
	return id, nil
}

// FindByID retrieves a budget by primary key.
func (t *BudgetsTable) FindByID(_ context.Context, id uuid.UUID) (*Budget, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	row, ok := t.rows[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *row
	return &copied, nil
}

// List returns copies of budgets matching the filter, ordered by category.
func (t *BudgetsTable) List(_ context.Context, filter *BudgetFilter) ([]*Budget, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	result := make([]*Budget, 0, len(t.rows))
	for _, row := range t.rows {
		if filter != nil && filter.Category != nil && row.Category != *filter.Category {
			continue
		}
		copied := *row
		result = append(result, &copied)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Category != result[j].Category {
			return result[i].Category < result[j].Category
		}
		return result[i].ID.String() < result[j].ID.String()
	})

	return result, nil
}

// Update applies the non-nil fields of the update to an existing budget.
func (t *BudgetsTable) Update(_ context.Context, id uuid.UUID, update *BudgetUpdate) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	row, ok := t.rows[id]
	if !ok {
		return ErrNotFound
	}
	if update.Category != nil {
		row.Category = *update.Category
	}
	if update.Amount != nil {
		row.Amount = *update.Amount
	}
	return nil
}

// Delete removes a budget by primary key.
func (t *BudgetsTable) Delete(_ context.Context, id uuid.UUID) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.rows[id]; !ok {
		return ErrNotFound
	}
	delete(t.rows, id)
	return nil
}
