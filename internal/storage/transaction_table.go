package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/gofrs/uuid/v5"
)

var _ ITransactionTable = (*TransactionsTable)(nil)

// TransactionsTable is a mutex-guarded in-memory transaction table.
type TransactionsTable struct {
	mu   sync.RWMutex
	rows map[uuid.UUID]*Transaction
}

func NewTransactionsTable() *TransactionsTable {
	return &TransactionsTable{rows: make(map[uuid.UUID]*Transaction)}
}

// Insert creates a new transaction and returns its generated ID.
func (t *TransactionsTable) Insert(_ context.Context, create *TransactionCreate) (uuid.UUID, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return uuid.Nil, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.rows[id] = &Transaction{
		ID:          id,
		Amount:      create.Amount,
		Description: create.Description,
		Category:    create.Category,
		Kind:        create.Kind,
		Date:        create.Date,
		CreatedAt:   time.Now().UTC(),
	}
	return id, nil
}

// FindByID retrieves a transaction by primary key.
func (t *TransactionsTable) FindByID(_ context.Context, id uuid.UUID) (*Transaction, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	row, ok := t.rows[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *row
	return &copied, nil
}

// List returns copies of transactions matching the filter, newest date
// first. Nil filter returns all.
func (t *TransactionsTable) List(_ context.Context, filter *TransactionFilter) ([]*Transaction, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	result := make([]*Transaction, 0, len(t.rows))
	for _, row := range t.rows {
		if !matchTransaction(row, filter) {
			continue
		}
		copied := *row
		result = append(result, &copied)
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.After(result[j].Date)
		}
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID.String() < result[j].ID.String()
	})

	return result, nil
}

// Delete removes a transaction by primary key.
func (t *TransactionsTable) Delete(_ context.Context, id uuid.UUID) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.rows[id]; !ok {
		return ErrNotFound
	}
	delete(t.rows, id)
	return nil
}

func matchTransaction(row *Transaction, filter *TransactionFilter) bool {
	if filter == nil {
		return true
	}
	if filter.Category != nil && row.Category != *filter.Category {
		return false
	}
	if filter.Kind != nil && row.Kind != *filter.Kind {
		return false
	}
	if filter.From != nil && row.Date.Before(*filter.From) {
		return false
	}
	if filter.To != nil && !row.Date.Before(*filter.To) {
		return false
	}
	return true
}
