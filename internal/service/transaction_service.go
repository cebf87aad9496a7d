package service

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/insights-server/internal/storage"
)

// TransactionService handles transaction business logic.
type TransactionService struct {
	storage *storage.Storage
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(store *storage.Storage) *TransactionService {
	return &TransactionService{storage: store}
}

// TransactionQuery narrows a list call. Nil fields match everything; From
// is inclusive and To exclusive.
type TransactionQuery struct {
	Category *string
	Kind     *TransactionKind
	From     *time.Time
	To       *time.Time
}

// CreateTransaction validates and creates a new transaction, returning its
// ID. The date is normalized to a calendar date.
func (s *TransactionService) CreateTransaction(ctx context.Context, transaction Transaction) (uuid.UUID, error) {
	if err := transaction.Validate(); err != nil {
		return uuid.Nil, err
	}

	return s.storage.Transactions.Insert(ctx, &storage.TransactionCreate{
		Amount:      transaction.Amount,
		Description: transaction.Description,
		Category:    transaction.Category,
		Kind:        string(transaction.Kind),
		Date:        DayOf(transaction.Date),
	})
}

// ListTransactions returns transactions matching the query, newest date
// first.
func (s *TransactionService) ListTransactions(ctx context.Context, query *TransactionQuery) ([]Transaction, error) {
	var filter *storage.TransactionFilter
	if query != nil {
		filter = &storage.TransactionFilter{
			Category: query.Category,
			From:     query.From,
			To:       query.To,
		}
		if query.Kind != nil {
			kind := string(*query.Kind)
			filter.Kind = &kind
		}
	}

	rows, err := s.storage.Transactions.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	convertedTransactions := make([]Transaction, len(rows))
	for i, row := range rows {
		convertedTransactions[i] = transactionFromStorage(row)
	}
	return convertedTransactions, nil
}

// DeleteTransaction removes a transaction.
func (s *TransactionService) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	return s.storage.Transactions.Delete(ctx, id)
}
