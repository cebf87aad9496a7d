package storage

import (
	"errors"
)

// ErrNotFound is returned when a record does not exist in a table.
var ErrNotFound = errors.New("record not found")

// Storage aggregates the in-memory tables. The subsystem operates on
// snapshots handed to it by the surrounding application; these tables are
// the process-local source of those snapshots and carry no persistence.
type Storage struct {
	Transactions ITransactionTable
	Budgets      IBudgetTable
	Investments  IInvestmentTable
}

func NewStorage() *Storage {
	return &Storage{
		Transactions: NewTransactionsTable(),
		Budgets:      NewBudgetsTable(),
		Investments:  NewInvestmentsTable(),
	}
}
