package service

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/insights-server/internal/storage"
)

var hundred = decimal.NewFromInt(100)

// BudgetService handles budget business logic.
type BudgetService struct {
	storage            *storage.Storage
	nearLimitThreshold decimal.Decimal
	now                func() time.Time
}

// NewBudgetService creates a new BudgetService. nearLimitThreshold is the
// utilization percentage at which a budget is classified near_limit.
func NewBudgetService(store *storage.Storage, nearLimitThreshold decimal.Decimal) *BudgetService {
	return &BudgetService{
		storage:            store,
		nearLimitThreshold: nearLimitThreshold,
		now:                time.Now,
	}
}

// Evaluate combines a budget's configured limit with a derived spent total.
// Pure; spent is expected to come from SpentInWindow over the current
// month.
//
// over_budget requires strictly spent > amount, so spending exactly the
// limit reads near_limit (utilization 100).
func (s *BudgetService) Evaluate(budget Budget, spent decimal.Decimal) BudgetReport {
	utilization := decimal.Zero
	if budget.Amount.IsPositive() {
		utilization = spent.Div(budget.Amount).Mul(hundred)
	}

	status := StatusOnTrack
	switch {
	case spent.GreaterThan(budget.Amount):
		status = StatusOverBudget
	case budget.Amount.IsPositive() && utilization.GreaterThanOrEqual(s.nearLimitThreshold):
		status = StatusNearLimit
	}

	return BudgetReport{
		Budget:      budget,
		Spent:       spent,
		Remaining:   budget.Amount.Sub(spent),
		Utilization: utilization,
		Status:      status,
	}
}

// CreateBudget creates a new budget and returns its ID. One budget per
// category.
func (s *BudgetService) CreateBudget(ctx context.Context, budget Budget) (uuid.UUID, error) {
	if err := budget.Validate(); err != nil {
		return uuid.Nil, err
	}

	existing, err := s.storage.Budgets.List(ctx, &storage.BudgetFilter{Category: &budget.Category})
	if err != nil {
		return uuid.Nil, err
	}
	if len(existing) > 0 {
		return uuid.Nil, ErrDuplicateCategory
	}

	return s.storage.Budgets.Insert(ctx, &storage.BudgetCreate{
		Category: budget.Category,
		Amount:   budget.Amount,
	})
}

// UpdateBudget applies category and amount edits to an existing budget.
func (s *BudgetService) UpdateBudget(ctx context.Context, id uuid.UUID, update BudgetUpdate) error {
	if update.Category != nil && len(*update.Category) == 0 {
		return ErrEmptyCategory
	}
	if update.Amount != nil && !update.Amount.IsPositive() {
		return ErrInvalidAmount
	}

	return s.storage.Budgets.Update(ctx, id, &storage.BudgetUpdate{
		Category: update.Category,
		Amount:   update.Amount,
	})
}

// DeleteBudget removes a budget.
func (s *BudgetService) DeleteBudget(ctx context.Context, id uuid.UUID) error {
	return s.storage.Budgets.Delete(ctx, id)
}

// ListBudgets returns every budget, ordered by category.
func (s *BudgetService) ListBudgets(ctx context.Context) ([]Budget, error) {
	rows, err := s.storage.Budgets.List(ctx, nil)
	if err != nil {
		return nil, err
	}

	budgets := make([]Budget, len(rows))
	for i, row := range rows {
		budgets[i] = budgetFromStorage(row)
	}
	return budgets, nil
}

// ListReports evaluates every budget against the current calendar month's
// spending.
func (s *BudgetService) ListReports(ctx context.Context) ([]BudgetReport, error) {
	budgets, err := s.ListBudgets(ctx)
	if err != nil {
		return nil, err
	}

	from, to := MonthWindow(s.now())
	kind := string(KindExpense)
	rows, err := s.storage.Transactions.List(ctx, &storage.TransactionFilter{
		Kind: &kind,
		From: &from,
		To:   &to,
	})
	if err != nil {
		return nil, err
	}

	transactions := make([]Transaction, len(rows))
	for i, row := range rows {
		transactions[i] = transactionFromStorage(row)
	}

	reports := make([]BudgetReport, len(budgets))
	for i, budget := range budgets {
		spent := SpentInWindow(transactions, budget.Category, from, to)
		reports[i] = s.Evaluate(budget, spent)
	}
	return reports, nil
}
