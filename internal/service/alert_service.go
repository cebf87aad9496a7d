package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/insights-server/internal/config"
	"github.com/carson-networks/insights-server/internal/logging"
	"github.com/carson-networks/insights-server/internal/notification"
	"github.com/carson-networks/insights-server/internal/storage"
)

// AlertService turns budget evaluations and recent transaction activity
// into notifications. A pass runs at most once per check interval; calls
// inside the window are dropped, not deferred.
type AlertService struct {
	storage       *storage.Storage
	notifications *notification.Store
	budgets       *BudgetService
	logger        *logrus.Logger

	checkInterval         time.Duration
	spikeFactor           decimal.Decimal
	largeExpenseThreshold decimal.Decimal

	// By default identical alerts re-fire on every passing check, matching
	// the long-standing product behavior. SuppressDuplicates skips an
	// alert while an identical one is still unread.
	suppressDuplicates bool

	mu          sync.Mutex
	lastChecked time.Time
	now         func() time.Time
}

// NewAlertService creates a new AlertService.
func NewAlertService(
	store *storage.Storage,
	notifications *notification.Store,
	budgets *BudgetService,
	logger *logrus.Logger,
	envConfig *config.Config,
) *AlertService {
	return &AlertService{
		storage:               store,
		notifications:         notifications,
		budgets:               budgets,
		logger:                logger,
		checkInterval:         envConfig.CheckInterval,
		spikeFactor:           envConfig.SpendingSpikeFactor,
		largeExpenseThreshold: envConfig.LargeExpenseThreshold,
		suppressDuplicates:    envConfig.SuppressDuplicates,
		now:                   time.Now,
	}
}

// Check runs an alert pass against the current storage snapshots.
func (s *AlertService) Check(ctx context.Context) error {
	budgetRows, err := s.storage.Budgets.List(ctx, nil)
	if err != nil {
		return err
	}
	transactionRows, err := s.storage.Transactions.List(ctx, nil)
	if err != nil {
		return err
	}

	budgets := make([]Budget, len(budgetRows))
	for i, row := range budgetRows {
		budgets[i] = budgetFromStorage(row)
	}
	transactions := make([]Transaction, len(transactionRows))
	for i, row := range transactionRows {
		transactions[i] = transactionFromStorage(row)
	}

	s.CheckForAlerts(budgets, transactions)
	return nil
}

// CheckForAlerts evaluates every budget against the current month's
// spending and scans recent activity, emitting notifications for anything
// that crosses a threshold. A second call within the check interval is a
// no-op.
func (s *AlertService) CheckForAlerts(budgets []Budget, transactions []Transaction) {
	now := s.now()

	s.mu.Lock()
	if !s.lastChecked.IsZero() && now.Sub(s.lastChecked) < s.checkInterval {
		s.mu.Unlock()
		s.logger.Debug("AlertService.CheckForAlerts.RateLimited")
		return
	}
	s.lastChecked = now
	s.mu.Unlock()

	logData := logging.NewLogData(s.logger)
	stopTimer := logData.AddTiming("checkForAlertsMs")

	emitted := 0
	from, to := MonthWindow(now)
	for _, budget := range budgets {
		spent := SpentInWindow(transactions, budget.Category, from, to)
		report := s.budgets.Evaluate(budget, spent)

		switch report.Status {
		case StatusOverBudget:
			overage := report.Spent.Sub(report.Amount)
			emitted += s.emit(notification.Notification{
				Type:      notification.TypeBudgetAlert,
				Title:     "Budget Exceeded",
				Message:   fmt.Sprintf("You've exceeded your %s budget by %s", budget.Category, formatUSD(overage)),
				Severity:  notification.SeverityError,
				ActionURL: "/budgets",
			})
		case StatusNearLimit:
			emitted += s.emit(notification.Notification{
				Type:      notification.TypeBudgetAlert,
				Title:     "Budget Warning",
				Message:   fmt.Sprintf("You're close to your %s budget limit (%s%% used)", budget.Category, report.Utilization.StringFixed(1)),
				Severity:  notification.SeverityWarning,
				ActionURL: "/budgets",
			})
		}
	}

	emitted += s.checkSpendingPattern(transactions, now)
	emitted += s.checkLargeExpenses(transactions, now)
	stopTimer()

	logData.AddData("budgets", len(budgets))
	logData.AddData("transactions", len(transactions))
	logData.AddData("emitted", emitted)
	logData.Log().Info("AlertService.CheckForAlerts.Complete")
}

// checkSpendingPattern compares today's expense total against the mean
// daily total over the trailing seven days (only days that saw at least
// one expense count toward the mean). No spending history means no mean,
// so the check skips silently rather than divide by zero.
func (s *AlertService) checkSpendingPattern(transactions []Transaction, now time.Time) int {
	today := DayOf(now)
	totals := DailyExpenseTotals(transactions, today.AddDate(0, 0, -6), today.AddDate(0, 0, 1))
	if len(totals) == 0 {
		return 0
	}

	sum := decimal.Zero
	for _, total := range totals {
		sum = sum.Add(total)
	}
	mean := sum.Div(decimal.NewFromInt(int64(len(totals))))

	todayTotal := totals[today]
	if !todayTotal.IsPositive() || !todayTotal.GreaterThan(mean.Mul(s.spikeFactor)) {
		return 0
	}

	return s.emit(notification.Notification{
		Type:      notification.TypeSystem,
		Title:     "High Spending Today",
		Message:   fmt.Sprintf("You've spent %s today, which is higher than your recent average.", formatUSD(todayTotal)),
		Severity:  notification.SeverityWarning,
		ActionURL: "/transactions",
	})
}

// checkLargeExpenses flags today's individual expenses above the
// configured threshold.
func (s *AlertService) checkLargeExpenses(transactions []Transaction, now time.Time) int {
	if !s.largeExpenseThreshold.IsPositive() {
		return 0
	}

	today := DayOf(now)
	emitted := 0
	for _, t := range transactions {
		if t.Kind != KindExpense || !DayOf(t.Date).Equal(today) {
			continue
		}
		if !t.Amount.GreaterThan(s.largeExpenseThreshold) {
			continue
		}
		emitted += s.emit(notification.Notification{
			Type:      notification.TypeSystem,
			Title:     "Large Transaction",
			Message:   fmt.Sprintf("Large expense recorded: %s for %s", formatUSD(t.Amount), t.Description),
			Severity:  notification.SeverityInfo,
			ActionURL: "/transactions",
		})
	}
	return emitted
}

// emit adds the notification to the store, honoring duplicate suppression.
// Returns 1 if the notification was added.
func (s *AlertService) emit(n notification.Notification) int {
	if s.suppressDuplicates && s.notifications.HasUnread(n.Type, n.Message) {
		s.logger.WithField("title", n.Title).Debug("AlertService.emit.DuplicateSuppressed")
		return 0
	}
	s.notifications.Add(n)
	return 1
}

// formatUSD renders a decimal dollar amount like "$1,234.50".
func formatUSD(amount decimal.Decimal) string {
	cents := amount.Mul(hundred).Round(0).IntPart()
	return money.New(cents, money.USD).Display()
}
