package service

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/insights-server/internal/config"
	"github.com/carson-networks/insights-server/internal/notification"
	"github.com/carson-networks/insights-server/internal/storage"
)

func testAlertConfig() *config.Config {
	return &config.Config{
		CheckInterval:         time.Hour,
		NearLimitThreshold:    decimal.NewFromInt(80),
		SpendingSpikeFactor:   decimal.RequireFromString("1.5"),
		LargeExpenseThreshold: decimal.NewFromInt(500),
		SuppressDuplicates:    false,
		LogLevel:              "info",
	}
}

func newTestAlertService(t *testing.T, envConfig *config.Config) (*AlertService, *notification.Store, *storage.Storage) {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	store := storage.NewStorage()
	notifications := notification.NewStore()
	budgets := NewBudgetService(store, envConfig.NearLimitThreshold)
	svc := NewAlertService(store, notifications, budgets, logger, envConfig)
	return svc, notifications, store
}

// Checks run against a fixed clock: mid-June, mid-month, mid-day.
var alertTestNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

// -- Budget alert tests --

func TestCheckForAlerts_OverBudget(t *testing.T) {
	svc, notifications, _ := newTestAlertService(t, testAlertConfig())
	svc.now = func() time.Time { return alertTestNow }

	budgets := []Budget{makeBudget("Food", "400")}
	transactions := []Transaction{
		makeTransaction("420.00", "Food", KindExpense, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)),
	}

	svc.CheckForAlerts(budgets, transactions)

	list := notifications.Notifications()
	require.Len(t, list, 1)
	assert.Equal(t, notification.TypeBudgetAlert, list[0].Type)
	assert.Equal(t, notification.SeverityError, list[0].Severity)
	assert.Equal(t, "Budget Exceeded", list[0].Title)
	assert.Contains(t, list[0].Message, "20.00")
	assert.Contains(t, list[0].Message, "Food")
	assert.Equal(t, "/budgets", list[0].ActionURL)
}

func TestCheckForAlerts_NearLimit(t *testing.T) {
	svc, notifications, _ := newTestAlertService(t, testAlertConfig())
	svc.now = func() time.Time { return alertTestNow }

	budgets := []Budget{makeBudget("Food", "400")}
	transactions := []Transaction{
		makeTransaction("340.00", "Food", KindExpense, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)),
	}

	svc.CheckForAlerts(budgets, transactions)

	list := notifications.Notifications()
	require.Len(t, list, 1)
	assert.Equal(t, notification.SeverityWarning, list[0].Severity)
	assert.Equal(t, "Budget Warning", list[0].Title)
	assert.Contains(t, list[0].Message, "85.0% used")
}

func TestCheckForAlerts_OnTrackEmitsNothing(t *testing.T) {
	svc, notifications, _ := newTestAlertService(t, testAlertConfig())
	svc.now = func() time.Time { return alertTestNow }

	budgets := []Budget{makeBudget("Food", "400")}
	transactions := []Transaction{
		makeTransaction("185.50", "Food", KindExpense, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)),
	}

	svc.CheckForAlerts(budgets, transactions)

	assert.Empty(t, notifications.Notifications())
}

func TestCheckForAlerts_IgnoresOtherMonths(t *testing.T) {
	svc, notifications, _ := newTestAlertService(t, testAlertConfig())
	svc.now = func() time.Time { return alertTestNow }

	budgets := []Budget{makeBudget("Food", "400")}
	transactions := []Transaction{
		makeTransaction("420.00", "Food", KindExpense, time.Date(2025, 5, 30, 0, 0, 0, 0, time.UTC)),
	}

	svc.CheckForAlerts(budgets, transactions)

	assert.Empty(t, notifications.Notifications())
}

// -- Rate limiter tests --

func TestCheckForAlerts_RateLimited(t *testing.T) {
	svc, notifications, _ := newTestAlertService(t, testAlertConfig())
	now := alertTestNow
	svc.now = func() time.Time { return now }

	budgets := []Budget{makeBudget("Food", "400")}
	transactions := []Transaction{
		makeTransaction("420.00", "Food", KindExpense, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)),
	}

	svc.CheckForAlerts(budgets, transactions)
	require.Len(t, notifications.Notifications(), 1)

	// 30 minutes later: inside the window, dropped.
	now = alertTestNow.Add(30 * time.Minute)
	svc.CheckForAlerts(budgets, transactions)
	assert.Len(t, notifications.Notifications(), 1)

	// 61 minutes after the first pass: window elapsed, fires again.
	now = alertTestNow.Add(61 * time.Minute)
	svc.CheckForAlerts(budgets, transactions)
	assert.Len(t, notifications.Notifications(), 2)
}

// -- Spending pattern tests --

func TestCheckForAlerts_SpendingSpike(t *testing.T) {
	svc, notifications, _ := newTestAlertService(t, testAlertConfig())
	svc.now = func() time.Time { return alertTestNow }

	// Mean over three active days is 50; today's 100 exceeds 1.5x that.
	transactions := []Transaction{
		makeTransaction("20.00", "Food", KindExpense, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)),
		makeTransaction("30.00", "Food", KindExpense, time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC)),
		makeTransaction("100.00", "Shopping", KindExpense, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)),
	}

	svc.CheckForAlerts(nil, transactions)

	list := notifications.Notifications()
	require.Len(t, list, 1)
	assert.Equal(t, notification.TypeSystem, list[0].Type)
	assert.Equal(t, notification.SeverityWarning, list[0].Severity)
	assert.Equal(t, "High Spending Today", list[0].Title)
	assert.Contains(t, list[0].Message, "100.00")
}

func TestCheckForAlerts_NoSpikeWhenTodayIsOnlyActiveDay(t *testing.T) {
	svc, notifications, _ := newTestAlertService(t, testAlertConfig())
	svc.now = func() time.Time { return alertTestNow }

	// Today is the whole history, so today equals the mean.
	transactions := []Transaction{
		makeTransaction("100.00", "Shopping", KindExpense, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)),
	}

	svc.CheckForAlerts(nil, transactions)

	assert.Empty(t, notifications.Notifications())
}

func TestCheckForAlerts_NoSpendingHistory(t *testing.T) {
	svc, notifications, _ := newTestAlertService(t, testAlertConfig())
	svc.now = func() time.Time { return alertTestNow }

	transactions := []Transaction{
		makeTransaction("1200", "Income", KindIncome, time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC)),
	}

	svc.CheckForAlerts(nil, transactions)

	assert.Empty(t, notifications.Notifications())
}

// -- Large expense tests --

func TestCheckForAlerts_LargeExpenseToday(t *testing.T) {
	svc, notifications, _ := newTestAlertService(t, testAlertConfig())
	svc.now = func() time.Time { return alertTestNow }

	transactions := []Transaction{
		{
			Amount:      decimal.RequireFromString("750.00"),
			Description: "New Laptop",
			Category:    "Shopping",
			Kind:        KindExpense,
			Date:        time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		},
	}

	svc.CheckForAlerts(nil, transactions)

	list := notifications.Notifications()
	require.Len(t, list, 1)
	assert.Equal(t, notification.TypeSystem, list[0].Type)
	assert.Equal(t, notification.SeverityInfo, list[0].Severity)
	assert.Equal(t, "Large Transaction", list[0].Title)
	assert.Contains(t, list[0].Message, "750.00")
	assert.Contains(t, list[0].Message, "New Laptop")
}

func TestCheckForAlerts_LargeExpenseOnEarlierDayIgnored(t *testing.T) {
	svc, notifications, _ := newTestAlertService(t, testAlertConfig())
	svc.now = func() time.Time { return alertTestNow }

	transactions := []Transaction{
		makeTransaction("750.00", "Shopping", KindExpense, time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC)),
	}

	svc.CheckForAlerts(nil, transactions)

	assert.Empty(t, notifications.Notifications())
}

// -- Duplicate suppression tests --

// By default identical alerts accumulate across passes; that matches the
// current product behavior even though it reads like spam.
func TestCheckForAlerts_DuplicatesAccumulateByDefault(t *testing.T) {
	svc, notifications, _ := newTestAlertService(t, testAlertConfig())
	now := alertTestNow
	svc.now = func() time.Time { return now }

	budgets := []Budget{makeBudget("Food", "400")}
	transactions := []Transaction{
		makeTransaction("420.00", "Food", KindExpense, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)),
	}

	svc.CheckForAlerts(budgets, transactions)
	now = now.Add(2 * time.Hour)
	svc.CheckForAlerts(budgets, transactions)

	list := notifications.Notifications()
	require.Len(t, list, 2)
	assert.Equal(t, list[0].Message, list[1].Message)
}

func TestCheckForAlerts_SuppressDuplicates(t *testing.T) {
	envConfig := testAlertConfig()
	envConfig.SuppressDuplicates = true
	svc, notifications, _ := newTestAlertService(t, envConfig)
	now := alertTestNow
	svc.now = func() time.Time { return now }

	budgets := []Budget{makeBudget("Food", "400")}
	transactions := []Transaction{
		makeTransaction("420.00", "Food", KindExpense, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)),
	}

	svc.CheckForAlerts(budgets, transactions)
	now = now.Add(2 * time.Hour)
	svc.CheckForAlerts(budgets, transactions)

	require.Len(t, notifications.Notifications(), 1)

	// Once the alert is read it no longer suppresses a fresh one.
	notifications.MarkAllRead()
	now = now.Add(2 * time.Hour)
	svc.CheckForAlerts(budgets, transactions)

	assert.Len(t, notifications.Notifications(), 2)
}

// -- Check (storage snapshot) tests --

func TestCheck_LoadsSnapshotsFromStorage(t *testing.T) {
	svc, notifications, store := newTestAlertService(t, testAlertConfig())
	svc.now = func() time.Time { return alertTestNow }

	_, err := store.Budgets.Insert(context.Background(), &storage.BudgetCreate{
		Category: "Food",
		Amount:   decimal.NewFromInt(400),
	})
	require.NoError(t, err)
	_, err = store.Transactions.Insert(context.Background(), &storage.TransactionCreate{
		Amount:      decimal.RequireFromString("420.00"),
		Description: "Groceries",
		Category:    "Food",
		Kind:        "expense",
		Date:        time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	require.NoError(t, svc.Check(context.Background()))

	list := notifications.Notifications()
	require.Len(t, list, 1)
	assert.Equal(t, notification.TypeBudgetAlert, list[0].Type)
}
