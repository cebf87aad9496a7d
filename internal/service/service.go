package service

import (
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/insights-server/internal/config"
	"github.com/carson-networks/insights-server/internal/notification"
	"github.com/carson-networks/insights-server/internal/storage"
)

// Service holds all business logic services.
type Service struct {
	Transactions *TransactionService
	Budgets      *BudgetService
	Investments  *InvestmentService
	Portfolio    *PortfolioService
	Alerts       *AlertService
}

// NewService creates a new Service with the given storage and notification
// store.
func NewService(
	store *storage.Storage,
	notifications *notification.Store,
	logger *logrus.Logger,
	envConfig *config.Config,
) *Service {
	budgets := NewBudgetService(store, envConfig.NearLimitThreshold)

	return &Service{
		Transactions: NewTransactionService(store),
		Budgets:      budgets,
		Investments:  NewInvestmentService(store),
		Portfolio:    NewPortfolioService(store, nil),
		Alerts:       NewAlertService(store, notifications, budgets, logger, envConfig),
	}
}
