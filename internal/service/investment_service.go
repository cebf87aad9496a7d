package service

import (
	"context"
	"strings"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/insights-server/internal/storage"
)

// InvestmentService handles investment business logic.
type InvestmentService struct {
	storage *storage.Storage
}

// NewInvestmentService creates a new InvestmentService.
func NewInvestmentService(store *storage.Storage) *InvestmentService {
	return &InvestmentService{storage: store}
}

// CreateInvestment validates and creates a new holding, returning its ID.
// Symbols are normalized to uppercase.
func (s *InvestmentService) CreateInvestment(ctx context.Context, investment Investment) (uuid.UUID, error) {
	investment.Symbol = strings.ToUpper(strings.TrimSpace(investment.Symbol))
	if err := investment.Validate(); err != nil {
		return uuid.Nil, err
	}

	return s.storage.Investments.Insert(ctx, &storage.InvestmentCreate{
		Symbol:        investment.Symbol,
		Name:          investment.Name,
		Shares:        investment.Shares,
		PurchasePrice: investment.PurchasePrice,
		CurrentPrice:  investment.CurrentPrice,
		PurchaseDate:  investment.PurchaseDate,
		Type:          string(investment.Type),
	})
}

// ListInvestments returns every holding, ordered by symbol.
func (s *InvestmentService) ListInvestments(ctx context.Context) ([]Investment, error) {
	rows, err := s.storage.Investments.List(ctx, nil)
	if err != nil {
		return nil, err
	}

	convertedInvestments := make([]Investment, len(rows))
	for i, row := range rows {
		convertedInvestments[i] = investmentFromStorage(row)
	}
	return convertedInvestments, nil
}

// RefreshPrice updates a holding's current price. This is the entry point
// for the external price-refresh collaborator.
func (s *InvestmentService) RefreshPrice(ctx context.Context, id uuid.UUID, price decimal.Decimal) error {
	if !price.IsPositive() {
		return ErrInvalidPrice
	}
	return s.storage.Investments.UpdatePrice(ctx, id, price)
}

// DeleteInvestment removes a holding.
func (s *InvestmentService) DeleteInvestment(ctx context.Context, id uuid.UUID) error {
	return s.storage.Investments.Delete(ctx, id)
}
