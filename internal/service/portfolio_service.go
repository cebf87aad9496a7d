package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/insights-server/internal/storage"
)

// PriceChangeEstimator produces the day-over-day change figure for a
// portfolio summary. The valuation arithmetic never depends on it, so a
// real price-history feed can replace the simulated default without
// touching the valuator.
type PriceChangeEstimator interface {
	EstimateDailyChange(summary PortfolioSummary) decimal.Decimal
}

// simulatedDailyChange is a stand-in for a real day-over-day feed: it
// reports 1% of the total gain. Kept for parity with the existing product
// behavior.
type simulatedDailyChange struct{}

var simulatedDailyChangeRate = decimal.RequireFromString("0.01")

func (simulatedDailyChange) EstimateDailyChange(summary PortfolioSummary) decimal.Decimal {
	return summary.TotalGain.Mul(simulatedDailyChangeRate)
}

// NewSimulatedDailyChange returns the placeholder estimator.
func NewSimulatedDailyChange() PriceChangeEstimator {
	return simulatedDailyChange{}
}

// PortfolioService handles portfolio valuation.
type PortfolioService struct {
	storage   *storage.Storage
	estimator PriceChangeEstimator
}

// NewPortfolioService creates a new PortfolioService. A nil estimator
// falls back to the simulated daily change.
func NewPortfolioService(store *storage.Storage, estimator PriceChangeEstimator) *PortfolioService {
	if estimator == nil {
		estimator = NewSimulatedDailyChange()
	}
	return &PortfolioService{storage: store, estimator: estimator}
}

// Valuate reduces a holdings snapshot into per-holding and aggregate
// figures. Pure aside from the estimator; an empty snapshot yields an
// all-zero summary.
func (s *PortfolioService) Valuate(investments []Investment) PortfolioSummary {
	summary := PortfolioSummary{
		TotalValue: decimal.Zero,
		TotalCost:  decimal.Zero,
		TotalGain:  decimal.Zero,
		Holdings:   make([]HoldingValue, len(investments)),
	}

	for i, investment := range investments {
		cost := investment.Shares.Mul(investment.PurchasePrice)
		value := investment.Shares.Mul(investment.CurrentPrice)
		summary.Holdings[i] = HoldingValue{
			Investment: investment,
			Cost:       cost,
			Value:      value,
			Gain:       value.Sub(cost),
		}
		summary.TotalCost = summary.TotalCost.Add(cost)
		summary.TotalValue = summary.TotalValue.Add(value)
	}

	summary.TotalGain = summary.TotalValue.Sub(summary.TotalCost)
	summary.GainPercentage = decimal.Zero
	if summary.TotalCost.IsPositive() {
		summary.GainPercentage = summary.TotalGain.Div(summary.TotalCost).Mul(hundred)
	}
	summary.DailyChange = s.estimator.EstimateDailyChange(summary)

	return summary
}

// Summary valuates the currently stored holdings.
func (s *PortfolioService) Summary(ctx context.Context) (PortfolioSummary, error) {
	investments, err := s.storage.Investments.List(ctx, nil)
	if err != nil {
		return PortfolioSummary{}, err
	}

	converted := make([]Investment, len(investments))
	for i, row := range investments {
		converted[i] = investmentFromStorage(row)
	}
	return s.Valuate(converted), nil
}
