package service

import (
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/insights-server/internal/storage"
)

// InvestmentType classifies a holding.
type InvestmentType string

const (
	TypeStock      InvestmentType = "stock"
	TypeCrypto     InvestmentType = "crypto"
	TypeETF        InvestmentType = "etf"
	TypeMutualFund InvestmentType = "mutual_fund"
)

var (
	ErrEmptySymbol           = errors.New("symbol must not be empty")
	ErrInvalidShares         = errors.New("shares must be positive")
	ErrInvalidPrice          = errors.New("price must be positive")
	ErrInvalidInvestmentType = errors.New("unknown investment type")
)

// Investment represents a holding in the service layer. Symbol is
// normalized to uppercase at the creation boundary. CurrentPrice is kept
// fresh by the external price-refresh collaborator through RefreshPrice.
type Investment struct {
	ID            uuid.UUID
	Symbol        string
	Name          string
	Shares        decimal.Decimal
	PurchasePrice decimal.Decimal
	CurrentPrice  decimal.Decimal
	PurchaseDate  time.Time
	Type          InvestmentType
	CreatedAt     time.Time
}

// Validate checks the creation-boundary invariants. Fractional shares are
// allowed.
func (i Investment) Validate() error {
	if len(i.Symbol) == 0 {
		return ErrEmptySymbol
	}
	if !i.Shares.IsPositive() {
		return ErrInvalidShares
	}
	if !i.PurchasePrice.IsPositive() || !i.CurrentPrice.IsPositive() {
		return ErrInvalidPrice
	}
	switch i.Type {
	case TypeStock, TypeCrypto, TypeETF, TypeMutualFund:
	default:
		return ErrInvalidInvestmentType
	}
	return nil
}

// HoldingValue is the valuation of a single holding.
type HoldingValue struct {
	Investment
	Cost  decimal.Decimal
	Value decimal.Decimal
	Gain  decimal.Decimal
}

// PortfolioSummary aggregates every holding's valuation.
//
// GainPercentage is totalGain/totalCost as a percentage, defined as 0 when
// the cost basis is 0 so an empty portfolio never divides by zero.
type PortfolioSummary struct {
	TotalValue     decimal.Decimal
	TotalCost      decimal.Decimal
	TotalGain      decimal.Decimal
	GainPercentage decimal.Decimal
	DailyChange    decimal.Decimal
	Holdings       []HoldingValue
}

func investmentFromStorage(row *storage.Investment) Investment {
	return Investment{
		ID:            row.ID,
		Symbol:        row.Symbol,
		Name:          row.Name,
		Shares:        row.Shares,
		PurchasePrice: row.PurchasePrice,
		CurrentPrice:  row.CurrentPrice,
		PurchaseDate:  row.PurchaseDate,
		Type:          InvestmentType(row.Type),
		CreatedAt:     row.CreatedAt,
	}
}
