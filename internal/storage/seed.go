package storage

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Seed loads a small demo dataset: a month of transactions, category
// budgets (one of them already blown so an alert pass has something to
// report), and a few holdings. Dates are relative to now so the data always
// falls inside the current evaluation window.
func Seed(ctx context.Context, store *Storage) error {
	today := time.Now().UTC().Truncate(24 * time.Hour)

	transactions := []TransactionCreate{
		{Amount: decimal.NewFromInt(1200), Description: "Monthly Salary", Category: "Income", Kind: "income", Date: today.AddDate(0, 0, -1)},
		{Amount: decimal.RequireFromString("65.50"), Description: "Groceries", Category: "Food", Kind: "expense", Date: today.AddDate(0, 0, -2)},
		{Amount: decimal.RequireFromString("45.00"), Description: "Gas Station", Category: "Transportation", Kind: "expense", Date: today.AddDate(0, 0, -3)},
		{Amount: decimal.RequireFromString("29.99"), Description: "Netflix Subscription", Category: "Entertainment", Kind: "expense", Date: today.AddDate(0, 0, -4)},
		{Amount: decimal.RequireFromString("120.00"), Description: "Restaurant Dinner", Category: "Food", Kind: "expense", Date: today.AddDate(0, 0, -5)},
		{Amount: decimal.RequireFromString("189.99"), Description: "Concert Tickets", Category: "Entertainment", Kind: "expense", Date: today},
	}
	for i := range transactions {
		if _, err := store.Transactions.Insert(ctx, &transactions[i]); err != nil {
			return err
		}
	}

	budgets := []BudgetCreate{
		{Category: "Food", Amount: decimal.NewFromInt(400)},
		{Category: "Transportation", Amount: decimal.NewFromInt(200)},
		{Category: "Entertainment", Amount: decimal.NewFromInt(150)},
		{Category: "Shopping", Amount: decimal.NewFromInt(300)},
	}
	for i := range budgets {
		if _, err := store.Budgets.Insert(ctx, &budgets[i]); err != nil {
			return err
		}
	}

	investments := []InvestmentCreate{
		{Symbol: "AAPL", Name: "Apple Inc.", Shares: decimal.NewFromInt(10), PurchasePrice: decimal.NewFromInt(150), CurrentPrice: decimal.NewFromInt(185), PurchaseDate: today.AddDate(-1, 0, 0), Type: "stock"},
		{Symbol: "VOO", Name: "Vanguard S&P 500 ETF", Shares: decimal.RequireFromString("2.5"), PurchasePrice: decimal.NewFromInt(380), CurrentPrice: decimal.NewFromInt(412), PurchaseDate: today.AddDate(0, -6, 0), Type: "etf"},
		{Symbol: "BTC", Name: "Bitcoin", Shares: decimal.RequireFromString("0.05"), PurchasePrice: decimal.NewFromInt(42000), CurrentPrice: decimal.NewFromInt(38500), PurchaseDate: today.AddDate(0, -3, 0), Type: "crypto"},
	}
	for i := range investments {
		if _, err := store.Investments.Insert(ctx, &investments[i]); err != nil {
			return err
		}
	}

	return nil
}
