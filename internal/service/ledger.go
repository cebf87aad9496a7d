package service

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// The ledger functions are the pure aggregation core: they reduce a
// transaction snapshot into totals for a window and never touch storage.
// Windows are half-open, [from, to).

// DayOf truncates a timestamp to its calendar date at midnight UTC.
func DayOf(t time.Time) time.Time {
	utc := t.UTC()
	return time.Date(utc.Year(), utc.Month(), utc.Day(), 0, 0, 0, 0, time.UTC)
}

// MonthWindow returns the current-calendar-month window containing now.
// Budget "spent" is always computed over this window, regardless of when
// the budget was created.
func MonthWindow(now time.Time) (from, to time.Time) {
	utc := now.UTC()
	from = time.Date(utc.Year(), utc.Month(), 1, 0, 0, 0, 0, time.UTC)
	to = from.AddDate(0, 1, 0)
	return from, to
}

// SpentInWindow sums the expense amounts for one category inside the
// window. Empty input or no matches yields zero.
func SpentInWindow(transactions []Transaction, category string, from, to time.Time) decimal.Decimal {
	total := decimal.Zero
	for _, t := range transactions {
		if t.Kind != KindExpense || t.Category != category {
			continue
		}
		if inWindow(t.Date, from, to) {
			total = total.Add(t.Amount)
		}
	}
	return total
}

// DailyExpenseTotals buckets expense amounts by calendar date inside the
// window. Days without expenses have no entry.
func DailyExpenseTotals(transactions []Transaction, from, to time.Time) map[time.Time]decimal.Decimal {
	totals := make(map[time.Time]decimal.Decimal)
	for _, t := range transactions {
		if t.Kind != KindExpense {
			continue
		}
		day := DayOf(t.Date)
		if !inWindow(day, from, to) {
			continue
		}
		totals[day] = totals[day].Add(t.Amount)
	}
	return totals
}

// CategoryTotal is an expense total for one category.
type CategoryTotal struct {
	Category string
	Total    decimal.Decimal
}

// LedgerOverview summarizes a window: income and expense totals, their
// difference, and a per-category expense breakdown ordered by category.
type LedgerOverview struct {
	Income     decimal.Decimal
	Expenses   decimal.Decimal
	Net        decimal.Decimal
	ByCategory []CategoryTotal
}

// Overview reduces a transaction snapshot into a window summary.
func Overview(transactions []Transaction, from, to time.Time) LedgerOverview {
	income := decimal.Zero
	expenses := decimal.Zero
	byCategory := make(map[string]decimal.Decimal)

	for _, t := range transactions {
		if !inWindow(t.Date, from, to) {
			continue
		}
		switch t.Kind {
		case KindIncome:
			income = income.Add(t.Amount)
		case KindExpense:
			expenses = expenses.Add(t.Amount)
			byCategory[t.Category] = byCategory[t.Category].Add(t.Amount)
		}
	}

	categories := make([]CategoryTotal, 0, len(byCategory))
	for category, total := range byCategory {
		categories = append(categories, CategoryTotal{Category: category, Total: total})
	}
	sort.Slice(categories, func(i, j int) bool {
		return categories[i].Category < categories[j].Category
	})

	return LedgerOverview{
		Income:     income,
		Expenses:   expenses,
		Net:        income.Sub(expenses),
		ByCategory: categories,
	}
}

func inWindow(date, from, to time.Time) bool {
	return !date.Before(from) && date.Before(to)
}
