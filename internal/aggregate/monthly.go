package aggregate

import (
	"time"

	"github.com/Veraticus/moneyflow/internal/model"
	"github.com/Veraticus/moneyflow/internal/period"
)

// MonthlyStats summarises the reference month and all savings goals.
type MonthlyStats struct {
	TotalIncome      float64
	TotalExpenses    float64
	Balance          float64
	TotalSavingsGoal float64
	TotalSaved       float64
}

// ComputeMonthlyStats totals income and expenses for the calendar month of
// referenceNow. Savings totals cover every goal regardless of when it was created.
func ComputeMonthlyStats(transactions []model.Transaction, goals []model.SavingsGoal, referenceNow time.Time) MonthlyStats {
	var income, expenses total
	for _, t := range transactions {
		if !period.InCurrentMonth(t.Date, referenceNow) {
			continue
		}
		switch t.Type {
		case model.TypeIncome:
			income.add(t.Amount)
		case model.TypeExpense:
			expenses.add(t.Amount)
		}
	}

	var target, saved total
	for _, g := range goals {
		target.add(g.TargetAmount)
		saved.add(g.CurrentAmount)
	}

	stats := MonthlyStats{
		TotalIncome:      income.float(),
		TotalExpenses:    expenses.float(),
		TotalSavingsGoal: target.float(),
		TotalSaved:       saved.float(),
	}
	stats.Balance = stats.TotalIncome - stats.TotalExpenses
	return stats
}

// Summary totals an arbitrary list of transactions, typically a filtered view.
type Summary struct {
	Count         int
	TotalIncome   float64
	TotalExpenses float64
	Net           float64
}

// Summarize totals transactions without any date window.
func Summarize(transactions []model.Transaction) Summary {
	var income, expenses total
	for _, t := range transactions {
		switch t.Type {
		case model.TypeIncome:
			income.add(t.Amount)
		case model.TypeExpense:
			expenses.add(t.Amount)
		}
	}
	s := Summary{
		Count:         len(transactions),
		TotalIncome:   income.float(),
		TotalExpenses: expenses.float(),
	}
	s.Net = s.TotalIncome - s.TotalExpenses
	return s
}

// Recent returns a copy of the first n transactions in store order, which is
// newest first.
func Recent(transactions []model.Transaction, n int) []model.Transaction {
	if n <= 0 {
		return []model.Transaction{}
	}
	if n > len(transactions) {
		n = len(transactions)
	}
	out := make([]model.Transaction, n)
	copy(out, transactions[:n])
	return out
}
