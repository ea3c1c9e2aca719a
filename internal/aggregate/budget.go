package aggregate

import (
	"time"

	"github.com/Veraticus/moneyflow/internal/model"
	"github.com/Veraticus/moneyflow/internal/period"
)

// Status classifies how much of a budget has been consumed.
type Status string

// Budget statuses.
const (
	StatusSafe     Status = "safe"
	StatusWarning  Status = "warning"
	StatusExceeded Status = "exceeded"
)

// Classification thresholds, in percent of the budget amount.
const (
	WarningThreshold  = 80.0
	ExceededThreshold = 100.0
)

// BudgetStatus is the consumption view of one budget.
type BudgetStatus struct {
	// Category is nil when the budget points at a deleted category.
	Category *model.Category
	Budget   model.Budget
	Status   Status
	Spent    float64
	// RawPercentage is spent/amount*100 without clamping; Status is derived from it.
	RawPercentage float64
	// Percentage is RawPercentage clamped to 100 for display.
	Percentage float64
	Remaining  float64
}

// ComputeBudgetStatus evaluates every budget against the expenses of its
// category in the calendar month of referenceNow.
//
// The budget Period is a label only: weekly and yearly budgets are still
// compared against the calendar month, matching the behaviour users already
// rely on.
func ComputeBudgetStatus(budgets []model.Budget, categories []model.Category, transactions []model.Transaction, referenceNow time.Time) []BudgetStatus {
	spentByCategory := make(map[string]*total)
	for _, t := range transactions {
		if t.Type != model.TypeExpense || !period.InCurrentMonth(t.Date, referenceNow) {
			continue
		}
		acc, ok := spentByCategory[t.CategoryID]
		if !ok {
			acc = &total{}
			spentByCategory[t.CategoryID] = acc
		}
		acc.add(t.Amount)
	}

	result := make([]BudgetStatus, 0, len(budgets))
	for _, b := range budgets {
		var spent float64
		if acc, ok := spentByCategory[b.CategoryID]; ok {
			spent = acc.float()
		}

		raw := percentOf(spent, b.Amount)
		remaining := b.Amount - spent
		if remaining < 0 {
			remaining = 0
		}

		result = append(result, BudgetStatus{
			Budget:        b,
			Category:      model.FindCategory(categories, b.CategoryID),
			Spent:         spent,
			RawPercentage: raw,
			Percentage:    clampPercent(raw),
			Remaining:     remaining,
			Status:        classify(raw),
		})
	}
	return result
}

func classify(percentage float64) Status {
	switch {
	case percentage >= ExceededThreshold:
		return StatusExceeded
	case percentage >= WarningThreshold:
		return StatusWarning
	default:
		return StatusSafe
	}
}
