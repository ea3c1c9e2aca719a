package aggregate

import (
	"slices"
	"time"

	"github.com/Veraticus/moneyflow/internal/model"
	"github.com/Veraticus/moneyflow/internal/period"
)

// CategoryShare is one slice of the monthly expense distribution.
type CategoryShare struct {
	CategoryID string
	Name       string
	Color      string
	Amount     float64
	Percentage float64
}

// ComputeCategoryBreakdown groups the current month's expenses by category and
// returns each group's share of the total, largest first.
//
// Expenses whose category no longer exists are left out of both the groups and
// the total.
func ComputeCategoryBreakdown(transactions []model.Transaction, categories []model.Category, referenceNow time.Time) []CategoryShare {
	byID := make(map[string]model.Category, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}

	var order []string
	sums := make(map[string]*total)
	for _, t := range transactions {
		if t.Type != model.TypeExpense || !period.InCurrentMonth(t.Date, referenceNow) {
			continue
		}
		if _, ok := byID[t.CategoryID]; !ok {
			continue
		}
		acc, ok := sums[t.CategoryID]
		if !ok {
			acc = &total{}
			sums[t.CategoryID] = acc
			order = append(order, t.CategoryID)
		}
		acc.add(t.Amount)
	}

	var grand total
	for _, id := range order {
		grand.sum = grand.sum.Add(sums[id].sum)
	}
	grandTotal := grand.float()

	shares := make([]CategoryShare, 0, len(order))
	for _, id := range order {
		c := byID[id]
		amount := sums[id].float()
		color := c.Color
		if color == "" {
			color = model.DefaultCategoryColor
		}
		shares = append(shares, CategoryShare{
			CategoryID: id,
			Name:       c.Name,
			Color:      color,
			Amount:     amount,
			Percentage: percentOf(amount, grandTotal),
		})
	}

	slices.SortStableFunc(shares, func(a, b CategoryShare) int {
		switch {
		case a.Amount > b.Amount:
			return -1
		case a.Amount < b.Amount:
			return 1
		default:
			return 0
		}
	})
	return shares
}
