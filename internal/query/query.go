package query

import (
	"slices"

	"github.com/Veraticus/moneyflow/internal/model"
)

// Transactions returns the transactions matching filters, ordered by s.
//
// The result is a new slice; the input is never reordered or modified. Ties
// keep their input order because the sort is stable and no secondary key is
// defined.
func Transactions(transactions []model.Transaction, categories []model.Category, filters Filters, s Sort) []model.Transaction {
	result := make([]model.Transaction, 0, len(transactions))
	for _, t := range transactions {
		if filters.Match(t) {
			result = append(result, t)
		}
	}

	compare := comparator(s.By, categories)
	if s.Order == Descending {
		asc := compare
		compare = func(a, b model.Transaction) int {
			return -asc(a, b)
		}
	}

	slices.SortStableFunc(result, compare)
	return result
}
