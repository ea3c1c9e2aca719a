package query

import (
	"cmp"
	"fmt"
	"strings"

	"github.com/Veraticus/moneyflow/internal/common"
	"github.com/Veraticus/moneyflow/internal/model"
)

// SortKey names the field a view is ordered by.
type SortKey string

// Sort keys.
const (
	SortByDate        SortKey = "date"
	SortByAmount      SortKey = "amount"
	SortByDescription SortKey = "description"
	SortByCategory    SortKey = "category"
)

// SortOrder is the direction of a sort.
type SortOrder string

// Sort orders.
const (
	Ascending  SortOrder = "asc"
	Descending SortOrder = "desc"
)

// Sort describes how a view is ordered. Unknown keys sort by date.
type Sort struct {
	By    SortKey
	Order SortOrder
}

// DefaultSort orders newest first.
func DefaultSort() Sort {
	return Sort{By: SortByDate, Order: Descending}
}

// ParseSortKey converts user input into a SortKey.
func ParseSortKey(s string) (SortKey, error) {
	switch key := SortKey(strings.ToLower(strings.TrimSpace(s))); key {
	case SortByDate, SortByAmount, SortByDescription, SortByCategory:
		return key, nil
	default:
		return "", fmt.Errorf("%w: sort key must be date, amount, description or category, got %q", common.ErrValidation, s)
	}
}

// ParseSortOrder converts user input into a SortOrder.
func ParseSortOrder(s string) (SortOrder, error) {
	switch order := SortOrder(strings.ToLower(strings.TrimSpace(s))); order {
	case Ascending, Descending:
		return order, nil
	default:
		return "", fmt.Errorf("%w: sort order must be asc or desc, got %q", common.ErrValidation, s)
	}
}

// comparator returns a three-way comparison on the key selected by by.
func comparator(by SortKey, categories []model.Category) func(a, b model.Transaction) int {
	switch by {
	case SortByAmount:
		return func(a, b model.Transaction) int {
			return cmp.Compare(a.Amount, b.Amount)
		}
	case SortByDescription:
		return func(a, b model.Transaction) int {
			return strings.Compare(strings.ToLower(a.Description), strings.ToLower(b.Description))
		}
	case SortByCategory:
		names := make(map[string]string, len(categories))
		for _, c := range categories {
			names[c.ID] = strings.ToLower(c.Name)
		}
		return func(a, b model.Transaction) int {
			return strings.Compare(names[a.CategoryID], names[b.CategoryID])
		}
	default:
		return func(a, b model.Transaction) int {
			return a.Date.Compare(b.Date)
		}
	}
}
