// Package query filters and sorts transaction lists for the history views.
package query

import (
	"strings"

	"github.com/Veraticus/moneyflow/internal/model"
	"github.com/Veraticus/moneyflow/internal/period"
)

// All disables the category or type filter.
const All = "all"

// Filters selects which transactions a view shows. Every set criterion must hold.
type Filters struct {
	DateFrom   *model.Date
	DateTo     *model.Date
	SearchTerm string
	// Category is a category id or All.
	Category string
	// Type is "income", "expense" or All.
	Type string
}

// DefaultFilters matches every transaction.
func DefaultFilters() Filters {
	return Filters{Category: All, Type: All}
}

// Clear resets f to DefaultFilters.
func (f *Filters) Clear() {
	*f = DefaultFilters()
}

// IsActive reports whether any criterion narrows the result.
func (f Filters) IsActive() bool {
	return f.SearchTerm != "" ||
		(f.Category != "" && f.Category != All) ||
		(f.Type != "" && f.Type != All) ||
		f.DateFrom != nil || f.DateTo != nil
}

// Match reports whether t satisfies every criterion in f.
func (f Filters) Match(t model.Transaction) bool {
	if f.SearchTerm != "" &&
		!strings.Contains(strings.ToLower(t.Description), strings.ToLower(f.SearchTerm)) {
		return false
	}
	if f.Category != "" && f.Category != All && t.CategoryID != f.Category {
		return false
	}
	if f.Type != "" && f.Type != All && string(t.Type) != f.Type {
		return false
	}
	return period.InRange(t.Date, f.DateFrom, f.DateTo)
}
