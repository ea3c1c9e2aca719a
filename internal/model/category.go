package model

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Veraticus/moneyflow/internal/common"
)

// EntryType distinguishes money coming in from money going out. It is shared
// by categories and transactions.
type EntryType string

const (
	// TypeIncome marks income categories and transactions.
	TypeIncome EntryType = "income"
	// TypeExpense marks expense categories and transactions.
	TypeExpense EntryType = "expense"
)

// Valid reports whether t is income or expense.
func (t EntryType) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// ParseEntryType converts user input into an EntryType.
func ParseEntryType(s string) (EntryType, error) {
	t := EntryType(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("%w: type must be income or expense, got %q", common.ErrValidation, s)
	}
	return t, nil
}

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Category groups transactions and budgets.
type Category struct {
	ID    string    `json:"id"`
	Name  string    `json:"name"`
	Color string    `json:"color"`
	Type  EntryType `json:"type"`
}

// Validate checks the required category fields.
func (c Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: category name is required", common.ErrValidation)
	}
	if !c.Type.Valid() {
		return fmt.Errorf("%w: category type must be income or expense", common.ErrValidation)
	}
	if c.Color != "" && !hexColor.MatchString(c.Color) {
		return fmt.Errorf("%w: category color %q is not a hex color", common.ErrValidation, c.Color)
	}
	return nil
}

// CategoryPatch holds the fields to change on a category. Nil fields are left untouched.
type CategoryPatch struct {
	Name  *string
	Color *string
	Type  *EntryType
}

// Apply returns c with the patch merged in.
func (p CategoryPatch) Apply(c Category) Category {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Color != nil {
		c.Color = *p.Color
	}
	if p.Type != nil {
		c.Type = *p.Type
	}
	return c
}

// DefaultCategoryColor is used when a category has no color of its own.
const DefaultCategoryColor = "#6B7280"

// DefaultCategories returns the categories seeded on first start.
func DefaultCategories() []Category {
	return []Category{
		{ID: "1", Name: "Alimentación", Color: "#10B981", Type: TypeExpense},
		{ID: "2", Name: "Transporte", Color: "#3B82F6", Type: TypeExpense},
		{ID: "3", Name: "Entretenimiento", Color: "#8B5CF6", Type: TypeExpense},
		{ID: "4", Name: "Salario", Color: "#059669", Type: TypeIncome},
		{ID: "5", Name: "Freelance", Color: "#0891B2", Type: TypeIncome},
	}
}

// FindCategory returns the category with the given id, or nil when it no longer exists.
func FindCategory(categories []Category, id string) *Category {
	for i := range categories {
		if categories[i].ID == id {
			c := categories[i]
			return &c
		}
	}
	return nil
}

// CategoriesByType returns the categories of type t in their original order.
func CategoriesByType(categories []Category, t EntryType) []Category {
	result := make([]Category, 0, len(categories))
	for _, c := range categories {
		if c.Type == t {
			result = append(result, c)
		}
	}
	return result
}
