package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/moneyflow/internal/common"
)

// BudgetPeriod labels how often a budget is meant to reset.
type BudgetPeriod string

// Budget periods.
const (
	PeriodWeekly  BudgetPeriod = "weekly"
	PeriodMonthly BudgetPeriod = "monthly"
	PeriodYearly  BudgetPeriod = "yearly"
)

// Valid reports whether p is a known period.
func (p BudgetPeriod) Valid() bool {
	switch p {
	case PeriodWeekly, PeriodMonthly, PeriodYearly:
		return true
	}
	return false
}

// ParseBudgetPeriod converts user input into a BudgetPeriod.
func ParseBudgetPeriod(s string) (BudgetPeriod, error) {
	p := BudgetPeriod(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", fmt.Errorf("%w: period must be weekly, monthly or yearly, got %q", common.ErrValidation, s)
	}
	return p, nil
}

// Budget caps spending for one category.
type Budget struct {
	CreatedAt  time.Time    `json:"createdAt"`
	ID         string       `json:"id"`
	CategoryID string       `json:"categoryId"`
	Period     BudgetPeriod `json:"period"`
	Amount     float64      `json:"amount"`
}

// Validate checks the required budget fields.
func (b Budget) Validate() error {
	if strings.TrimSpace(b.CategoryID) == "" {
		return fmt.Errorf("%w: budget category is required", common.ErrValidation)
	}
	if b.Amount <= 0 {
		return fmt.Errorf("%w: budget amount must be greater than zero", common.ErrValidation)
	}
	if !b.Period.Valid() {
		return fmt.Errorf("%w: budget period %q is not valid", common.ErrValidation, b.Period)
	}
	return nil
}

// BudgetPatch holds the fields to change on a budget.
type BudgetPatch struct {
	CategoryID *string
	Amount     *float64
	Period     *BudgetPeriod
}

// Apply returns b with the patch merged in.
func (p BudgetPatch) Apply(b Budget) Budget {
	if p.CategoryID != nil {
		b.CategoryID = *p.CategoryID
	}
	if p.Amount != nil {
		b.Amount = *p.Amount
	}
	if p.Period != nil {
		b.Period = *p.Period
	}
	return b
}
