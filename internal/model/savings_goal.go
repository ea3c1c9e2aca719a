package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/moneyflow/internal/common"
)

// SavingsGoal tracks progress towards a target amount.
// CurrentAmount may exceed TargetAmount.
type SavingsGoal struct {
	CreatedAt     time.Time `json:"createdAt"`
	TargetDate    *Date     `json:"targetDate,omitempty"`
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	TargetAmount  float64   `json:"targetAmount"`
	CurrentAmount float64   `json:"currentAmount"`
}

// Validate checks the required goal fields.
func (g SavingsGoal) Validate() error {
	if strings.TrimSpace(g.Name) == "" {
		return fmt.Errorf("%w: goal name is required", common.ErrValidation)
	}
	if g.TargetAmount <= 0 {
		return fmt.Errorf("%w: target amount must be greater than zero", common.ErrValidation)
	}
	if g.CurrentAmount < 0 {
		return fmt.Errorf("%w: current amount cannot be negative", common.ErrValidation)
	}
	return nil
}

// SavingsGoalPatch holds the fields to change on a goal.
// ClearTargetDate removes the target date and wins over TargetDate.
type SavingsGoalPatch struct {
	Name            *string
	TargetAmount    *float64
	CurrentAmount   *float64
	TargetDate      *Date
	ClearTargetDate bool
}

// Apply returns g with the patch merged in.
func (p SavingsGoalPatch) Apply(g SavingsGoal) SavingsGoal {
	if p.Name != nil {
		g.Name = *p.Name
	}
	if p.TargetAmount != nil {
		g.TargetAmount = *p.TargetAmount
	}
	if p.CurrentAmount != nil {
		g.CurrentAmount = *p.CurrentAmount
	}
	if p.TargetDate != nil {
		d := *p.TargetDate
		g.TargetDate = &d
	}
	if p.ClearTargetDate {
		g.TargetDate = nil
	}
	return g
}
