package aggregate

import (
	"time"

	"github.com/Veraticus/moneyflow/internal/model"
	"github.com/Veraticus/moneyflow/internal/period"
)

// GoalProgress describes how far a savings goal has come.
type GoalProgress struct {
	// Progress is current/target*100 and may exceed 100.
	Progress float64
	// BarWidth is Progress clamped to 100.
	BarWidth    float64
	Remaining   float64
	IsCompleted bool
}

// ComputeGoalProgress returns the progress of a single goal.
func ComputeGoalProgress(goal model.SavingsGoal) GoalProgress {
	progress := percentOf(goal.CurrentAmount, goal.TargetAmount)
	remaining := goal.TargetAmount - goal.CurrentAmount
	if remaining < 0 {
		remaining = 0
	}
	return GoalProgress{
		Progress:    progress,
		BarWidth:    clampPercent(progress),
		Remaining:   remaining,
		IsCompleted: progress >= 100,
	}
}

// GoalStatus pairs a goal with its progress and deadline.
type GoalStatus struct {
	// DaysRemaining is nil when the goal has no target date.
	DaysRemaining *int
	Goal          model.SavingsGoal
	GoalProgress
	Overdue bool
}

// ComputeGoalStatuses evaluates every goal against referenceNow.
func ComputeGoalStatuses(goals []model.SavingsGoal, referenceNow time.Time) []GoalStatus {
	result := make([]GoalStatus, 0, len(goals))
	for _, g := range goals {
		days := period.DaysRemaining(g.TargetDate, referenceNow)
		result = append(result, GoalStatus{
			Goal:          g,
			GoalProgress:  ComputeGoalProgress(g),
			DaysRemaining: days,
			Overdue:       period.IsOverdue(days),
		})
	}
	return result
}
