package aggregate

import (
	"time"

	"github.com/Veraticus/moneyflow/internal/model"
)

// DashboardGoalCount is how many goals the dashboard shows.
const DashboardGoalCount = 3

// Collections is a read-only view of the four entity collections.
type Collections struct {
	Categories   []model.Category
	Transactions []model.Transaction
	Budgets      []model.Budget
	SavingsGoals []model.SavingsGoal
}

// Dashboard is everything the overview screen needs.
type Dashboard struct {
	ReferenceNow time.Time
	Breakdown    []CategoryShare
	Budgets      []BudgetStatus
	Recent       []model.Transaction
	Goals        []GoalStatus
	Stats        MonthlyStats
}

// BuildDashboard computes the overview from one consistent set of collections.
func BuildDashboard(c Collections, referenceNow time.Time, recentCount int) Dashboard {
	goals := c.SavingsGoals
	if len(goals) > DashboardGoalCount {
		goals = goals[:DashboardGoalCount]
	}

	return Dashboard{
		ReferenceNow: referenceNow,
		Stats:        ComputeMonthlyStats(c.Transactions, c.SavingsGoals, referenceNow),
		Budgets:      ComputeBudgetStatus(c.Budgets, c.Categories, c.Transactions, referenceNow),
		Breakdown:    ComputeCategoryBreakdown(c.Transactions, c.Categories, referenceNow),
		Recent:       Recent(c.Transactions, recentCount),
		Goals:        ComputeGoalStatuses(goals, referenceNow),
	}
}
