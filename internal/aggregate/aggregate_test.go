package aggregate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/moneyflow/internal/model"
)

var march15 = time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)

func txn(id string, typ model.EntryType, amount float64, categoryID, date string) model.Transaction {
	return model.Transaction{
		ID:          id,
		Type:        typ,
		Amount:      amount,
		Description: "txn " + id,
		CategoryID:  categoryID,
		Date:        model.MustParseDate(date),
	}
}

func testCategories() []model.Category {
	return []model.Category{
		{ID: "c1", Name: "Food", Color: "#10B981", Type: model.TypeExpense},
		{ID: "c2", Name: "Transport", Color: "#3B82F6", Type: model.TypeExpense},
		{ID: "c3", Name: "Fun", Type: model.TypeExpense},
		{ID: "i1", Name: "Salary", Color: "#059669", Type: model.TypeIncome},
	}
}

func TestComputeMonthlyStats(t *testing.T) {
	t.Run("scenario from the dashboard", func(t *testing.T) {
		txns := []model.Transaction{
			txn("1", model.TypeIncome, 1000, "i1", "2024-03-01"),
			txn("2", model.TypeExpense, 200, "c1", "2024-03-05"),
		}

		stats := ComputeMonthlyStats(txns, nil, march15)
		assert.InDelta(t, 1000.0, stats.TotalIncome, 1e-9)
		assert.InDelta(t, 200.0, stats.TotalExpenses, 1e-9)
		assert.InDelta(t, 800.0, stats.Balance, 1e-9)
	})

	t.Run("ignores other months and years", func(t *testing.T) {
		txns := []model.Transaction{
			txn("1", model.TypeIncome, 500, "i1", "2024-02-29"),
			txn("2", model.TypeExpense, 80, "c1", "2023-03-10"),
			txn("3", model.TypeExpense, 40, "c1", "2024-03-31"),
		}

		stats := ComputeMonthlyStats(txns, nil, march15)
		assert.Zero(t, stats.TotalIncome)
		assert.InDelta(t, 40.0, stats.TotalExpenses, 1e-9)
		assert.InDelta(t, -40.0, stats.Balance, 1e-9)
	})

	t.Run("savings totals span all goals", func(t *testing.T) {
		goals := []model.SavingsGoal{
			{ID: "g1", Name: "Trip", TargetAmount: 1000, CurrentAmount: 250, CreatedAt: march15.AddDate(-2, 0, 0)},
			{ID: "g2", Name: "Car", TargetAmount: 5000, CurrentAmount: 100},
		}

		stats := ComputeMonthlyStats(nil, goals, march15)
		assert.InDelta(t, 6000.0, stats.TotalSavingsGoal, 1e-9)
		assert.InDelta(t, 350.0, stats.TotalSaved, 1e-9)
	})

	t.Run("balance is exactly income minus expenses", func(t *testing.T) {
		txns := []model.Transaction{
			txn("1", model.TypeIncome, 0.1, "i1", "2024-03-01"),
			txn("2", model.TypeIncome, 0.2, "i1", "2024-03-02"),
			txn("3", model.TypeExpense, 0.3, "c1", "2024-03-03"),
			txn("4", model.TypeExpense, 19.99, "c2", "2024-03-04"),
		}

		stats := ComputeMonthlyStats(txns, nil, march15)
		assert.Equal(t, stats.TotalIncome-stats.TotalExpenses, stats.Balance)
		assert.Equal(t, 0.3, stats.TotalIncome, "decimal sums avoid 0.30000000000000004")
	})

	t.Run("does not mutate input", func(t *testing.T) {
		txns := []model.Transaction{txn("1", model.TypeIncome, 10, "i1", "2024-03-01")}
		before := append([]model.Transaction(nil), txns...)
		ComputeMonthlyStats(txns, nil, march15)
		assert.Equal(t, before, txns)
	})
}

func TestComputeBudgetStatus(t *testing.T) {
	cats := testCategories()

	t.Run("exceeded budget", func(t *testing.T) {
		budgets := []model.Budget{{ID: "b1", CategoryID: "c1", Amount: 100, Period: model.PeriodMonthly}}
		txns := []model.Transaction{txn("1", model.TypeExpense, 150, "c1", "2024-03-10")}

		got := ComputeBudgetStatus(budgets, cats, txns, march15)
		require.Len(t, got, 1)
		assert.InDelta(t, 150.0, got[0].Spent, 1e-9)
		assert.InDelta(t, 150.0, got[0].RawPercentage, 1e-9)
		assert.InDelta(t, 100.0, got[0].Percentage, 1e-9)
		assert.Equal(t, StatusExceeded, got[0].Status)
		assert.Zero(t, got[0].Remaining)
		require.NotNil(t, got[0].Category)
		assert.Equal(t, "Food", got[0].Category.Name)
	})

	tests := []struct {
		name      string
		want      Status
		spent     float64
		amount    float64
		remaining float64
	}{
		{name: "safe below warning", spent: 79.99, amount: 100, want: StatusSafe, remaining: 20.01},
		{name: "warning at eighty", spent: 80, amount: 100, want: StatusWarning, remaining: 20},
		{name: "exceeded at exactly hundred", spent: 100, amount: 100, want: StatusExceeded, remaining: 0},
		{name: "zero amount is safe", spent: 50, amount: 0, want: StatusSafe, remaining: 0},
		{name: "nothing spent", spent: 0, amount: 300, want: StatusSafe, remaining: 300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			budgets := []model.Budget{{ID: "b", CategoryID: "c1", Amount: tt.amount, Period: model.PeriodMonthly}}
			var txns []model.Transaction
			if tt.spent > 0 {
				txns = append(txns, txn("x", model.TypeExpense, tt.spent, "c1", "2024-03-02"))
			}

			got := ComputeBudgetStatus(budgets, cats, txns, march15)
			require.Len(t, got, 1)
			assert.Equal(t, tt.want, got[0].Status)
			assert.InDelta(t, tt.remaining, got[0].Remaining, 1e-9)
			if tt.amount == 0 {
				assert.Zero(t, got[0].RawPercentage)
			}
		})
	}

	t.Run("only current month expenses of the category count", func(t *testing.T) {
		budgets := []model.Budget{{ID: "b1", CategoryID: "c1", Amount: 200, Period: model.PeriodYearly}}
		txns := []model.Transaction{
			txn("1", model.TypeExpense, 50, "c1", "2024-03-01"),
			txn("2", model.TypeExpense, 70, "c1", "2024-01-15"), // earlier this year, still ignored
			txn("3", model.TypeIncome, 500, "c1", "2024-03-02"),
			txn("4", model.TypeExpense, 30, "c2", "2024-03-02"),
		}

		got := ComputeBudgetStatus(budgets, cats, txns, march15)
		require.Len(t, got, 1)
		assert.InDelta(t, 50.0, got[0].Spent, 1e-9)
		assert.InDelta(t, 25.0, got[0].Percentage, 1e-9)
	})

	t.Run("dangling category resolves to nil", func(t *testing.T) {
		budgets := []model.Budget{{ID: "b1", CategoryID: "gone", Amount: 10, Period: model.PeriodMonthly}}
		txns := []model.Transaction{txn("1", model.TypeExpense, 5, "gone", "2024-03-01")}

		got := ComputeBudgetStatus(budgets, cats, txns, march15)
		require.Len(t, got, 1)
		assert.Nil(t, got[0].Category)
		assert.InDelta(t, 5.0, got[0].Spent, 1e-9)
	})
}

func TestComputeCategoryBreakdown(t *testing.T) {
	cats := testCategories()

	t.Run("groups and sorts by amount", func(t *testing.T) {
		txns := []model.Transaction{
			txn("1", model.TypeExpense, 30, "c1", "2024-03-01"),
			txn("2", model.TypeExpense, 50, "c2", "2024-03-02"),
			txn("3", model.TypeExpense, 20, "c1", "2024-03-03"),
			txn("4", model.TypeIncome, 999, "i1", "2024-03-03"),
			txn("5", model.TypeExpense, 100, "c3", "2024-02-28"),
		}

		got := ComputeCategoryBreakdown(txns, cats, march15)
		require.Len(t, got, 2)
		// c1 and c2 both total 50; c1 appeared first.
		assert.Equal(t, "c1", got[0].CategoryID)
		assert.Equal(t, "c2", got[1].CategoryID)
		assert.InDelta(t, 50.0, got[0].Percentage, 1e-9)
		assert.InDelta(t, 50.0, got[1].Percentage, 1e-9)
		assert.Equal(t, "Food", got[0].Name)
		assert.Equal(t, "#10B981", got[0].Color)
	})

	t.Run("percentages sum to one hundred", func(t *testing.T) {
		txns := []model.Transaction{
			txn("1", model.TypeExpense, 10.10, "c1", "2024-03-01"),
			txn("2", model.TypeExpense, 33.33, "c2", "2024-03-02"),
			txn("3", model.TypeExpense, 7.77, "c3", "2024-03-03"),
		}

		got := ComputeCategoryBreakdown(txns, cats, march15)
		require.Len(t, got, 3)
		var sum float64
		for _, s := range got {
			sum += s.Percentage
		}
		assert.InDelta(t, 100.0, sum, 1e-9)
		assert.Equal(t, "c2", got[0].CategoryID)
		assert.Equal(t, model.DefaultCategoryColor, got[2].Color)
	})

	t.Run("expenses of deleted categories are dropped", func(t *testing.T) {
		txns := []model.Transaction{
			txn("1", model.TypeExpense, 40, "c1", "2024-03-01"),
			txn("2", model.TypeExpense, 60, "deleted", "2024-03-02"),
		}

		got := ComputeCategoryBreakdown(txns, cats, march15)
		require.Len(t, got, 1)
		assert.Equal(t, "c1", got[0].CategoryID)
		assert.InDelta(t, 100.0, got[0].Percentage, 1e-9)
	})

	t.Run("no expenses yields empty breakdown", func(t *testing.T) {
		got := ComputeCategoryBreakdown(nil, cats, march15)
		assert.Empty(t, got)
	})
}

func TestComputeGoalProgress(t *testing.T) {
	tests := []struct {
		name      string
		goal      model.SavingsGoal
		progress  float64
		bar       float64
		remaining float64
		completed bool
	}{
		{name: "exactly reached", goal: model.SavingsGoal{TargetAmount: 500, CurrentAmount: 500}, progress: 100, bar: 100, completed: true},
		{name: "half way", goal: model.SavingsGoal{TargetAmount: 500, CurrentAmount: 250}, progress: 50, bar: 50, remaining: 250},
		{name: "over target", goal: model.SavingsGoal{TargetAmount: 200, CurrentAmount: 300}, progress: 150, bar: 100, completed: true},
		{name: "zero target", goal: model.SavingsGoal{TargetAmount: 0, CurrentAmount: 10}, progress: 0, bar: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeGoalProgress(tt.goal)
			assert.InDelta(t, tt.progress, got.Progress, 1e-9)
			assert.InDelta(t, tt.bar, got.BarWidth, 1e-9)
			assert.InDelta(t, tt.remaining, got.Remaining, 1e-9)
			assert.Equal(t, tt.completed, got.IsCompleted)
		})
	}
}

func TestComputeGoalStatuses(t *testing.T) {
	past := model.MustParseDate("2024-03-01")
	future := model.MustParseDate("2024-04-14")
	goals := []model.SavingsGoal{
		{ID: "g1", Name: "Old", TargetAmount: 100, CurrentAmount: 10, TargetDate: &past},
		{ID: "g2", Name: "New", TargetAmount: 100, CurrentAmount: 10, TargetDate: &future},
		{ID: "g3", Name: "Open", TargetAmount: 100},
	}

	got := ComputeGoalStatuses(goals, march15)
	require.Len(t, got, 3)

	require.NotNil(t, got[0].DaysRemaining)
	assert.True(t, got[0].Overdue)

	require.NotNil(t, got[1].DaysRemaining)
	assert.Equal(t, 30, *got[1].DaysRemaining)
	assert.False(t, got[1].Overdue)

	assert.Nil(t, got[2].DaysRemaining)
	assert.False(t, got[2].Overdue)
}

func TestSummarizeAndRecent(t *testing.T) {
	txns := []model.Transaction{
		txn("1", model.TypeIncome, 100, "i1", "2023-01-01"),
		txn("2", model.TypeExpense, 30, "c1", "2024-03-01"),
		txn("3", model.TypeExpense, 20, "c2", "2024-03-02"),
	}

	s := Summarize(txns)
	assert.Equal(t, 3, s.Count)
	assert.InDelta(t, 100.0, s.TotalIncome, 1e-9)
	assert.InDelta(t, 50.0, s.TotalExpenses, 1e-9)
	assert.InDelta(t, 50.0, s.Net, 1e-9)

	recent := Recent(txns, 2)
	require.Len(t, recent, 2)
	assert.Equal(t, "1", recent[0].ID)

	recent[0].ID = "changed"
	assert.Equal(t, "1", txns[0].ID)

	assert.Len(t, Recent(txns, 10), 3)
	assert.Empty(t, Recent(txns, 0))
}

func TestBuildDashboard(t *testing.T) {
	c := Collections{
		Categories: testCategories(),
		Transactions: []model.Transaction{
			txn("1", model.TypeIncome, 1000, "i1", "2024-03-01"),
			txn("2", model.TypeExpense, 200, "c1", "2024-03-05"),
		},
		Budgets: []model.Budget{{ID: "b1", CategoryID: "c1", Amount: 250, Period: model.PeriodMonthly}},
		SavingsGoals: []model.SavingsGoal{
			{ID: "g1", Name: "A", TargetAmount: 10},
			{ID: "g2", Name: "B", TargetAmount: 10},
			{ID: "g3", Name: "C", TargetAmount: 10},
			{ID: "g4", Name: "D", TargetAmount: 10},
		},
	}

	d := BuildDashboard(c, march15, 5)
	assert.InDelta(t, 800.0, d.Stats.Balance, 1e-9)
	assert.InDelta(t, 40.0, d.Stats.TotalSavingsGoal, 1e-9)
	require.Len(t, d.Budgets, 1)
	assert.Equal(t, StatusWarning, d.Budgets[0].Status)
	require.Len(t, d.Breakdown, 1)
	assert.Len(t, d.Recent, 2)
	assert.Len(t, d.Goals, DashboardGoalCount)
	assert.Equal(t, march15, d.ReferenceNow)
}
