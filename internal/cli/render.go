package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/Veraticus/moneyflow/internal/aggregate"
	"github.com/Veraticus/moneyflow/internal/model"
)

const barWidth = 20

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(SubtleStyle).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return TableHeaderStyle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
}

// TransactionTable lists transactions in the given order.
func TransactionTable(txns []model.Transaction, categories []model.Category, money Money) string {
	t := newTable("Date", "Description", "Category", "Amount", "ID")
	for _, txn := range txns {
		t.Row(txn.Date.String(), txn.Description, CategoryLabel(categories, txn.CategoryID), money.Signed(txn), SubtleStyle.Render(txn.ID))
	}
	return t.Render()
}

// SummaryLine totals a transaction list in one line.
func SummaryLine(s aggregate.Summary, money Money) string {
	return fmt.Sprintf("%d transactions  %s %s  %s %s  net %s",
		s.Count,
		IncomeIcon, SuccessStyle.Render(money.Format(s.TotalIncome)),
		ExpenseIcon, ErrorStyle.Render(money.Format(s.TotalExpenses)),
		money.Balance(s.Net))
}

// CategoryTable lists categories with their type and color.
func CategoryTable(categories []model.Category) string {
	t := newTable("", "Name", "Type", "ID")
	for _, c := range categories {
		t.Row(Swatch(c.Color), c.Name, Title(string(c.Type)), SubtleStyle.Render(c.ID))
	}
	return t.Render()
}

// StatsPanel renders the monthly totals.
func StatsPanel(stats aggregate.MonthlyStats, money Money) string {
	lines := []string{
		fmt.Sprintf("%s Income     %s", IncomeIcon, SuccessStyle.Render(money.Format(stats.TotalIncome))),
		fmt.Sprintf("%s Expenses   %s", ExpenseIcon, ErrorStyle.Render(money.Format(stats.TotalExpenses))),
		fmt.Sprintf("= Balance    %s", money.Balance(stats.Balance)),
		fmt.Sprintf("%s Saved      %s of %s", GoalIcon, money.Format(stats.TotalSaved), money.Format(stats.TotalSavingsGoal)),
	}
	return strings.Join(lines, "\n")
}

// BudgetTable renders each budget with a consumption bar.
func BudgetTable(statuses []aggregate.BudgetStatus, money Money) string {
	t := newTable("Category", "Period", "Spent", "Budget", "Used", "Status", "ID")
	for _, s := range statuses {
		name := SubtleStyle.Render("(deleted category)")
		if s.Category != nil {
			name = Swatch(s.Category.Color) + " " + s.Category.Name
		}
		style := StatusStyle(s.Status)
		t.Row(
			name,
			Title(string(s.Budget.Period)),
			money.Format(s.Spent),
			money.Format(s.Budget.Amount),
			ProgressBar(s.Percentage, barWidth, StatusColor(s.Status))+fmt.Sprintf(" %.0f%%", s.RawPercentage),
			style.Render(Title(string(s.Status))),
			SubtleStyle.Render(s.Budget.ID),
		)
	}
	return t.Render()
}

// BreakdownTable renders the monthly expense distribution.
func BreakdownTable(shares []aggregate.CategoryShare, money Money) string {
	t := newTable("Category", "Amount", "Share")
	for _, s := range shares {
		t.Row(
			Swatch(s.Color)+" "+s.Name,
			money.Format(s.Amount),
			ProgressBar(s.Percentage, barWidth, lipgloss.Color(s.Color))+fmt.Sprintf(" %.1f%%", s.Percentage),
		)
	}
	return t.Render()
}

// GoalList renders goals with progress and deadline.
func GoalList(goals []aggregate.GoalStatus, money Money) string {
	var b strings.Builder
	for i, g := range goals {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "%s %s %s\n", GoalIcon, BoldStyle.Render(g.Goal.Name), SubtleStyle.Render(g.Goal.ID))

		color := PrimaryColor
		if g.IsCompleted {
			color = SuccessColor
		}
		fmt.Fprintf(&b, "%s %.0f%%  %s / %s", ProgressBar(g.BarWidth, barWidth, color), g.Progress,
			money.Format(g.Goal.CurrentAmount), money.Format(g.Goal.TargetAmount))

		switch {
		case g.IsCompleted:
			b.WriteString("  " + SuccessStyle.Render(SuccessIcon+" completed"))
		case g.Remaining > 0:
			b.WriteString("  " + SubtleStyle.Render(money.Format(g.Remaining)+" to go"))
		}
		b.WriteString("\n" + Deadline(g))
	}
	return b.String()
}

// Deadline describes the time left until a goal's target date.
func Deadline(g aggregate.GoalStatus) string {
	switch {
	case g.DaysRemaining == nil:
		return SubtleStyle.Render("no target date")
	case g.Overdue:
		return ErrorStyle.Render(fmt.Sprintf("overdue by %d days (%s)", -*g.DaysRemaining, g.Goal.TargetDate))
	case *g.DaysRemaining == 0:
		return WarningStyle.Render("due today")
	default:
		return InfoStyle.Render(fmt.Sprintf("%d days left (%s)", *g.DaysRemaining, g.Goal.TargetDate))
	}
}

// Dashboard renders the full overview.
func Dashboard(d aggregate.Dashboard, categories []model.Category, money Money) string {
	sections := []string{
		FormatTitle("Overview for " + d.ReferenceNow.Format("January 2006")),
		RenderBox("This month", StatsPanel(d.Stats, money)),
	}

	if len(d.Budgets) > 0 {
		sections = append(sections, TitleStyle.Render(ChartIcon+" Budgets"), BudgetTable(d.Budgets, money))
	}
	if len(d.Breakdown) > 0 {
		sections = append(sections, TitleStyle.Render(ChartIcon+" Spending by category"), BreakdownTable(d.Breakdown, money))
	}
	if len(d.Recent) > 0 {
		sections = append(sections, TitleStyle.Render("Recent transactions"), TransactionTable(d.Recent, categories, money))
	}
	if len(d.Goals) > 0 {
		sections = append(sections, TitleStyle.Render(GoalIcon+" Savings goals"), GoalList(d.Goals, money))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
