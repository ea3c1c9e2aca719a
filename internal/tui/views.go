package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/moneyflow/internal/aggregate"
	"github.com/Veraticus/moneyflow/internal/cli"
	"github.com/Veraticus/moneyflow/internal/model"
	"github.com/Veraticus/moneyflow/internal/query"
)

// View renders the current screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var body string
	switch m.view {
	case ViewOverview:
		d := aggregate.BuildDashboard(m.data, m.now(), m.recentCount)
		body = cli.Dashboard(d, m.data.Categories, m.money)
	default:
		body = m.transactionsView()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.tabs(),
		body,
		m.theme.StatusBar.Render(m.help.View(m.keymap)),
	)
}

func (m Model) tabs() string {
	names := []string{"Transactions", "Overview"}
	rendered := make([]string, len(names))
	for i, name := range names {
		if View(i) == m.view {
			rendered[i] = m.theme.Selected.Padding(0, 1).Render(name)
		} else {
			rendered[i] = m.theme.Subtitle.Padding(0, 1).Render(name)
		}
	}
	return m.theme.Title.Render(cli.MoneyIcon+" moneyflow") + "  " + strings.Join(rendered, " ")
}

func (m Model) transactionsView() string {
	lines := []string{m.filterChips()}
	if m.searching || m.filters.SearchTerm != "" {
		lines = append(lines, m.search.View())
	}

	if len(m.visible) == 0 {
		lines = append(lines, m.theme.Subtitle.Render("No transactions match the current filters."))
	} else {
		lines = append(lines, m.table.View())
	}

	lines = append(lines, cli.SummaryLine(aggregate.Summarize(m.visible), m.money))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) filterChips() string {
	chips := []string{
		m.theme.FilterChip.Render("type: " + m.filters.Type),
		m.theme.FilterChip.Render("category: " + m.categoryName(m.filters.Category)),
		m.theme.FilterChip.Render(fmt.Sprintf("sort: %s %s", m.sort.By, arrow(m.sort.Order))),
	}
	return strings.Join(chips, "")
}

func (m Model) categoryName(id string) string {
	if id == query.All || id == "" {
		return query.All
	}
	if c := model.FindCategory(m.data.Categories, id); c != nil {
		return c.Name
	}
	return id
}

func arrow(order query.SortOrder) string {
	if order == query.Ascending {
		return "↑"
	}
	return "↓"
}
