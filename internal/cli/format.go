package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/Veraticus/moneyflow/internal/aggregate"
	"github.com/Veraticus/moneyflow/internal/model"
)

var titleCaser = cases.Title(language.English)

// Money formats amounts in one currency with locale digit grouping.
type Money struct {
	printer *message.Printer
	symbol  string
}

// NewMoney returns a formatter for unit.
func NewMoney(unit currency.Unit) Money {
	printer := message.NewPrinter(language.English)
	return Money{
		printer: printer,
		symbol:  printer.Sprint(currency.Symbol(unit)),
	}
}

// Format renders amount with two decimals and the currency symbol.
func (m Money) Format(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return sign + m.symbol + " " + m.printer.Sprintf("%.2f", amount)
}

// Signed renders a transaction amount with + for income and - for expenses.
func (m Money) Signed(t model.Transaction) string {
	if t.IsIncome() {
		return SuccessStyle.Render("+" + m.Format(t.Amount))
	}
	return ErrorStyle.Render("-" + m.Format(t.Amount))
}

// Balance colors a balance green when non-negative and red otherwise.
func (m Money) Balance(amount float64) string {
	if amount < 0 {
		return ErrorStyle.Render(m.Format(amount))
	}
	return SuccessStyle.Render(m.Format(amount))
}

// Title capitalizes enum-like labels such as "monthly" or "exceeded".
func Title(s string) string {
	return titleCaser.String(s)
}

// StatusColor returns the color used for a budget status.
func StatusColor(status aggregate.Status) lipgloss.Color {
	switch status {
	case aggregate.StatusExceeded:
		return ErrorColor
	case aggregate.StatusWarning:
		return WarningColor
	default:
		return SuccessColor
	}
}

// StatusStyle returns the style used for a budget status.
func StatusStyle(status aggregate.Status) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(StatusColor(status))
}

// ProgressBar draws a bar of width cells filled to percent (0-100).
func ProgressBar(percent float64, width int, color lipgloss.Color) string {
	if width <= 0 {
		return ""
	}
	percent = max(0, min(100, percent))
	filled := int(percent / 100 * float64(width))
	return lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled)) +
		SubtleStyle.Render(strings.Repeat("░", width-filled))
}

// Swatch renders a small block in a category's color.
func Swatch(hex string) string {
	if hex == "" {
		hex = model.DefaultCategoryColor
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render("●")
}

// CategoryLabel names a category, or marks a reference to one that no longer exists.
func CategoryLabel(categories []model.Category, id string) string {
	if c := model.FindCategory(categories, id); c != nil {
		return Swatch(c.Color) + " " + c.Name
	}
	return SubtleStyle.Render("(deleted category)")
}
