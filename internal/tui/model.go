// Package tui implements the interactive transaction browser.
package tui

import (
	"errors"
	"slices"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/moneyflow/internal/aggregate"
	"github.com/Veraticus/moneyflow/internal/cli"
	"github.com/Veraticus/moneyflow/internal/model"
	"github.com/Veraticus/moneyflow/internal/query"
	"github.com/Veraticus/moneyflow/internal/tui/themes"
)

// ErrNoSource is returned when the browser has nothing to show.
var ErrNoSource = errors.New("tui: a data source is required")

// View represents the current view mode.
type View int

// Views.
const (
	ViewTransactions View = iota
	ViewOverview
)

var sortCycle = []query.SortKey{query.SortByDate, query.SortByAmount, query.SortByDescription, query.SortByCategory}

var typeCycle = []string{query.All, string(model.TypeIncome), string(model.TypeExpense)}

// Model holds the browser state.
type Model struct {
	theme       themes.Theme
	source      Source
	now         func() time.Time
	money       cli.Money
	keymap      KeyMap
	data        aggregate.Collections
	filters     query.Filters
	sort        query.Sort
	visible     []model.Transaction
	help        help.Model
	search      textinput.Model
	table       table.Model
	recentCount int
	width       int
	height      int
	view        View
	searching   bool
	quitting    bool
}

// New creates the browser and loads the first snapshot.
func New(opts ...Option) (Model, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Source == nil {
		return Model{}, ErrNoSource
	}

	keymap := DefaultKeyMap()

	t := table.New(
		table.WithColumns(columns(cfg.Width)),
		table.WithFocused(true),
	)
	t.KeyMap = table.KeyMap{
		LineUp:       keymap.Up,
		LineDown:     keymap.Down,
		PageUp:       keymap.PageUp,
		PageDown:     keymap.PageDown,
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		GotoTop:      keymap.Home,
		GotoBottom:   keymap.End,
	}
	s := table.DefaultStyles()
	s.Header = cfg.Theme.Header
	s.Selected = cfg.Theme.Selected
	t.SetStyles(s)

	search := textinput.New()
	search.Placeholder = "Search descriptions..."
	search.Prompt = "/ "
	search.CharLimit = 50

	m := Model{
		theme:       cfg.Theme,
		source:      cfg.Source,
		now:         cfg.ReferenceNow,
		money:       cli.NewMoney(cfg.Currency),
		keymap:      keymap,
		filters:     query.DefaultFilters(),
		sort:        query.DefaultSort(),
		help:        help.New(),
		search:      search,
		table:       t,
		recentCount: cfg.RecentCount,
		width:       cfg.Width,
		height:      cfg.Height,
		view:        ViewTransactions,
		data:        cfg.Source.Snapshot(),
	}
	m.resize()
	m.applyQuery()
	return m, nil
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case snapshotMsg:
		m.data = msg.data
		m.applyQuery()
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keymap.ForceQuit) {
			m.quitting = true
			return m, tea.Quit
		}
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.handleKeys(msg)
	}

	return m, nil
}

func (m Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keymap.ToggleHelp):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keymap.ToggleView):
		if m.view == ViewTransactions {
			m.view = ViewOverview
		} else {
			m.view = ViewTransactions
		}
		return m, nil
	case key.Matches(msg, m.keymap.Refresh):
		return m, loadSnapshot(m.source)
	}

	if m.view != ViewTransactions {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keymap.Search):
		m.searching = true
		return m, m.search.Focus()
	case key.Matches(msg, m.keymap.CycleType):
		m.filters.Type = next(typeCycle, m.filters.Type)
	case key.Matches(msg, m.keymap.CycleCategory):
		ids := []string{query.All}
		for _, c := range m.data.Categories {
			ids = append(ids, c.ID)
		}
		m.filters.Category = next(ids, m.filters.Category)
	case key.Matches(msg, m.keymap.CycleSort):
		m.sort.By = next(sortCycle, m.sort.By)
	case key.Matches(msg, m.keymap.ReverseOrder):
		if m.sort.Order == query.Descending {
			m.sort.Order = query.Ascending
		} else {
			m.sort.Order = query.Descending
		}
	case key.Matches(msg, m.keymap.ClearFilters):
		m.filters.Clear()
		m.search.SetValue("")
	default:
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}

	m.applyQuery()
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.ConfirmSearch):
		m.searching = false
		m.search.Blur()
		return m, nil
	case key.Matches(msg, m.keymap.CancelSearch):
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.filters.SearchTerm = ""
		m.applyQuery()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.filters.SearchTerm = m.search.Value()
	m.applyQuery()
	return m, cmd
}

// applyQuery recomputes the visible rows from the data, filters and sort.
func (m *Model) applyQuery() {
	m.visible = query.Transactions(m.data.Transactions, m.data.Categories, m.filters, m.sort)

	rows := make([]table.Row, 0, len(m.visible))
	for _, t := range m.visible {
		category := "(deleted)"
		if c := model.FindCategory(m.data.Categories, t.CategoryID); c != nil {
			category = c.Name
		}
		sign := "-"
		if t.IsIncome() {
			sign = "+"
		}
		rows = append(rows, table.Row{t.Date.String(), t.Description, category, sign + m.money.Format(t.Amount)})
	}
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(max(0, len(rows)-1))
	}
}

const chromeHeight = 9

func (m *Model) resize() {
	m.help.Width = m.width
	m.table.SetColumns(columns(m.width))
	m.table.SetWidth(m.width)
	m.table.SetHeight(max(3, m.height-chromeHeight))
}

func columns(width int) []table.Column {
	const date, category, amount = 10, 18, 16
	desc := max(16, width-date-category-amount-8)
	return []table.Column{
		{Title: "Date", Width: date},
		{Title: "Description", Width: desc},
		{Title: "Category", Width: category},
		{Title: "Amount", Width: amount},
	}
}

// next returns the element after current in cycle, wrapping around. An
// unknown current value restarts the cycle.
func next[T comparable](cycle []T, current T) T {
	i := slices.Index(cycle, current)
	return cycle[(i+1)%len(cycle)]
}
