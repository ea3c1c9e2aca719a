package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/moneyflow/internal/aggregate"
)

// snapshotMsg carries freshly loaded collections.
type snapshotMsg struct {
	data aggregate.Collections
}

func loadSnapshot(source Source) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg{data: source.Snapshot()}
	}
}
