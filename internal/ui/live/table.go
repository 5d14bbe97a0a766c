package live

import (
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// tableStyles returns table styles for the UI.
func tableStyles(noColor bool) table.Styles {
	if noColor {
		return table.DefaultStyles()
	}
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Foreground(lipgloss.Color("252"))
	return styles
}

func defaultColumns() []table.Column {
	return columnsForWidth(100)
}

// columnsForWidth gives the name and status columns whatever is left after
// the fixed-width columns.
func columnsForWidth(width int) []table.Column {
	const fixed = 12 + 10 + 8 + 10
	flexible := width - fixed - 10
	if flexible < 30 {
		flexible = 30
	}
	return []table.Column{
		{Title: "Student", Width: 12},
		{Title: "Name", Width: flexible / 2},
		{Title: "Score", Width: 10},
		{Title: "Rank", Width: 8},
		{Title: "Time", Width: 10},
		{Title: "Status", Width: flexible - flexible/2},
	}
}

// rowsForState converts UI state into table rows.
func rowsForState(state State, now time.Time, noColor bool) []table.Row {
	rows := make([]table.Row, 0, len(state.Rows))
	for _, row := range state.Rows {
		rows = append(rows, table.Row{
			formatStudent(row),
			truncate(row.Name, 40),
			formatScore(row),
			formatRank(row),
			formatRowDuration(row, now),
			formatStatus(row, noColor),
		})
	}
	return rows
}
