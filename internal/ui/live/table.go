package live

import (
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// defaultColumns returns the question table columns at their base widths.
func defaultColumns() []table.Column {
	return []table.Column{
		{Title: "#", Width: 4},
		{Title: "Pertanyaan", Width: 48},
		{Title: "Status", Width: 10},
		{Title: "RAG", Width: 14},
		{Title: "OG", Width: 14},
		{Title: "Waktu", Width: 8},
	}
}

// columnsForWidth gives spare terminal width to the question column.
func columnsForWidth(width int) []table.Column {
	columns := defaultColumns()
	used := 0
	for _, c := range columns {
		used += c.Width + 2
	}
	if extra := width - used; extra > 0 {
		columns[1].Width += extra
	}
	return columns
}

// tableStyles returns table styles for the UI.
func tableStyles(noColor bool) table.Styles {
	styles := table.DefaultStyles()
	if noColor {
		return styles
	}
	styles.Header = styles.Header.Foreground(lipgloss.Color("252"))
	return styles
}

// rowsForState converts UI state into table rows.
func rowsForState(state State, now time.Time, noColor bool) []table.Row {
	rows := make([]table.Row, 0, len(state.Rows))
	for _, row := range state.Rows {
		rows = append(rows, table.Row{
			formatIndex(row.Index),
			formatQuestionText(row.Text),
			stylizeStatus(row.Status, noColor),
			formatSide(row, row.RAGCorrect, row.RAGVerdict, noColor),
			formatSide(row, row.OGCorrect, row.OGVerdict, noColor),
			formatRowDuration(row, now),
		})
	}
	return rows
}
