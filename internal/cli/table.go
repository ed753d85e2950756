package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/roach88/roster/internal/record"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	numberStyle    = cellStyle.Align(lipgloss.Right)
)

// renderTable draws records as a bordered table, one row per record.
func renderTable(records []record.Record) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "Name", "Age", "Email", "Course").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0 || col == 2:
				return numberStyle
			default:
				return cellStyle
			}
		})

	for _, r := range records {
		t.Row(strconv.Itoa(r.ID), r.Name, strconv.Itoa(r.Age), r.Email, r.Course)
	}
	return t.Render()
}

// compactLine is the one-line form of a record.
func compactLine(r record.Record) string {
	return fmt.Sprintf("#%d %s (%d) %s, %s", r.ID, r.Name, r.Age, r.Email, r.Course)
}

// writeRecords prints records as a table or compact lines, or a notice when
// there are none.
func writeRecords(w io.Writer, records []record.Record, compact bool) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No students found.")
		return
	}
	if compact {
		for _, r := range records {
			fmt.Fprintln(w, compactLine(r))
		}
		return
	}
	fmt.Fprintln(w, renderTable(records))
}
