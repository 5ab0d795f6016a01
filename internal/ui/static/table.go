// Package static provides non-interactive terminal output components.
package static

import (
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/raphi011/gitnav/internal/alias"
	"github.com/raphi011/gitnav/internal/ui/styles"
)

// NoHighlight disables row highlighting in RenderTable.
const NoHighlight = -1

// RenderTable creates a borderless table with aligned columns.
// The row at index highlight (0-based, headers excluded) is rendered with
// the current-entry style. The first column is muted.
func RenderTable(headers []string, rows [][]string, highlight int) string {
	if len(rows) == 0 {
		return ""
	}

	var output strings.Builder

	t := table.New().
		Headers(headers...).
		Rows(rows...).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderColumn(false).
		BorderRow(false).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return styles.HeaderStyle.PaddingRight(2)
			case row == highlight && col > 0:
				return styles.CurrentStyle.PaddingRight(2)
			case col == 0:
				return styles.MutedStyle.PaddingRight(2)
			}
			return lipgloss.NewStyle().PaddingRight(2)
		})

	output.WriteString(t.String())
	output.WriteString("\n")

	return output.String()
}

// HistoryHeaders are the column headers for HistoryRows.
var HistoryHeaders = []string{"#", "REF"}

// HistoryRows numbers history entries from 1, most recent first, the way
// numeric destinations address them.
func HistoryRows(entries []string) [][]string {
	rows := make([][]string, len(entries))
	for i, ref := range entries {
		rows[i] = []string{strconv.Itoa(i + 1), ref}
	}
	return rows
}

// AliasHeaders are the column headers for AliasRows.
var AliasHeaders = []string{"SCOPE", "NAME", "TARGET"}

// AliasRows renders one row per alias in the given order.
func AliasRows(aliases []alias.Alias) [][]string {
	rows := make([][]string, len(aliases))
	for i, a := range aliases {
		rows[i] = []string{a.Scope.String(), a.Name, a.Target}
	}
	return rows
}
