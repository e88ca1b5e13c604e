package stats

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Column describes one column of the history table.
type Column struct {
	Title string
	// Width is the starting width for the interactive table.
	Width int
	Right bool
}

// Columns is the layout of the per-set history table, matching Rows.
var Columns = []Column{
	{Title: "Set", Width: 20},
	{Title: "Reviews", Width: 8, Right: true},
	{Title: "Completed", Width: 10, Right: true},
	{Title: "Cards seen", Width: 11, Right: true},
	{Title: "Last reviewed", Width: 17},
}

// layoutTable pads every cell to the widest display width in its column.
// Missing cells render empty; extra cells are ignored.
func layoutTable(columns []Column, rows [][]string) []string {
	if len(columns) == 0 {
		return nil
	}
	widths := make([]int, len(columns))
	titles := make([]string, len(columns))
	for i, col := range columns {
		titles[i] = col.Title
		widths[i] = runewidth.StringWidth(col.Title)
	}
	for _, row := range rows {
		for i := 0; i < len(columns) && i < len(row); i++ {
			widths[i] = max(widths[i], runewidth.StringWidth(row[i]))
		}
	}

	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, layoutRow(columns, widths, titles))
	for _, row := range rows {
		lines = append(lines, layoutRow(columns, widths, row))
	}
	return lines
}

func layoutRow(columns []Column, widths []int, cells []string) string {
	parts := make([]string, len(columns))
	for i, col := range columns {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		if col.Right {
			parts[i] = runewidth.FillLeft(cell, widths[i])
		} else {
			parts[i] = runewidth.FillRight(cell, widths[i])
		}
	}
	return strings.TrimRight(strings.Join(parts, "  "), " ")
}
