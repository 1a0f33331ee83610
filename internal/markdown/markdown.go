package markdown

import (
	"strings"
)

const minColumnWidth = 3

// CreateMarkdownTable renders rows as a GitHub flavoured markdown table. The
// first row is the header. Short rows are padded with empty cells and pipes
// inside cells are escaped.
func CreateMarkdownTable(rows [][]string) string {
	columns := 0
	for _, row := range rows {
		columns = max(columns, len(row))
	}

	widths := make([]int, columns)
	for i := range widths {
		widths[i] = minColumnWidth
	}

	escaped := make([][]string, len(rows))
	for r, row := range rows {
		escaped[r] = make([]string, columns)
		for c, cell := range row {
			escaped[r][c] = strings.ReplaceAll(cell, "|", "\\|")
			widths[c] = max(widths[c], len(escaped[r][c]))
		}
	}

	var b strings.Builder
	writeRow := func(cells []string) {
		for c, cell := range cells {
			b.WriteString("| ")
			b.WriteString(cell)
			b.WriteString(strings.Repeat(" ", widths[c]-len(cell)))
			b.WriteString(" ")
		}
		b.WriteString("|\n")
	}

	for r, row := range escaped {
		writeRow(row)
		if r == 0 {
			writeRow(dividers(widths))
		}
	}

	return strings.TrimSuffix(b.String(), "\n")
}

func dividers(widths []int) []string {
	cells := make([]string, len(widths))
	for i, w := range widths {
		cells[i] = strings.Repeat("-", w)
	}
	return cells
}
