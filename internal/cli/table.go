package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Table formats rows into aligned columns. Cell widths are measured in
// terminal cells, so cells may carry ANSI styled swatches.
type Table struct {
	headers []string
	rows    [][]string
	padding int
}

// NewTable creates a new table with the given headers. A table without
// headers renders rows only.
func NewTable(headers []string) *Table {
	return &Table{
		headers: headers,
		rows:    make([][]string, 0),
		padding: 2, // 2 spaces between columns
	}
}

// AddRow adds a row, padding or truncating it to the column count.
func (t *Table) AddRow(row ...string) {
	cols := t.columns()
	if cols > 0 && len(row) != cols {
		fixed := make([]string, cols)
		copy(fixed, row)
		row = fixed
	}
	t.rows = append(t.rows, row)
}

func (t *Table) columns() int {
	if len(t.headers) > 0 {
		return len(t.headers)
	}
	if len(t.rows) > 0 {
		return len(t.rows[0])
	}
	return 0
}

// Render formats and returns the table as a string.
func (t *Table) Render() string {
	cols := t.columns()
	if cols == 0 {
		return ""
	}

	widths := make([]int, cols)
	for i, h := range t.headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	var sb strings.Builder
	sep := strings.Repeat(" ", t.padding)

	writeRow := func(cells []string) {
		parts := make([]string, cols)
		for i := range cols {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			// The last column is not padded, to avoid trailing spaces.
			if i == cols-1 {
				parts[i] = cell
			} else {
				parts[i] = padRight(cell, widths[i])
			}
		}
		sb.WriteString(strings.TrimRight(strings.Join(parts, sep), " "))
		sb.WriteString("\n")
	}

	if len(t.headers) > 0 {
		writeRow(t.headers)
		rule := make([]string, cols)
		for i, w := range widths {
			rule[i] = strings.Repeat("-", w)
		}
		writeRow(rule)
	}
	for _, row := range t.rows {
		writeRow(row)
	}

	return sb.String()
}

// padRight pads s with spaces to width terminal cells.
func padRight(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}
