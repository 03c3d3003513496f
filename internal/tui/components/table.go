// Package components provides reusable TUI components.
package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Column defines a table column.
type Column struct {
	Title string
	Width int
	Align lipgloss.Position
}

// Table renders a fixed set of rows under a header. It has no selection state;
// the planner shows at most a handful of rows.
type Table struct {
	columns []Column
	rows    [][]string
	footer  []string

	headerStyle lipgloss.Style
	rowStyle    lipgloss.Style
	rowAltStyle lipgloss.Style
	footerStyle lipgloss.Style
	borderStyle lipgloss.Style
}

// NewTable creates a new table with the given columns.
func NewTable(columns []Column) *Table {
	return &Table{
		columns:     columns,
		headerStyle: lipgloss.NewStyle().Bold(true).Foreground(focusColor),
		rowStyle:    lipgloss.NewStyle().Foreground(valueColor),
		rowAltStyle: lipgloss.NewStyle().Foreground(labelColor),
		footerStyle: lipgloss.NewStyle().Bold(true).Foreground(valueColor),
		borderStyle: lipgloss.NewStyle().Foreground(labelColor),
	}
}

// SetRows sets the table data.
func (t *Table) SetRows(rows [][]string) {
	t.rows = rows
}

// SetFooter sets a totals row rendered below a separator.
func (t *Table) SetFooter(cells []string) {
	t.footer = cells
}

// SetStyles sets the table styles.
func (t *Table) SetStyles(header, row, rowAlt, footer, border lipgloss.Style) {
	t.headerStyle = header
	t.rowStyle = row
	t.rowAltStyle = rowAlt
	t.footerStyle = footer
	t.borderStyle = border
}

// Width returns the rendered width of a row.
func (t *Table) Width() int {
	if len(t.columns) == 0 {
		return 0
	}
	w := 2 + 3*(len(t.columns)-1)
	for _, col := range t.columns {
		w += col.Width
	}
	return w
}

// Render renders the table.
func (t *Table) Render() string {
	var b strings.Builder
	sep := t.borderStyle.Render(strings.Repeat("─", t.Width()))

	b.WriteString(t.renderRow(t.headers(), t.headerStyle))
	b.WriteString("\n")
	b.WriteString(sep)

	for i, row := range t.rows {
		style := t.rowStyle
		if i%2 == 1 {
			style = t.rowAltStyle
		}
		b.WriteString("\n")
		b.WriteString(t.renderRow(row, style))
	}

	if t.footer != nil {
		b.WriteString("\n")
		b.WriteString(sep)
		b.WriteString("\n")
		b.WriteString(t.renderRow(t.footer, t.footerStyle))
	}

	return b.String()
}

func (t *Table) headers() []string {
	headers := make([]string, len(t.columns))
	for i, col := range t.columns {
		headers[i] = col.Title
	}
	return headers
}

func (t *Table) renderRow(cells []string, style lipgloss.Style) string {
	parts := make([]string, 0, len(t.columns))

	for i, col := range t.columns {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		parts = append(parts, style.Render(fitCell(cell, col.Width, col.Align)))
	}

	return " " + strings.Join(parts, t.borderStyle.Render(" │ ")) + " "
}

// fitCell truncates or pads cell to exactly width display cells.
func fitCell(cell string, width int, align lipgloss.Position) string {
	if width <= 0 {
		return ""
	}

	if lipgloss.Width(cell) > width {
		runes := []rune(cell)
		for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
			runes = runes[:len(runes)-1]
		}
		return string(runes) + "…"
	}

	pad := width - lipgloss.Width(cell)
	switch align {
	case lipgloss.Right:
		return strings.Repeat(" ", pad) + cell
	case lipgloss.Center:
		left := pad / 2
		return strings.Repeat(" ", left) + cell + strings.Repeat(" ", pad-left)
	default:
		return cell + strings.Repeat(" ", pad)
	}
}

// Empty returns true if the table has no rows.
func (t *Table) Empty() bool {
	return len(t.rows) == 0
}

// RowCount returns the number of rows.
func (t *Table) RowCount() int {
	return len(t.rows)
}
