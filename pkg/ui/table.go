package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// DefaultMaxWidth caps a column that does not set MaxWidth.
const DefaultMaxWidth = 40

// Column describes one table column. Cells wider than MaxWidth are
// truncated with an ellipsis.
type Column struct {
	Header   string
	MaxWidth int
}

// Table accumulates rows and renders them as aligned text.
type Table struct {
	Columns []Column
	Rows    [][]string
}

func NewTable(headers ...string) *Table {
	cols := make([]Column, len(headers))
	for i, h := range headers {
		cols[i] = Column{Header: h}
	}
	return &Table{Columns: cols}
}

// AddRow appends cells. Missing cells render empty and extra cells are dropped.
func (t *Table) AddRow(cells ...string) {
	row := make([]string, len(t.Columns))
	for i := range row {
		if i < len(cells) {
			row[i] = truncate(flatten(cells[i]), t.Columns[i].maxWidth())
		}
	}
	t.Rows = append(t.Rows, row)
}

func (t *Table) Render() string {
	if len(t.Columns) == 0 {
		return ""
	}

	widths := make([]int, len(t.Columns))
	for i, c := range t.Columns {
		widths[i] = lipgloss.Width(c.Header)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	var b strings.Builder

	headers := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		headers[i] = StyleTableHeader.Render(pad(c.Header, widths[i]))
	}
	b.WriteString(strings.Join(headers, "  "))
	b.WriteString("\n")

	total := 2 * (len(widths) - 1)
	for _, w := range widths {
		total += w
	}
	b.WriteString(StyleTableBorder.Render(strings.Repeat("─", total)))
	b.WriteString("\n")

	for r, row := range t.Rows {
		style := StyleTableRow
		if r%2 == 1 {
			style = StyleTableRowAlt
		}
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = style.Render(pad(cell, widths[i]))
		}
		b.WriteString(strings.Join(cells, "  "))
		b.WriteString("\n")
	}

	return b.String()
}

// RenderKeyValue renders one "key: value" line with a muted key.
func RenderKeyValue(key, value string) string {
	return StyleMuted.Render(key+":") + " " + value
}

func (c Column) maxWidth() int {
	if c.MaxWidth > 0 {
		return c.MaxWidth
	}
	return DefaultMaxWidth
}

func pad(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

func flatten(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
