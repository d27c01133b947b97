// Package render turns results into text for a terminal.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/askframe/internal/result"
)

// Renderer presents results. It asks its Formatter for the payload and only
// then applies styling, so a custom Formatter can rewrite what is shown.
type Renderer struct {
	formatter result.Formatter
	maxRows   int
	styled    bool
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithFormatter replaces the default result.Passthrough formatter.
func WithFormatter(f result.Formatter) Option {
	return func(r *Renderer) { r.formatter = f }
}

// WithMaxRows truncates tables to n rows. n <= 0 shows every row.
func WithMaxRows(n int) Option {
	return func(r *Renderer) { r.maxRows = n }
}

// WithStyle turns ANSI styling on or off. Styling is on by default.
func WithStyle(on bool) Option {
	return func(r *Renderer) { r.styled = on }
}

// New creates a Renderer.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		formatter: result.Passthrough{},
		styled:    true,
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Render formats res and returns its terminal representation.
func (r *Renderer) Render(res result.Result) string {
	payload := result.Format(r.formatter, res)

	switch res.Kind() {
	case result.KindPlot:
		return r.paint(defaultTheme.label, "Plot saved to") + " " + r.paint(defaultTheme.value, formatCell(payload))
	case result.KindDataFrame:
		tbl, _ := payload.(result.Table)
		return r.table(tbl)
	default:
		return r.paint(defaultTheme.cell, formatCell(payload))
	}
}

func (r *Renderer) table(t result.Table) string {
	rows := t.Rows
	hidden := 0
	if r.maxRows > 0 && t.Len() > r.maxRows {
		hidden = t.Len() - r.maxRows
		rows = rows[:r.maxRows]
	}

	ncols := len(t.Columns)
	for _, row := range rows {
		ncols = max(ncols, len(row))
	}
	if ncols == 0 {
		return r.paint(defaultTheme.hint, "(empty table)")
	}

	header := make([]string, ncols)
	copy(header, t.Columns)

	cells := make([][]string, len(rows))
	for i, row := range rows {
		cells[i] = make([]string, ncols)
		for j, v := range row {
			cells[i][j] = formatCell(v)
		}
	}

	widths := make([]int, ncols)
	for j, h := range header {
		widths[j] = lipgloss.Width(h)
	}
	for _, row := range cells {
		for j, c := range row {
			widths[j] = max(widths[j], lipgloss.Width(c))
		}
	}

	var b strings.Builder
	b.WriteString(r.line(header, widths, defaultTheme.header))
	b.WriteByte('\n')

	rule := make([]string, ncols)
	for j, w := range widths {
		rule[j] = strings.Repeat("─", w)
	}
	b.WriteString(r.paint(defaultTheme.rule, strings.Join(rule, "─┼─")))

	for _, row := range cells {
		b.WriteByte('\n')
		b.WriteString(r.line(row, widths, defaultTheme.cell))
	}

	if hidden > 0 {
		b.WriteByte('\n')
		b.WriteString(r.paint(defaultTheme.hint, fmt.Sprintf("… %d more rows", hidden)))
	}
	return b.String()
}

func (r *Renderer) line(cells []string, widths []int, style lipgloss.Style) string {
	parts := make([]string, len(cells))
	for j, c := range cells {
		pad := widths[j] - lipgloss.Width(c)
		parts[j] = r.paint(style, c+strings.Repeat(" ", pad))
	}
	return strings.TrimRight(strings.Join(parts, r.paint(defaultTheme.rule, " │ ")), " ")
}

func (r *Renderer) paint(style lipgloss.Style, s string) string {
	if !r.styled {
		return s
	}
	return style.Render(s)
}

// formatCell prints whole floats without a decimal point, since JSON numbers
// decode as float64.
func formatCell(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
