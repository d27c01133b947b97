package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abhisek/askframe/internal/result"
)

func TestRender_Table(t *testing.T) {
	r := New(WithStyle(false))
	got := r.Render(result.DataFrame{Value: result.Table{
		Columns: []string{"country", "gdp"},
		Rows:    [][]any{{"France", 2.8}, {"Japan", 4.2}},
	}})

	want := strings.Join([]string{
		"country │ gdp",
		"────────┼────",
		"France  │ 2.8",
		"Japan   │ 4.2",
	}, "\n")
	assert.Equal(t, want, got)
}

func TestRender_TableRaggedAndTruncated(t *testing.T) {
	r := New(WithStyle(false), WithMaxRows(2))
	got := r.Render(result.DataFrame{Value: result.Table{
		Columns: []string{"a"},
		Rows:    [][]any{{1.0, "x"}, {nil}, {3.0}, {4.0}},
	}})

	want := strings.Join([]string{
		"a │",
		"──┼──",
		"1 │ x",
		"  │",
		"… 2 more rows",
	}, "\n")
	assert.Equal(t, want, got)
}

func TestRender_EmptyTable(t *testing.T) {
	got := New(WithStyle(false)).Render(result.DataFrame{})
	assert.Equal(t, "(empty table)", got)
}

func TestRender_PlotAndOther(t *testing.T) {
	r := New(WithStyle(false))
	assert.Equal(t, "Plot saved to exports/charts/temp_chart.png",
		r.Render(result.Plot{Value: "exports/charts/temp_chart.png"}))
	assert.Equal(t, "19294482071552", r.Render(result.Other{Value: 19294482071552.0}))
	assert.Equal(t, "hello", r.Render(result.Other{Value: "hello"}))
}

func TestRender_StyledKeepsContent(t *testing.T) {
	got := New().Render(result.Other{Value: "hello"})
	assert.Contains(t, got, "hello")
}

type upperFormatter struct{ result.Passthrough }

func (upperFormatter) FormatOther(o result.Other) any {
	return strings.ToUpper(o.Value.(string))
}

func TestRender_CustomFormatter(t *testing.T) {
	r := New(WithStyle(false), WithFormatter(upperFormatter{}))
	assert.Equal(t, "HELLO", r.Render(result.Other{Value: "hello"}))
	assert.Equal(t, "Plot saved to a.png", r.Render(result.Plot{Value: "a.png"}))
}
