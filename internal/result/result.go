// Package result models the tagged values produced by an execution step and
// routes them to a formatting strategy.
package result

// Kind is the discriminator of a Result.
type Kind string

const (
	KindPlot      Kind = "plot"
	KindDataFrame Kind = "dataframe"
	KindOther     Kind = "other"
)

// Result is one of Plot, DataFrame or Other. The set is closed: no type
// outside this package can satisfy it.
type Result interface {
	Kind() Kind
	isResult()
}

// Plot is a chart produced by the execution step. Value is usually the path
// of the saved image.
type Plot struct {
	Value any
}

// DataFrame is a tabular result.
type DataFrame struct {
	Value Table
}

// Other is any result that is neither a plot nor a table.
type Other struct {
	Value any
}

func (Plot) Kind() Kind      { return KindPlot }
func (DataFrame) Kind() Kind { return KindDataFrame }
func (Other) Kind() Kind     { return KindOther }

func (Plot) isResult()      {}
func (DataFrame) isResult() {}
func (Other) isResult()     {}

// Table is a column-labelled grid of cells. Rows may be ragged; readers must
// not assume len(row) == len(Columns).
type Table struct {
	Columns []string
	Rows    [][]any
}

// Len returns the number of rows.
func (t Table) Len() int {
	return len(t.Rows)
}
