package result

import "fmt"

// Formatter handles each Result case. Implementations return the payload a
// presentation surface should show.
type Formatter interface {
	FormatPlot(Plot) any
	FormatDataFrame(DataFrame) Table
	FormatOther(Other) any
}

// Format routes r to the matching Formatter method. It looks only at which
// case r is, never at the payload. r must be a non-nil Plot, DataFrame or
// Other value; pointers to them are not Results for dispatch purposes.
func Format(f Formatter, r Result) any {
	switch r := r.(type) {
	case Plot:
		return f.FormatPlot(r)
	case DataFrame:
		return f.FormatDataFrame(r)
	case Other:
		return f.FormatOther(r)
	default:
		panic(fmt.Sprintf("result: unhandled result %T", r))
	}
}

// Passthrough returns every payload unchanged.
type Passthrough struct{}

func (Passthrough) FormatPlot(p Plot) any { return p.Value }

func (Passthrough) FormatDataFrame(d DataFrame) Table { return d.Value }

func (Passthrough) FormatOther(o Other) any { return o.Value }

var _ Formatter = Passthrough{}
