package result

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

var (
	// ErrInvalidResult indicates malformed JSON or an envelope that does not
	// match the shape required for its type.
	ErrInvalidResult = errors.New("invalid result")

	// ErrUnknownType indicates an envelope whose type has no Result case.
	ErrUnknownType = errors.New("unknown result type")
)

//go:embed envelope.schema.json
var envelopeSchema []byte

const envelopeSchemaURL = "schema://result-envelope.json"

var compileEnvelope = sync.OnceValues(func() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(envelopeSchema))
	if err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource(envelopeSchemaURL, doc); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	return c.Compile(envelopeSchemaURL)
})

// Envelope types emitted by the execution step. string and number both
// become Other.
const (
	typePlot      = "plot"
	typeDataFrame = "dataframe"
	typeString    = "string"
	typeNumber    = "number"
)

type envelope struct {
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value"`
}

// splitFrame is pandas' "split" orientation.
type splitFrame struct {
	Columns []any   `json:"columns"`
	Index   []any   `json:"index,omitempty"`
	Data    [][]any `json:"data"`
}

// Parse decodes a {"type": ..., "value": ...} envelope into a Result. Unknown
// types fail with ErrUnknownType; everything else that is wrong fails with
// ErrInvalidResult.
func Parse(data []byte) (Result, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResult, err)
	}

	switch env.Type {
	case typePlot, typeDataFrame, typeString, typeNumber:
	case "":
		return nil, fmt.Errorf("%w: missing type", ErrInvalidResult)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, env.Type)
	}

	if err := validateEnvelope(data); err != nil {
		return nil, err
	}

	switch env.Type {
	case typePlot:
		var path string
		if err := json.Unmarshal(env.Value, &path); err != nil {
			return nil, fmt.Errorf("%w: plot: %v", ErrInvalidResult, err)
		}
		return Plot{Value: path}, nil

	case typeDataFrame:
		var f splitFrame
		if err := json.Unmarshal(env.Value, &f); err != nil {
			return nil, fmt.Errorf("%w: dataframe: %v", ErrInvalidResult, err)
		}
		return DataFrame{Value: f.table()}, nil

	default:
		var v any
		if err := json.Unmarshal(env.Value, &v); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidResult, env.Type, err)
		}
		return Other{Value: v}, nil
	}
}

func validateEnvelope(data []byte) error {
	schema, err := compileEnvelope()
	if err != nil {
		return fmt.Errorf("compile envelope schema: %w", err)
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidResult, err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidResult, err)
	}
	return nil
}

func (f splitFrame) table() Table {
	t := Table{
		Columns: make([]string, len(f.Columns)),
		Rows:    f.Data,
	}
	for i, c := range f.Columns {
		t.Columns[i] = fmt.Sprint(c)
	}
	if t.Rows == nil {
		t.Rows = [][]any{}
	}
	return t
}
