// Package prompt provides renderable prompts for the generation invoker.
//
// A Prompt is anything that can produce its final instruction text. Prompts
// are immutable once built; the invoker only ever calls Render.
package prompt

import (
	"bytes"
	"errors"
	"fmt"
	"maps"
	"text/template"
)

// Sentinel errors for template operations. Callers should use errors.Is.
var (
	ErrTemplateParse  = errors.New("prompt: template parsing failed")
	ErrTemplateRender = errors.New("prompt: template rendering failed")
)

// Prompt renders to the final text sent to a generation backend.
type Prompt interface {
	Render() (string, error)
}

// Text is a literal prompt that renders to itself.
type Text string

// Render returns the text unchanged.
func (t Text) Render() (string, error) { return string(t), nil }

// Template is a text/template prompt bound to a fixed set of variables.
// Referencing a variable that was not supplied is a render error.
type Template struct {
	name string
	tpl  *template.Template
	vars map[string]any
}

// Interface compliance checks.
var (
	_ Prompt = Text("")
	_ Prompt = (*Template)(nil)
)

// NewTemplate parses text and binds vars. The vars map is copied.
func NewTemplate(name, text string, vars map[string]any) (*Template, error) {
	tpl, err := template.New(name).Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrTemplateParse, name, err)
	}
	return &Template{name: name, tpl: tpl, vars: maps.Clone(vars)}, nil
}

// Name returns the template name given at construction.
func (t *Template) Name() string { return t.name }

// With returns a copy of t with extra variables merged over the existing ones.
// The receiver is not modified.
func (t *Template) With(vars map[string]any) *Template {
	merged := maps.Clone(t.vars)
	if merged == nil {
		merged = make(map[string]any, len(vars))
	}
	maps.Copy(merged, vars)
	return &Template{name: t.name, tpl: t.tpl, vars: merged}
}

// Render executes the template against its bound variables.
func (t *Template) Render() (string, error) {
	vars := t.vars
	if vars == nil {
		vars = map[string]any{}
	}
	var buf bytes.Buffer
	if err := t.tpl.Execute(&buf, vars); err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrTemplateRender, t.name, err)
	}
	return buf.String(), nil
}
