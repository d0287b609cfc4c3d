// Package component models the UI-fragment capability the expression core
// needs: something that can be rendered as a jsx call and lifted into a Var.
// The full component tree lives outside this module.
package component

import (
	"fmt"
	"sort"
	"strings"

	"rxvar/internal/vardata"
	"rxvar/internal/vars"
)

// Component is the capability marker for UI-fragment producers.
type Component interface {
	vars.VarConvertible
	// Tag is the jsx element name.
	Tag() string
	// Render returns the jsx expression text.
	Render() string
}

// IsComponentLike is the single predicate deciding whether x renders a UI
// fragment: a Component value, or a Var whose semantic type is a component.
func IsComponentLike(x any) bool {
	if vars.IsNil(x) {
		return false
	}
	switch v := x.(type) {
	case nil:
		return false
	case Component:
		return true
	case vars.Var:
		return v.Type().IsComponent()
	default:
		return false
	}
}

var jsxData = &vardata.VarData{
	Imports: []vardata.LibImports{{Lib: "@emotion/react", Vars: []vardata.ImportVar{{Tag: "jsx"}}}},
}

// Prop is a named element property.
type Prop struct {
	Name  string
	Value vars.Var
}

// Element is an immutable jsx element: tag, props and children.
type Element struct {
	tag      string
	lib      string
	props    []Prop
	children []vars.Var
	v        vars.Var
}

// NewElement builds an element imported from lib ("" for intrinsic html
// tags). Children are lifted; components nest through their Var form.
func NewElement(tag, lib string, children ...any) (*Element, error) {
	if tag == "" {
		return nil, &vars.VarValueError{Msg: "component tag must be set"}
	}
	kids, err := vars.LiftAll(children...)
	if err != nil {
		return nil, fmt.Errorf("%s children: %w", tag, err)
	}
	return newElement(tag, lib, nil, kids), nil
}

func newElement(tag, lib string, props []Prop, children []vars.Var) *Element {
	e := &Element{tag: tag, lib: lib, props: props, children: children}
	e.v = e.build()
	return e
}

// Fragment returns the empty fragment placeholder.
func Fragment() *Element {
	return newElement("Fragment", "react", nil, nil)
}

// WithProp returns a copy of e with name set to value. Props render sorted
// by name.
func (e *Element) WithProp(name string, value any) (*Element, error) {
	v, err := vars.Lift(value)
	if err != nil {
		return nil, fmt.Errorf("%s prop %s: %w", e.tag, name, err)
	}
	props := make([]Prop, 0, len(e.props)+1)
	for _, p := range e.props {
		if p.Name != name {
			props = append(props, p)
		}
	}
	props = append(props, Prop{Name: name, Value: v})
	sort.Slice(props, func(i, j int) bool { return props[i].Name < props[j].Name })
	return newElement(e.tag, e.lib, props, e.children), nil
}

func (e *Element) Tag() string     { return e.tag }
func (e *Element) Render() string  { return e.v.String() }
func (e *Element) ToVar() vars.Var { return e.v }
func (e *Element) Children() int   { return len(e.children) }

func (e *Element) build() vars.Var {
	tagExpr := e.tag
	if e.lib == "" {
		tagExpr = `"` + e.tag + `"`
	}
	props := make([]string, len(e.props))
	for i, p := range e.props {
		props[i] = p.Name + ":" + p.Value.String()
	}
	parts := []string{tagExpr, "{" + strings.Join(props, ",") + "}"}
	for _, c := range e.children {
		parts = append(parts, c.String())
	}

	data := []*vardata.VarData{jsxData}
	if e.lib != "" {
		data = append(data, vardata.Imports(e.lib, e.tag))
	}
	for _, p := range e.props {
		data = append(data, p.Value.Data())
	}
	for _, c := range e.children {
		data = append(data, c.Data())
	}
	return vars.NewComponent("jsx("+strings.Join(parts, ", ")+")", e.tag, vardata.Merge(data...))
}

// varComponent wraps a component-typed expression so it can be used where a
// Component is expected.
type varComponent struct {
	v vars.Var
}

// FromVar views a component-typed Var as a Component.
func FromVar(v vars.Var) (Component, bool) {
	if v == nil || !v.Type().IsComponent() {
		return nil, false
	}
	if c, ok := v.(Component); ok {
		return c, true
	}
	return varComponent{v: v}, true
}

func (c varComponent) Tag() string     { return c.v.Type().Name }
func (c varComponent) Render() string  { return "{" + c.v.String() + "}" }
func (c varComponent) ToVar() vars.Var { return c.v }
