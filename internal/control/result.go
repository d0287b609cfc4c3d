// Package control builds conditional (cond) and multi-branch (match)
// expressions on top of the Var core.
//
// Both builders return a Result: a tagged union telling the caller whether
// the expression yields a UI fragment or a plain value, so callers never
// need to inspect node types themselves.
package control

import (
	"rxvar/internal/component"
	"rxvar/internal/vars"
)

// ResultKind discriminates Result.
type ResultKind uint8

const (
	// ResultExpr is a plain value-producing expression.
	ResultExpr ResultKind = iota
	// ResultComponent is a UI-fragment-producing expression.
	ResultComponent
)

func (k ResultKind) String() string {
	switch k {
	case ResultExpr:
		return "expr"
	case ResultComponent:
		return "component"
	default:
		return "unknown"
	}
}

// Result is the output of Cond and Match.
type Result struct {
	kind ResultKind
	v    vars.Var
}

func newResult(v vars.Var) Result {
	if component.IsComponentLike(v) {
		return Result{kind: ResultComponent, v: v}
	}
	return Result{kind: ResultExpr, v: v}
}

// Kind reports which capability the result carries.
func (r Result) Kind() ResultKind { return r.kind }

// Var returns the expression node; always set for successful results.
func (r Result) Var() vars.Var { return r.v }

// Component returns the result as a UI fragment, ok=false for plain
// expressions.
func (r Result) Component() (component.Component, bool) {
	if r.kind != ResultComponent {
		return nil, false
	}
	return component.FromVar(r.v)
}

// String returns the rendered expression.
func (r Result) String() string {
	if r.v == nil {
		return ""
	}
	return r.v.String()
}
