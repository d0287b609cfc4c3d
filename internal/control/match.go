package control

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/mattn/go-runewidth"

	"rxvar/internal/component"
	"rxvar/internal/types"
	"rxvar/internal/vars"
)

// Case is one match arm: one or more patterns followed by the return value
// as the last element.
type Case struct {
	Values []any
}

// On builds a Case from patterns followed by the return value.
func On(values ...any) Case {
	return Case{Values: values}
}

func (c Case) patterns() []any { return c.Values[:len(c.Values)-1] }
func (c Case) ret() any        { return c.Values[len(c.Values)-1] }

// diagWidth bounds printed values in match diagnostics.
const diagWidth = 250

type categoryKind uint8

const (
	categoryComponent categoryKind = iota
	categoryVar
	categoryHost
)

// returnCategory is fixed by the first case and every other case must fit it.
type returnCategory struct {
	kind categoryKind
	host reflect.Type
}

func categoryOf(v any) returnCategory {
	switch {
	case component.IsComponentLike(v) && !isVar(v):
		return returnCategory{kind: categoryComponent}
	case isVar(v):
		return returnCategory{kind: categoryVar}
	default:
		return returnCategory{kind: categoryHost, host: reflect.TypeOf(v)}
	}
}

func isVar(v any) bool {
	_, ok := v.(vars.Var)
	return ok
}

func (c returnCategory) String() string {
	switch c.kind {
	case categoryComponent:
		return "Component"
	case categoryVar:
		return "Var"
	default:
		if c.host == nil {
			return "nil"
		}
		return c.host.String()
	}
}

func (c returnCategory) accepts(v any) bool {
	switch c.kind {
	case categoryComponent:
		return component.IsComponentLike(v)
	case categoryVar:
		return isVar(v)
	default:
		if vv, ok := v.(vars.Var); ok {
			if c.host == nil {
				return vv.Type().Kind == types.KindNull
			}
			return vv.Type().AssignableTo(types.FromHost(c.host))
		}
		rt := reflect.TypeOf(v)
		if c.host == nil || rt == nil {
			return c.host == rt
		}
		return rt.AssignableTo(c.host)
	}
}

// Match dispatches on subject. args holds Case values and optionally one
// trailing non-Case default:
//
//	Match(x, On(1, "one"), On(2, 3, "few"), "other")
//
// Validation runs before any node is built, in this order: at most one
// default; at least one case; well-formed cases; compatible return
// categories; and a default whenever a case returns a plain expression. When
// every case returns a component and no default is given, the default is an
// empty fragment.
func Match(subject any, args ...any) (Result, error) {
	nonCase := 0
	for _, a := range args {
		if _, ok := a.(Case); !ok {
			nonCase++
		}
	}
	if nonCase > 1 {
		return Result{}, &vars.VarValueError{Msg: "rx.match can only have one default case."}
	}
	if len(args) == 0 {
		return Result{}, &vars.VarValueError{Msg: "rx.match should have at least one case."}
	}

	var def any
	caseArgs := args
	if _, ok := args[len(args)-1].(Case); !ok {
		def = args[len(args)-1]
		caseArgs = args[:len(args)-1]
	}
	if len(caseArgs) == 0 {
		return Result{}, &vars.VarValueError{Msg: "rx.match should have at least one case."}
	}

	cases := make([]Case, len(caseArgs))
	for i, a := range caseArgs {
		c, ok := a.(Case)
		if !ok {
			return Result{}, &vars.VarValueError{
				Msg: "rx.match should have tuples of cases and a default case as the last argument.",
			}
		}
		if len(c.Values) < 2 {
			return Result{}, &vars.VarValueError{
				Msg: "A case tuple should have at least a match case element and a return value.",
			}
		}
		cases[i] = c
	}

	if err := validateReturnTypes(cases); err != nil {
		return Result{}, err
	}

	if def == nil {
		for _, c := range cases {
			if !component.IsComponentLike(c.ret()) {
				return Result{}, &vars.VarValueError{
					Msg: "For cases with return types as Vars, a default case must be provided",
				}
			}
		}
		def = component.Fragment()
	}

	return buildMatch(subject, cases, def)
}

func validateReturnTypes(cases []Case) error {
	cat := categoryOf(cases[0].ret())
	for i, c := range cases {
		ret := c.ret()
		if cat.accepts(ret) {
			continue
		}
		return &vars.MatchTypeError{
			Index:    i,
			Value:    summarize(ret),
			Actual:   describeType(ret),
			Expected: cat.String(),
		}
	}
	return nil
}

func summarize(v any) string {
	if vv, ok := v.(vars.Var); ok {
		return vv.String()
	}
	if c, ok := v.(component.Component); ok {
		return c.Render()
	}
	s := strings.Join(strings.Fields(fmt.Sprint(v)), " ")
	return runewidth.Truncate(s, diagWidth, " [...]")
}

func describeType(v any) string {
	if vv, ok := v.(vars.Var); ok {
		return vv.Type().String()
	}
	if v == nil {
		return "nil"
	}
	return reflect.TypeOf(v).String()
}

func buildMatch(subject any, cases []Case, def any) (Result, error) {
	subj, err := vars.Lift(subject)
	if err != nil {
		return Result{}, fmt.Errorf("match subject: %w", err)
	}
	lifted := make([]vars.MatchCase, len(cases))
	for i, c := range cases {
		pats, err := vars.LiftAll(c.patterns()...)
		if err != nil {
			return Result{}, fmt.Errorf("case %d pattern: %w", i, err)
		}
		ret, err := vars.Lift(c.ret())
		if err != nil {
			return Result{}, fmt.Errorf("case %d return: %w", i, err)
		}
		lifted[i] = vars.MatchCase{Patterns: pats, Return: ret}
	}
	defVar, err := vars.Lift(def)
	if err != nil {
		return Result{}, fmt.Errorf("match default: %w", err)
	}
	m, err := vars.NewMatch(subj, lifted, defVar)
	if err != nil {
		return Result{}, err
	}
	return newResult(m), nil
}
