package manifest

import (
	"context"
	"fmt"
	"sort"

	"rxvar/internal/component"
	"rxvar/internal/control"
	"rxvar/internal/diag"
	"rxvar/internal/render"
	"rxvar/internal/trace"
	"rxvar/internal/types"
	"rxvar/internal/vars"
)

var builtins = map[string]*vars.StringFunction{
	"JSON.stringify": vars.JSONStringify,
	"Array.isArray":  vars.ArrayIsArray,
	"toString":       vars.PrototypeToString,
}

// Build turns every entry into a named expression. Entry failures are
// recorded in bag under the entry name and the entry is skipped, so one bad
// entry does not hide problems in the others.
func Build(ctx context.Context, m *Manifest, bag *diag.Bag) []render.Named {
	ctx, span := trace.Start(ctx, trace.ScopePhase, "build")
	defer span.End("")

	out := make([]render.Named, 0, len(m.Entries))
	for _, e := range m.Entries {
		v, err := buildEntry(ctx, e)
		if err != nil {
			bag.AddError(e.Name, err)
			continue
		}
		out = append(out, render.Named{Name: e.Name, Var: v})
	}
	return out
}

func buildEntry(ctx context.Context, e Entry) (vars.Var, error) {
	_, span := trace.Start(ctx, trace.ScopeEntry, "entry:"+e.Name)
	defer span.End(e.Kind)

	switch e.Kind {
	case KindLiteral:
		if e.Value == nil {
			return nil, missing(e, "value")
		}
		val, err := operand(e.Value)
		if err != nil {
			return nil, err
		}
		return vars.Lift(val)

	case KindCond:
		if e.Cond == nil {
			return nil, missing(e, "cond")
		}
		if e.Then == nil {
			return nil, missing(e, "then")
		}
		ops, err := operands(e.Cond, e.Then, e.Else)
		if err != nil {
			return nil, err
		}
		r, err := control.Cond(ops[0], ops[1], ops[2])
		if err != nil {
			return nil, err
		}
		return r.Var(), nil

	case KindMatch:
		if e.Subject == nil {
			return nil, missing(e, "subject")
		}
		return buildMatch(e)

	case KindCall:
		if e.Function == "" {
			return nil, missing(e, "function")
		}
		return buildCall(e)

	case KindColorMode:
		if e.Light == nil {
			return nil, missing(e, "light")
		}
		ops, err := operands(e.Light, e.Dark)
		if err != nil {
			return nil, err
		}
		r, err := control.ColorModeCond(ops[0], ops[1])
		if err != nil {
			return nil, err
		}
		return r.Var(), nil
	}
	return nil, &Error{code: diag.ManUnknownKind, Entry: e.Name, Msg: fmt.Sprintf("unknown kind %q", e.Kind)}
}

func missing(e Entry, field string) error {
	return &Error{code: diag.ManMissingField, Entry: e.Name, Msg: fmt.Sprintf("%s entries need %q", e.Kind, field)}
}

func buildMatch(e Entry) (vars.Var, error) {
	subject, err := operand(e.Subject)
	if err != nil {
		return nil, err
	}
	args := make([]any, 0, len(e.Cases)+1)
	for i, c := range e.Cases {
		values := make([]any, 0, len(c.When)+1)
		for _, w := range c.When {
			v, err := operand(w)
			if err != nil {
				return nil, fmt.Errorf("case %d: %w", i, err)
			}
			values = append(values, v)
		}
		if c.Then != nil {
			ret, err := operand(c.Then)
			if err != nil {
				return nil, fmt.Errorf("case %d: %w", i, err)
			}
			values = append(values, ret)
		}
		args = append(args, control.On(values...))
	}
	if e.Default != nil {
		def, err := operand(e.Default)
		if err != nil {
			return nil, err
		}
		args = append(args, def)
	}
	r, err := control.Match(subject, args...)
	if err != nil {
		return nil, err
	}
	return r.Var(), nil
}

func buildCall(e Entry) (vars.Var, error) {
	var fn vars.FunctionVar
	if b, ok := builtins[e.Function]; ok {
		fn = b
	} else {
		typ := types.AnyCallable()
		if e.Returns != "" {
			res, err := types.Parse(e.Returns)
			if err != nil {
				return nil, &Error{code: diag.ManDecodeError, Entry: e.Name, Msg: err.Error()}
			}
			typ.Result = &res
		}
		fn = vars.NewStringFunction(e.Function, typ, nil)
	}
	args := make([]any, len(e.Args))
	for i, a := range e.Args {
		v, err := operand(a)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		args[i] = v
	}
	return fn.Call(args...)
}

func operands(raw ...any) ([]any, error) {
	out := make([]any, len(raw))
	for i, r := range raw {
		v, err := operand(r)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// operand converts a decoded TOML value into a host value for the lifter.
// Two table shapes are special:
//
//	{ var = "state.count", type = "int" }     an expression reference
//	{ component = "Box", lib = "...", props = {...}, children = [...] }
//
// Every other table is an object literal.
func operand(raw any) (any, error) {
	switch v := raw.(type) {
	case map[string]any:
		if expr, ok := v["var"]; ok {
			return varRef(expr, v)
		}
		if tag, ok := v["component"]; ok {
			return element(tag, v)
		}
		out := make(map[string]any, len(v))
		for k, val := range v {
			conv, err := operand(val)
			if err != nil {
				return nil, fmt.Errorf("key %s: %w", k, err)
			}
			out[k] = conv
		}
		return out, nil
	case []map[string]any:
		out := make([]any, len(v))
		for i, val := range v {
			conv, err := operand(val)
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}
			out[i] = conv
		}
		return out, nil
	case []any:
		out := make([]any, len(v))
		for i, val := range v {
			conv, err := operand(val)
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}
			out[i] = conv
		}
		return out, nil
	default:
		return raw, nil
	}
}

func varRef(expr any, table map[string]any) (vars.Var, error) {
	text, ok := expr.(string)
	if !ok || text == "" {
		return nil, &vars.VarValueError{Msg: "var reference must be a non-empty string"}
	}
	typ := types.Any()
	if label, ok := table["type"]; ok {
		s, ok := label.(string)
		if !ok {
			return nil, &vars.VarTypeError{Msg: fmt.Sprintf("type of %s must be a string label, got %T", text, label)}
		}
		t, err := types.Parse(s)
		if err != nil {
			return nil, &vars.VarTypeError{Msg: err.Error()}
		}
		typ = t
	}
	return vars.New(text, typ, nil), nil
}

func element(tag any, table map[string]any) (*component.Element, error) {
	name, ok := tag.(string)
	if !ok {
		return nil, &vars.VarValueError{Msg: "component tag must be a string"}
	}
	lib, _ := table["lib"].(string)

	var children []any
	if raw, ok := table["children"]; ok {
		conv, err := operand(raw)
		if err != nil {
			return nil, fmt.Errorf("%s children: %w", name, err)
		}
		list, ok := conv.([]any)
		if !ok {
			return nil, &vars.VarValueError{Msg: name + " children must be an array"}
		}
		children = list
	}
	el, err := component.NewElement(name, lib, children...)
	if err != nil {
		return nil, err
	}

	props, _ := table["props"].(map[string]any)
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		val, err := operand(props[k])
		if err != nil {
			return nil, fmt.Errorf("%s prop %s: %w", name, k, err)
		}
		if el, err = el.WithProp(k, val); err != nil {
			return nil, err
		}
	}
	return el, nil
}
