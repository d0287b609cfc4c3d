package vars

import "strings"

// Param is one formal parameter of an arrow function.
type Param interface {
	// JS renders the parameter as it appears in the parameter list.
	JS() string
}

// ParamName is a plain named parameter.
type ParamName string

func (p ParamName) JS() string { return string(p) }

// RestParam marks the spread parameter. It may appear anywhere in the list
// handed to NewArgsFunction; rendering always moves it last.
type RestParam string

func (p RestParam) JS() string { return "..." + string(p) }

// DestructuredArg is an object-destructuring parameter: {a, b, ...rest}.
type DestructuredArg struct {
	Fields []string
	Rest   string
}

func (d DestructuredArg) JS() string {
	inner := strings.Join(d.Fields, ", ")
	if d.Rest != "" {
		inner += ", ..." + d.Rest
	}
	return "{" + inner + "}"
}

// Names converts plain names into a parameter list.
func Names(names ...string) []Param {
	out := make([]Param, len(names))
	for i, n := range names {
		out[i] = ParamName(n)
	}
	return out
}

// FunctionArgs is a declared parameter list plus an optional rest parameter
// name. Rest, when set, is always rendered after every entry of Args.
type FunctionArgs struct {
	Args []Param
	Rest string
}

// newFunctionArgs splits RestParam entries out of params.
func newFunctionArgs(params []Param, rest string) (FunctionArgs, error) {
	fa := FunctionArgs{Rest: rest}
	for _, p := range params {
		switch p := p.(type) {
		case nil:
			return FunctionArgs{}, valueErrorf("function parameters must not be nil")
		case RestParam:
			if fa.Rest != "" {
				return FunctionArgs{}, valueErrorf("function can only have one rest parameter, got %q and %q", fa.Rest, string(p))
			}
			fa.Rest = string(p)
		default:
			fa.Args = append(fa.Args, p)
		}
	}
	return fa, nil
}

// JS renders the parameter list without surrounding parentheses.
func (fa FunctionArgs) JS() string {
	parts := make([]string, 0, len(fa.Args)+1)
	for _, a := range fa.Args {
		parts = append(parts, a.JS())
	}
	if fa.Rest != "" {
		parts = append(parts, "..."+fa.Rest)
	}
	return strings.Join(parts, ", ")
}

// Names returns the diagnostic name of each formal parameter in order,
// excluding the rest parameter.
func (fa FunctionArgs) Names() []string {
	out := make([]string, len(fa.Args))
	for i, a := range fa.Args {
		out[i] = a.JS()
	}
	return out
}

// Validator checks a single argument before it is applied.
type Validator func(arg any) bool

// Validators is an ordered chain, one entry per formal parameter.
type Validators []Validator

// Remaining returns the validators left after applying n arguments. The
// result never aliases the receiver.
func (vs Validators) Remaining(n int) Validators {
	if n < 0 {
		n = 0
	}
	if n >= len(vs) {
		return nil
	}
	out := make(Validators, len(vs)-n)
	copy(out, vs[n:])
	return out
}
