package vars

import (
	"fmt"

	"rxvar/internal/types"
	"rxvar/internal/vardata"
)

// FunctionVar is the capability shared by every callable node.
type FunctionVar interface {
	Var
	// Call validates args and builds a call-site node.
	Call(args ...any) (Var, error)
	// Partial validates args and returns a callable closing over them.
	// With no args the receiver itself is returned.
	Partial(args ...any) (FunctionVar, error)
	// Invoke applies args using the node's default convention: Call for
	// plain functions, Partial for builders.
	Invoke(args ...any) (Var, error)
	// IsBuilder reports whether Invoke performs partial application.
	IsBuilder() bool
	// Validators returns the unconsumed validator chain.
	Validators() Validators
	// ParamNames returns diagnostic names of the parameters still expected.
	ParamNames() []string
	// Name returns the diagnostic name ("" when unnamed).
	Name() string
}

// preCheck runs fn's validators over args left to right and returns the
// validators not consumed by them.
func preCheck(fn FunctionVar, args []any) (Validators, error) {
	vs := fn.Validators()
	names := fn.ParamNames()
	for i, arg := range args {
		if i >= len(vs) {
			break
		}
		if vs[i] == nil || vs[i](arg) {
			continue
		}
		e := &ArgumentTypeError{Function: fn.Name(), Index: i, Arg: printArg(arg)}
		if i < len(names) {
			e.Param = names[i]
		}
		return nil, e
	}
	return vs.Remaining(len(args)), nil
}

func printArg(arg any) string {
	if v, err := Lift(arg); err == nil {
		return v.String()
	}
	return fmt.Sprint(arg)
}

func callFunction(fn FunctionVar, args []any) (Var, error) {
	if _, err := preCheck(fn, args); err != nil {
		return nil, err
	}
	return NewCall(fn, args...)
}

var restArgs = New("...args", types.Any(), nil)

func partialFunction(fn FunctionVar, args []any) (FunctionVar, error) {
	if len(args) == 0 {
		return fn, nil
	}
	remaining, err := preCheck(fn, args)
	if err != nil {
		return nil, err
	}
	callArgs := make([]any, 0, len(args)+1)
	callArgs = append(callArgs, args...)
	callArgs = append(callArgs, restArgs)
	body, err := NewCall(fn, callArgs...)
	if err != nil {
		return nil, err
	}

	names := fn.ParamNames()
	if len(args) < len(names) {
		names = names[len(args):]
	} else {
		names = nil
	}
	ft := fn.Type()
	typ := types.Type{Kind: types.KindCallable}
	if ft.Kind == types.KindCallable && ft.Result != nil {
		res := *ft.Result
		typ.Result = &res
	}
	if ft.Kind == types.KindCallable && ft.Params != nil {
		if len(args) < len(ft.Params) {
			typ.Params = append([]types.Type{}, ft.Params[len(args):]...)
		} else {
			typ.Params = []types.Type{}
		}
	}
	return &ArgsFunction{
		args:       FunctionArgs{Rest: "args"},
		body:       body,
		validators: remaining,
		paramNames: names,
		name:       fn.Name(),
		builder:    fn.IsBuilder(),
		typ:        typ,
	}, nil
}

// AsFunction views v as a callable. Function nodes are returned as-is; any
// other node is wrapped so that it can be called, inheriting v's text, type
// and metadata.
func AsFunction(v Var) FunctionVar {
	if fn, ok := v.(FunctionVar); ok {
		return fn
	}
	typ := v.Type()
	if typ.Kind != types.KindCallable {
		typ = types.AnyCallable()
	}
	return &StringFunction{expr: v.String(), typ: typ, data: v.Data()}
}

// StringFunction is a callable given as script text, e.g. "JSON.stringify".
type StringFunction struct {
	expr string
	typ  types.Type
	data *vardata.VarData
}

// NewStringFunction wraps expr, which must evaluate to a callable. A typ that
// is not callable is replaced by the unknown callable signature.
func NewStringFunction(expr string, typ types.Type, data *vardata.VarData) *StringFunction {
	if typ.Kind != types.KindCallable {
		typ = types.AnyCallable()
	}
	return &StringFunction{expr: expr, typ: typ, data: data}
}

func (f *StringFunction) String() string         { return f.expr }
func (f *StringFunction) Type() types.Type       { return f.typ }
func (f *StringFunction) Data() *vardata.VarData { return f.data }
func (f *StringFunction) Kind() NodeKind         { return NodeStringFunction }
func (f *StringFunction) IsBuilder() bool        { return false }
func (f *StringFunction) Validators() Validators { return nil }
func (f *StringFunction) ParamNames() []string   { return nil }
func (f *StringFunction) Name() string           { return "" }

func (f *StringFunction) Call(args ...any) (Var, error)   { return callFunction(f, args) }
func (f *StringFunction) Invoke(args ...any) (Var, error) { return callFunction(f, args) }

func (f *StringFunction) Partial(args ...any) (FunctionVar, error) {
	return partialFunction(f, args)
}

// ArgsFunction is an arrow function defined by a parameter list and a body
// expression. The builder variant applies arguments partially on Invoke.
type ArgsFunction struct {
	cachedOp
	args           FunctionArgs
	body           Var
	validators     Validators
	paramNames     []string
	name           string
	explicitReturn bool
	builder        bool
	typ            types.Type
	data           *vardata.VarData
}

// FuncOption configures NewArgsFunction and NewArgsFunctionBuilder.
type FuncOption func(*funcOptions)

type funcOptions struct {
	rest           string
	validators     Validators
	name           string
	explicitReturn bool
	typ            *types.Type
	data           *vardata.VarData
}

// WithRest names the spread parameter collecting remaining arguments.
func WithRest(name string) FuncOption {
	return func(o *funcOptions) { o.rest = name }
}

// WithValidators sets the validator chain, one entry per parameter.
func WithValidators(vs ...Validator) FuncOption {
	return func(o *funcOptions) { o.validators = append(Validators(nil), vs...) }
}

// WithFunctionName sets the name used in diagnostics. It never reaches the
// emitted text.
func WithFunctionName(name string) FuncOption {
	return func(o *funcOptions) { o.name = name }
}

// WithExplicitReturn renders the body inside braces.
func WithExplicitReturn() FuncOption {
	return func(o *funcOptions) { o.explicitReturn = true }
}

// WithType overrides the inferred callable signature.
func WithType(t types.Type) FuncOption {
	return func(o *funcOptions) { o.typ = &t }
}

// WithData attaches extra imports/hooks to the function node.
func WithData(d *vardata.VarData) FuncOption {
	return func(o *funcOptions) { o.data = d }
}

// NewArgsFunction builds `((params) => body)`. body is lifted.
func NewArgsFunction(params []Param, body any, opts ...FuncOption) (*ArgsFunction, error) {
	return newArgsFunction(params, body, false, opts)
}

// NewArgsFunctionBuilder is NewArgsFunction whose Invoke partially applies.
func NewArgsFunctionBuilder(params []Param, body any, opts ...FuncOption) (*ArgsFunction, error) {
	return newArgsFunction(params, body, true, opts)
}

func newArgsFunction(params []Param, body any, builder bool, opts []FuncOption) (*ArgsFunction, error) {
	var o funcOptions
	for _, opt := range opts {
		opt(&o)
	}
	fa, err := newFunctionArgs(params, o.rest)
	if err != nil {
		return nil, err
	}
	bodyVar, err := Lift(body)
	if err != nil {
		return nil, fmt.Errorf("function body: %w", err)
	}
	var typ types.Type
	if o.typ != nil && o.typ.Kind == types.KindCallable {
		typ = *o.typ
	} else {
		ps := make([]types.Type, len(fa.Args))
		for i := range ps {
			ps[i] = types.Any()
		}
		typ = types.Callable(ps, bodyVar.Type())
	}
	return &ArgsFunction{
		args:           fa,
		body:           bodyVar,
		validators:     o.validators,
		paramNames:     fa.Names(),
		name:           o.name,
		explicitReturn: o.explicitReturn,
		builder:        builder,
		typ:            typ,
		data:           o.data,
	}, nil
}

func (f *ArgsFunction) String() string {
	return f.cachedText(func() string {
		body := f.body.String()
		if f.explicitReturn {
			body = "{" + body + "}"
		}
		return "((" + f.args.JS() + ") => " + body + ")"
	})
}

func (f *ArgsFunction) Data() *vardata.VarData {
	return f.cachedData(func() *vardata.VarData {
		return vardata.Merge(f.body.Data(), f.data)
	})
}

func (f *ArgsFunction) Type() types.Type { return f.typ }

func (f *ArgsFunction) Kind() NodeKind {
	if f.builder {
		return NodeArgsFunctionBuilder
	}
	return NodeArgsFunction
}

func (f *ArgsFunction) IsBuilder() bool        { return f.builder }
func (f *ArgsFunction) Validators() Validators { return f.validators.Remaining(0) }
func (f *ArgsFunction) ParamNames() []string   { return append([]string(nil), f.paramNames...) }
func (f *ArgsFunction) Name() string           { return f.name }

// Args returns the declared parameter list.
func (f *ArgsFunction) Args() FunctionArgs { return f.args }

// Body returns the body expression.
func (f *ArgsFunction) Body() Var { return f.body }

func (f *ArgsFunction) Call(args ...any) (Var, error) { return callFunction(f, args) }

func (f *ArgsFunction) Partial(args ...any) (FunctionVar, error) {
	return partialFunction(f, args)
}

func (f *ArgsFunction) Invoke(args ...any) (Var, error) {
	if f.builder {
		return f.Partial(args...)
	}
	return f.Call(args...)
}
