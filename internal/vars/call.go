package vars

import (
	"fmt"
	"strings"

	"rxvar/internal/types"
	"rxvar/internal/vardata"
)

// CallVar is a call-site: a callable applied to a fixed argument list.
type CallVar struct {
	cachedOp
	fn   FunctionVar
	args []Var
	typ  types.Type
	data *vardata.VarData
}

// NewCall builds `(fn(args...))` without consulting fn's validators. Every
// argument is lifted. The semantic type is fn's declared return type.
func NewCall(fn FunctionVar, args ...any) (*CallVar, error) {
	if fn == nil {
		return nil, valueErrorf("cannot call a nil function")
	}
	lifted := make([]Var, len(args))
	for i, a := range args {
		v, err := Lift(a)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		lifted[i] = v
	}
	return &CallVar{fn: fn, args: lifted, typ: fn.Type().ReturnType()}, nil
}

// WithType returns a copy of the call-site with an explicit semantic type.
func (c *CallVar) WithType(t types.Type) *CallVar {
	return &CallVar{fn: c.fn, args: c.args, typ: t, data: c.data}
}

// WithData returns a copy of the call-site carrying extra metadata.
func (c *CallVar) WithData(d *vardata.VarData) *CallVar {
	return &CallVar{fn: c.fn, args: c.args, typ: c.typ, data: vardata.Merge(c.data, d)}
}

func (c *CallVar) String() string {
	return c.cachedText(func() string {
		parts := make([]string, len(c.args))
		for i, a := range c.args {
			parts[i] = a.String()
		}
		return "(" + c.fn.String() + "(" + strings.Join(parts, ", ") + "))"
	})
}

func (c *CallVar) Data() *vardata.VarData {
	return c.cachedData(func() *vardata.VarData {
		parts := make([]*vardata.VarData, 0, len(c.args)+2)
		parts = append(parts, c.fn.Data())
		for _, a := range c.args {
			parts = append(parts, a.Data())
		}
		parts = append(parts, c.data)
		return vardata.Merge(parts...)
	})
}

func (c *CallVar) Type() types.Type { return c.typ }
func (c *CallVar) Kind() NodeKind   { return NodeCall }

// Func returns the callee.
func (c *CallVar) Func() FunctionVar { return c.fn }

// Args returns the lifted arguments.
func (c *CallVar) Args() []Var { return append([]Var(nil), c.args...) }
