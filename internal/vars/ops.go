package vars

import (
	"rxvar/internal/types"
	"rxvar/internal/vardata"
)

// UnaryVar applies a prefix operator or a helper call to one operand.
type UnaryVar struct {
	cachedOp
	render  func(string) string
	operand Var
	typ     types.Type
	extra   *vardata.VarData
}

func (u *UnaryVar) String() string {
	return u.cachedText(func() string { return u.render(u.operand.String()) })
}

func (u *UnaryVar) Data() *vardata.VarData {
	return u.cachedData(func() *vardata.VarData { return vardata.Merge(u.operand.Data(), u.extra) })
}

func (u *UnaryVar) Type() types.Type { return u.typ }
func (u *UnaryVar) Kind() NodeKind   { return NodeUnary }

// BinaryVar applies an infix operator to two operands.
type BinaryVar struct {
	cachedOp
	op          string
	left, right Var
	typ         types.Type
}

func (b *BinaryVar) String() string {
	return b.cachedText(func() string {
		return "(" + b.left.String() + "?.valueOf?.() " + b.op + " " + b.right.String() + "?.valueOf?.())"
	})
}

func (b *BinaryVar) Data() *vardata.VarData {
	return b.cachedData(func() *vardata.VarData { return mergeData(b.left, b.right) })
}

func (b *BinaryVar) Type() types.Type { return b.typ }
func (b *BinaryVar) Kind() NodeKind   { return NodeBinary }

var isTrueData = vardata.Imports("$/utils/state", "isTrue")

// ToBool coerces v to a boolean-valued node. Boolean nodes are returned
// unchanged; everything else goes through the runtime truthiness helper.
func ToBool(v Var) Var {
	if v.Type().Kind == types.KindBool {
		return v
	}
	return &UnaryVar{
		render:  func(s string) string { return "isTrue(" + s + ")" },
		operand: v,
		typ:     types.Bool(),
		extra:   isTrueData,
	}
}

// Not negates the truthiness of v.
func Not(v Var) Var {
	b := ToBool(v)
	return &UnaryVar{
		render:  func(s string) string { return "!" + s },
		operand: b,
		typ:     types.Bool(),
	}
}

// Eq compares two values for strict equality of their primitive values.
func Eq(a, b Var) Var {
	return &BinaryVar{op: "===", left: a, right: b, typ: types.Bool()}
}

// Neq is the negation of Eq.
func Neq(a, b Var) Var {
	return &BinaryVar{op: "!==", left: a, right: b, typ: types.Bool()}
}

// TernaryVar selects between two expressions.
type TernaryVar struct {
	cachedOp
	cond, ifTrue, ifFalse Var
	typ                   types.Type
}

// Ternary builds `(cond ? ifTrue : ifFalse)`. cond is used as given; call
// ToBool first when it may not be boolean. The result type is the join of
// both branch types.
func Ternary(cond, ifTrue, ifFalse Var) *TernaryVar {
	return &TernaryVar{
		cond:    cond,
		ifTrue:  ifTrue,
		ifFalse: ifFalse,
		typ:     types.Join(ifTrue.Type(), ifFalse.Type()),
	}
}

func (t *TernaryVar) String() string {
	return t.cachedText(func() string {
		return "(" + t.cond.String() + " ? " + t.ifTrue.String() + " : " + t.ifFalse.String() + ")"
	})
}

func (t *TernaryVar) Data() *vardata.VarData {
	return t.cachedData(func() *vardata.VarData { return mergeData(t.cond, t.ifTrue, t.ifFalse) })
}

func (t *TernaryVar) Type() types.Type { return t.typ }
func (t *TernaryVar) Kind() NodeKind   { return NodeTernary }
