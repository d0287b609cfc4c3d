package vars

import (
	"crypto/sha256"

	"rxvar/internal/types"
	"rxvar/internal/vardata"
)

// NodeKind enumerates concrete IR node kinds.
type NodeKind uint8

const (
	// NodeRaw is an expression given directly as script text.
	NodeRaw NodeKind = iota
	// NodeLiteral is a lifted host scalar (bool, number, string, null).
	NodeLiteral
	// NodeArray is a lifted host list.
	NodeArray
	// NodeObject is a lifted host map or struct.
	NodeObject
	// NodeComponent is a rendered UI fragment.
	NodeComponent
	// NodeStringFunction is a callable given as script text.
	NodeStringFunction
	// NodeArgsFunction is an arrow function with a parameter list.
	NodeArgsFunction
	// NodeArgsFunctionBuilder is an arrow function invoked by partial application.
	NodeArgsFunctionBuilder
	// NodeCall is a call-site.
	NodeCall
	// NodeTernary is a conditional expression.
	NodeTernary
	// NodeUnary is a prefix operator or helper call over one operand.
	NodeUnary
	// NodeBinary is an infix operator over two operands.
	NodeBinary
	// NodeMatch is a multi-branch dispatch.
	NodeMatch
)

// String returns a human-readable name for the node kind.
func (k NodeKind) String() string {
	switch k {
	case NodeRaw:
		return "Raw"
	case NodeLiteral:
		return "Literal"
	case NodeArray:
		return "Array"
	case NodeObject:
		return "Object"
	case NodeComponent:
		return "Component"
	case NodeStringFunction:
		return "StringFunction"
	case NodeArgsFunction:
		return "ArgsFunction"
	case NodeArgsFunctionBuilder:
		return "ArgsFunctionBuilder"
	case NodeCall:
		return "Call"
	case NodeTernary:
		return "Ternary"
	case NodeUnary:
		return "Unary"
	case NodeBinary:
		return "Binary"
	case NodeMatch:
		return "Match"
	default:
		return "Unknown"
	}
}

// Var is an immutable expression node. The three accessors String, Type and
// Data are the whole contract the rendering stage relies on.
type Var interface {
	// String returns the rendered script expression.
	String() string
	// Type returns the semantic type the expression evaluates to.
	Type() types.Type
	// Data returns every import/hook the expression and its children need.
	// It may be nil.
	Data() *vardata.VarData
	// Kind identifies the concrete node kind.
	Kind() NodeKind
}

// VarConvertible is implemented by host objects (UI components) that know how
// to turn themselves into an expression node.
type VarConvertible interface {
	ToVar() Var
}

// RawVar is an expression given verbatim.
type RawVar struct {
	expr string
	typ  types.Type
	data *vardata.VarData
}

// New creates an expression node from script text.
func New(expr string, typ types.Type, data *vardata.VarData) *RawVar {
	return &RawVar{expr: expr, typ: typ, data: data}
}

// Raw creates an untyped expression node from script text.
func Raw(expr string) *RawVar {
	return &RawVar{expr: expr}
}

func (v *RawVar) String() string         { return v.expr }
func (v *RawVar) Type() types.Type       { return v.typ }
func (v *RawVar) Data() *vardata.VarData { return v.data }
func (v *RawVar) Kind() NodeKind         { return NodeRaw }

// WithType returns a copy of v carrying typ.
func (v *RawVar) WithType(typ types.Type) *RawVar {
	return &RawVar{expr: v.expr, typ: typ, data: v.data}
}

// Digest is a structural 256-bit hash of an expression node.
type Digest [32]byte

// Fingerprint hashes the kind, rendered text, semantic type and metadata of
// v. Two nodes built from identical inputs share a fingerprint.
func Fingerprint(v Var) Digest {
	h := sha256.New()
	if v != nil {
		_, _ = h.Write([]byte{byte(v.Kind())})
		_, _ = h.Write([]byte(v.String()))
		_, _ = h.Write([]byte{0})
		_, _ = h.Write([]byte(v.Type().String()))
		_, _ = h.Write([]byte{0})
		fp := v.Data().Fingerprint()
		_, _ = h.Write(fp[:])
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// Equal reports whether a and b are structurally interchangeable.
func Equal(a, b Var) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() || a.String() != b.String() || !a.Type().Equal(b.Type()) {
		return false
	}
	return a.Data().Fingerprint() == b.Data().Fingerprint()
}

// ComponentVar is the expression form of a rendered UI fragment.
type ComponentVar struct {
	expr string
	typ  types.Type
	data *vardata.VarData
}

// NewComponent creates a component-typed node named after its tag. The
// metadata is marked as carrying components.
func NewComponent(expr, tag string, data *vardata.VarData) *ComponentVar {
	return &ComponentVar{
		expr: expr,
		typ:  types.Component(tag),
		data: vardata.Merge(data, &vardata.VarData{Components: true}),
	}
}

func (v *ComponentVar) String() string         { return v.expr }
func (v *ComponentVar) Type() types.Type       { return v.typ }
func (v *ComponentVar) Data() *vardata.VarData { return v.data }
func (v *ComponentVar) Kind() NodeKind         { return NodeComponent }
