package types

import "fmt"

// Kind enumerates the semantic categories an expression can evaluate to.
type Kind uint8

const (
	KindAny Kind = iota
	KindNull
	KindBool
	KindInt
	KindFloat
	KindString
	KindArray
	KindObject
	KindCallable
	KindComponent
)

func (k Kind) String() string {
	switch k {
	case KindAny:
		return "any"
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	case KindCallable:
		return "callable"
	case KindComponent:
		return "component"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Type is an immutable semantic type tag. The zero value is Any.
//
// Types are compared structurally with Equal; the slices inside are never
// mutated after construction.
type Type struct {
	Kind Kind
	// Name carries the host type name for objects and components
	// ("" means any object / any component).
	Name string
	// Elem is the element type of arrays and the value type of objects.
	Elem *Type
	// Params and Result describe callables. A nil Params slice means the
	// parameter list is unknown.
	Params []Type
	Result *Type
}

// Descriptor helpers ---------------------------------------------------------

func Any() Type    { return Type{Kind: KindAny} }
func Null() Type   { return Type{Kind: KindNull} }
func Bool() Type   { return Type{Kind: KindBool} }
func Int() Type    { return Type{Kind: KindInt} }
func Float() Type  { return Type{Kind: KindFloat} }
func String() Type { return Type{Kind: KindString} }

// ArrayOf describes a list whose elements have the given type.
func ArrayOf(elem Type) Type {
	return Type{Kind: KindArray, Elem: &elem}
}

// ObjectOf describes a mapping from string keys to values of the given type.
// name is optional and identifies a host struct type.
func ObjectOf(name string, value Type) Type {
	return Type{Kind: KindObject, Name: name, Elem: &value}
}

// Callable describes a function taking params and returning result.
func Callable(params []Type, result Type) Type {
	p := make([]Type, len(params))
	copy(p, params)
	return Type{Kind: KindCallable, Params: p, Result: &result}
}

// AnyCallable describes a function with unknown parameters and result.
func AnyCallable() Type {
	return Type{Kind: KindCallable}
}

// Component describes a UI fragment. An empty name matches every component.
func Component(name string) Type {
	return Type{Kind: KindComponent, Name: name}
}

// IsComponent reports whether t renders a UI fragment.
func (t Type) IsComponent() bool { return t.Kind == KindComponent }

// IsNumber reports whether t is an int or float.
func (t Type) IsNumber() bool { return t.Kind == KindInt || t.Kind == KindFloat }

// ReturnType returns the declared result of a callable, or Any when the
// callable has no known result (or t is not callable).
func (t Type) ReturnType() Type {
	if t.Kind != KindCallable || t.Result == nil {
		return Any()
	}
	return *t.Result
}

// ElemType returns the element type for arrays/objects, Any otherwise.
func (t Type) ElemType() Type {
	if t.Elem == nil {
		return Any()
	}
	return *t.Elem
}

// Equal compares two type tags structurally.
func (t Type) Equal(o Type) bool {
	if t.Kind != o.Kind || t.Name != o.Name {
		return false
	}
	if (t.Elem == nil) != (o.Elem == nil) || (t.Result == nil) != (o.Result == nil) {
		return false
	}
	if t.Elem != nil && !t.Elem.Equal(*o.Elem) {
		return false
	}
	if t.Result != nil && !t.Result.Equal(*o.Result) {
		return false
	}
	if (t.Params == nil) != (o.Params == nil) || len(t.Params) != len(o.Params) {
		return false
	}
	for i := range t.Params {
		if !t.Params[i].Equal(o.Params[i]) {
			return false
		}
	}
	return true
}
