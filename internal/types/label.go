package types

import (
	"fmt"
	"reflect"
	"strings"
)

// String returns a user-friendly label, e.g. "callable(int, string) -> bool".
func (t Type) String() string {
	var sb strings.Builder
	t.label(&sb, 0)
	return sb.String()
}

func (t Type) label(sb *strings.Builder, depth int) {
	if depth > 6 {
		sb.WriteString("...")
		return
	}
	switch t.Kind {
	case KindArray:
		sb.WriteString("array[")
		t.ElemType().label(sb, depth+1)
		sb.WriteString("]")
	case KindObject:
		if t.Name != "" {
			sb.WriteString(t.Name)
			return
		}
		sb.WriteString("object[")
		t.ElemType().label(sb, depth+1)
		sb.WriteString("]")
	case KindCallable:
		sb.WriteString("callable(")
		if t.Params == nil {
			sb.WriteString("...")
		}
		for i, p := range t.Params {
			if i > 0 {
				sb.WriteString(", ")
			}
			p.label(sb, depth+1)
		}
		sb.WriteString(") -> ")
		t.ReturnType().label(sb, depth+1)
	case KindComponent:
		sb.WriteString("component")
		if t.Name != "" {
			sb.WriteString("<" + t.Name + ">")
		}
	default:
		sb.WriteString(t.Kind.String())
	}
}

// FromHost maps a Go host type onto a semantic tag. Component detection is
// left to callers that know the component capability; everything unknown maps
// to Any.
func FromHost(rt reflect.Type) Type {
	if rt == nil {
		return Null()
	}
	switch rt.Kind() {
	case reflect.Bool:
		return Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return Int()
	case reflect.Float32, reflect.Float64:
		return Float()
	case reflect.String:
		return String()
	case reflect.Slice, reflect.Array:
		return ArrayOf(FromHost(rt.Elem()))
	case reflect.Map:
		return ObjectOf("", FromHost(rt.Elem()))
	case reflect.Struct:
		return ObjectOf(rt.Name(), Any())
	case reflect.Pointer:
		return FromHost(rt.Elem())
	case reflect.Func:
		return AnyCallable()
	default:
		return Any()
	}
}

// Parse reads a label written by String back into a type. Callable labels
// are accepted only in their bare form "callable".
func Parse(label string) (Type, error) {
	s := strings.TrimSpace(label)
	switch {
	case strings.HasPrefix(s, "array[") && strings.HasSuffix(s, "]"):
		elem, err := Parse(s[len("array[") : len(s)-1])
		if err != nil {
			return Type{}, err
		}
		return ArrayOf(elem), nil
	case strings.HasPrefix(s, "object[") && strings.HasSuffix(s, "]"):
		elem, err := Parse(s[len("object[") : len(s)-1])
		if err != nil {
			return Type{}, err
		}
		return ObjectOf("", elem), nil
	case strings.HasPrefix(s, "component<") && strings.HasSuffix(s, ">"):
		return Component(s[len("component<") : len(s)-1]), nil
	}
	switch s {
	case "any", "":
		return Any(), nil
	case "null":
		return Null(), nil
	case "bool":
		return Bool(), nil
	case "int":
		return Int(), nil
	case "float":
		return Float(), nil
	case "string":
		return String(), nil
	case "array":
		return ArrayOf(Any()), nil
	case "object":
		return ObjectOf("", Any()), nil
	case "callable":
		return AnyCallable(), nil
	case "component":
		return Component(""), nil
	}
	return Type{}, fmt.Errorf("unknown type %q", label)
}
