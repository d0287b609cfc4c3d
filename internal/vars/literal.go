package vars

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"rxvar/internal/types"
	"rxvar/internal/vardata"
)

// LiteralVar is a lifted host scalar: bool, number, string or null.
type LiteralVar struct {
	expr string
	typ  types.Type
}

func (v *LiteralVar) String() string         { return v.expr }
func (v *LiteralVar) Type() types.Type       { return v.typ }
func (v *LiteralVar) Data() *vardata.VarData { return nil }
func (v *LiteralVar) Kind() NodeKind         { return NodeLiteral }

// ArrayVar is a lifted host list.
type ArrayVar struct {
	cachedOp
	elems []Var
	typ   types.Type
}

func (v *ArrayVar) String() string {
	return v.cachedText(func() string {
		parts := make([]string, len(v.elems))
		for i, e := range v.elems {
			parts[i] = e.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	})
}

func (v *ArrayVar) Data() *vardata.VarData {
	return v.cachedData(func() *vardata.VarData { return mergeData(v.elems...) })
}

func (v *ArrayVar) Type() types.Type { return v.typ }
func (v *ArrayVar) Kind() NodeKind   { return NodeArray }

// Elems returns the lifted elements.
func (v *ArrayVar) Elems() []Var { return append([]Var(nil), v.elems...) }

// ObjectEntry is one key/value pair of an object literal.
type ObjectEntry struct {
	Key   Var
	Value Var
}

// ObjectVar is a lifted host map or struct.
type ObjectVar struct {
	cachedOp
	entries []ObjectEntry
	typ     types.Type
}

func (v *ObjectVar) String() string {
	return v.cachedText(func() string {
		parts := make([]string, len(v.entries))
		for i, e := range v.entries {
			parts[i] = "[" + e.Key.String() + "] : " + e.Value.String()
		}
		return "({ " + strings.Join(parts, ", ") + " })"
	})
}

func (v *ObjectVar) Data() *vardata.VarData {
	return v.cachedData(func() *vardata.VarData {
		all := make([]Var, 0, 2*len(v.entries))
		for _, e := range v.entries {
			all = append(all, e.Key, e.Value)
		}
		return mergeData(all...)
	})
}

func (v *ObjectVar) Type() types.Type { return v.typ }
func (v *ObjectVar) Kind() NodeKind   { return NodeObject }

// Entries returns the object entries in rendering order.
func (v *ObjectVar) Entries() []ObjectEntry { return append([]ObjectEntry(nil), v.entries...) }

// Lift converts a host value into an expression node.
//
// Existing nodes are returned unchanged and VarConvertible values (UI
// components) are converted through ToVar. Everything else becomes a literal
// whose semantic type follows the value's runtime type. Lifting is
// deterministic: equal values produce structurally equal nodes.
func Lift(value any) (Var, error) {
	return lift(value, 0)
}

// MustLift is Lift for values known to be liftable; it panics otherwise.
func MustLift(value any) Var {
	v, err := Lift(value)
	if err != nil {
		panic(err)
	}
	return v
}

// LiftAll lifts each value in order, stopping at the first failure.
func LiftAll(values ...any) ([]Var, error) {
	out := make([]Var, len(values))
	for i, value := range values {
		v, err := Lift(value)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

const maxLiftDepth = 64

// IsNil reports whether value is nil or holds a nil pointer or interface.
func IsNil(value any) bool {
	if value == nil {
		return true
	}
	switch rv := reflect.ValueOf(value); rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

var nullLiteral = &LiteralVar{expr: "null", typ: types.Null()}

func lift(value any, depth int) (Var, error) {
	if depth > maxLiftDepth {
		return nil, typeErrorf("value nesting exceeds %d levels", maxLiftDepth)
	}
	switch v := value.(type) {
	case nil:
		return nullLiteral, nil
	case Var:
		if IsNil(v) {
			return nullLiteral, nil
		}
		return v, nil
	case VarConvertible:
		if IsNil(v) {
			return nullLiteral, nil
		}
		return v.ToVar(), nil
	case bool:
		return boolLiteral(v), nil
	case string:
		return stringLiteral(v), nil
	case float64:
		return floatLiteral(v), nil
	case int:
		return &LiteralVar{expr: strconv.Itoa(v), typ: types.Int()}, nil
	}
	return liftReflect(reflect.ValueOf(value), depth)
}

func liftReflect(rv reflect.Value, depth int) (Var, error) {
	switch rv.Kind() {
	case reflect.Bool:
		return boolLiteral(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return &LiteralVar{expr: strconv.FormatInt(rv.Int(), 10), typ: types.Int()}, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return &LiteralVar{expr: strconv.FormatUint(rv.Uint(), 10), typ: types.Int()}, nil
	case reflect.Float32:
		return floatLiteralBits(rv.Float(), 32), nil
	case reflect.Float64:
		return floatLiteral(rv.Float()), nil
	case reflect.String:
		return stringLiteral(rv.String()), nil
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nullLiteral, nil
		}
		return lift(rv.Elem().Interface(), depth+1)
	case reflect.Slice:
		if rv.IsNil() {
			return nullLiteral, nil
		}
		return liftList(rv, depth)
	case reflect.Array:
		return liftList(rv, depth)
	case reflect.Map:
		if rv.IsNil() {
			return nullLiteral, nil
		}
		return liftMap(rv, depth)
	case reflect.Struct:
		return liftStruct(rv, depth)
	default:
		return nil, typeErrorf("unsupported type %s for literal var", rv.Type())
	}
}

func liftList(rv reflect.Value, depth int) (Var, error) {
	elems := make([]Var, rv.Len())
	for i := range elems {
		e, err := lift(rv.Index(i).Interface(), depth+1)
		if err != nil {
			return nil, fmt.Errorf("index %d: %w", i, err)
		}
		elems[i] = e
	}
	return &ArrayVar{elems: elems, typ: types.ArrayOf(joinTypes(elems, hostElem(rv.Type())))}, nil
}

func liftMap(rv reflect.Value, depth int) (Var, error) {
	entries := make([]ObjectEntry, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		k, err := lift(iter.Key().Interface(), depth+1)
		if err != nil {
			return nil, fmt.Errorf("map key: %w", err)
		}
		val, err := lift(iter.Value().Interface(), depth+1)
		if err != nil {
			return nil, fmt.Errorf("key %s: %w", k, err)
		}
		entries = append(entries, ObjectEntry{Key: k, Value: val})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Key.String() < entries[j].Key.String() })
	values := make([]Var, len(entries))
	for i, e := range entries {
		values[i] = e.Value
	}
	return &ObjectVar{entries: entries, typ: types.ObjectOf("", joinTypes(values, hostElem(rv.Type())))}, nil
}

func liftStruct(rv reflect.Value, depth int) (Var, error) {
	rt := rv.Type()
	entries := make([]ObjectEntry, 0, rt.NumField())
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		if !f.IsExported() {
			continue
		}
		name := f.Name
		if tag, ok := f.Tag.Lookup("json"); ok {
			tagName, _, _ := strings.Cut(tag, ",")
			if tagName == "-" {
				continue
			}
			if tagName != "" {
				name = tagName
			}
		}
		val, err := lift(rv.Field(i).Interface(), depth+1)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", f.Name, err)
		}
		entries = append(entries, ObjectEntry{Key: stringLiteral(name), Value: val})
	}
	return &ObjectVar{entries: entries, typ: types.ObjectOf(rt.Name(), types.Any())}, nil
}

func hostElem(rt reflect.Type) types.Type {
	if rt.Elem().Kind() == reflect.Interface {
		return types.Any()
	}
	return types.FromHost(rt.Elem())
}

// joinTypes picks the element type of a container: the declared host element
// type when it is concrete, otherwise the join of the lifted element types.
func joinTypes(elems []Var, declared types.Type) types.Type {
	if declared.Kind != types.KindAny || len(elems) == 0 {
		return declared
	}
	t := elems[0].Type()
	for _, e := range elems[1:] {
		t = types.Join(t, e.Type())
	}
	return t
}

func boolLiteral(b bool) *LiteralVar {
	if b {
		return &LiteralVar{expr: "true", typ: types.Bool()}
	}
	return &LiteralVar{expr: "false", typ: types.Bool()}
}

func stringLiteral(s string) *LiteralVar {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	// Encoding a string cannot fail.
	_ = enc.Encode(s)
	return &LiteralVar{expr: strings.TrimSuffix(buf.String(), "\n"), typ: types.String()}
}

func floatLiteral(f float64) *LiteralVar {
	return floatLiteralBits(f, 64)
}

func floatLiteralBits(f float64, bits int) *LiteralVar {
	var expr string
	switch {
	case math.IsNaN(f):
		expr = "NaN"
	case math.IsInf(f, 1):
		expr = "Infinity"
	case math.IsInf(f, -1):
		expr = "-Infinity"
	default:
		expr = strconv.FormatFloat(f, 'g', -1, bits)
	}
	return &LiteralVar{expr: expr, typ: types.Float()}
}

func mergeData(vs ...Var) *vardata.VarData {
	parts := make([]*vardata.VarData, 0, len(vs))
	for _, v := range vs {
		if v != nil {
			parts = append(parts, v.Data())
		}
	}
	return vardata.Merge(parts...)
}
