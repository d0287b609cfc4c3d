package types

// AssignableTo reports whether a value of type t can be used where target is
// expected. The relation is deliberately loose: it mirrors what the generated
// script tolerates, not a sound type system.
//
//   - Any on either side is assignable.
//   - int is assignable to float (both are script numbers).
//   - A named component is assignable to the unnamed component category; the
//     same holds for objects.
//   - Arrays and objects are covariant in their element type, callables in
//     their result type.
func (t Type) AssignableTo(target Type) bool {
	if target.Kind == KindAny || t.Kind == KindAny {
		return true
	}
	if t.Kind == KindInt && target.Kind == KindFloat {
		return true
	}
	if t.Kind != target.Kind {
		return false
	}
	switch t.Kind {
	case KindComponent, KindObject:
		if target.Name != "" && t.Name != target.Name {
			return false
		}
		if t.Kind == KindObject && target.Elem != nil {
			return t.ElemType().AssignableTo(*target.Elem)
		}
		return true
	case KindArray:
		if target.Elem == nil {
			return true
		}
		return t.ElemType().AssignableTo(*target.Elem)
	case KindCallable:
		if target.Result == nil {
			return true
		}
		return t.ReturnType().AssignableTo(*target.Result)
	default:
		return true
	}
}

// Join returns the narrowest tag both a and b are assignable to, falling back
// to the bare kind when they share one and to Any otherwise.
func Join(a, b Type) Type {
	switch {
	case a.Equal(b):
		return a
	case a.Kind == KindAny || b.Kind == KindAny:
		return Any()
	case a.AssignableTo(b):
		return b
	case b.AssignableTo(a):
		return a
	case a.Kind != b.Kind:
		return Any()
	}
	switch a.Kind {
	case KindArray:
		return ArrayOf(Join(a.ElemType(), b.ElemType()))
	case KindObject:
		return ObjectOf("", Join(a.ElemType(), b.ElemType()))
	case KindCallable:
		res := Join(a.ReturnType(), b.ReturnType())
		out := Type{Kind: KindCallable, Result: &res}
		if a.Params != nil && b.Params != nil && len(a.Params) == len(b.Params) {
			same := true
			for i := range a.Params {
				if !a.Params[i].Equal(b.Params[i]) {
					same = false
					break
				}
			}
			if same {
				out.Params = make([]Type, len(a.Params))
				copy(out.Params, a.Params)
			}
		}
		return out
	default:
		return Type{Kind: a.Kind}
	}
}
