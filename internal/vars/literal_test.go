package vars

import (
	"errors"
	"math"
	"testing"

	"rxvar/internal/types"
)

func TestLiftRendersLiterals(t *testing.T) {
	type props struct {
		Title   string `json:"title"`
		Count   int
		Skipped bool `json:"-"`
		hidden  int
	}
	tests := []struct {
		name string
		in   any
		want string
		kind types.Kind
	}{
		{"true", true, "true", types.KindBool},
		{"false", false, "false", types.KindBool},
		{"nil", nil, "null", types.KindNull},
		{"int", 5, "5", types.KindInt},
		{"negative int64", int64(-12), "-12", types.KindInt},
		{"uint", uint16(7), "7", types.KindInt},
		{"float", 1.5, "1.5", types.KindFloat},
		{"nan", math.NaN(), "NaN", types.KindFloat},
		{"inf", math.Inf(-1), "-Infinity", types.KindFloat},
		{"string", `say "hi"`, `"say \"hi\""`, types.KindString},
		{"html stays raw", "<b>", `"<b>"`, types.KindString},
		{"nil slice", []int(nil), "null", types.KindNull},
		{"list", []any{1, "a", true}, `[1, "a", true]`, types.KindArray},
		{"nested list", [][]int{{1}, {2, 3}}, "[[1], [2, 3]]", types.KindArray},
		{"map sorted", map[string]int{"b": 2, "a": 1}, `({ ["a"] : 1, ["b"] : 2 })`, types.KindObject},
		{"empty map", map[string]int{}, "({  })", types.KindObject},
		{"struct", props{Title: "x", Count: 2, Skipped: true}, `({ ["title"] : "x", ["Count"] : 2 })`, types.KindObject},
		{"pointer", &props{Title: "p"}, `({ ["title"] : "p", ["Count"] : 0 })`, types.KindObject},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Lift(tt.in)
			if err != nil {
				t.Fatalf("Lift(%v): %v", tt.in, err)
			}
			if got := v.String(); got != tt.want {
				t.Fatalf("rendered %q, want %q", got, tt.want)
			}
			if v.Type().Kind != tt.kind {
				t.Fatalf("type %s, want kind %s", v.Type(), tt.kind)
			}
		})
	}
}

func TestLiftIsDeterministic(t *testing.T) {
	a, b := MustLift(5), MustLift(5)
	if !Equal(a, b) {
		t.Fatalf("Lift(5) twice should be structurally equal")
	}
	if Fingerprint(a) != Fingerprint(b) {
		t.Fatalf("fingerprints differ for equal literals")
	}
	if Equal(MustLift(5), MustLift("5")) {
		t.Fatalf("int and string literals must differ")
	}
	m1 := MustLift(map[string]any{"x": []int{1, 2}, "y": "z"})
	m2 := MustLift(map[string]any{"y": "z", "x": []int{1, 2}})
	if !Equal(m1, m2) {
		t.Fatalf("maps with equal contents must lift equally: %s vs %s", m1, m2)
	}
}

func TestLiftReturnsVarUnchanged(t *testing.T) {
	raw := New("state.count", types.Int(), nil)
	got, err := Lift(raw)
	if err != nil {
		t.Fatalf("Lift: %v", err)
	}
	if got != Var(raw) {
		t.Fatalf("existing nodes must be returned as-is")
	}
}

type fakeComponent struct{}

func (fakeComponent) ToVar() Var {
	return New("jsx(Box, {})", types.Component("Box"), nil)
}

func TestLiftUsesVarConversion(t *testing.T) {
	v := MustLift(fakeComponent{})
	if v.String() != "jsx(Box, {})" || !v.Type().IsComponent() {
		t.Fatalf("component not converted: %s (%s)", v, v.Type())
	}
	arr := MustLift([]any{fakeComponent{}})
	if arr.String() != "[jsx(Box, {})]" {
		t.Fatalf("nested component not converted: %s", arr)
	}
}

type ptrComponent struct{ tag string }

func (c *ptrComponent) ToVar() Var {
	return New("jsx("+c.tag+", {})", types.Component(c.tag), nil)
}

func TestLiftTypedNilIsNull(t *testing.T) {
	for _, in := range []any{(*RawVar)(nil), (*ptrComponent)(nil)} {
		v, err := Lift(in)
		if err != nil {
			t.Fatalf("Lift(%T): %v", in, err)
		}
		if v.String() != "null" || v.Type().Kind != types.KindNull {
			t.Fatalf("Lift(%T) = %s (%s), want null", in, v, v.Type())
		}
	}
	if !IsNil((*ptrComponent)(nil)) || IsNil(ptrComponent{}) || IsNil(0) {
		t.Fatalf("IsNil misclassified values")
	}
}

func TestLiftRejectsUnsupportedValues(t *testing.T) {
	for _, in := range []any{make(chan int), complex(1, 2), []any{func() {}}} {
		_, err := Lift(in)
		var typeErr *VarTypeError
		if !errors.As(err, &typeErr) {
			t.Fatalf("Lift(%T) error = %v, want VarTypeError", in, err)
		}
	}
}

func TestArrayElementTypeIsJoined(t *testing.T) {
	v := MustLift([]any{1, 2.5})
	if want := types.ArrayOf(types.Float()); !v.Type().Equal(want) {
		t.Fatalf("type = %s, want %s", v.Type(), want)
	}
	v = MustLift([]any{1, "x"})
	if want := types.ArrayOf(types.Any()); !v.Type().Equal(want) {
		t.Fatalf("type = %s, want %s", v.Type(), want)
	}
}
