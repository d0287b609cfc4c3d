package types

import (
	"reflect"
	"testing"
)

func TestEqualIsStructural(t *testing.T) {
	a := Callable([]Type{Int(), String()}, ArrayOf(Bool()))
	b := Callable([]Type{Int(), String()}, ArrayOf(Bool()))
	if !a.Equal(b) {
		t.Fatalf("callables with identical shape must be equal")
	}
	c := Callable([]Type{Int()}, ArrayOf(Bool()))
	if a.Equal(c) {
		t.Fatalf("callables with different params must differ")
	}
	if AnyCallable().Equal(Callable(nil, Any())) {
		t.Fatalf("unknown params must differ from an explicit result")
	}
}

func TestAssignableTo(t *testing.T) {
	tests := []struct {
		name   string
		from   Type
		to     Type
		expect bool
	}{
		{"any target", String(), Any(), true},
		{"any source", Any(), Component(""), true},
		{"int to float", Int(), Float(), true},
		{"float to int", Float(), Int(), false},
		{"string to component", String(), Component(""), false},
		{"named component to category", Component("Fragment"), Component(""), true},
		{"component name mismatch", Component("Box"), Component("Fragment"), false},
		{"array covariance", ArrayOf(Int()), ArrayOf(Float()), true},
		{"array mismatch", ArrayOf(String()), ArrayOf(Int()), false},
		{"callable result", Callable(nil, Component("Box")), Callable(nil, Component("")), true},
	}
	for _, tt := range tests {
		if got := tt.from.AssignableTo(tt.to); got != tt.expect {
			t.Errorf("%s: %s -> %s = %v, want %v", tt.name, tt.from, tt.to, got, tt.expect)
		}
	}
}

func TestReturnType(t *testing.T) {
	if got := Callable([]Type{Int()}, String()).ReturnType(); !got.Equal(String()) {
		t.Fatalf("ReturnType = %s, want string", got)
	}
	if got := AnyCallable().ReturnType(); got.Kind != KindAny {
		t.Fatalf("unknown callable should return any, got %s", got)
	}
	if got := Int().ReturnType(); got.Kind != KindAny {
		t.Fatalf("non-callable should return any, got %s", got)
	}
}

func TestLabel(t *testing.T) {
	got := Callable([]Type{Int(), ArrayOf(String())}, Component("Fragment")).String()
	want := "callable(int, array[string]) -> component<Fragment>"
	if got != want {
		t.Fatalf("label = %q, want %q", got, want)
	}
}

func TestFromHost(t *testing.T) {
	type point struct{ X, Y int }
	tests := []struct {
		v    any
		want Type
	}{
		{true, Bool()},
		{uint8(3), Int()},
		{1.5, Float()},
		{"s", String()},
		{[]int{1}, ArrayOf(Int())},
		{map[string]bool{}, ObjectOf("", Bool())},
		{point{}, ObjectOf("point", Any())},
	}
	for _, tt := range tests {
		if got := FromHost(reflect.TypeOf(tt.v)); !got.Equal(tt.want) {
			t.Errorf("FromHost(%T) = %s, want %s", tt.v, got, tt.want)
		}
	}
	if got := FromHost(nil); got.Kind != KindNull {
		t.Errorf("FromHost(nil) = %s, want null", got)
	}
}

func TestJoin(t *testing.T) {
	tests := []struct {
		name string
		a, b Type
		want Type
	}{
		{"equal", String(), String(), String()},
		{"number widening", Int(), Float(), Float()},
		{"unrelated", String(), Int(), Any()},
		{"components", Component("Box"), Component("Fragment"), Component("")},
		{"thunks", Callable(nil, Component("Box")), Callable(nil, Component("Fragment")), Callable(nil, Component(""))},
		{"thunks with scalars", Callable(nil, String()), Callable(nil, Int()), Callable(nil, Any())},
	}
	for _, tt := range tests {
		if got := Join(tt.a, tt.b); !got.Equal(tt.want) {
			t.Errorf("%s: Join(%s, %s) = %s, want %s", tt.name, tt.a, tt.b, got, tt.want)
		}
	}
}

func TestParseRoundTrip(t *testing.T) {
	for _, typ := range []Type{
		Any(), Null(), Bool(), Int(), Float(), String(),
		ArrayOf(Int()), ObjectOf("", ArrayOf(String())),
		Component(""), Component("Box"),
	} {
		got, err := Parse(typ.String())
		if err != nil {
			t.Fatalf("Parse(%q): %v", typ.String(), err)
		}
		if !got.Equal(typ) {
			t.Fatalf("Parse(%q) = %s", typ.String(), got)
		}
	}
	if got, err := Parse("callable"); err != nil || !got.Equal(AnyCallable()) {
		t.Fatalf("Parse(callable) = %s, %v", got, err)
	}
	if _, err := Parse("tuple"); err == nil {
		t.Fatalf("expected error for unknown label")
	}
}
