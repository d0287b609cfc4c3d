package vars

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"rxvar/internal/types"
)

func TestToBool(t *testing.T) {
	b := MustLift(true)
	if ToBool(b) != b {
		t.Fatalf("boolean nodes must pass through unchanged")
	}
	n := ToBool(New("state.count", types.Int(), nil))
	if n.String() != "isTrue(state.count)" || n.Type().Kind != types.KindBool {
		t.Fatalf("unexpected coercion %s (%s)", n, n.Type())
	}
	want := []string{`import { isTrue } from "$/utils/state";`}
	if diff := cmp.Diff(want, n.Data().ImportLines()); diff != "" {
		t.Fatalf("coercion imports (-want +got):\n%s", diff)
	}
	if got := Not(MustLift(false)).String(); got != "!false" {
		t.Fatalf("Not rendered %q", got)
	}
}

func TestEq(t *testing.T) {
	e := Eq(Raw("mode"), MustLift("light"))
	if want := `(mode?.valueOf?.() === "light"?.valueOf?.())`; e.String() != want {
		t.Fatalf("rendered %q, want %q", e.String(), want)
	}
	if e.Type().Kind != types.KindBool {
		t.Fatalf("equality must be boolean")
	}
}

func TestTernary(t *testing.T) {
	tern := Ternary(MustLift(true), MustLift(1), MustLift(2.5))
	if tern.String() != "(true ? 1 : 2.5)" {
		t.Fatalf("rendered %q", tern.String())
	}
	if !tern.Type().Equal(types.Float()) {
		t.Fatalf("type = %s, want float", tern.Type())
	}
}

func TestMatchRendering(t *testing.T) {
	m, err := NewMatch(Raw("x"), []MatchCase{
		{Patterns: []Var{MustLift(1)}, Return: MustLift("one")},
		{Patterns: []Var{MustLift(2), MustLift(3)}, Return: MustLift("many")},
	}, MustLift("other"))
	if err != nil {
		t.Fatalf("NewMatch: %v", err)
	}
	want := `(() => { switch (JSON.stringify(x)) {` +
		`case JSON.stringify(1):  return ("one");  break;` +
		`case JSON.stringify(2): case JSON.stringify(3):  return ("many");  break;` +
		`default:  return ("other");  break;};})()`
	if m.String() != want {
		t.Fatalf("rendered\n%s\nwant\n%s", m.String(), want)
	}
	if !m.Type().Equal(types.String()) {
		t.Fatalf("type = %s, want string", m.Type())
	}
}

func TestMatchRejectsEmptyInput(t *testing.T) {
	if _, err := NewMatch(Raw("x"), nil, MustLift(1)); err == nil {
		t.Fatalf("expected error for zero cases")
	}
	if _, err := NewMatch(Raw("x"), []MatchCase{{Return: MustLift(1)}}, MustLift(1)); err == nil {
		t.Fatalf("expected error for a case without patterns")
	}
}
