package manifest

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"rxvar/internal/diag"
	"rxvar/internal/types"
)

const sample = `
[[expr]]
name = "greeting"
kind = "cond"
cond = { var = "state.logged_in", type = "bool" }
then = "Welcome back"
else = "Sign in"

[[expr]]
name = "size"
kind = "match"
subject = { var = "state.size", type = "string" }
default = "medium"

  [[expr.cases]]
  when = ["s", "xs"]
  then = "small"

  [[expr.cases]]
  when = ["l"]
  then = "large"

[[expr]]
name = "payload"
kind = "call"
function = "JSON.stringify"
args = [{ id = 1, tags = ["a", "b"] }]

[[expr]]
name = "theme"
kind = "color_mode"
light = "#fff"
dark = "#000"

[[expr]]
name = "panel"
kind = "cond"
cond = { var = "state.open" }
then = { component = "Box", lib = "@radix-ui/themes", props = { id = "main" }, children = ["hi"] }

[[expr]]
name = "answer"
kind = "literal"
value = 42
`

func TestDecodeAndBuild(t *testing.T) {
	m, err := Decode("sample.toml", []byte(sample))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(m.Entries) != 6 {
		t.Fatalf("entries = %d", len(m.Entries))
	}

	bag := diag.NewBag(10)
	named := Build(context.Background(), m, bag)
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	got := make(map[string]string, len(named))
	for _, n := range named {
		got[n.Name] = n.Var.String()
	}

	want := map[string]string{
		"greeting": `((state.logged_in ? (() => "Welcome back") : (() => "Sign in"))())`,
		"size": `(() => { switch (JSON.stringify(state.size)) {` +
			`case JSON.stringify("s"): case JSON.stringify("xs"):  return ("small");  break;` +
			`case JSON.stringify("l"):  return ("large");  break;` +
			`default:  return ("medium");  break;};})()`,
		"payload": `(JSON.stringify(({ ["id"] : 1, ["tags"] : ["a", "b"] })))`,
		"theme":   `(((resolvedColorMode?.valueOf?.() === "light"?.valueOf?.()) ? (() => "#fff") : (() => "#000"))())`,
		"answer":  `42`,
	}
	for name, w := range want {
		if got[name] != w {
			t.Errorf("%s rendered\n%s\nwant\n%s", name, got[name], w)
		}
	}
	if !strings.Contains(got["panel"], `jsx(Box, {id:"main"}, "hi")`) || !strings.Contains(got["panel"], "jsx(Fragment, {})") {
		t.Errorf("panel rendered %s", got["panel"])
	}
	for _, n := range named {
		if n.Name == "panel" && !n.Var.Type().IsComponent() {
			t.Errorf("panel type = %s", n.Var.Type())
		}
		if n.Name == "payload" && !n.Var.Type().Equal(types.String()) {
			t.Errorf("payload type = %s", n.Var.Type())
		}
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		code diag.Code
	}{
		{"syntax", "[[expr]\n", diag.ManDecodeError},
		{"no entries", "title = 1\n", diag.ManDecodeError},
		{"empty", "", diag.ManMissingField},
		{"missing name", "[[expr]]\nkind = \"literal\"\n", diag.ManMissingField},
		{"unknown kind", "[[expr]]\nname = \"a\"\nkind = \"loop\"\n", diag.ManUnknownKind},
		{"unknown field", "[[expr]]\nname = \"a\"\nkind = \"literal\"\ncolour = 1\n", diag.ManDecodeError},
		{"duplicate", "[[expr]]\nname = \"a\"\nkind = \"literal\"\nvalue = 1\n[[expr]]\nname = \"a\"\nkind = \"literal\"\nvalue = 2\n", diag.ManDuplicateName},
	}
	for _, tt := range tests {
		_, err := Decode(tt.name+".toml", []byte(tt.body))
		if err == nil {
			t.Errorf("%s: expected error", tt.name)
			continue
		}
		if got := diag.CodeOf(err); got != tt.code {
			t.Errorf("%s: code = %s, want %s (%v)", tt.name, got.ID(), tt.code.ID(), err)
		}
	}
}

func TestBuildReportsEntryErrors(t *testing.T) {
	body := `
[[expr]]
name = "no_else"
kind = "cond"
cond = true
then = "a"

[[expr]]
name = "mixed"
kind = "match"
subject = { var = "x" }
default = 0
cases = [ { when = [1], then = 1 }, { when = [2], then = "two" } ]

[[expr]]
name = "no_subject"
kind = "match"

[[expr]]
name = "ok"
kind = "literal"
value = "fine"

[[expr]]
name = "typed"
kind = "cond"
cond = { var = "state.flag", type = 5 }
then = 1
else = 2
`
	m, err := Decode("errors.toml", []byte(body))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	bag := diag.NewBag(10)
	named := Build(context.Background(), m, bag)
	if len(named) != 1 || named[0].Name != "ok" {
		t.Fatalf("expected only ok to build, got %d entries", len(named))
	}
	bag.Sort()
	want := []struct {
		subject string
		code    diag.Code
	}{
		{"mixed", diag.MatchTypeError},
		{"no_else", diag.VarValueError},
		{"no_subject", diag.ManMissingField},
		{"typed", diag.VarTypeError},
	}
	items := bag.Items()
	if len(items) != len(want) {
		t.Fatalf("diagnostics = %v", items)
	}
	for i, w := range want {
		if items[i].Subject != w.subject || items[i].Code != w.code {
			t.Errorf("diagnostic %d = %s", i, items[i])
		}
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exprs.toml")
	if err := os.WriteFile(path, []byte("[[expr]]\nname = \"n\"\nkind = \"literal\"\nvalue = [1, 2]\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if m.Path != path || len(m.Entries) != 1 {
		t.Fatalf("unexpected manifest %+v", m)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); diag.CodeOf(err) != diag.ManDecodeError {
		t.Fatalf("missing file code = %v", diag.CodeOf(err))
	}
}
