package render

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"rxvar/internal/control"
	"rxvar/internal/diag"
	"rxvar/internal/types"
	"rxvar/internal/vars"
)

func mustCond(t *testing.T, c, a, b any) vars.Var {
	t.Helper()
	r, err := control.Cond(c, a, b)
	if err != nil {
		t.Fatalf("Cond: %v", err)
	}
	return r.Var()
}

func TestModuleEmission(t *testing.T) {
	count := vars.New("state.count", types.Int(), nil)
	arts := []Artifact{
		NewArtifact(Named{Name: "label", Var: mustCond(t, count, "some", "none")}),
		NewArtifact(Named{Name: "answer", Var: vars.MustLift(42)}),
	}
	want := `import { isTrue } from "$/utils/state";

export const label = ((isTrue(state.count) ? (() => "some") : (() => "none"))());
export const answer = 42;
`
	if diff := cmp.Diff(want, Module(arts)); diff != "" {
		t.Fatalf("module (-want +got):\n%s", diff)
	}
}

func TestModuleHooks(t *testing.T) {
	r, err := control.ColorModeCond("sun", "moon")
	if err != nil {
		t.Fatalf("ColorModeCond: %v", err)
	}
	got := Module([]Artifact{
		NewArtifact(Named{Name: "icon", Var: r.Var()}),
		NewArtifact(Named{Name: "answer", Var: vars.MustLift(42)}),
	})
	want := `import { ColorModeContext } from "$/utils/context";
import { useContext } from "react";

export function useIcon() {
  const { resolvedColorMode } = useContext(ColorModeContext)
  return (((resolvedColorMode?.valueOf?.() === "light"?.valueOf?.()) ? (() => "sun") : (() => "moon"))());
}
export const answer = 42;
`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("module (-want +got):\n%s", diff)
	}
}

func TestHookName(t *testing.T) {
	tests := map[string]string{
		"bg":       "useBg",
		"theme_fg": "useTheme_fg",
		"ébauche":  "useÉbauche",
		"":         "use",
	}
	for name, want := range tests {
		if got := (Artifact{Name: name}).HookName(); got != want {
			t.Errorf("HookName(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestRenderAllKeepsOrder(t *testing.T) {
	shared := mustCond(t, vars.New("state.flag", types.Bool(), nil), 1, 2)
	entries := make([]Named, 64)
	for i := range entries {
		entries[i] = Named{Name: fmt.Sprintf("e%d", i), Var: shared}
	}
	arts, st, err := RenderAll(context.Background(), entries, Options{Jobs: 8})
	if err != nil {
		t.Fatalf("RenderAll: %v", err)
	}
	if st.Misses != len(entries) || st.Hits != 0 {
		t.Fatalf("stats = %+v", st)
	}
	for i, a := range arts {
		if a.Name != entries[i].Name {
			t.Fatalf("artifact %d name = %s", i, a.Name)
		}
		if a.Expr != shared.String() {
			t.Fatalf("artifact %d expr = %s", i, a.Expr)
		}
	}
}

func TestRenderAllNilEntry(t *testing.T) {
	_, _, err := RenderAll(context.Background(), []Named{{Name: "broken"}}, Options{})
	if diag.CodeOf(err) != diag.VarValueError {
		t.Fatalf("expected value error, got %v", err)
	}
}

func TestRenderAllCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := RenderAll(ctx, []Named{{Name: "a", Var: vars.MustLift(1)}}, Options{})
	if err == nil {
		t.Fatalf("expected context error")
	}
}

func TestCacheRoundTrip(t *testing.T) {
	cache, err := OpenCache(t.TempDir())
	if err != nil {
		t.Fatalf("OpenCache: %v", err)
	}
	v := mustCond(t, vars.New("state.count", types.Int(), nil), "a", "b")
	entries := []Named{{Name: "first", Var: v}}

	cold, st, err := RenderAll(context.Background(), entries, Options{Cache: cache})
	if err != nil || st.Misses != 1 {
		t.Fatalf("cold render: stats=%+v err=%v", st, err)
	}
	entries[0].Name = "renamed"
	warm, st, err := RenderAll(context.Background(), entries, Options{Cache: cache})
	if err != nil || st.Hits != 1 {
		t.Fatalf("warm render: stats=%+v err=%v", st, err)
	}
	if !warm[0].Cached || warm[0].Name != "renamed" {
		t.Fatalf("warm artifact %+v", warm[0])
	}
	opts := []cmp.Option{cmpopts.IgnoreFields(Artifact{}, "Name", "Cached"), cmpopts.IgnoreUnexported(Artifact{})}
	if diff := cmp.Diff(cold[0], warm[0], opts...); diff != "" {
		t.Fatalf("cached artifact differs (-cold +warm):\n%s", diff)
	}
	if Module(warm) != "import { isTrue } from \"$/utils/state\";\n\nexport const renamed = "+v.String()+";\n" {
		t.Fatalf("module from cache:\n%s", Module(warm))
	}

	if err := cache.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, ok, err := cache.Get(vars.Fingerprint(v)); ok || err != nil {
		t.Fatalf("entry survived Clear: ok=%v err=%v", ok, err)
	}
}

func TestNilCacheIsNoop(t *testing.T) {
	var c *ArtifactCache
	if err := c.Put(vars.Digest{}, Artifact{}); err != nil {
		t.Fatalf("Put on nil cache: %v", err)
	}
	if _, ok, err := c.Get(vars.Digest{}); ok || err != nil {
		t.Fatalf("Get on nil cache: ok=%v err=%v", ok, err)
	}
}
