package style

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestIsLightMode(t *testing.T) {
	v := IsLightMode()
	if got, want := v.String(), `(resolvedColorMode?.valueOf?.() === "light"?.valueOf?.())`; got != want {
		t.Fatalf("IsLightMode = %s, want %s", got, want)
	}
	want := []string{
		`import { ColorModeContext } from "$/utils/context";`,
		`import { useContext } from "react";`,
	}
	if diff := cmp.Diff(want, v.Data().ImportLines()); diff != "" {
		t.Fatalf("imports (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"const { resolvedColorMode } = useContext(ColorModeContext)"}, v.Data().HookLines()); diff != "" {
		t.Fatalf("hooks (-want +got):\n%s", diff)
	}
}
