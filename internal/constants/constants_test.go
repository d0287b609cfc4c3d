package constants

import (
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"rxvar/internal/config"
)

func TestCatalogueMinification(t *testing.T) {
	tests := []struct {
		minify bool
		want   CompileVars
	}{
		{
			minify: false,
			want: CompileVars{
				OnLoadInternalState:        "reflex___state____on_load_internal_state",
				OnLoadInternal:             "reflex___state____on_load_internal_state.on_load_internal",
				UpdateVarsInternalState:    "reflex___state____update_vars_internal_state",
				UpdateVarsInternal:         "reflex___state____update_vars_internal_state.update_vars_internal",
				FrontendExceptionState:     "reflex___state____frontend_event_exception_state",
				FrontendExceptionStateFull: "reflex___state____state.reflex___state____frontend_event_exception_state",
			},
		},
		{
			minify: true,
			want: CompileVars{
				MinifyStates:               true,
				OnLoadInternalState:        "l",
				OnLoadInternal:             "l.on_load_internal",
				UpdateVarsInternalState:    "u",
				UpdateVarsInternal:         "u.update_vars_internal",
				FrontendExceptionState:     "e",
				FrontendExceptionStateFull: "reflex___state____state.e",
			},
		},
	}
	for _, tt := range tests {
		got := NewCatalogue(config.Compile{EnvMode: config.EnvDev, MinifyStates: tt.minify}).Vars
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("minify=%v (-want +got):\n%s", tt.minify, diff)
		}
	}
}

func TestInternalStateNames(t *testing.T) {
	vars := NewCatalogue(config.Compile{MinifyStates: true}).Vars
	if diff := cmp.Diff([]string{"l", "u", "e"}, vars.InternalStateNames()); diff != "" {
		t.Fatalf("names (-want +got):\n%s", diff)
	}
	if !vars.IsInternalState("u") || vars.IsInternalState("state") {
		t.Fatalf("IsInternalState misclassified names")
	}
}

func TestDefaultIsStable(t *testing.T) {
	first := Default()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if Default() != first {
				t.Errorf("Default returned a different catalogue")
			}
		}()
	}
	wg.Wait()
}

func TestEventsImportsAndHook(t *testing.T) {
	c := NewCatalogue(config.Compile{})
	want := []string{
		`import { EventLoopContext } from "$/utils/context";`,
		`import { Event } from "$/utils/state";`,
		`import { useContext } from "react";`,
	}
	if diff := cmp.Diff(want, c.Imports.Events.ImportLines()); diff != "" {
		t.Fatalf("imports (-want +got):\n%s", diff)
	}
	if c.Hooks.Events != "const [addEvents, connectErrors] = useContext(EventLoopContext);" {
		t.Fatalf("events hook = %q", c.Hooks.Events)
	}
}

func TestComponentNameZip(t *testing.T) {
	if Backend.Zip() != "backend.zip" || Frontend.Zip() != "frontend.zip" {
		t.Fatalf("zip names %q %q", Backend.Zip(), Frontend.Zip())
	}
}

func TestIsSpecialAttribute(t *testing.T) {
	tests := map[string]bool{
		"data_id":    true,
		"data-test":  true,
		"aria_label": true,
		"aria-live":  true,
		"class_name": false,
		"dataset":    false,
	}
	for attr, want := range tests {
		if got := IsSpecialAttribute(attr); got != want {
			t.Errorf("IsSpecialAttribute(%q) = %v, want %v", attr, got, want)
		}
	}
}

func TestMemoizationDefaults(t *testing.T) {
	m := DefaultMemoizationMode()
	if m.Disposition != MemoStateful || !m.Recursive {
		t.Fatalf("default mode %+v", m)
	}
}

func TestFromEnvKeepsMinifySwitchOnBadEnvMode(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"invalid mode, minify on", map[string]string{config.EnvModeVar: "staging", config.EnvMinifyStates: "true"}, "l"},
		{"invalid mode, minify unset", map[string]string{config.EnvModeVar: "staging"}, "reflex___state____on_load_internal_state"},
		{"prod mode", map[string]string{config.EnvModeVar: "prod"}, "l"},
		{"empty env", nil, "reflex___state____on_load_internal_state"},
	}
	for _, tt := range tests {
		lookup := func(k string) (string, bool) {
			v, ok := tt.env[k]
			return v, ok
		}
		if got := fromEnv(lookup).Vars.OnLoadInternalState; got != tt.want {
			t.Errorf("%s: OnLoadInternalState = %q, want %q", tt.name, got, tt.want)
		}
	}
}
