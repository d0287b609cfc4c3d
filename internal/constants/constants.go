// Package constants is the catalogue of fixed identifiers that generated
// code relies on. Names that depend on state minification are resolved from
// an explicit config.Compile; Default resolves them once from the process
// environment and never changes afterwards.
package constants

import (
	"os"
	"strings"
	"sync"

	"rxvar/internal/config"
	"rxvar/internal/vardata"
)

const (
	// SetterPrefix prefixes generated state setters.
	SetterPrefix = "set_"
	// NoCompileFile disables compilation when present in a project.
	NoCompileFile = "nocompile"
	// EnvMinifyStates toggles state-name minification.
	EnvMinifyStates = config.EnvMinifyStates
)

// Ext lists the file extensions used by generated projects.
var Ext = struct {
	JS, PY, CSS, ZIP, EXE string
}{
	JS:  ".js",
	PY:  ".py",
	CSS: ".css",
	ZIP: ".zip",
	EXE: ".exe",
}

// PageNames are the basic pages and modules of a generated frontend.
var PageNames = struct {
	IndexRoute, AppRoot, StylesheetRoot, DocumentRoot, Theme, Components, StatefulComponents string
}{
	IndexRoute:         "index",
	AppRoot:            "_app",
	StylesheetRoot:     "styles",
	DocumentRoot:       "_document",
	Theme:              "theme",
	Components:         "components",
	StatefulComponents: "stateful_components",
}

// Names of the fixed generated identifiers.
const (
	App          = "app"
	API          = "api"
	Router       = "router"
	Socket       = "socket"
	Result       = "result"
	Final        = "final"
	Processing   = "processing"
	State        = "state"
	Events       = "events"
	Hydrate      = "hydrate"
	IsHydrated   = "is_hydrated"
	AddEvents    = "addEvents"
	ConnectError = "connectErrors"
	ToEvent      = "Event"
)

const (
	stateRoot = "reflex___state____state"

	onLoadInternalFull     = "reflex___state____on_load_internal_state"
	updateVarsInternalFull = "reflex___state____update_vars_internal_state"
	frontendExceptionFull  = "reflex___state____frontend_event_exception_state"

	onLoadInternalMin     = "l"
	updateVarsInternalMin = "u"
	frontendExceptionMin  = "e"
)

// CompileVars holds the identifiers whose spelling depends on minification.
type CompileVars struct {
	MinifyStates bool

	OnLoadInternalState        string
	OnLoadInternal             string
	UpdateVarsInternalState    string
	UpdateVarsInternal         string
	FrontendExceptionState     string
	FrontendExceptionStateFull string
}

// InternalStateNames returns the three internal state names.
func (c CompileVars) InternalStateNames() []string {
	return []string{c.OnLoadInternalState, c.UpdateVarsInternalState, c.FrontendExceptionState}
}

// IsInternalState reports whether name is one of InternalStateNames.
func (c CompileVars) IsInternalState(name string) bool {
	for _, n := range c.InternalStateNames() {
		if n == name {
			return true
		}
	}
	return false
}

// Catalogue is the resolved set of identifiers for one session.
type Catalogue struct {
	Vars    CompileVars
	Imports ImportSets
	Hooks   HookSets
}

// NewCatalogue resolves the catalogue for cfg.
func NewCatalogue(cfg config.Compile) *Catalogue {
	onLoad, update, exception := onLoadInternalFull, updateVarsInternalFull, frontendExceptionFull
	if cfg.MinifyStates {
		onLoad, update, exception = onLoadInternalMin, updateVarsInternalMin, frontendExceptionMin
	}
	return &Catalogue{
		Vars: CompileVars{
			MinifyStates:               cfg.MinifyStates,
			OnLoadInternalState:        onLoad,
			OnLoadInternal:             onLoad + ".on_load_internal",
			UpdateVarsInternalState:    update,
			UpdateVarsInternal:         update + ".update_vars_internal",
			FrontendExceptionState:     exception,
			FrontendExceptionStateFull: stateRoot + "." + exception,
		},
		Imports: ImportSets{Events: eventsImports},
		Hooks:   HookSets{Events: eventsHook, Autofocus: autofocusHook},
	}
}

// Default returns the process-wide catalogue, resolved from the environment
// on first use. An invalid environment mode falls back to the dev defaults,
// but an explicit minification switch is still honored.
var Default = sync.OnceValue(func() *Catalogue {
	return fromEnv(os.LookupEnv)
})

func fromEnv(lookup func(string) (string, bool)) *Catalogue {
	cfg, err := config.Resolve(config.Sources{SkipFile: true, Lookup: lookup})
	if err != nil {
		cfg = config.Defaults()
		if minify, ok := config.MinifyFromEnv(lookup); ok {
			cfg.Compile.MinifyStates = minify
		}
	}
	return NewCatalogue(cfg.Compile)
}

// ComponentName names a deployable half of an app.
type ComponentName string

const (
	Backend  ComponentName = "Backend"
	Frontend ComponentName = "Frontend"
)

// Zip returns the lower-case archive file name.
func (c ComponentName) Zip() string {
	return strings.ToLower(string(c)) + Ext.ZIP
}

const (
	contextsPath = "$/utils/context"
	statePath    = "$/utils/state"
)

// ImportSets groups common import requirements.
type ImportSets struct {
	Events *vardata.VarData
}

// HookSets groups common hook declarations.
type HookSets struct {
	Events    string
	Autofocus string
}

var eventsImports = vardata.Merge(
	vardata.Imports("react", "useContext"),
	vardata.Imports(contextsPath, "EventLoopContext"),
	vardata.Imports(statePath, ToEvent),
)

const eventsHook = "const [" + AddEvents + ", " + ConnectError + "] = useContext(EventLoopContext);"

const autofocusHook = `
                // Set focus to the specified element.
                const focusRef = useRef(null)
                useEffect(() => {
                  if (focusRef.current) {
                    focusRef.current.focus();
                  }
                })`

// MemoizationDisposition says when a component is memoized.
type MemoizationDisposition string

const (
	// MemoStateful memoizes components that use state or events.
	MemoStateful MemoizationDisposition = "stateful"
	MemoAlways   MemoizationDisposition = "always"
	MemoNever    MemoizationDisposition = "never"
)

// MemoizationMode configures component memoization.
type MemoizationMode struct {
	Disposition MemoizationDisposition
	// Recursive memoizes children first.
	Recursive bool
}

// DefaultMemoizationMode is stateful and recursive.
func DefaultMemoizationMode() MemoizationMode {
	return MemoizationMode{Disposition: MemoStateful, Recursive: true}
}

// SpecialAttributePrefixes are attribute prefixes rendered verbatim rather
// than converted to style props.
var SpecialAttributePrefixes = []string{"data_", "data-", "aria_", "aria-"}

// IsSpecialAttribute reports whether attr starts with a special prefix.
func IsSpecialAttribute(attr string) bool {
	for _, p := range SpecialAttributePrefixes {
		if strings.HasPrefix(attr, p) {
			return true
		}
	}
	return false
}
