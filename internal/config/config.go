// Package config resolves the session configuration once per process:
// built-in defaults, then an optional rxvar.toml, then environment
// variables, then command-line overrides. The resolved Config is passed
// explicitly to the packages that need it.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"golang.org/x/text/cases"

	"rxvar/internal/diag"
	"rxvar/internal/trace"
)

// FileName is the project configuration file looked up from the working
// directory upwards.
const FileName = "rxvar.toml"

const (
	// EnvModeVar selects the build environment.
	EnvModeVar = "REFLEX_ENV_MODE"
	// EnvMinifyStates forces state-name minification on ("true") or off.
	EnvMinifyStates = "REFLEX_MINIFY_STATES"
)

const (
	EnvDev  = "dev"
	EnvProd = "prod"
)

// Config is the resolved session configuration.
type Config struct {
	// Path is the configuration file that was loaded, "" when none.
	Path    string
	Compile Compile
	Trace   Trace
}

// Compile holds the settings that influence generated identifiers.
type Compile struct {
	EnvMode      string
	MinifyStates bool
}

// Trace holds tracer settings.
type Trace struct {
	Level  trace.Level
	Output string
}

// Defaults returns the configuration used when nothing else is set.
func Defaults() Config {
	return Config{
		Compile: Compile{EnvMode: EnvDev},
		Trace:   Trace{Level: trace.LevelOff, Output: "-"},
	}
}

// Overrides carries command-line values; nil fields are unset.
type Overrides struct {
	EnvMode      *string
	MinifyStates *bool
	TraceLevel   *string
	TraceOutput  *string
}

// Sources describes where Resolve reads from.
type Sources struct {
	// File is an explicit configuration path. When it is empty and SkipFile
	// is unset, FindFile is used from Dir.
	File     string
	Dir      string
	SkipFile bool
	// Lookup reads environment variables; nil means os.LookupEnv.
	Lookup func(string) (string, bool)
	Flags  Overrides
}

// Error is a configuration failure carrying a diagnostic code.
type Error struct {
	code diag.Code
	Path string
	Key  string
	Msg  string
}

func (e *Error) Error() string {
	var sb strings.Builder
	if e.Path != "" {
		sb.WriteString(e.Path)
		sb.WriteString(": ")
	}
	if e.Key != "" {
		sb.WriteString(e.Key)
		sb.WriteString(": ")
	}
	sb.WriteString(e.Msg)
	return sb.String()
}

func (e *Error) Code() diag.Code { return e.code }

type fileConfig struct {
	Compile struct {
		MinifyStates bool   `toml:"minify_states"`
		EnvMode      string `toml:"env_mode"`
	} `toml:"compile"`
	Trace struct {
		Level  string `toml:"level"`
		Output string `toml:"output"`
	} `toml:"trace"`
}

// layer is one precedence level; nil fields leave lower layers in place.
type layer struct {
	envMode      *string
	minifyStates *bool
	traceLevel   *string
	traceOutput  *string
}

// FindFile walks from startDir up to the filesystem root looking for
// FileName.
func FindFile(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}

func loadFile(path string) (layer, error) {
	var cfg fileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return layer{}, &Error{code: diag.CfgDecodeError, Path: path, Msg: fmt.Sprintf("failed to parse TOML: %v", err)}
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return layer{}, &Error{code: diag.CfgUnknownKey, Path: path, Key: undecoded[0].String(), Msg: "unknown key"}
	}
	var l layer
	if meta.IsDefined("compile", "env_mode") {
		l.envMode = &cfg.Compile.EnvMode
	}
	if meta.IsDefined("compile", "minify_states") {
		l.minifyStates = &cfg.Compile.MinifyStates
	}
	if meta.IsDefined("trace", "level") {
		l.traceLevel = &cfg.Trace.Level
	}
	if meta.IsDefined("trace", "output") {
		l.traceOutput = &cfg.Trace.Output
	}
	return l, nil
}

var fold = cases.Fold()

// isTrue reports whether an environment flag value means true. Only "true"
// in any letter case does.
func isTrue(v string) bool {
	return fold.String(strings.TrimSpace(v)) == "true"
}

func envLayer(lookup func(string) (string, bool)) layer {
	var l layer
	if v, ok := lookup(EnvModeVar); ok {
		l.envMode = &v
	}
	if v, ok := lookup(EnvMinifyStates); ok {
		b := isTrue(v)
		l.minifyStates = &b
	}
	return l
}

func (o Overrides) layer() layer {
	return layer{
		envMode:      o.EnvMode,
		minifyStates: o.MinifyStates,
		traceLevel:   o.TraceLevel,
		traceOutput:  o.TraceOutput,
	}
}

// Resolve merges every source into a validated Config. Unless set
// explicitly by some source, MinifyStates is true exactly when the resolved
// environment mode is prod.
func Resolve(src Sources) (Config, error) {
	cfg := Defaults()
	lookup := src.Lookup
	if lookup == nil {
		lookup = os.LookupEnv
	}

	path := src.File
	if path == "" && !src.SkipFile {
		found, ok, err := FindFile(src.Dir)
		if err != nil {
			return Config{}, err
		}
		if ok {
			path = found
		}
	}

	layers := make([]layer, 0, 3)
	if path != "" {
		fl, err := loadFile(path)
		if err != nil {
			return Config{}, err
		}
		cfg.Path = path
		layers = append(layers, fl)
	}
	layers = append(layers, envLayer(lookup), src.Flags.layer())

	var minify *bool
	traceLevel := cfg.Trace.Level.String()
	for _, l := range layers {
		if l.envMode != nil {
			cfg.Compile.EnvMode = strings.TrimSpace(*l.envMode)
		}
		if l.minifyStates != nil {
			minify = l.minifyStates
		}
		if l.traceLevel != nil {
			traceLevel = *l.traceLevel
		}
		if l.traceOutput != nil {
			cfg.Trace.Output = *l.traceOutput
		}
	}

	switch cfg.Compile.EnvMode {
	case EnvDev, EnvProd:
	default:
		return Config{}, &Error{
			code: diag.CfgInvalidValue,
			Path: cfg.Path,
			Key:  "compile.env_mode",
			Msg:  fmt.Sprintf("invalid environment mode %q (expected: %s|%s)", cfg.Compile.EnvMode, EnvDev, EnvProd),
		}
	}
	if minify != nil {
		cfg.Compile.MinifyStates = *minify
	} else {
		cfg.Compile.MinifyStates = cfg.Compile.EnvMode == EnvProd
	}

	lvl, err := trace.ParseLevel(traceLevel)
	if err != nil {
		return Config{}, &Error{code: diag.CfgInvalidValue, Path: cfg.Path, Key: "trace.level", Msg: err.Error()}
	}
	cfg.Trace.Level = lvl
	return cfg, nil
}

// FromEnv resolves the configuration from the process environment only.
func FromEnv() (Config, error) {
	return Resolve(Sources{SkipFile: true})
}

// MinifyFromEnv reports the explicit minification switch, if lookup has one.
// It does not depend on the environment mode being valid.
func MinifyFromEnv(lookup func(string) (string, bool)) (bool, bool) {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	l := envLayer(lookup)
	if l.minifyStates == nil {
		return false, false
	}
	return *l.minifyStates, true
}
