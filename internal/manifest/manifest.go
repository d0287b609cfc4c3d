// Package manifest reads declarative expression manifests: TOML files with
// one [[expr]] table per named expression.
//
//	[[expr]]
//	name = "greeting"
//	kind = "cond"
//	cond = { var = "state.logged_in", type = "bool" }
//	then = "Welcome back"
//	else = "Sign in"
package manifest

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"rxvar/internal/diag"
)

// Expression kinds.
const (
	KindLiteral   = "literal"
	KindCond      = "cond"
	KindMatch     = "match"
	KindCall      = "call"
	KindColorMode = "color_mode"
)

var knownKinds = map[string]bool{
	KindLiteral:   true,
	KindCond:      true,
	KindMatch:     true,
	KindCall:      true,
	KindColorMode: true,
}

// Manifest is a decoded manifest file.
type Manifest struct {
	Path    string
	Entries []Entry
}

// Entry is one [[expr]] table. Which fields apply depends on Kind.
type Entry struct {
	Name string `toml:"name"`
	Kind string `toml:"kind"`

	// literal
	Value any `toml:"value"`

	// cond
	Cond any `toml:"cond"`
	Then any `toml:"then"`
	Else any `toml:"else"`

	// match
	Subject any        `toml:"subject"`
	Cases   []CaseSpec `toml:"cases"`
	Default any        `toml:"default"`

	// call
	Function string `toml:"function"`
	Args     []any  `toml:"args"`
	Returns  string `toml:"returns"`

	// color_mode
	Light any `toml:"light"`
	Dark  any `toml:"dark"`
}

// CaseSpec is one match arm: any value in When selects Then.
type CaseSpec struct {
	When []any `toml:"when"`
	Then any   `toml:"then"`
}

type file struct {
	Expr []Entry `toml:"expr"`
}

// Error is a manifest failure carrying a diagnostic code.
type Error struct {
	code  diag.Code
	Path  string
	Entry string
	Msg   string
}

func (e *Error) Error() string {
	var sb strings.Builder
	if e.Path != "" {
		sb.WriteString(e.Path)
		sb.WriteString(": ")
	}
	if e.Entry != "" {
		sb.WriteString("expr ")
		sb.WriteString(e.Entry)
		sb.WriteString(": ")
	}
	sb.WriteString(e.Msg)
	return sb.String()
}

func (e *Error) Code() diag.Code { return e.code }

// unknownKey reports the first undecoded top-level or entry-level key.
// Keys nested inside operand values are free-form and never reported.
func unknownKey(meta toml.MetaData) (toml.Key, bool) {
	for _, k := range meta.Undecoded() {
		if len(k) <= 2 {
			return k, true
		}
	}
	return nil, false
}

// Load reads and validates the manifest at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{code: diag.ManDecodeError, Path: path, Msg: err.Error()}
	}
	return Decode(path, data)
}

// Decode parses manifest text; path is only used in messages.
func Decode(path string, data []byte) (*Manifest, error) {
	var f file
	meta, err := toml.Decode(string(data), &f)
	if err != nil {
		return nil, &Error{code: diag.ManDecodeError, Path: path, Msg: fmt.Sprintf("failed to parse TOML: %v", err)}
	}
	if key, ok := unknownKey(meta); ok {
		return nil, &Error{code: diag.ManDecodeError, Path: path, Msg: fmt.Sprintf("unknown key %s", key)}
	}
	if !meta.IsDefined("expr") {
		return nil, &Error{code: diag.ManMissingField, Path: path, Msg: "missing [[expr]]"}
	}

	seen := make(map[string]bool, len(f.Expr))
	for i := range f.Expr {
		e := &f.Expr[i]
		e.Name = strings.TrimSpace(e.Name)
		e.Kind = strings.TrimSpace(e.Kind)
		if e.Name == "" {
			return nil, &Error{code: diag.ManMissingField, Path: path, Msg: fmt.Sprintf("expr #%d: missing name", i+1)}
		}
		if seen[e.Name] {
			return nil, &Error{code: diag.ManDuplicateName, Path: path, Entry: e.Name, Msg: "duplicate name"}
		}
		seen[e.Name] = true
		if !knownKinds[e.Kind] {
			return nil, &Error{
				code:  diag.ManUnknownKind,
				Path:  path,
				Entry: e.Name,
				Msg:   fmt.Sprintf("unknown kind %q (expected: literal|cond|match|call|color_mode)", e.Kind),
			}
		}
	}
	return &Manifest{Path: path, Entries: f.Expr}, nil
}
