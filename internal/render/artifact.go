// Package render is the hand-off point to the external build pipeline: it
// turns finished expression trees into artifacts (text plus the imports and
// hooks they need) and emits them as a single script module.
package render

import (
	"encoding/hex"
	"strings"
	"unicode"
	"unicode/utf8"

	"rxvar/internal/vardata"
	"rxvar/internal/vars"
)

// Named binds an expression to the identifier it is exported as.
type Named struct {
	Name string
	Var  vars.Var
}

// Artifact is the rendered form of one named expression.
type Artifact struct {
	Name        string   `json:"name" msgpack:"-"`
	Expr        string   `json:"expr" msgpack:"expr"`
	Type        string   `json:"type" msgpack:"type"`
	Kind        string   `json:"kind" msgpack:"kind"`
	Imports     []string `json:"imports,omitempty" msgpack:"imports"`
	Hooks       []string `json:"hooks,omitempty" msgpack:"hooks"`
	Components  bool     `json:"components,omitempty" msgpack:"components"`
	Fingerprint string   `json:"fingerprint" msgpack:"fingerprint"`
	Cached      bool     `json:"cached,omitempty" msgpack:"-"`

	data *vardata.VarData
}

// NewArtifact renders n. Rendering reads the node's memoized text and
// metadata, so it is safe to call concurrently on shared subtrees.
func NewArtifact(n Named) Artifact {
	fp := vars.Fingerprint(n.Var)
	data := n.Var.Data()
	a := Artifact{
		Name:        n.Name,
		Expr:        n.Var.String(),
		Type:        n.Var.Type().String(),
		Kind:        n.Var.Kind().String(),
		Imports:     data.ImportLines(),
		Hooks:       data.HookLines(),
		Fingerprint: hex.EncodeToString(fp[:]),
		data:        data,
	}
	if data != nil {
		a.Components = data.Components
	}
	return a
}

// Module emits artifacts as one script module: the merged import block, then
// one export per artifact in order. Artifacts without hooks are exported as
// constants. An artifact that needs hooks is exported as a hook function that
// declares its hooks and returns the expression, since hooks only run inside
// a component render:
//
//	export function useBg() {
//	  const { resolvedColorMode } = useContext(ColorModeContext)
//	  return (...);
//	}
func Module(arts []Artifact) string {
	var sb strings.Builder

	for _, line := range mergedImports(arts) {
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	if sb.Len() > 0 {
		sb.WriteString("\n")
	}

	for _, a := range arts {
		if len(a.Hooks) == 0 {
			sb.WriteString("export const ")
			sb.WriteString(a.Name)
			sb.WriteString(" = ")
			sb.WriteString(a.Expr)
			sb.WriteString(";\n")
			continue
		}
		sb.WriteString("export function ")
		sb.WriteString(a.HookName())
		sb.WriteString("() {\n")
		for _, h := range a.Hooks {
			sb.WriteString("  ")
			sb.WriteString(strings.TrimSpace(h))
			sb.WriteString("\n")
		}
		sb.WriteString("  return ")
		sb.WriteString(a.Expr)
		sb.WriteString(";\n}\n")
	}
	return sb.String()
}

// HookName is the exported function name for an artifact with hooks: "bg"
// becomes "useBg".
func (a Artifact) HookName() string {
	r, size := utf8.DecodeRuneInString(a.Name)
	if size == 0 {
		return "use"
	}
	return "use" + string(unicode.ToUpper(r)) + a.Name[size:]
}

func mergedImports(arts []Artifact) []string {
	parts := make([]*vardata.VarData, len(arts))
	for i, a := range arts {
		parts[i] = a.data
	}
	merged := vardata.Merge(parts...)
	return merged.ImportLines()
}
