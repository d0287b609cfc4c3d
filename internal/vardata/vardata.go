// Package vardata holds the metadata a rendered expression needs from its
// surrounding generated module: imports, hook declarations and the
// componentness flag.
package vardata

import (
	"crypto/sha256"
	"sort"
	"strings"
)

// ImportVar is a single imported binding.
type ImportVar struct {
	Tag       string
	IsDefault bool
	Alias     string
}

// Name returns the binding as it is visible in the generated module.
func (iv ImportVar) Name() string {
	if iv.Alias != "" {
		return iv.Alias
	}
	return iv.Tag
}

func (iv ImportVar) render() string {
	if iv.Alias != "" && !iv.IsDefault {
		return iv.Tag + " as " + iv.Alias
	}
	return iv.Name()
}

// LibImports is the set of bindings imported from one library.
type LibImports struct {
	Lib  string
	Vars []ImportVar
}

// VarData is immutable once built; Merge always returns a fresh value.
type VarData struct {
	// State is the backend state the expression reads from, if any.
	State string
	// Imports are kept in first-seen library order.
	Imports []LibImports
	// Hooks are kept in first-seen order.
	Hooks []string
	// Components marks expressions that render UI fragments.
	Components bool
}

// Imports builds VarData from lib -> tags pairs. Library order follows the
// argument order.
func Imports(lib string, tags ...string) *VarData {
	vars := make([]ImportVar, 0, len(tags))
	for _, t := range tags {
		vars = append(vars, ImportVar{Tag: t})
	}
	return &VarData{Imports: []LibImports{{Lib: lib, Vars: vars}}}
}

// Hooks builds VarData holding hook declarations.
func Hooks(hooks ...string) *VarData {
	return &VarData{Hooks: append([]string(nil), hooks...)}
}

// IsEmpty reports whether d carries no information.
func (d *VarData) IsEmpty() bool {
	return d == nil || (d.State == "" && len(d.Imports) == 0 && len(d.Hooks) == 0 && !d.Components)
}

// Merge unions metadata bags. Libraries, tags and hooks keep the order in
// which they were first seen; duplicates are dropped. The first non-empty
// State wins. Nil and empty inputs are ignored; the result is nil when all
// inputs are empty.
func Merge(parts ...*VarData) *VarData {
	out := &VarData{}
	libIndex := make(map[string]int)
	seenTag := make(map[string]map[ImportVar]bool)
	seenHook := make(map[string]bool)
	for _, p := range parts {
		if p.IsEmpty() {
			continue
		}
		if out.State == "" {
			out.State = p.State
		}
		out.Components = out.Components || p.Components
		for _, li := range p.Imports {
			idx, ok := libIndex[li.Lib]
			if !ok {
				idx = len(out.Imports)
				libIndex[li.Lib] = idx
				out.Imports = append(out.Imports, LibImports{Lib: li.Lib})
				seenTag[li.Lib] = make(map[ImportVar]bool)
			}
			for _, iv := range li.Vars {
				if seenTag[li.Lib][iv] {
					continue
				}
				seenTag[li.Lib][iv] = true
				out.Imports[idx].Vars = append(out.Imports[idx].Vars, iv)
			}
		}
		for _, h := range p.Hooks {
			if seenHook[h] {
				continue
			}
			seenHook[h] = true
			out.Hooks = append(out.Hooks, h)
		}
	}
	if out.IsEmpty() {
		return nil
	}
	return out
}

// ImportLines renders one import statement per library, sorted by library
// so that output is independent of merge order.
func (d *VarData) ImportLines() []string {
	if d == nil {
		return nil
	}
	libs := make([]LibImports, len(d.Imports))
	copy(libs, d.Imports)
	sort.SliceStable(libs, func(i, j int) bool { return libs[i].Lib < libs[j].Lib })

	lines := make([]string, 0, len(libs))
	for _, li := range libs {
		var def string
		named := make([]string, 0, len(li.Vars))
		for _, iv := range li.Vars {
			if iv.IsDefault {
				def = iv.Name()
				continue
			}
			named = append(named, iv.render())
		}
		sort.Strings(named)
		var parts []string
		if def != "" {
			parts = append(parts, def)
		}
		if len(named) > 0 {
			parts = append(parts, "{ "+strings.Join(named, ", ")+" }")
		}
		if len(parts) == 0 {
			lines = append(lines, `import "`+li.Lib+`";`)
			continue
		}
		lines = append(lines, "import "+strings.Join(parts, ", ")+` from "`+li.Lib+`";`)
	}
	return lines
}

// HookLines returns hook declarations in first-seen order.
func (d *VarData) HookLines() []string {
	if d == nil {
		return nil
	}
	return append([]string(nil), d.Hooks...)
}

// Fingerprint is a structural digest; equal bags hash equally.
func (d *VarData) Fingerprint() [32]byte {
	h := sha256.New()
	if d != nil {
		_, _ = h.Write([]byte(d.State))
		_, _ = h.Write([]byte{0})
		for _, li := range d.Imports {
			_, _ = h.Write([]byte("lib:" + li.Lib))
			for _, iv := range li.Vars {
				_, _ = h.Write([]byte{0})
				_, _ = h.Write([]byte(iv.Tag + "|" + iv.Alias))
				if iv.IsDefault {
					_, _ = h.Write([]byte{1})
				}
			}
			_, _ = h.Write([]byte{0})
		}
		for _, hk := range d.Hooks {
			_, _ = h.Write([]byte("hook:" + hk))
			_, _ = h.Write([]byte{0})
		}
		if d.Components {
			_, _ = h.Write([]byte{2})
		}
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}
