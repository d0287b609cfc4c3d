package vars

import (
	"strings"

	"rxvar/internal/types"
	"rxvar/internal/vardata"
)

// MatchCase is one lifted arm of a dispatch: any of Patterns selects Return.
type MatchCase struct {
	Patterns []Var
	Return   Var
}

// MatchVar dispatches on a subject expression. Cases are tried in order and
// the first matching pattern wins; the default is only evaluated when no
// case matches.
type MatchVar struct {
	cachedOp
	subject Var
	cases   []MatchCase
	def     Var
	typ     types.Type
}

// NewMatch builds a dispatch node. Shape validation belongs to the caller;
// NewMatch only rejects structurally empty input.
func NewMatch(subject Var, cases []MatchCase, def Var) (*MatchVar, error) {
	if subject == nil {
		return nil, valueErrorf("match subject must be set")
	}
	if len(cases) == 0 {
		return nil, valueErrorf("rx.match should have at least one case.")
	}
	if def == nil {
		return nil, valueErrorf("match default must be set")
	}
	cs := make([]MatchCase, len(cases))
	for i, c := range cases {
		if len(c.Patterns) == 0 || c.Return == nil {
			return nil, valueErrorf("A case tuple should have at least a match case element and a return value.")
		}
		cs[i] = MatchCase{Patterns: append([]Var(nil), c.Patterns...), Return: c.Return}
	}
	return &MatchVar{subject: subject, cases: cs, def: def, typ: cs[0].Return.Type()}, nil
}

func (m *MatchVar) String() string {
	return m.cachedText(func() string {
		var sb strings.Builder
		sb.WriteString("(() => { switch (JSON.stringify(")
		sb.WriteString(m.subject.String())
		sb.WriteString(")) {")
		for _, c := range m.cases {
			conds := make([]string, len(c.Patterns))
			for i, p := range c.Patterns {
				conds[i] = "case JSON.stringify(" + p.String() + "):"
			}
			sb.WriteString(strings.Join(conds, " "))
			sb.WriteString("  return (")
			sb.WriteString(c.Return.String())
			sb.WriteString(");  break;")
		}
		sb.WriteString("default:  return (")
		sb.WriteString(m.def.String())
		sb.WriteString(");  break;")
		sb.WriteString("};})()")
		return sb.String()
	})
}

func (m *MatchVar) Data() *vardata.VarData {
	return m.cachedData(func() *vardata.VarData {
		all := []Var{m.subject}
		for _, c := range m.cases {
			all = append(all, c.Patterns...)
			all = append(all, c.Return)
		}
		all = append(all, m.def)
		return mergeData(all...)
	})
}

func (m *MatchVar) Type() types.Type { return m.typ }
func (m *MatchVar) Kind() NodeKind   { return NodeMatch }

// Default returns the default arm.
func (m *MatchVar) Default() Var { return m.def }

// Cases returns the dispatch arms in order.
func (m *MatchVar) Cases() []MatchCase { return append([]MatchCase(nil), m.cases...) }
