package vars

import (
	"sync/atomic"

	"rxvar/internal/vardata"
)

// memo holds a lazily computed value. The first reader computes the value and
// publishes it with a single pointer swap; concurrent readers may compute it
// twice but only ever observe nil or a complete value.
type memo[T any] struct {
	p atomic.Pointer[T]
}

func (m *memo[T]) get(compute func() T) T {
	if v := m.p.Load(); v != nil {
		return *v
	}
	v := compute()
	if m.p.CompareAndSwap(nil, &v) {
		return v
	}
	return *m.p.Load()
}

// cachedOp is embedded by operation nodes whose rendered text and merged
// metadata are derived from their children. Nodes embedding it must be used
// through a pointer.
type cachedOp struct {
	text memo[string]
	data memo[*vardata.VarData]
}

func (c *cachedOp) cachedText(compute func() string) string {
	return c.text.get(compute)
}

func (c *cachedOp) cachedData(compute func() *vardata.VarData) *vardata.VarData {
	return c.data.get(compute)
}
