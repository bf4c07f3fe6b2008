package matching

import (
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
)

// IDGenerator produces short, human-readable, monotonically-increasing
// string ids. Not used for Order/Trade identity (those are caller-supplied
// uint64s per the core contract) — it backs the run ids cmd/exchanged stamps
// onto log lines and recorded result rows. The counter lives in memory and
// starts from zero in every process.
//
// Uses strings.Builder + a sync.Pool of builders to avoid per-call
// allocation, and strconv over fmt.Sprintf for the numeric half.
type IDGenerator struct {
	prefix      string
	counter     uint64
	builderPool sync.Pool
}

// NewIDGenerator creates a generator that prefixes every id with prefix.
func NewIDGenerator(prefix string) *IDGenerator {
	gen := &IDGenerator{prefix: prefix}
	gen.builderPool = sync.Pool{
		New: func() any {
			b := &strings.Builder{}
			b.Grow(24)
			return b
		},
	}
	return gen
}

// Next returns the next id: prefix + an atomically-incremented counter
// (e.g. "run-1", "run-2", ...).
func (g *IDGenerator) Next() string {
	count := atomic.AddUint64(&g.counter, 1)

	b := g.builderPool.Get().(*strings.Builder)
	defer func() {
		b.Reset()
		g.builderPool.Put(b)
	}()

	b.WriteString(g.prefix)
	b.WriteString(strconv.FormatUint(count, 10))

	return b.String()
}
