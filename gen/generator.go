// Package gen provides synthetic order generators used by the benchmark and
// CLI entry points. None of this is part of the matching core: spec.md scopes
// the generator out as "referenced only by interface", so this package only
// needs to produce commands the core will accept, not be fast or exhaustive.
package gen

import (
	"fmt"
	"math/rand/v2"

	"matchcore/domain"
)

// Generator produces a deterministic-shape batch of NewOrderCommands against
// a fixed symbol set. Every Timestamp is left zero; the engine's Clock
// stamps it on ingest, not the generator.
type Generator interface {
	Generate(numOrders, numSymbols int) []domain.Command
}

// deterministicGenerator is seeded so repeated runs (same seed, same shape)
// produce byte-identical command streams, which is what lets a benchmark
// compare two engine configurations on the same synthetic workload.
type deterministicGenerator struct {
	rng       *rand.Rand
	minPrice  int64
	maxPrice  int64
	maxQty    uint32
	nextOrder uint64
}

// New returns a Generator seeded with seed. minPrice/maxPrice bound the
// uniform price range (inclusive); maxQty bounds quantity, which is always
// at least 1.
func New(seed uint64, minPrice, maxPrice int64, maxQty uint32) Generator {
	if maxPrice <= minPrice {
		maxPrice = minPrice + 1
	}
	if maxQty < 1 {
		maxQty = 1
	}
	return &deterministicGenerator{
		rng:      rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		minPrice: minPrice,
		maxPrice: maxPrice,
		maxQty:   maxQty,
	}
}

// Generate returns numOrders commands spread uniformly at random across
// numSymbols symbols named "SYM0".."SYM<n-1>", each order's side drawn as
// buy or sell with equal probability so most runs produce a meaningful
// number of crosses rather than a one-sided book.
func (g *deterministicGenerator) Generate(numOrders, numSymbols int) []domain.Command {
	if numSymbols < 1 {
		numSymbols = 1
	}
	symbols := make([]string, numSymbols)
	for i := range symbols {
		symbols[i] = fmt.Sprintf("SYM%d", i)
	}

	commands := make([]domain.Command, 0, numOrders)
	priceSpan := g.maxPrice - g.minPrice

	for i := 0; i < numOrders; i++ {
		g.nextOrder++
		symbol := symbols[g.rng.IntN(numSymbols)]
		side := domain.SideBuy
		if g.rng.IntN(2) == 1 {
			side = domain.SideSell
		}
		price := g.minPrice + int64(g.rng.IntN(int(priceSpan)+1))
		qty := uint32(g.rng.IntN(int(g.maxQty))) + 1

		order := domain.NewLimitOrder(g.nextOrder, symbol, side, price, qty)
		commands = append(commands, domain.NewOrderCommand{Order: *order})
	}
	return commands
}
