//go:build debuginvariants

package orderbook

import "fmt"

// checkInvariantsLocked defensively re-verifies the book's core invariants.
// Only compiled into debuginvariants builds; release builds call the
// zero-cost stub in invariants_release.go. Panics — these are supposed to
// be unreachable — rather than returning an error, since by the
// time one trips the book is already in a state no caller can safely act on.
func (b *OrderBook) checkInvariantsLocked() {
	indexCount := len(b.index)
	levelCount := countOrders(b.bids) + countOrders(b.asks)
	if indexCount != levelCount {
		panic(fmt.Sprintf("orderbook: id index size %d does not match resting order count %d", indexCount, levelCount))
	}

	if bid := b.bids.best(); bid != nil {
		if ask := b.asks.best(); ask != nil && bid.price >= ask.price {
			panic(fmt.Sprintf("orderbook: crossed book bid=%d ask=%d", bid.price, ask.price))
		}
	}
}

func countOrders(side *ladder) int {
	count := 0
	it := side.tree.Iterator()
	for it.Next() {
		count += it.Value().orders.Len()
	}
	return count
}
