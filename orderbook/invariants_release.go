//go:build !debuginvariants

package orderbook

// checkInvariantsLocked is a no-op in release builds; see
// invariants_debug.go for the real checks, enabled with -tags debuginvariants.
func (b *OrderBook) checkInvariantsLocked() {}
