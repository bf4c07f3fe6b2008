package orderbook

import "errors"

// Error kinds returned by OrderBook operations. See domain.Order /
// AddOrder's precondition list for when each applies.
var (
	// ErrDuplicateOrderID is returned by AddOrder when the order's id is
	// already resting in this book. A caller bug: ids must be unique
	// within a run.
	ErrDuplicateOrderID = errors.New("orderbook: duplicate order id")

	// ErrInvalidOrder is returned by AddOrder for a zero-quantity order, a
	// symbol mismatch against the book, or an order type not eligible for
	// matching (Stop, StopLimit — no trigger logic is implemented).
	ErrInvalidOrder = errors.New("orderbook: invalid order")
)
