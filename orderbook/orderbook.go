// Package orderbook implements the per-symbol limit order book: bid/ask
// ladders in price-time priority, an O(1) cancel-by-id index, and the
// matching loop that crosses them.
package orderbook

import (
	"container/list"
	"fmt"
	"sync"

	"matchcore/domain"
)

// orderHandle is the id index's entry: enough to find an order's exact
// position without rescanning a level. elem is the stable *list.Element
// returned by container/list — it stays valid across unrelated
// insertions/removals at the same level.
type orderHandle struct {
	side  domain.Side
	price int64
	elem  *list.Element
}

// OrderBook holds the resting orders for one symbol. All mutation goes
// through the writer side of mu; BestBid, BestAsk and VolumeAt take the
// reader side so external observers (dashboards, tests) never block the
// matching path.
type OrderBook struct {
	symbol string

	mu    sync.RWMutex
	bids  *ladder // descending: best = highest price
	asks  *ladder // ascending: best = lowest price
	index map[uint64]*orderHandle
}

// NewOrderBook creates an empty book for symbol.
func NewOrderBook(symbol string) *OrderBook {
	return &OrderBook{
		symbol: symbol,
		bids:   newLadder(true),
		asks:   newLadder(false),
		index:  make(map[uint64]*orderHandle),
	}
}

// Symbol returns the book's symbol.
func (b *OrderBook) Symbol() string {
	return b.symbol
}

// AddOrder inserts a resting order at the tail of its (side, price) level.
//
// Preconditions: order.Quantity > 0, order.OrderID not already present in
// this book, order.Symbol equals the book's symbol, and order.Type is
// Limit or Market eligible for resting (Stop/StopLimit are rejected — no
// trigger logic is implemented). Violating any of these is a caller bug and
// returns a distinct error; the book is left unchanged.
func (b *OrderBook) AddOrder(order *domain.Order) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.addOrderLocked(order)
}

func (b *OrderBook) addOrderLocked(order *domain.Order) error {
	if err := b.validateLocked(order); err != nil {
		return err
	}
	b.insertLocked(order)
	b.checkInvariantsLocked()
	return nil
}

func (b *OrderBook) validateLocked(order *domain.Order) error {
	if order.Quantity == 0 {
		return fmt.Errorf("%w: quantity 0 for order %d", ErrInvalidOrder, order.OrderID)
	}
	if order.Symbol != b.symbol {
		return fmt.Errorf("%w: symbol %q does not match book %q", ErrInvalidOrder, order.Symbol, b.symbol)
	}
	switch order.Type {
	case domain.OrderTypeLimit, domain.OrderTypeMarket:
	default:
		return fmt.Errorf("%w: order type %v has no trigger logic", ErrInvalidOrder, order.Type)
	}
	if _, exists := b.index[order.OrderID]; exists {
		return fmt.Errorf("%w: order %d", ErrDuplicateOrderID, order.OrderID)
	}
	return nil
}

// insertLocked appends order to its level's FIFO tail and records its
// position in the id index. Caller must hold mu and have validated order.
func (b *OrderBook) insertLocked(order *domain.Order) {
	side := b.ladderFor(order.Side)
	level := side.levelFor(order.Price)

	elem := level.orders.PushBack(order)
	level.volume += uint64(order.Quantity)
	order.ListElement = elem
	order.Status = domain.OrderStatusResting

	b.index[order.OrderID] = &orderHandle{side: order.Side, price: order.Price, elem: elem}
}

// AddOrdersBatch inserts every order in orders, acquiring the book's writer
// lock exactly once. If any order fails its precondition, none are
// inserted: the whole batch is validated before the first insert.
func (b *OrderBook) AddOrdersBatch(orders []*domain.Order) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	seen := make(map[uint64]struct{}, len(orders))
	for _, order := range orders {
		if err := b.validateLocked(order); err != nil {
			return err
		}
		if _, dup := seen[order.OrderID]; dup {
			return fmt.Errorf("%w: order %d repeated within batch", ErrDuplicateOrderID, order.OrderID)
		}
		seen[order.OrderID] = struct{}{}
	}

	for _, order := range orders {
		b.insertLocked(order)
	}
	b.checkInvariantsLocked()
	return nil
}

// CancelOrder removes order id if present and reports whether a removal
// occurred. Re-cancelling an id already gone returns false, without error —
// cancellation is idempotent.
func (b *OrderBook) CancelOrder(orderID uint64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cancelLocked(orderID)
}

func (b *OrderBook) cancelLocked(orderID uint64) bool {
	handle, ok := b.index[orderID]
	if !ok {
		return false
	}
	delete(b.index, orderID)

	side := b.ladderFor(handle.side)
	level, levelOK := side.tree.Get(handle.price)
	if !levelOK {
		return false
	}

	order := handle.elem.Value.(*domain.Order)
	level.orders.Remove(handle.elem)
	level.volume -= uint64(order.Quantity)
	order.ListElement = nil
	order.Cancel()

	side.dropIfEmpty(level)
	b.checkInvariantsLocked()
	return true
}

func (b *OrderBook) ladderFor(side domain.Side) *ladder {
	if side == domain.SideBuy {
		return b.bids
	}
	return b.asks
}

// BestBid returns the highest resting bid price, or false if the bid side
// is empty.
func (b *OrderBook) BestBid() (int64, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	level := b.bids.best()
	if level == nil {
		return 0, false
	}
	return level.price, true
}

// BestAsk returns the lowest resting ask price, or false if the ask side is
// empty.
func (b *OrderBook) BestAsk() (int64, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	level := b.asks.best()
	if level == nil {
		return 0, false
	}
	return level.price, true
}

// VolumeAt sums the resting quantity on side at price; 0 if the level is
// absent.
func (b *OrderBook) VolumeAt(side domain.Side, price int64) uint32 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.ladderFor(side).volumeAt(price)
}

// Depth is a read-only snapshot of one price level, for inspection/testing.
type Depth struct {
	Price    int64
	Quantity uint32
	Orders   int
}

// DepthSnapshot returns up to levels price levels per side, best first.
func (b *OrderBook) DepthSnapshot(levels int) (bids, asks []Depth) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return snapshotSide(b.bids, levels), snapshotSide(b.asks, levels)
}

func snapshotSide(side *ladder, levels int) []Depth {
	if levels <= 0 {
		return nil
	}
	out := make([]Depth, 0, levels)
	it := side.tree.Iterator()
	for it.Next() && len(out) < levels {
		level := it.Value()
		out = append(out, Depth{Price: level.price, Quantity: uint32(level.volume), Orders: level.orders.Len()})
	}
	return out
}
