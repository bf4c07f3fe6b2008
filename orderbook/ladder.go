package orderbook

import (
	"container/list"

	rbt "github.com/emirpasic/gods/v2/trees/redblacktree"

	"matchcore/domain"
)

// priceLevel is the FIFO sequence of resting orders at one price, one side.
// Orders is a container/list.List so a *list.Element stored in the book's id
// index is a stable position handle: it stays valid across insertions and
// unrelated removals at the same level, exactly the "stable-node list, not
// an array" requirement.
type priceLevel struct {
	price  int64
	orders *list.List // of *domain.Order, oldest first
	volume uint64
}

func newPriceLevel(price int64) *priceLevel {
	return &priceLevel{price: price, orders: list.New()}
}

// ladder is one side (bids or asks) of a symbol's book: a price -> level
// ordered map backed by a red-black tree, giving O(log P) insert/erase on
// distinct price levels where P is the number of levels on this side. The
// comparator is flipped for bids so that the tree's leftmost node — the one
// Left() returns in O(log P) — is always the best (highest) bid; for asks
// the natural ascending order already puts the best (lowest) ask on the
// left.
type ladder struct {
	tree *rbt.Tree[int64, *priceLevel]
}

func newLadder(descending bool) *ladder {
	cmp := func(a, b int64) int {
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		default:
			return 0
		}
	}
	if descending {
		inner := cmp
		cmp = func(a, b int64) int { return -inner(a, b) }
	}
	return &ladder{tree: rbt.NewWith[int64, *priceLevel](cmp)}
}

// levelFor returns the level at price, creating it if absent.
func (l *ladder) levelFor(price int64) *priceLevel {
	level, ok := l.tree.Get(price)
	if !ok {
		level = newPriceLevel(price)
		l.tree.Put(price, level)
	}
	return level
}

// best returns the best (lowest ask / highest bid) non-empty level, or nil.
func (l *ladder) best() *priceLevel {
	node := l.tree.Left()
	if node == nil {
		return nil
	}
	return node.Value
}

// dropIfEmpty erases the level's price key once its last order is removed —
// invariant 2: no price level is empty outside the critical section that
// drained it.
func (l *ladder) dropIfEmpty(level *priceLevel) {
	if level.orders.Len() == 0 {
		l.tree.Remove(level.price)
	}
}

// volumeAt returns the remaining quantity resting at price; 0 if absent.
// The level tracks its own running volume, updated by the caller on every
// insert/remove, so this is O(log P) for the lookup and O(1) after.
func (l *ladder) volumeAt(price int64) uint32 {
	level, ok := l.tree.Get(price)
	if !ok {
		return 0
	}
	return uint32(level.volume)
}

func (l *ladder) isEmpty() bool {
	return l.tree.Empty()
}

func (l *ladder) size() int {
	return l.tree.Size()
}
