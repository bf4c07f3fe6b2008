package orderbook

import (
	"container/list"

	"matchcore/domain"
)

// MatchOrders runs the matching algorithm to exhaustion and returns the
// trades produced, in the order they occurred.
//
// Repeatedly, while both ladders are non-empty: let B be the highest bid
// level and A the lowest ask level. If B's price < A's price, stop — no
// cross remains. Otherwise the head of B and the head of A trade at the
// maker's price (the one that arrived first; ties broken by order id), for
// qty = min(their remaining quantities). Any order left at zero quantity is
// removed from its level and the id index; an emptied level is erased from
// its ladder in the same step.
func (b *OrderBook) MatchOrders(now int64) []domain.Trade {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.matchLocked(now)
}

func (b *OrderBook) matchLocked(now int64) []domain.Trade {
	var trades []domain.Trade

	for {
		bidLevel := b.bids.best()
		askLevel := b.asks.best()
		if bidLevel == nil || askLevel == nil {
			break
		}
		if bidLevel.price < askLevel.price {
			break
		}

		buyElem := bidLevel.orders.Front()
		sellElem := askLevel.orders.Front()
		buyOrder := buyElem.Value.(*domain.Order)
		sellOrder := sellElem.Value.(*domain.Order)

		maker, taker := buyOrder, sellOrder
		if !buyOrder.Before(sellOrder) {
			maker, taker = sellOrder, buyOrder
		}

		qty := min32(buyOrder.Quantity, sellOrder.Quantity)
		trades = append(trades, domain.NewTrade(b.symbol, maker.Price, qty, maker, taker, now))

		buyOrder.Fill(qty)
		sellOrder.Fill(qty)
		bidLevel.volume -= uint64(qty)
		askLevel.volume -= uint64(qty)

		if buyOrder.IsFilled() {
			b.removeFilledLocked(b.bids, bidLevel, buyElem, buyOrder.OrderID)
		}
		if sellOrder.IsFilled() {
			b.removeFilledLocked(b.asks, askLevel, sellElem, sellOrder.OrderID)
		}
	}

	b.checkInvariantsLocked()
	return trades
}

// removeFilledLocked drops a fully-filled order from the head of level and
// from the id index, erasing level from side if it is now empty.
func (b *OrderBook) removeFilledLocked(side *ladder, level *priceLevel, elem *list.Element, orderID uint64) {
	level.orders.Remove(elem)
	elem.Value.(*domain.Order).ListElement = nil
	delete(b.index, orderID)
	side.dropIfEmpty(level)
}

func min32(a, b uint32) uint32 {
	if a < b {
		return a
	}
	return b
}
