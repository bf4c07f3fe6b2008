package domain

// Trade represents a single fill produced by the matching loop. Price is
// always the maker's resting price: price improvement accrues to the taker.
type Trade struct {
	MakerOrderID uint64
	TakerOrderID uint64
	Symbol       string
	Price        int64
	Quantity     uint32
	Timestamp    int64 // monotonic nanoseconds, the timestamp of the match step that produced it
}

// NewTrade builds the Trade for a single match step between maker and
// taker at the given price and quantity, stamped at now.
func NewTrade(symbol string, price int64, quantity uint32, maker, taker *Order, now int64) Trade {
	return Trade{
		MakerOrderID: maker.OrderID,
		TakerOrderID: taker.OrderID,
		Symbol:       symbol,
		Price:        price,
		Quantity:     quantity,
		Timestamp:    now,
	}
}
