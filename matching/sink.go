package matching

import (
	"sync"

	"matchcore/domain"
)

// RejectedOrder is the notification forwarded to a TradeSink when a worker
// catches a per-order precondition failure instead of letting it escape the
// worker boundary and break the pending-counter barrier.
type RejectedOrder struct {
	Order  domain.Order
	Reason error
}

// TradeSink is the engine's pluggable trade notification interface. Workers
// call OnTrades at least once per trade, in emission order per symbol;
// across symbols there is no ordering guarantee. OnRejected is called for
// every order a worker could not insert.
type TradeSink interface {
	OnTrades(symbol string, trades []domain.Trade)
	OnRejected(rejected RejectedOrder)
}

// InMemoryTradeSink accumulates everything it is handed behind a mutex.
// Intended for tests and the CLI's summary printout, not for a production
// hot path competing across many symbols.
type InMemoryTradeSink struct {
	mu       sync.Mutex
	trades   []domain.Trade
	rejected []RejectedOrder
}

// NewInMemoryTradeSink returns a ready-to-use sink.
func NewInMemoryTradeSink() *InMemoryTradeSink {
	return &InMemoryTradeSink{}
}

func (s *InMemoryTradeSink) OnTrades(symbol string, trades []domain.Trade) {
	if len(trades) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trades = append(s.trades, trades...)
}

func (s *InMemoryTradeSink) OnRejected(rejected RejectedOrder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rejected = append(s.rejected, rejected)
}

// Trades returns a snapshot of every trade recorded so far.
func (s *InMemoryTradeSink) Trades() []domain.Trade {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Trade, len(s.trades))
	copy(out, s.trades)
	return out
}

// Rejected returns a snapshot of every rejection recorded so far.
func (s *InMemoryTradeSink) Rejected() []RejectedOrder {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]RejectedOrder, len(s.rejected))
	copy(out, s.rejected)
	return out
}

// ChannelTradeSink forwards trades and rejections onto buffered channels, a
// producer/consumer shape for streaming fills out of the matching path. A
// send on a full channel blocks the calling worker until a consumer drains
// it; nothing is dropped.
type ChannelTradeSink struct {
	Trades   chan domain.Trade
	Rejected chan RejectedOrder
}

// NewChannelTradeSink returns a sink with both channels buffered to size.
func NewChannelTradeSink(size int) *ChannelTradeSink {
	return &ChannelTradeSink{
		Trades:   make(chan domain.Trade, size),
		Rejected: make(chan RejectedOrder, size),
	}
}

func (s *ChannelTradeSink) OnTrades(symbol string, trades []domain.Trade) {
	for _, tr := range trades {
		s.Trades <- tr
	}
}

func (s *ChannelTradeSink) OnRejected(rejected RejectedOrder) {
	s.Rejected <- rejected
}
