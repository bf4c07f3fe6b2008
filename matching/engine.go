// Package matching is the engine dispatch and worker-pool layer: it owns
// the symbol -> OrderBook map and a fixed worker pool, and partitions an
// incoming batch of commands by symbol so independent symbols are matched
// in parallel without contention.
package matching

import (
	"sync"

	"github.com/rs/zerolog"

	"matchcore/config"
	"matchcore/domain"
	"matchcore/orderbook"
)

// MatchingEngine routes commands to per-symbol order books, dispatching
// batches across a fixed worker pool. A book, once created, persists for
// the engine's lifetime; a bare *orderbook.OrderBook pointer is all the
// "shared ownership" spec.md's design notes ask for — Go's garbage
// collector keeps it alive for as long as the map or any in-flight worker
// task still references it.
type MatchingEngine struct {
	cfg   config.Config
	clock domain.Clock
	sink  TradeSink
	log   zerolog.Logger

	booksMu sync.Mutex
	books   map[string]*orderbook.OrderBook

	pool *pool

	shutdownMu sync.Mutex
	shutdown   bool
}

// New constructs a MatchingEngine and starts its worker pool. clock stamps
// every order's Timestamp at ingest; sink receives trades and rejections.
func New(cfg config.Config, clock domain.Clock, sink TradeSink, log zerolog.Logger) *MatchingEngine {
	cfg = cfg.WithDefaults()
	e := &MatchingEngine{
		cfg:   cfg,
		clock: clock,
		sink:  sink,
		log:   log,
		books: make(map[string]*orderbook.OrderBook),
	}
	e.pool = newPool(cfg.NumWorkers, e.runSymbolTask)
	e.log.Info().Int("workers", cfg.NumWorkers).Msg("matching engine started")
	return e
}

// getOrCreateBook resolves symbol's book, creating it on first reference.
// The engine-level mutex is held only long enough to look up or insert the
// map entry; book operations themselves always run outside it.
func (e *MatchingEngine) getOrCreateBook(symbol string) *orderbook.OrderBook {
	e.booksMu.Lock()
	defer e.booksMu.Unlock()

	book, ok := e.books[symbol]
	if !ok {
		book = orderbook.NewOrderBook(symbol)
		e.books[symbol] = book
		e.log.Info().Str("symbol", symbol).Msg("order book created")
	}
	return book
}

// GetOrderBook returns symbol's book for inspection/testing, or false if no
// order has ever referenced that symbol.
func (e *MatchingEngine) GetOrderBook(symbol string) (*orderbook.OrderBook, bool) {
	e.booksMu.Lock()
	defer e.booksMu.Unlock()
	book, ok := e.books[symbol]
	return book, ok
}

// ProcessOrder is the single-order path: stamp, resolve/create the book,
// insert, match, and surface every resulting trade to the sink.
func (e *MatchingEngine) ProcessOrder(order domain.Order) error {
	if e.isShutdown() {
		return ErrEngineShutdown
	}

	order.Timestamp = e.clock.Now()
	book := e.getOrCreateBook(order.Symbol)

	if err := book.AddOrder(&order); err != nil {
		e.sink.OnRejected(RejectedOrder{Order: order, Reason: err})
		return err
	}

	trades := book.MatchOrders(e.clock.Now())
	e.sink.OnTrades(order.Symbol, trades)
	return nil
}

// ProcessBatch is the hot path: it partitions the batch's NewOrder commands
// by symbol, dispatches one task per symbol to the worker pool, and blocks
// until every task has been applied (the pending-counter barrier in pool.go
// replaces spec.md's rejected polling-loop design). Non-NewOrder variants
// have no dispatch path yet: Cancel, Modify and unknown variants are logged
// at warn level and skipped. A future Cancel path would grow a case here,
// not change the NewOrder one.
func (e *MatchingEngine) ProcessBatch(commands []domain.Command) error {
	if e.isShutdown() {
		return ErrEngineShutdown
	}
	if len(commands) == 0 {
		return nil
	}

	groups := make(map[string][]*domain.Order)
	for _, cmd := range commands {
		switch c := cmd.(type) {
		case domain.NewOrderCommand:
			order := c.Order
			order.Timestamp = e.clock.Now()
			groups[order.Symbol] = append(groups[order.Symbol], &order)
		case domain.CancelCommand, domain.ModifyCommand:
			// Reserved variants: no dispatch path exists yet. Logged
			// rather than silently dropped so a caller notices.
			e.log.Warn().Type("command", cmd).Msg("unsupported command variant in batch")
		default:
			e.log.Warn().Type("command", cmd).Msg("unknown command variant in batch")
		}
	}

	tasks := make([]*task, 0, len(groups))
	for symbol, orders := range groups {
		tasks = append(tasks, &task{symbol: symbol, orders: orders})
	}

	e.pool.submit(tasks)
	return nil
}

// runSymbolTask is what each worker runs for a dequeued (symbol, orders)
// task: resolve/create the book, then interleave bounded-size inserts with
// match passes. Chunking bounds worst-case queue depth at a single level
// and keeps match passes cache-local instead of inserting everything before
// matching once.
func (e *MatchingEngine) runSymbolTask(t *task) {
	book := e.getOrCreateBook(t.symbol)

	chunkSize := e.cfg.MatchBatchSize
	for start := 0; start < len(t.orders); start += chunkSize {
		end := min(start+chunkSize, len(t.orders))
		chunk := t.orders[start:end]

		if err := book.AddOrdersBatch(chunk); err != nil {
			e.rejectChunk(chunk, err)
			continue
		}

		trades := book.MatchOrders(e.clock.Now())
		e.sink.OnTrades(t.symbol, trades)
	}
}

// rejectChunk reports every order in chunk as rejected when AddOrdersBatch
// fails validation for the whole chunk (spec.md: validate first, insert
// nothing on failure). The caller isn't told which single order in the
// chunk was the culprit — AddOrdersBatch's all-or-nothing contract doesn't
// expose that — so every order in the rejected chunk is reported.
func (e *MatchingEngine) rejectChunk(chunk []*domain.Order, err error) {
	for _, order := range chunk {
		e.sink.OnRejected(RejectedOrder{Order: *order, Reason: err})
	}
}

// CancelOrder looks up symbol's book under the engine-level critical
// section, then cancels under the book's own lock outside it. Returns
// false, without error, if the symbol has no book or the id isn't resting.
func (e *MatchingEngine) CancelOrder(orderID uint64, symbol string) bool {
	e.booksMu.Lock()
	book, ok := e.books[symbol]
	e.booksMu.Unlock()
	if !ok {
		return false
	}
	return book.CancelOrder(orderID)
}

// Stop shuts the engine down: no new ProcessOrder/ProcessBatch calls are
// accepted, the current batch (if any) is allowed to drain, then every
// worker is joined. Workers are long-lived; there is no per-batch respawn.
func (e *MatchingEngine) Stop() {
	e.shutdownMu.Lock()
	e.shutdown = true
	e.shutdownMu.Unlock()

	e.pool.stop()
	e.log.Info().Msg("matching engine stopped")
}

func (e *MatchingEngine) isShutdown() bool {
	e.shutdownMu.Lock()
	defer e.shutdownMu.Unlock()
	return e.shutdown
}
