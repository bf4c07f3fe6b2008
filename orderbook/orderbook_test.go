package orderbook

import (
	"testing"

	"matchcore/domain"
)

func limitOrder(id uint64, side domain.Side, price int64, qty uint32, ts int64) *domain.Order {
	o := domain.NewLimitOrder(id, "BTCUSD", side, price, qty)
	o.Timestamp = ts
	return o
}

// S1 — simple cross.
func TestMatchOrders_SimpleCross(t *testing.T) {
	ob := NewOrderBook("BTCUSD")

	if err := ob.AddOrder(limitOrder(1, domain.SideBuy, 100, 10, 1)); err != nil {
		t.Fatalf("add buy: %v", err)
	}
	if err := ob.AddOrder(limitOrder(2, domain.SideSell, 100, 5, 2)); err != nil {
		t.Fatalf("add sell: %v", err)
	}

	trades := ob.MatchOrders(3)
	if len(trades) != 1 {
		t.Fatalf("expected 1 trade, got %d", len(trades))
	}
	tr := trades[0]
	if tr.MakerOrderID != 1 || tr.TakerOrderID != 2 || tr.Price != 100 || tr.Quantity != 5 {
		t.Errorf("unexpected trade: %+v", tr)
	}

	if v := ob.VolumeAt(domain.SideBuy, 100); v != 5 {
		t.Errorf("expected bids[100]=5, got %d", v)
	}
	if _, ok := ob.BestAsk(); ok {
		t.Errorf("expected asks empty")
	}
}

// S2 — sweep multiple levels.
func TestMatchOrders_SweepMultipleLevels(t *testing.T) {
	ob := NewOrderBook("BTCUSD")

	must(t, ob.AddOrder(limitOrder(1, domain.SideSell, 101, 3, 1)))
	must(t, ob.AddOrder(limitOrder(2, domain.SideSell, 102, 3, 2)))
	must(t, ob.AddOrder(limitOrder(3, domain.SideSell, 103, 3, 3)))
	must(t, ob.AddOrder(limitOrder(4, domain.SideBuy, 103, 7, 4)))

	trades := ob.MatchOrders(5)
	want := []struct {
		maker, taker uint64
		price        int64
		qty          uint32
	}{
		{1, 4, 101, 3},
		{2, 4, 102, 3},
		{3, 4, 103, 1},
	}
	if len(trades) != len(want) {
		t.Fatalf("expected %d trades, got %d: %+v", len(want), len(trades), trades)
	}
	for i, w := range want {
		tr := trades[i]
		if tr.MakerOrderID != w.maker || tr.TakerOrderID != w.taker || tr.Price != w.price || tr.Quantity != w.qty {
			t.Errorf("trade %d: got %+v, want %+v", i, tr, w)
		}
	}

	if v := ob.VolumeAt(domain.SideSell, 103); v != 2 {
		t.Errorf("expected asks[103]=2, got %d", v)
	}
	if _, ok := ob.BestBid(); ok {
		t.Errorf("expected bids empty")
	}
}

// S3 — FIFO at a level.
func TestMatchOrders_FIFOWithinLevel(t *testing.T) {
	ob := NewOrderBook("BTCUSD")

	must(t, ob.AddOrder(limitOrder(1, domain.SideBuy, 100, 5, 1)))
	must(t, ob.AddOrder(limitOrder(2, domain.SideBuy, 100, 5, 2)))
	must(t, ob.AddOrder(limitOrder(3, domain.SideSell, 100, 5, 3)))

	trades := ob.MatchOrders(4)
	if len(trades) != 1 {
		t.Fatalf("expected 1 trade, got %d", len(trades))
	}
	if trades[0].MakerOrderID != 1 || trades[0].TakerOrderID != 3 {
		t.Errorf("expected maker=1 taker=3, got %+v", trades[0])
	}
	if v := ob.VolumeAt(domain.SideBuy, 100); v != 5 {
		t.Errorf("expected order 2 (qty 5) still resting, got volume %d", v)
	}
}

// S4 — cancel then no match.
func TestCancelOrder_ThenNoMatch(t *testing.T) {
	ob := NewOrderBook("BTCUSD")

	must(t, ob.AddOrder(limitOrder(1, domain.SideBuy, 100, 10, 1)))
	if ok := ob.CancelOrder(1); !ok {
		t.Fatalf("expected cancel to succeed")
	}
	must(t, ob.AddOrder(limitOrder(2, domain.SideSell, 100, 10, 2)))

	trades := ob.MatchOrders(3)
	if len(trades) != 0 {
		t.Fatalf("expected no trades, got %d", len(trades))
	}
	if v := ob.VolumeAt(domain.SideSell, 100); v != 10 {
		t.Errorf("expected asks[100]=10, got %d", v)
	}
}

// S5 — cancel unknown.
func TestCancelOrder_Unknown(t *testing.T) {
	ob := NewOrderBook("BTCUSD")
	if ok := ob.CancelOrder(999); ok {
		t.Errorf("expected cancel of unknown id to return false")
	}
	if trades := ob.MatchOrders(1); len(trades) != 0 {
		t.Errorf("expected no trades on empty book, got %d", len(trades))
	}
}

// Cancellation idempotence (property 6).
func TestCancelOrder_Idempotent(t *testing.T) {
	ob := NewOrderBook("BTCUSD")
	must(t, ob.AddOrder(limitOrder(1, domain.SideBuy, 100, 10, 1)))

	if ok := ob.CancelOrder(1); !ok {
		t.Fatalf("first cancel should return true")
	}
	if ok := ob.CancelOrder(1); ok {
		t.Fatalf("second cancel should return false")
	}
}

// Equal-priced cross edge case.
func TestMatchOrders_EqualPriceCrosses(t *testing.T) {
	ob := NewOrderBook("BTCUSD")
	must(t, ob.AddOrder(limitOrder(1, domain.SideBuy, 100, 10, 1)))
	must(t, ob.AddOrder(limitOrder(2, domain.SideSell, 100, 10, 2)))

	trades := ob.MatchOrders(3)
	if len(trades) != 1 || trades[0].Quantity != 10 {
		t.Fatalf("expected one full-size trade, got %+v", trades)
	}
	if !ob.bids.isEmpty() || !ob.asks.isEmpty() {
		t.Errorf("expected both sides empty after full cross")
	}
}

// Invariant 3: no crossed book observable at rest.
func TestInvariant_NeverCrossedAtRest(t *testing.T) {
	ob := NewOrderBook("BTCUSD")
	must(t, ob.AddOrder(limitOrder(1, domain.SideBuy, 105, 10, 1)))
	must(t, ob.AddOrder(limitOrder(2, domain.SideSell, 100, 10, 2)))
	ob.MatchOrders(3)

	bid, bidOK := ob.BestBid()
	ask, askOK := ob.BestAsk()
	if bidOK && askOK && bid >= ask {
		t.Errorf("book left crossed: bid=%d ask=%d", bid, ask)
	}
}

// Duplicate id rejected, book unchanged.
func TestAddOrder_DuplicateID(t *testing.T) {
	ob := NewOrderBook("BTCUSD")
	must(t, ob.AddOrder(limitOrder(1, domain.SideBuy, 100, 10, 1)))

	err := ob.AddOrder(limitOrder(1, domain.SideBuy, 101, 5, 2))
	if err == nil {
		t.Fatalf("expected duplicate id error")
	}
	if v := ob.VolumeAt(domain.SideBuy, 100); v != 10 {
		t.Errorf("original order mutated, volume=%d", v)
	}
	if v := ob.VolumeAt(domain.SideBuy, 101); v != 0 {
		t.Errorf("duplicate order leaked into book, volume=%d", v)
	}
}

// AddOrdersBatch validates before inserting anything.
func TestAddOrdersBatch_AllOrNothing(t *testing.T) {
	ob := NewOrderBook("BTCUSD")
	must(t, ob.AddOrder(limitOrder(1, domain.SideBuy, 100, 10, 1)))

	batch := []*domain.Order{
		limitOrder(2, domain.SideBuy, 99, 5, 2),
		limitOrder(1, domain.SideBuy, 98, 5, 3), // duplicate of order 1
	}
	if err := ob.AddOrdersBatch(batch); err == nil {
		t.Fatalf("expected batch to fail on duplicate id")
	}
	if v := ob.VolumeAt(domain.SideBuy, 99); v != 0 {
		t.Errorf("partial batch insert leaked order 2, volume=%d", v)
	}
}

func must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
