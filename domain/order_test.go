package domain

import "testing"

func TestOrder_FillTransitionsStatus(t *testing.T) {
	o := NewLimitOrder(1, "BTCUSD", SideBuy, 100, 10)
	o.Fill(4)
	if o.Status != OrderStatusPartialFilled || o.Quantity != 6 {
		t.Fatalf("expected partial fill qty=6, got status=%v qty=%d", o.Status, o.Quantity)
	}
	o.Fill(6)
	if o.Status != OrderStatusFilled || !o.IsFilled() {
		t.Fatalf("expected fully filled, got status=%v qty=%d", o.Status, o.Quantity)
	}
}

func TestOrder_BeforeTimePriority(t *testing.T) {
	early := NewLimitOrder(2, "BTCUSD", SideBuy, 100, 1)
	early.Timestamp = 1
	late := NewLimitOrder(1, "BTCUSD", SideBuy, 100, 1)
	late.Timestamp = 2

	if !early.Before(late) {
		t.Errorf("expected earlier timestamp to win regardless of order id")
	}
	if late.Before(early) {
		t.Errorf("later timestamp must not win")
	}
}

func TestOrder_BeforeTieBreaksOnOrderID(t *testing.T) {
	a := NewLimitOrder(5, "BTCUSD", SideBuy, 100, 1)
	b := NewLimitOrder(9, "BTCUSD", SideBuy, 100, 1)
	a.Timestamp = 1
	b.Timestamp = 1

	if !a.Before(b) {
		t.Errorf("expected smaller order id to win a timestamp tie")
	}
	if b.Before(a) {
		t.Errorf("larger order id must not win a timestamp tie")
	}
}

func TestOrder_Cancel(t *testing.T) {
	o := NewLimitOrder(1, "BTCUSD", SideBuy, 100, 10)
	o.Cancel()
	if o.Status != OrderStatusCancelled {
		t.Errorf("expected cancelled status, got %v", o.Status)
	}
}
