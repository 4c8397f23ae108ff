package domain

import "testing"

func TestCartRecompute(t *testing.T) {
	cart := Cart{Lines: []CartLine{
		{Soup: Soup{ID: 1, Price: 5.00}, Quantity: 2},
		{Soup: Soup{ID: 2, Price: 7.50}, Quantity: 1},
	}}
	cart.Recompute()
	if cart.TotalItems != 3 {
		t.Fatalf("expected 3 items, got %d", cart.TotalItems)
	}
	if cart.TotalPrice != 17.50 {
		t.Fatalf("expected total 17.50, got %v", cart.TotalPrice)
	}
}

func TestCartRecomputeEmpty(t *testing.T) {
	var cart Cart
	cart.Recompute()
	if cart.TotalItems != 0 || cart.TotalPrice != 0 {
		t.Fatalf("expected zero totals, got %+v", cart)
	}
}

func TestCartLineFor(t *testing.T) {
	cart := Cart{Lines: []CartLine{{Soup: Soup{ID: 7}, Quantity: 1}}}
	if idx := cart.LineFor(7); idx != 0 {
		t.Fatalf("expected index 0, got %d", idx)
	}
	if idx := cart.LineFor(8); idx != -1 {
		t.Fatalf("expected -1 for missing soup, got %d", idx)
	}
}

func TestOrderStatusCancellable(t *testing.T) {
	cases := map[OrderStatus]bool{
		OrderPending:    true,
		OrderProcessing: true,
		OrderShipped:    false,
		OrderDelivered:  false,
		OrderCancelled:  false,
	}
	for status, want := range cases {
		if got := status.Cancellable(); got != want {
			t.Fatalf("status %s: expected cancellable=%v, got %v", status, want, got)
		}
	}
}
