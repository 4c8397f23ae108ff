package pricing

import "testing"

func TestComputeBelowFreeShippingThreshold(t *testing.T) {
	b := Compute(40.00).Breakdown()
	if b.Subtotal != 40.00 {
		t.Fatalf("expected subtotal 40.00, got %v", b.Subtotal)
	}
	if b.Tax != 3.20 {
		t.Fatalf("expected tax 3.20, got %v", b.Tax)
	}
	if b.Shipping != 5.99 {
		t.Fatalf("expected shipping 5.99, got %v", b.Shipping)
	}
	if b.Total != 49.19 {
		t.Fatalf("expected total 49.19, got %v", b.Total)
	}
}

func TestComputeAboveFreeShippingThreshold(t *testing.T) {
	q := Compute(60.00)
	if !q.FreeShipping() {
		t.Fatalf("expected free shipping at 60.00")
	}
	b := q.Breakdown()
	if b.Tax != 4.80 {
		t.Fatalf("expected tax 4.80, got %v", b.Tax)
	}
	if b.Shipping != 0 {
		t.Fatalf("expected shipping 0, got %v", b.Shipping)
	}
	if b.Total != 64.80 {
		t.Fatalf("expected total 64.80, got %v", b.Total)
	}
}

func TestComputeThresholdIsExclusive(t *testing.T) {
	// Exactly 50.00 still pays shipping; only strictly-greater subtotals ship free.
	if Compute(50.00).FreeShipping() {
		t.Fatalf("subtotal of exactly 50.00 must not ship free")
	}
	if !Compute(50.01).FreeShipping() {
		t.Fatalf("subtotal of 50.01 must ship free")
	}
}

func TestComputeZeroSubtotal(t *testing.T) {
	b := Compute(0).Breakdown()
	if b.Tax != 0 || b.Shipping != 5.99 || b.Total != 5.99 {
		t.Fatalf("unexpected breakdown for empty cart: %+v", b)
	}
}

func TestTotalAmountMatchesBreakdownTotal(t *testing.T) {
	q := Compute(12.49)
	if q.TotalAmount() != q.Breakdown().Total {
		t.Fatalf("TotalAmount %v != Breakdown total %v", q.TotalAmount(), q.Breakdown().Total)
	}
}
