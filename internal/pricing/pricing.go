// Package pricing owns the storefront's tax and shipping rules. Every surface
// that shows a cart or order total (cart view, checkout quote, order
// submission) goes through Compute so the numbers can never disagree.
package pricing

import "github.com/shopspring/decimal"

var (
	taxRate          = decimal.NewFromFloat(0.08)
	shippingFlat     = decimal.NewFromFloat(5.99)
	freeShippingOver = decimal.NewFromInt(50)
)

// Quote is a full price breakdown. Values are exact; rounding to cents
// happens only when a quote is rendered via Breakdown.
type Quote struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Shipping decimal.Decimal
	Total    decimal.Decimal
}

// Breakdown is the display form of a Quote, rounded to two decimal places.
type Breakdown struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Shipping float64 `json:"shipping"`
	Total    float64 `json:"total"`
}

// Compute applies the pricing rules to a cart subtotal: 8% tax, flat 5.99
// shipping waived when the subtotal is strictly over 50.
func Compute(subtotal float64) Quote {
	sub := decimal.NewFromFloat(subtotal)
	tax := sub.Mul(taxRate)
	shipping := shippingFlat
	if sub.GreaterThan(freeShippingOver) {
		shipping = decimal.Zero
	}
	return Quote{
		Subtotal: sub,
		Tax:      tax,
		Shipping: shipping,
		Total:    sub.Add(tax).Add(shipping),
	}
}

// Breakdown rounds the quote to cents for display.
func (q Quote) Breakdown() Breakdown {
	return Breakdown{
		Subtotal: round2(q.Subtotal),
		Tax:      round2(q.Tax),
		Shipping: round2(q.Shipping),
		Total:    round2(q.Total),
	}
}

// TotalAmount is the authoritative order total sent with checkout requests.
func (q Quote) TotalAmount() float64 {
	return round2(q.Total)
}

// FreeShipping reports whether the shipping charge was waived.
func (q Quote) FreeShipping() bool {
	return q.Shipping.IsZero()
}

func round2(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}
