package domain

// CartLine pairs one soup with a quantity. A stored line always has
// quantity >= 1; lines that drop to zero are removed, never persisted.
type CartLine struct {
	Soup     Soup `json:"soup"`
	Quantity int  `json:"quantity"`
}

// Cart is the ordered set of lines for one browser session. TotalItems and
// TotalPrice are derived from the lines on every materialization and are
// never stored.
type Cart struct {
	Lines      []CartLine `json:"items"`
	TotalItems int        `json:"totalItems"`
	TotalPrice float64    `json:"totalPrice"`
}

// Recompute refreshes the derived totals from the current lines.
func (c *Cart) Recompute() {
	items := 0
	price := 0.0
	for _, line := range c.Lines {
		items += line.Quantity
		price += line.Soup.Price * float64(line.Quantity)
	}
	c.TotalItems = items
	c.TotalPrice = price
}

// LineFor returns the index of the line holding soupID, or -1.
func (c *Cart) LineFor(soupID int) int {
	for i, line := range c.Lines {
		if line.Soup.ID == soupID {
			return i
		}
	}
	return -1
}
