package domain

import "github.com/shopspring/decimal"

// CartLine is one product selected by the buyer.
type CartLine struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	Quantity     int             `json:"quantity"`
	BusinessName string          `json:"business_name,omitempty"`
}

// Subtotal returns price × quantity.
func (l CartLine) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart is the buyer's pending selection, keyed by line ID.
type Cart struct {
	Lines []CartLine `json:"lines"`
}

// Add increments the line for p.ID or appends a new line with quantity 1.
// It reports whether an existing line was incremented.
func (c *Cart) Add(p Product) bool {
	for i := range c.Lines {
		if c.Lines[i].ID == p.ID {
			c.Lines[i].Quantity++
			return true
		}
	}
	c.Lines = append(c.Lines, CartLine{
		ID:           p.ID,
		Name:         p.Name,
		Price:        p.Price,
		Quantity:     1,
		BusinessName: p.BusinessName,
	})
	return false
}

// Remove drops the line with the given id. Absent ids are ignored.
func (c *Cart) Remove(id string) bool {
	for i := range c.Lines {
		if c.Lines[i].ID == id {
			c.Lines = append(c.Lines[:i:i], c.Lines[i+1:]...)
			return true
		}
	}
	return false
}

// Deduct takes the quantities of lines out of the cart and drops lines that
// reach zero. Lines not named in lines are left alone.
func (c *Cart) Deduct(lines []CartLine) {
	taken := make(map[string]int, len(lines))
	for _, l := range lines {
		taken[l.ID] += l.Quantity
	}
	kept := c.Lines[:0:0]
	for _, l := range c.Lines {
		l.Quantity -= taken[l.ID]
		if l.Quantity > 0 {
			kept = append(kept, l)
		}
	}
	if len(kept) == 0 {
		kept = nil
	}
	c.Lines = kept
}

// Total is Σ price × quantity over all lines.
func (c Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.Lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// Snapshot returns a copy of the lines that shares no memory with c.
func (c Cart) Snapshot() []CartLine {
	out := make([]CartLine, len(c.Lines))
	copy(out, c.Lines)
	return out
}

func (c Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// ItemCount is the number of distinct lines.
func (c Cart) ItemCount() int {
	return len(c.Lines)
}
