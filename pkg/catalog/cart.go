package catalog

import "github.com/matzehuels/parcelview/pkg/errors"

// Line is a catalog item with a quantity. Lines held by a [Cart] always
// have a positive quantity.
type Line struct {
	Item     Item `json:"item"`
	Quantity int  `json:"quantity"`
}

// Request is the wire form of a cart line, as sent to the packing engine.
type Request struct {
	ProductID int `json:"productId" yaml:"productId" toml:"productId"`
	Quantity  int `json:"quantity" yaml:"quantity" toml:"quantity"`
}

// Cart is an ordered list of lines keyed by item ID. Lines keep the order in
// which items were first added. A Cart is not safe for concurrent use.
type Cart struct {
	lines []Line
}

// NewCart returns a cart holding lines, merging repeated items and dropping
// non-positive quantities.
func NewCart(lines ...Line) *Cart {
	c := &Cart{}
	for _, l := range lines {
		if l.Quantity <= 0 {
			continue
		}
		if i := c.index(l.Item.ID); i >= 0 {
			c.lines[i].Quantity += l.Quantity
			continue
		}
		c.lines = append(c.lines, l)
	}
	return c
}

// Add puts one more of item into the cart.
func (c *Cart) Add(item Item) {
	if i := c.index(item.ID); i >= 0 {
		c.lines[i].Quantity++
		return
	}
	c.lines = append(c.lines, Line{Item: item, Quantity: 1})
}

// Increment raises the quantity of an item already in the cart.
// It reports whether the item was found.
func (c *Cart) Increment(id int) bool {
	i := c.index(id)
	if i < 0 {
		return false
	}
	c.lines[i].Quantity++
	return true
}

// Decrement lowers the quantity of an item, removing the line when it
// reaches zero. It reports whether the item was found.
func (c *Cart) Decrement(id int) bool {
	i := c.index(id)
	if i < 0 {
		return false
	}
	c.lines[i].Quantity--
	if c.lines[i].Quantity <= 0 {
		c.lines = append(c.lines[:i], c.lines[i+1:]...)
	}
	return true
}

// Remove drops an item regardless of quantity.
func (c *Cart) Remove(id int) bool {
	i := c.index(id)
	if i < 0 {
		return false
	}
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
	return true
}

// Clear empties the cart.
func (c *Cart) Clear() { c.lines = nil }

// Lines returns a copy of the cart lines.
func (c *Cart) Lines() []Line {
	return append([]Line(nil), c.lines...)
}

// Quantity returns the quantity of id, or 0.
func (c *Cart) Quantity(id int) int {
	if i := c.index(id); i >= 0 {
		return c.lines[i].Quantity
	}
	return 0
}

// Count returns the total number of units in the cart.
func (c *Cart) Count() int {
	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

// Empty reports whether the cart holds no units.
func (c *Cart) Empty() bool { return len(c.lines) == 0 }

// Requests returns the cart in wire form.
func (c *Cart) Requests() []Request {
	out := make([]Request, len(c.lines))
	for i, l := range c.lines {
		out[i] = Request{ProductID: l.Item.ID, Quantity: l.Quantity}
	}
	return out
}

func (c *Cart) index(id int) int {
	for i, l := range c.lines {
		if l.Item.ID == id {
			return i
		}
	}
	return -1
}

// Resolve turns wire requests into cart lines using the catalog. Requests
// with a quantity of zero or less are skipped before lookup; unknown IDs are
// errors.
func (c *Catalog) Resolve(reqs []Request) ([]Line, error) {
	lines := make([]Line, 0, len(reqs))
	for _, r := range reqs {
		if r.Quantity <= 0 {
			continue
		}
		it, ok := c.Lookup(r.ProductID)
		if !ok {
			return nil, errors.New(errors.ErrCodeProductNotFound, "product %d not in catalog", r.ProductID)
		}
		lines = append(lines, Line{Item: it, Quantity: r.Quantity})
	}
	return lines, nil
}
