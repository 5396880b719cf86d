// Package cart owns the in-memory shopping cart aggregate. All mutations go
// through its methods; no other component touches cart internals directly.
package cart

import (
	"sync"

	"github.com/MarcoBarzola22/carta-restaurante-app/internal/domain"
	"github.com/shopspring/decimal"
)

// Item is a snapshot of a product taken at add time. Later catalog edits do
// not retroactively change lines already in a cart.
type Item struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image"`
	Quantity  int             `json:"quantity"`
}

func (i Item) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart holds at most one Item per product id; adding an already-present
// product merges into the existing line. Iteration order is insertion order.
type Cart struct {
	mu    sync.Mutex
	items []*Item
	index map[string]*Item
}

func New() *Cart {
	return &Cart{index: make(map[string]*Item)}
}

// Add merges qty into the existing line for the product or appends a new
// snapshot line. Non-positive quantities are ignored.
func (c *Cart) Add(p domain.Product, qty int) {
	if qty <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if item, ok := c.index[p.ID]; ok {
		item.Quantity += qty
		return
	}

	item := &Item{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Image:     p.Image,
		Quantity:  qty,
	}
	c.items = append(c.items, item)
	c.index[p.ID] = item
}

// Remove deletes the line for the product; absent ids are a no-op.
func (c *Cart) Remove(productID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.removeLocked(productID)
}

func (c *Cart) removeLocked(productID string) {
	if _, ok := c.index[productID]; !ok {
		return
	}

	delete(c.index, productID)
	for i, item := range c.items {
		if item.ProductID == productID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			break
		}
	}
}

// UpdateQuantity adjusts the line quantity by delta. A result of zero or
// less removes the line entirely rather than keeping it at zero.
func (c *Cart) UpdateQuantity(productID string, delta int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	item, ok := c.index[productID]
	if !ok {
		return
	}

	item.Quantity += delta
	if item.Quantity <= 0 {
		c.removeLocked(productID)
	}
}

// Clear empties the cart in one step; used after a successful checkout
// handoff or an explicit user clear.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = nil
	c.index = make(map[string]*Item)
}

// Items returns a copy of the lines in insertion order.
func (c *Cart) Items() []Item {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Item, 0, len(c.items))
	for _, item := range c.items {
		out = append(out, *item)
	}
	return out
}

// Total is recomputed from the current lines on every call; there is no
// cached total to go stale.
func (c *Cart) Total() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := decimal.Zero
	for _, item := range c.items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// Count is the sum of line quantities, not the number of lines.
func (c *Cart) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	count := 0
	for _, item := range c.items {
		count += item.Quantity
	}
	return count
}

func (c *Cart) Empty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.items) == 0
}
