// Package selection tracks which product is under inspection in the detail
// view and routes add-to-cart actions back into the cart engine.
package selection

import (
	"sync"

	"github.com/MarcoBarzola22/carta-restaurante-app/internal/cart"
	"github.com/MarcoBarzola22/carta-restaurante-app/internal/domain"
)

// Flow is a two-state machine: closed, or open on exactly one product.
// Selecting while open replaces the product rather than stacking.
type Flow struct {
	mu      sync.Mutex
	current *domain.Product
	cart    *cart.Cart
}

func NewFlow(c *cart.Cart) *Flow {
	return &Flow{cart: c}
}

func (f *Flow) Select(p domain.Product) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.current = &p
}

func (f *Flow) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.current = nil
}

// Open returns the product under inspection, if any.
func (f *Flow) Open() (domain.Product, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.current == nil {
		return domain.Product{}, false
	}
	return *f.current, true
}

// AddToCart sends the open product to the cart and closes the detail view.
// A closed flow is a no-op.
func (f *Flow) AddToCart(qty int) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.current == nil {
		return false
	}

	f.cart.Add(*f.current, qty)
	f.current = nil
	return true
}
