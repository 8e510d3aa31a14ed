package cart

import (
	"errors"

	"github.com/saydulla27/foodapp-frontend/internal/catalog"
)

// Cart maps product id to requested quantity for one tenant session.
// Invariant: no entry holds a quantity <= 0; entries that reach zero are
// removed, never stored as zero.
type Cart map[int64]int

// ErrInsufficientStock signals a rejected quantity increase. The cart is
// returned unchanged; the condition is user-correctable, not fatal.
var ErrInsufficientStock = errors.New("insufficient stock")

func (c Cart) Clone() Cart {
	out := make(Cart, len(c))
	for id, qty := range c {
		out[id] = qty
	}
	return out
}

// Adjust applies a quantity delta for one product and returns the resulting
// cart. Rules:
//
//   - a product absent from the catalog index is a no-op (stale entries stay
//     in storage until the cart is cleared);
//   - a positive delta that would push the quantity above a finite stock is
//     rejected with ErrInsufficientStock, cart unchanged;
//   - otherwise the new quantity is max(0, current+delta), and an entry
//     reaching zero is deleted.
func Adjust(c Cart, productID int64, delta int, idx catalog.Index) (Cart, error) {
	p, ok := idx.Lookup(productID)
	if !ok {
		return c, nil
	}
	next := c[productID] + delta
	if next < 0 {
		next = 0
	}
	if delta > 0 && p.Stock != nil && next > *p.Stock {
		return c, ErrInsufficientStock
	}
	out := c.Clone()
	if next == 0 {
		delete(out, productID)
	} else {
		out[productID] = next
	}
	return out, nil
}
