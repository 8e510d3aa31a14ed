package cart

import (
	"sort"

	"github.com/saydulla27/foodapp-frontend/internal/catalog"
	"github.com/saydulla27/foodapp-frontend/internal/models"
)

type Line struct {
	Product   models.Product `json:"product"`
	Qty       int            `json:"qty"`
	LineTotal int64          `json:"lineTotal"`
}

type Totals struct {
	Items       []Line `json:"items"`
	TotalQty    int    `json:"totalQty"`
	TotalAmount int64  `json:"totalAmount"`
}

// Materialize resolves cart entries against the catalog index and computes
// line and cart totals. Entries whose product id does not resolve are
// excluded: a stale reference never breaks rendering, it vanishes from the
// visible totals while remaining in storage. Quantities above a product's
// current finite stock are clamped down to it, so a cart built before a
// stock change never shows (or submits) more than is available. Items come
// out ordered by ascending product id.
func Materialize(c Cart, idx catalog.Index) Totals {
	ids := make([]int64, 0, len(c))
	for id := range c {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	t := Totals{}
	for _, id := range ids {
		qty := c[id]
		if qty <= 0 {
			continue
		}
		p, ok := idx.Lookup(id)
		if !ok {
			continue
		}
		if p.Stock != nil && qty > *p.Stock {
			qty = *p.Stock
		}
		if qty <= 0 {
			continue
		}
		line := Line{Product: p, Qty: qty, LineTotal: p.Price * int64(qty)}
		t.Items = append(t.Items, line)
		t.TotalQty += qty
		t.TotalAmount += line.LineTotal
	}
	return t
}
