package catalog

import "github.com/saydulla27/foodapp-frontend/internal/models"

// Index is an immutable product lookup derived from a fetched menu.
// Rebuild it whenever the menu is (re)fetched; it has no write path.
type Index map[int64]models.Product

// BuildIndex flattens all categories' product lists into one lookup.
// A product listed under several categories resolves to the last one seen.
func BuildIndex(menu models.Menu) Index {
	idx := make(Index)
	for _, c := range menu.Categories {
		for _, p := range c.Products {
			idx[p.ID] = p
		}
	}
	return idx
}

func (idx Index) Lookup(id int64) (models.Product, bool) {
	p, ok := idx[id]
	return p, ok
}

// CategoryProducts returns the products of one category for menu display,
// or nil when the category is absent.
func CategoryProducts(menu models.Menu, categoryID int64) []models.Product {
	for _, c := range menu.Categories {
		if c.ID == categoryID {
			return c.Products
		}
	}
	return nil
}
