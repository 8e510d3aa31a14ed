package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/saydulla27/foodapp-frontend/internal/models"
)

func sampleMenu() models.Menu {
	return models.Menu{
		Categories: []models.MenuCategory{
			{
				ID:   1,
				Name: "Burgers",
				Products: []models.Product{
					{ID: 10, Name: "Cheeseburger", Price: 25000, Active: true},
					{ID: 11, Name: "Double", Price: 35000, Active: true},
				},
			},
			{
				ID:   2,
				Name: "Drinks",
				Products: []models.Product{
					{ID: 20, Name: "Cola", Price: 8000, Active: true},
				},
			},
			{ID: 3, Name: "Empty"},
		},
	}
}

func TestBuildIndexFlattensAllCategories(t *testing.T) {
	idx := BuildIndex(sampleMenu())
	assert.Len(t, idx, 3)

	p, ok := idx.Lookup(20)
	assert.True(t, ok)
	assert.Equal(t, "Cola", p.Name)

	_, ok = idx.Lookup(999)
	assert.False(t, ok)
}

func TestBuildIndexEmptyMenu(t *testing.T) {
	idx := BuildIndex(models.Menu{})
	assert.Empty(t, idx)
}

func TestCategoryProducts(t *testing.T) {
	menu := sampleMenu()

	ps := CategoryProducts(menu, 1)
	assert.Len(t, ps, 2)

	assert.Empty(t, CategoryProducts(menu, 3))
	assert.Nil(t, CategoryProducts(menu, 42))
}
