package catalog

import (
	"fmt"

	"github.com/pranavi39/pawfect/internal/domain/product"
)

// Catalog is the ordered, immutable product corpus.
// Position i in the catalog is row i of any document matrix fitted from it.
type Catalog struct {
	products   []product.Product
	positions  map[int]int
	categories []product.Category
}

// New validates and creates a Catalog. Product IDs must be unique.
func New(products []product.Product) (Catalog, error) {
	positions := make(map[int]int, len(products))
	var categories []product.Category
	seen := make(map[product.Category]bool)

	for i := range products {
		id := products[i].ID()
		if _, dup := positions[id]; dup {
			return Catalog{}, fmt.Errorf("duplicate product ID %d", id)
		}
		positions[id] = i

		c := products[i].Category()
		if !seen[c] {
			seen[c] = true
			categories = append(categories, c)
		}
	}

	own := make([]product.Product, len(products))
	copy(own, products)

	return Catalog{products: own, positions: positions, categories: categories}, nil
}

// Len returns the number of products.
func (c *Catalog) Len() int { return len(c.products) }

// At returns the product at catalog position i.
func (c *Catalog) At(i int) product.Product { return c.products[i] }

// Descriptions returns product descriptions in catalog order.
func (c *Catalog) Descriptions() []string {
	out := make([]string, len(c.products))
	for i := range c.products {
		out[i] = c.products[i].Description()
	}
	return out
}

// Get returns the product with the given ID.
func (c *Catalog) Get(id int) (product.Product, bool) {
	pos, ok := c.positions[id]
	if !ok {
		return product.Product{}, false
	}
	return c.products[pos], true
}

// InCategory returns the catalog positions of products in category, in catalog order.
func (c *Catalog) InCategory(category product.Category) []int {
	var rows []int
	for i := range c.products {
		if c.products[i].Category() == category {
			rows = append(rows, i)
		}
	}
	return rows
}

// Categories returns the distinct categories in first-seen order.
func (c *Catalog) Categories() []product.Category {
	out := make([]product.Category, len(c.categories))
	copy(out, c.categories)
	return out
}
