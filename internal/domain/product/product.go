package product

import (
	"fmt"
	"strconv"
	"strings"
)

// Category is the pet type facet of a product.
type Category string

// Known categories. The catalog may introduce others.
const (
	Dog  Category = "Dog"
	Cat  Category = "Cat"
	Fish Category = "Fish"
)

// Product is a catalog entry (immutable value object).
type Product struct {
	id          int
	category    Category
	name        string
	price       string
	amount      float64
	description string
}

// New validates and creates a Product.
// Category and description are required; the price is kept as display text and parsed into Amount.
func New(id int, category Category, name, price, description string) (Product, error) {
	if id < 0 {
		return Product{}, fmt.Errorf("product ID must be non-negative, got %d", id)
	}
	if strings.TrimSpace(string(category)) == "" {
		return Product{}, fmt.Errorf("category is required")
	}
	if strings.TrimSpace(description) == "" {
		return Product{}, fmt.Errorf("description is required")
	}

	amount, _ := ParsePrice(price)

	return Product{
		id:          id,
		category:    Category(strings.TrimSpace(string(category))),
		name:        strings.TrimSpace(name),
		price:       strings.TrimSpace(price),
		amount:      amount,
		description: description,
	}, nil
}

// ID returns the stable catalog identifier.
func (p *Product) ID() int { return p.id }

// Category returns the pet type.
func (p *Product) Category() Category { return p.category }

// Name returns the display name.
func (p *Product) Name() string { return p.name }

// Price returns the price as found in the source.
func (p *Product) Price() string { return p.price }

// Amount returns the numeric price, 0 if the source price was not a number.
func (p *Product) Amount() float64 { return p.amount }

// Description returns the free-text description.
func (p *Product) Description() string { return p.description }

// ParsePrice reads a plain number or a currency string like "$1,299.00".
func ParsePrice(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimLeft(s, "$€£¥ ")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}
