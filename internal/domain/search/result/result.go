package result

import "github.com/pranavi39/pawfect/internal/domain/product"

// Result is a single search hit: a catalog product and its similarity score.
type Result struct {
	product product.Product
	score   float64
}

// New creates a search result.
func New(p product.Product, score float64) Result {
	return Result{product: p, score: score}
}

// Product returns the matched product.
func (r *Result) Product() product.Product { return r.product }

// ID returns the product identifier.
func (r *Result) ID() int { return r.product.ID() }

// Score returns the cosine similarity in [0,1].
func (r *Result) Score() float64 { return r.score }
