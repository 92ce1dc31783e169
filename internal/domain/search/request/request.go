package request

import (
	"fmt"

	"github.com/pranavi39/pawfect/internal/domain"
	"github.com/pranavi39/pawfect/internal/domain/product"
)

// Search parameter limits.
const (
	// MaxQueryLength is the maximum allowed query length in bytes.
	MaxQueryLength = 1024
	// MaxLimit caps the number of returned results. 0 means unlimited.
	MaxLimit = 1000
)

// Request is a validated product search.
type Request struct {
	category product.Category
	query    string
	limit    int
}

// New validates search parameters.
// An empty query is rejected with domain.ErrEmptyQuery; whitespace-only text is a valid query.
func New(category product.Category, query string, limit int) (Request, error) {
	if query == "" {
		return Request{}, domain.ErrEmptyQuery
	}
	if len(query) > MaxQueryLength {
		return Request{}, fmt.Errorf("%w: query too long (max %d bytes)", domain.ErrInvalidQuery, MaxQueryLength)
	}
	if category == "" {
		return Request{}, fmt.Errorf("%w: category is required", domain.ErrInvalidQuery)
	}
	if limit < 0 {
		return Request{}, fmt.Errorf("%w: limit must be non-negative", domain.ErrInvalidQuery)
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Request{category: category, query: query, limit: limit}, nil
}

// Category returns the pet type facet.
func (r *Request) Category() product.Category { return r.category }

// Query returns the raw query text.
func (r *Request) Query() string { return r.query }

// Limit returns the maximum number of results, 0 for no limit.
func (r *Request) Limit() int { return r.limit }
