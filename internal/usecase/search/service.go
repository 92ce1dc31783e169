package search

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/pranavi39/pawfect/internal/domain/product"
	"github.com/pranavi39/pawfect/internal/domain/search/request"
	"github.com/pranavi39/pawfect/internal/domain/search/result"
	logpkg "github.com/pranavi39/pawfect/internal/logger"
	"github.com/pranavi39/pawfect/internal/metrics"
)

// otherCategory labels metrics for categories absent from the catalog.
const otherCategory = "other"

// Service ranks catalog products for a query within a category.
// It holds no state of its own; every call reads the active index snapshot.
type Service struct {
	index SnapshotReader
}

// New creates a search service.
func New(index SnapshotReader) *Service {
	return &Service{index: index}
}

// Search returns the products of req's category whose description contains
// the query text, ordered by descending cosine similarity.
// An unknown or empty category yields an empty, non-nil slice.
func (s *Service) Search(ctx context.Context, req *request.Request) ([]result.Result, error) {
	start := time.Now()

	snap, err := s.index.Current()
	if err != nil {
		metrics.ObserveSearch(otherCategory, metrics.OutcomeError, 0, time.Since(start))
		return nil, fmt.Errorf("search: %w", err)
	}

	results, candidates := rank(snap, req.Category(), req.Query())
	total := len(results)
	if req.Limit() > 0 && len(results) > req.Limit() {
		results = results[:req.Limit()]
	}

	label := otherCategory
	if candidates > 0 {
		label = string(req.Category())
	}
	outcome := metrics.OutcomeHit
	if len(results) == 0 {
		outcome = metrics.OutcomeEmpty
	}
	elapsed := time.Since(start)
	metrics.ObserveSearch(label, outcome, len(results), elapsed)

	logpkg.FromContext(ctx).Debug("search",
		zap.String("category", string(req.Category())),
		zap.String("query", req.Query()),
		zap.Int("matched", total),
		zap.Int("returned", len(results)),
		zap.Duration("took", elapsed),
	)

	return results, nil
}

// Categories returns the categories of the active catalog in first-seen order.
func (s *Service) Categories(_ context.Context) ([]product.Category, error) {
	snap, err := s.index.Current()
	if err != nil {
		return nil, fmt.Errorf("categories: %w", err)
	}
	return snap.Catalog().Categories(), nil
}
