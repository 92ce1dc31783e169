package pawfect

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/pranavi39/pawfect/internal/domain/product"
	"github.com/pranavi39/pawfect/internal/domain/search/request"
	"github.com/pranavi39/pawfect/internal/domain/search/result"
	catalogrepo "github.com/pranavi39/pawfect/internal/repository/catalog"
	healthuc "github.com/pranavi39/pawfect/internal/usecase/health"
	indexuc "github.com/pranavi39/pawfect/internal/usecase/index"
	searchuc "github.com/pranavi39/pawfect/internal/usecase/search"
	"github.com/pranavi39/pawfect/internal/vsm"
)

type searchUseCase interface {
	Search(ctx context.Context, req *request.Request) ([]result.Result, error)
	Categories(ctx context.Context) ([]product.Category, error)
}

type indexUseCase interface {
	Reload(ctx context.Context) (*indexuc.Snapshot, error)
	Current() (*indexuc.Snapshot, error)
}

// Hit is one ranked product.
type Hit struct {
	ID          int
	Category    string
	Name        string
	Price       string  // as written in the source table
	Amount      float64 // parsed price; 0 when unparsable
	Description string
	Score       float64 // cosine similarity in [0, 1]
}

// Client is the embedded search engine.
type Client struct {
	searchSvc searchUseCase
	indexSvc  indexUseCase
	healthSvc healthUseCase
	obs       *observer
}

// Open loads the product table and fits the search model.
// The provided context bounds the initial load.
func Open(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	if cfg.productsPath == "" {
		return nil, errors.New("pawfect: product table required (use WithProducts)")
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	idx := indexuc.New(
		catalogrepo.New(cfg.productsPath, zap.NewNop()),
		vsm.NewTokenizer(vsm.WithStemming(cfg.stemming)),
		zap.NewNop(),
	)
	err = idx.Init(ctx)
	obs.load("open", start, activeProducts(idx), err)
	if err != nil {
		return nil, fmt.Errorf("pawfect: %w", err)
	}

	return &Client{
		searchSvc: searchuc.New(idx),
		indexSvc:  idx,
		healthSvc: healthuc.New(idx, nil),
		obs:       obs,
	}, nil
}

// Close releases the client. The engine holds no external resources; Close
// exists so callers can treat the client like other handles.
func (c *Client) Close() {}

// Search returns products in category whose description contains query,
// best match first. limit <= 0 returns every match.
func (c *Client) Search(ctx context.Context, category, query string, limit int) (hits []Hit, err error) {
	start := time.Now()
	defer func() { c.obs.search(category, query, start, len(hits), err) }()

	if limit < 0 {
		limit = 0
	}
	req, err := request.New(product.Category(category), query, limit)
	if err != nil {
		return nil, err
	}

	results, err := c.searchSvc.Search(ctx, &req)
	if err != nil {
		return nil, err
	}

	hits = make([]Hit, len(results))
	for i := range results {
		hits[i] = hitFromResult(&results[i])
	}
	return hits, nil
}

// Categories returns the catalog's categories in first-seen order.
func (c *Client) Categories(ctx context.Context) (out []string, err error) {
	start := time.Now()
	defer func() { c.obs.categories(start, len(out), err) }()

	cats, err := c.searchSvc.Categories(ctx)
	if err != nil {
		return nil, err
	}
	out = make([]string, len(cats))
	for i, cat := range cats {
		out[i] = string(cat)
	}
	return out, nil
}

// Reload re-reads the product table and swaps in a freshly fitted model.
// Searches running concurrently finish against the previous model.
// On failure the previous model stays active.
func (c *Client) Reload(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.load("reload", start, activeProducts(c.indexSvc), err) }()

	if _, err = c.indexSvc.Reload(ctx); err != nil {
		return fmt.Errorf("pawfect: %w", err)
	}
	return nil
}

// activeProducts is the size of the catalog idx currently serves, 0 before
// the first successful load.
func activeProducts(idx indexUseCase) int {
	snap, err := idx.Current()
	if err != nil {
		return 0
	}
	return snap.Catalog().Len()
}

func hitFromResult(r *result.Result) Hit {
	p := r.Product()
	return Hit{
		ID:          p.ID(),
		Category:    string(p.Category()),
		Name:        p.Name(),
		Price:       p.Price(),
		Amount:      p.Amount(),
		Description: p.Description(),
		Score:       r.Score(),
	}
}
