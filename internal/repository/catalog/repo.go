package catalog

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	domcat "github.com/pranavi39/pawfect/internal/domain/catalog"
	"github.com/pranavi39/pawfect/internal/domain/product"
	"github.com/pranavi39/pawfect/internal/source"
)

// Accepted header names per required column.
var (
	categoryColumn    = []string{"pet", "category"}
	nameColumn        = []string{"product", "name"}
	priceColumn       = []string{"price"}
	descriptionColumn = []string{"description"}
)

// Repo loads the product catalog from a CSV or parquet file and caches it.
type Repo struct {
	path   string
	logger *zap.Logger

	mu     sync.Mutex
	cached *domcat.Catalog
}

// New creates a catalog repository for the file at path.
func New(path string, logger *zap.Logger) *Repo {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Repo{path: path, logger: logger}
}

// Load returns the catalog, reading the source only on the first call.
func (r *Repo) Load(ctx context.Context) (domcat.Catalog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cached != nil {
		return *r.cached, nil
	}
	return r.readLocked(ctx)
}

// Reload re-reads the source and replaces the cached catalog.
// The cache is left untouched when reading fails.
func (r *Repo) Reload(ctx context.Context) (domcat.Catalog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.readLocked(ctx)
}

func (r *Repo) readLocked(ctx context.Context) (domcat.Catalog, error) {
	if err := ctx.Err(); err != nil {
		return domcat.Catalog{}, err
	}

	cat, err := r.read()
	if err != nil {
		return domcat.Catalog{}, err
	}
	r.cached = &cat
	return cat, nil
}

func (r *Repo) read() (domcat.Catalog, error) {
	tbl, err := source.Open(r.path)
	if err != nil {
		return domcat.Catalog{}, fmt.Errorf("load catalog: %w", err)
	}

	cols, err := tbl.Require(categoryColumn, nameColumn, priceColumn, descriptionColumn)
	if err != nil {
		return domcat.Catalog{}, fmt.Errorf("load catalog: %w", err)
	}

	products := make([]product.Product, 0, tbl.Len())
	skipped := 0
	for i := 0; i < tbl.Len(); i++ {
		row := tbl.Row(i)
		p, err := product.New(i, product.Category(row[cols[0]]), row[cols[1]], row[cols[2]], row[cols[3]])
		if err != nil {
			skipped++
			r.logger.Warn("Skipping malformed catalog row",
				zap.String("source", tbl.Name()),
				zap.Int("row", i),
				zap.Error(err),
			)
			continue
		}
		products = append(products, p)
	}

	cat, err := domcat.New(products)
	if err != nil {
		return domcat.Catalog{}, fmt.Errorf("load catalog: %w", err)
	}

	r.logger.Info("Catalog loaded",
		zap.String("source", tbl.Name()),
		zap.Int("products", cat.Len()),
		zap.Int("skipped", skipped),
	)
	return cat, nil
}
