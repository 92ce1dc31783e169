package index

import (
	"context"

	domcat "github.com/pranavi39/pawfect/internal/domain/catalog"
)

// CatalogSource loads the product catalog.
type CatalogSource interface {
	Load(ctx context.Context) (domcat.Catalog, error)
	Reload(ctx context.Context) (domcat.Catalog, error)
}
