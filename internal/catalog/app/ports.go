package app

import (
	"context"

	"github.com/adhithya-electronics/storefront-client/internal/catalog/domain"
)

// ListParams narrow a product listing.
type ListParams struct {
	Query      string
	Categories []string
	Brands     []string
	Sort       string
	Limit      int
}

// Filters are the facets the catalog offers for narrowing listings.
type Filters struct {
	Categories []string
	Brands     []string
}

// CatalogAPI is the slice of the commerce API browsing depends on.
type CatalogAPI interface {
	ListProducts(ctx context.Context, params ListParams) ([]domain.Product, error)
	GetProduct(ctx context.Context, slug string) (domain.Product, error)
	Filters(ctx context.Context) (Filters, error)
	ListBranches(ctx context.Context) ([]domain.Branch, error)
	GetBranch(ctx context.Context, slug string) (domain.Branch, error)
	AddReview(ctx context.Context, slug string, review domain.Review) error
}
