package app

import (
	"context"

	"github.com/adhithya-electronics/storefront-client/internal/cart/domain"
)

// CartAPI is the slice of the commerce API the cart store depends on.
type CartAPI interface {
	Fetch(ctx context.Context) ([]domain.LineItem, error)
	Add(ctx context.Context, variantID string, quantity int) error
	Merge(ctx context.Context, items []domain.LineItem) error
	Remove(ctx context.Context, variantID string) error
}

// Storage is the persisted local store the guest cart is kept in.
type Storage interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Delete(key string) error
}
