package app

import (
	"context"

	"github.com/adhithya-electronics/storefront-client/internal/session/domain"
)

// AuthAPI is the slice of the commerce API the session store depends on.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (string, domain.User, error)
	Register(ctx context.Context, reg domain.Registration) (string, domain.User, error)
}

// Storage is the persisted local store the session keeps its entries in.
type Storage interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Delete(key string) error
}
