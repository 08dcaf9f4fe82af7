package app

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/adhithya-electronics/storefront-client/internal/catalog/domain"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

const featuredCount = 4

type Service struct {
	api CatalogAPI
}

func NewService(api CatalogAPI) *Service {
	return &Service{
		api: api,
	}
}

func (s *Service) ListProducts(ctx context.Context, params ListParams) ([]domain.Product, error) {
	params.Query = strings.TrimSpace(params.Query)
	if params.Limit < 0 {
		return nil, ErrInvalidInput
	}
	if params.Limit > 100 {
		params.Limit = 100
	}
	return s.api.ListProducts(ctx, params)
}

func (s *Service) GetProduct(ctx context.Context, slug string) (domain.Product, error) {
	if strings.TrimSpace(slug) == "" {
		return domain.Product{}, ErrInvalidInput
	}
	return s.api.GetProduct(ctx, slug)
}

func (s *Service) Filters(ctx context.Context) (Filters, error) {
	return s.api.Filters(ctx)
}

func (s *Service) ListBranches(ctx context.Context) ([]domain.Branch, error) {
	return s.api.ListBranches(ctx)
}

func (s *Service) GetBranch(ctx context.Context, slug string) (domain.Branch, error) {
	if strings.TrimSpace(slug) == "" {
		return domain.Branch{}, ErrInvalidInput
	}
	return s.api.GetBranch(ctx, slug)
}

func (s *Service) AddReview(ctx context.Context, slug string, review domain.Review) error {
	if strings.TrimSpace(slug) == "" {
		return ErrInvalidInput
	}
	if review.Rating < 1 || review.Rating > 5 {
		return ErrInvalidInput
	}
	return s.api.AddReview(ctx, slug, review)
}

// HomeSnapshot is the landing-page data set.
type HomeSnapshot struct {
	Featured []domain.Product
	Branches []domain.Branch
}

// Home fetches featured products and branch listings concurrently.
func (s *Service) Home(ctx context.Context) (HomeSnapshot, error) {
	var snap HomeSnapshot

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		products, err := s.api.ListProducts(ctx, ListParams{Limit: featuredCount})
		if err != nil {
			return err
		}
		snap.Featured = products
		return nil
	})
	g.Go(func() error {
		branches, err := s.api.ListBranches(ctx)
		if err != nil {
			return err
		}
		snap.Branches = branches
		return nil
	})

	if err := g.Wait(); err != nil {
		return HomeSnapshot{}, err
	}
	return snap, nil
}
