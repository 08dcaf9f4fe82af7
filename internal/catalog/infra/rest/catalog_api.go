package rest

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/adhithya-electronics/storefront-client/internal/catalog/app"
	"github.com/adhithya-electronics/storefront-client/internal/catalog/domain"
	"github.com/adhithya-electronics/storefront-client/pkg/httpclient"
)

// CatalogAPI talks to the /products and /branches endpoints.
type CatalogAPI struct {
	client *httpclient.Client
}

func NewCatalogAPI(client *httpclient.Client) *CatalogAPI {
	return &CatalogAPI{client: client}
}

type listResponse struct {
	Items []domain.Product `json:"items"`
}

func (a *CatalogAPI) ListProducts(ctx context.Context, params app.ListParams) ([]domain.Product, error) {
	query := url.Values{}
	if params.Query != "" {
		query.Set("query", params.Query)
	}
	if len(params.Categories) > 0 {
		query.Set("categories", strings.Join(params.Categories, ","))
	}
	if len(params.Brands) > 0 {
		query.Set("brands", strings.Join(params.Brands, ","))
	}
	if params.Sort != "" {
		query.Set("sort", params.Sort)
	}
	if params.Limit > 0 {
		query.Set("limit", strconv.Itoa(params.Limit))
	}

	var res listResponse
	if err := a.client.GetJSON(ctx, "/products", query, &res); err != nil {
		return nil, err
	}
	return res.Items, nil
}

func (a *CatalogAPI) GetProduct(ctx context.Context, slug string) (domain.Product, error) {
	var p domain.Product
	if err := a.client.GetJSON(ctx, "/products/"+url.PathEscape(slug), nil, &p); err != nil {
		return domain.Product{}, err
	}
	return p, nil
}

type filtersResponse struct {
	Categories []domain.Category `json:"categories"`
	Brands     []string          `json:"brands"`
}

func (a *CatalogAPI) Filters(ctx context.Context) (app.Filters, error) {
	var res filtersResponse
	if err := a.client.GetJSON(ctx, "/products/filters", nil, &res); err != nil {
		return app.Filters{}, err
	}

	f := app.Filters{Brands: res.Brands}
	for _, c := range res.Categories {
		f.Categories = append(f.Categories, c.Name)
	}
	return f, nil
}

func (a *CatalogAPI) ListBranches(ctx context.Context) ([]domain.Branch, error) {
	var branches []domain.Branch
	if err := a.client.GetJSON(ctx, "/branches", nil, &branches); err != nil {
		return nil, err
	}
	return branches, nil
}

func (a *CatalogAPI) GetBranch(ctx context.Context, slug string) (domain.Branch, error) {
	var b domain.Branch
	if err := a.client.GetJSON(ctx, "/branches/"+url.PathEscape(slug), nil, &b); err != nil {
		return domain.Branch{}, err
	}
	return b, nil
}

type reviewRequest struct {
	Rating int    `json:"rating"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}

func (a *CatalogAPI) AddReview(ctx context.Context, slug string, review domain.Review) error {
	req := reviewRequest{Rating: review.Rating, Title: review.Title, Body: review.Body}
	return a.client.PostJSON(ctx, "/branches/"+url.PathEscape(slug)+"/reviews", req, nil)
}
