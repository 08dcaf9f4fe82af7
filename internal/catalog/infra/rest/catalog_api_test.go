package rest_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adhithya-electronics/storefront-client/internal/catalog/app"
	"github.com/adhithya-electronics/storefront-client/internal/catalog/domain"
	"github.com/adhithya-electronics/storefront-client/internal/catalog/infra/rest"
	"github.com/adhithya-electronics/storefront-client/pkg/httpclient"
)

func newCatalogAPI(t *testing.T, handler http.Handler) *rest.CatalogAPI {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	client, err := httpclient.New(
		httpclient.Config{BaseURL: srv.URL, Timeout: 5 * time.Second},
		httpclient.TokenSourceFunc(func() (string, bool) { return "", false }),
		log,
	)
	require.NoError(t, err)
	return rest.NewCatalogAPI(client)
}

func TestListProducts_EncodesParams(t *testing.T) {
	var gotQuery url.Values
	api := newCatalogAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products", r.URL.Path)
		gotQuery = r.URL.Query()
		w.Write([]byte(`{"items":[{"id":"p1","slug":"x1","name":"ThinkPad X1","basePrice":89999}]}`))
	}))

	products, err := api.ListProducts(context.Background(), app.ListParams{
		Query:      "laptop",
		Categories: []string{"Laptops", "Workstations"},
		Brands:     []string{"Lenovo"},
		Sort:       "price",
		Limit:      20,
	})
	require.NoError(t, err)

	assert.Equal(t, "laptop", gotQuery.Get("query"))
	assert.Equal(t, "Laptops,Workstations", gotQuery.Get("categories"))
	assert.Equal(t, "Lenovo", gotQuery.Get("brands"))
	assert.Equal(t, "price", gotQuery.Get("sort"))
	assert.Equal(t, "20", gotQuery.Get("limit"))

	require.Len(t, products, 1)
	assert.Equal(t, "x1", products[0].Slug)
}

func TestGetProduct_DecodesVariants(t *testing.T) {
	api := newCatalogAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products/x1", r.URL.Path)
		w.Write([]byte(`{
			"id": "p1", "slug": "x1", "name": "ThinkPad X1",
			"variants": [
				{"id": "v1", "title": "16GB", "price": 89999, "inventory": {"quantity": 5, "lowStockThreshold": 2}},
				{"id": "v2", "title": "32GB", "price": 99999}
			]
		}`))
	}))

	p, err := api.GetProduct(context.Background(), "x1")
	require.NoError(t, err)

	require.Len(t, p.Variants, 2)
	require.NotNil(t, p.Variants[0].Inventory)
	assert.Equal(t, 5, p.Variants[0].Inventory.Quantity)
	assert.Nil(t, p.Variants[1].Inventory)
	assert.Equal(t, 5, p.TotalStock())
	assert.Equal(t, "v1", p.DefaultVariantID())
}

func TestFilters_FlattensCategories(t *testing.T) {
	api := newCatalogAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products/filters", r.URL.Path)
		w.Write([]byte(`{"categories":[{"name":"Laptops"},{"name":"Audio"}],"brands":["Lenovo","Sony"]}`))
	}))

	filters, err := api.Filters(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"Laptops", "Audio"}, filters.Categories)
	assert.Equal(t, []string{"Lenovo", "Sony"}, filters.Brands)
}

func TestBranches_ListAndReviews(t *testing.T) {
	var gotReviewBody []byte
	api := newCatalogAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/branches" && r.Method == http.MethodGet:
			w.Write([]byte(`[{"id":"b1","slug":"kochi","name":"Kochi","area":"Ernakulam","avgRating":4.5}]`))
		case r.URL.Path == "/branches/kochi" && r.Method == http.MethodGet:
			w.Write([]byte(`{
				"id":"b1","slug":"kochi","name":"Kochi",
				"reviews":[{"rating":5,"title":"Great","user":{"firstName":"A","lastName":"B"}}]
			}`))
		case r.URL.Path == "/branches/kochi/reviews" && r.Method == http.MethodPost:
			gotReviewBody, _ = io.ReadAll(r.Body)
			w.WriteHeader(http.StatusCreated)
		default:
			http.NotFound(w, r)
		}
	}))
	ctx := context.Background()

	branches, err := api.ListBranches(ctx)
	require.NoError(t, err)
	require.Len(t, branches, 1)
	assert.Equal(t, "Ernakulam", branches[0].Area)

	branch, err := api.GetBranch(ctx, "kochi")
	require.NoError(t, err)
	require.Len(t, branch.Reviews, 1)
	assert.Equal(t, "A", branch.Reviews[0].User.FirstName)

	err = api.AddReview(ctx, "kochi", domain.Review{Rating: 4, Title: "Nice", Body: "Helpful staff"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"rating":4,"title":"Nice","body":"Helpful staff"}`, string(gotReviewBody))
}
