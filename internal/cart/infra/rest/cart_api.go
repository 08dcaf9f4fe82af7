package rest

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/adhithya-electronics/storefront-client/internal/cart/domain"
	"github.com/adhithya-electronics/storefront-client/pkg/httpclient"
)

// Stock ceiling reported when the server omits inventory for a variant.
const unknownStock = 999

// CartAPI talks to the /cart endpoints and maps the wire payload into line
// items.
type CartAPI struct {
	client *httpclient.Client
}

func NewCartAPI(client *httpclient.Client) *CartAPI {
	return &CartAPI{client: client}
}

type cartResponse struct {
	Items []cartEntry `json:"items"`
}

type cartEntry struct {
	VariantID string    `json:"variantId"`
	Quantity  int       `json:"quantity"`
	UnitPrice unitPrice `json:"unitPrice"`
	Variant   struct {
		Product struct {
			Name  string `json:"name"`
			Media []struct {
				URL string `json:"url"`
			} `json:"media"`
		} `json:"product"`
		Inventory *struct {
			Quantity int `json:"quantity"`
		} `json:"inventory"`
	} `json:"variant"`
}

// unitPrice tolerates both numeric and string encodings of the decimal the
// backend sends.
type unitPrice float64

func (p *unitPrice) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if s == "" || s == "null" {
		*p = 0
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*p = unitPrice(f)
	return nil
}

func (a *CartAPI) Fetch(ctx context.Context) ([]domain.LineItem, error) {
	var res cartResponse
	if err := a.client.GetJSON(ctx, "/cart", nil, &res); err != nil {
		return nil, err
	}

	items := make([]domain.LineItem, 0, len(res.Items))
	for _, e := range res.Items {
		item := domain.LineItem{
			ID:             e.VariantID,
			Quantity:       e.Quantity,
			Name:           e.Variant.Product.Name,
			Price:          float64(e.UnitPrice),
			StockAvailable: unknownStock,
		}
		if len(e.Variant.Product.Media) > 0 {
			item.Image = e.Variant.Product.Media[0].URL
		}
		if e.Variant.Inventory != nil {
			item.StockAvailable = e.Variant.Inventory.Quantity
		}
		items = append(items, item)
	}
	return items, nil
}

type addRequest struct {
	VariantID string `json:"variantId"`
	Quantity  int    `json:"quantity"`
}

func (a *CartAPI) Add(ctx context.Context, variantID string, quantity int) error {
	return a.client.PostJSON(ctx, "/cart/add", addRequest{VariantID: variantID, Quantity: quantity}, nil)
}

type mergeRequest struct {
	Items []domain.LineItem `json:"items"`
}

func (a *CartAPI) Merge(ctx context.Context, items []domain.LineItem) error {
	return a.client.PostJSON(ctx, "/cart/merge", mergeRequest{Items: items}, nil)
}

func (a *CartAPI) Remove(ctx context.Context, variantID string) error {
	return a.client.Delete(ctx, "/cart/"+url.PathEscape(variantID))
}
