package domain

// LineItem is a display snapshot of a purchasable unit in the cart. The ID is
// the variant when known, otherwise the product. Fields other than Quantity
// are captured at add time and not re-validated against the catalog.
type LineItem struct {
	ID       string  `json:"id"`
	Quantity int     `json:"quantity"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Image    string  `json:"image,omitempty"`

	// StockAvailable is the last known stock ceiling; zero means unknown.
	StockAvailable int `json:"stockAvailable,omitempty"`
}

func TotalItems(items []LineItem) int {
	total := 0
	for _, it := range items {
		total += it.Quantity
	}
	return total
}

func TotalPrice(items []LineItem) float64 {
	var total float64
	for _, it := range items {
		total += it.Price * float64(it.Quantity)
	}
	return total
}
