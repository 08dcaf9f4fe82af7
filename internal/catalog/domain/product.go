package domain

type Media struct {
	URL string `json:"url"`
}

type Inventory struct {
	Quantity          int `json:"quantity"`
	LowStockThreshold int `json:"lowStockThreshold"`
}

type Variant struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Price     float64    `json:"price"`
	Inventory *Inventory `json:"inventory,omitempty"`
}

type Category struct {
	Name string `json:"name"`
}

type Product struct {
	ID             string    `json:"id"`
	Slug           string    `json:"slug"`
	Name           string    `json:"name"`
	Brand          string    `json:"brand"`
	Description    string    `json:"description"`
	BasePrice      float64   `json:"basePrice"`
	CompareAtPrice float64   `json:"compareAtPrice,omitempty"`
	AvgRating      float64   `json:"avgRating"`
	ReviewCount    int       `json:"reviewCount"`
	Media          []Media   `json:"media"`
	Category       *Category `json:"category,omitempty"`
	Variants       []Variant `json:"variants"`
}

// TotalStock sums the known variant inventories.
func (p Product) TotalStock() int {
	total := 0
	for _, v := range p.Variants {
		if v.Inventory != nil {
			total += v.Inventory.Quantity
		}
	}
	return total
}

// DefaultVariantID is the purchasable unit used when the shopper has not
// picked a variant: the first variant when one exists, otherwise the product.
func (p Product) DefaultVariantID() string {
	if len(p.Variants) > 0 {
		return p.Variants[0].ID
	}
	return p.ID
}

// FirstImage returns the primary media URL, if any.
func (p Product) FirstImage() string {
	if len(p.Media) > 0 {
		return p.Media[0].URL
	}
	return ""
}
