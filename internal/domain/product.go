package domain

import "errors"

var (
	ErrProductNotFound    = errors.New("product not found")
	ErrVariantNotFound    = errors.New("variant not available for product")
	ErrProductUnavailable = errors.New("product is not active")
)

// Product is the canonical catalog entry: per-size stock levels with
// denormalized display data. Products without size variants keep a single
// stock entry under the empty variant key.
type Product struct {
	ID          string         `json:"id"`
	Slug        string         `json:"slug"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Category    string         `json:"category"`
	Price       float64        `json:"price"`
	MRP         float64        `json:"mrp,omitempty"`
	ImageURL    string         `json:"image_url"`
	Sizes       []string       `json:"sizes,omitempty"`
	Stock       map[string]int `json:"stock"`
	Rating      float64        `json:"rating,omitempty"`
	Featured    bool           `json:"featured"`
	Active      bool           `json:"active"`
}

// StockFor returns the stock ceiling for the given variant, or zero when
// the variant does not exist.
func (p *Product) StockFor(variantKey string) int {
	return p.Stock[variantKey]
}

// HasVariant reports whether variantKey is a valid selection for the product.
func (p *Product) HasVariant(variantKey string) bool {
	if variantKey == "" {
		return len(p.Sizes) == 0
	}
	for _, s := range p.Sizes {
		if s == variantKey {
			return true
		}
	}
	return false
}

// Snapshot captures the add-time view of a product variant for the cart.
// The cart never queries the catalog again for this line item.
func (p *Product) Snapshot(variantKey string) (ItemSnapshot, error) {
	if !p.Active {
		return ItemSnapshot{}, ErrProductUnavailable
	}
	if !p.HasVariant(variantKey) {
		return ItemSnapshot{}, ErrVariantNotFound
	}
	return ItemSnapshot{
		ProductID:  p.ID,
		VariantKey: variantKey,
		Name:       p.Name,
		UnitPrice:  p.Price,
		ImageURL:   p.ImageURL,
		MaxStock:   p.StockFor(variantKey),
	}, nil
}
