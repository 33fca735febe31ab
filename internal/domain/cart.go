package domain

// LineItem is one product+variant entry in a cart. Display fields are a
// snapshot taken when the item was added and are not refreshed afterwards.
type LineItem struct {
	ID         string  `json:"id" bson:"id"`
	ProductID  string  `json:"product_id" bson:"product_id"`
	VariantKey string  `json:"variant_key" bson:"variant_key"`
	Name       string  `json:"name" bson:"name"`
	UnitPrice  float64 `json:"unit_price" bson:"unit_price"`
	ImageURL   string  `json:"image_url" bson:"image_url"`
	Quantity   int     `json:"quantity" bson:"quantity"`
	MaxStock   int     `json:"max_stock" bson:"max_stock"`
}

// ItemSnapshot is the read-only catalog view consumed when adding to a cart.
// It is a LineItem without quantity.
type ItemSnapshot struct {
	ProductID  string  `json:"product_id"`
	VariantKey string  `json:"variant_key"`
	Name       string  `json:"name"`
	UnitPrice  float64 `json:"unit_price"`
	ImageURL   string  `json:"image_url"`
	MaxStock   int     `json:"max_stock"`
}

// TotalItems sums the quantities of all line items.
func TotalItems(items []LineItem) int {
	total := 0
	for _, item := range items {
		total += item.Quantity
	}
	return total
}

// TotalPrice sums unit price times quantity over all line items.
func TotalPrice(items []LineItem) float64 {
	total := 0.0
	for _, item := range items {
		total += item.UnitPrice * float64(item.Quantity)
	}
	return total
}
