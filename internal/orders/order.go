package orders

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusConfirmed  OrderStatus = "CONFIRMED"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusShipped    OrderStatus = "SHIPPED"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
)

// OrderItem is one cart line frozen into an order.
type OrderItem struct {
	ProductID   string  `json:"product_id"`
	VariantKey  string  `json:"variant_key"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Subtotal    float64 `json:"subtotal"`
}

// ShippingAddress is the checkout form payload. Collected and stored only;
// there is no payment processing behind it.
type ShippingAddress struct {
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
}

type Order struct {
	ID             uuid.UUID       `json:"id"`
	SessionID      string          `json:"session_id"`
	IdempotencyKey string          `json:"-"`
	Shipping       ShippingAddress `json:"shipping"`
	TotalAmount    float64         `json:"total_amount"`
	Currency       string          `json:"currency"`
	Status         OrderStatus     `json:"status"`
	Items          []OrderItem     `json:"items"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}
