package checkout

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Siddharthnigam/jugglers-shop/internal/cart"
	"github.com/Siddharthnigam/jugglers-shop/internal/events"
	"github.com/Siddharthnigam/jugglers-shop/internal/orders"
)

var (
	ErrEmptyCart      = errors.New("cart is empty")
	ErrInvalidRequest = errors.New("invalid checkout request")
)

const currency = "INR"

// Request carries the checkout form fields for one submission. The
// idempotency key dedupes retried submissions of the same form.
type Request struct {
	SessionID      string
	IdempotencyKey string
	FullName       string
	Email          string
	Phone          string
	Address        string
	City           string
	PostalCode     string
}

type Service struct {
	repo      orders.Repository
	publisher events.Publisher
	logger    *zap.Logger
}

func NewService(repo orders.Repository, publisher events.Publisher, logger *zap.Logger) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

// Submit freezes the cart into an order, clears the cart and returns the
// confirmed order. A repeated idempotency key returns the already created
// order without touching the cart again.
func (s *Service) Submit(ctx context.Context, req *Request, cartStore *cart.Store) (*orders.Order, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	if req.IdempotencyKey != "" {
		existing, err := s.repo.GetOrderByIdempotencyKey(ctx, req.IdempotencyKey)
		if err != nil && !errors.Is(err, orders.ErrOrderNotFound) {
			return nil, fmt.Errorf("failed to check idempotency: %w", err)
		}
		if existing != nil {
			s.logger.Info("duplicate checkout request",
				zap.String("idempotency_key", req.IdempotencyKey),
				zap.String("order_id", existing.ID.String()))
			return existing, nil
		}
	}

	items := cartStore.Items()
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	order := &orders.Order{
		ID:             uuid.New(),
		SessionID:      req.SessionID,
		IdempotencyKey: req.IdempotencyKey,
		Shipping: orders.ShippingAddress{
			FullName:   req.FullName,
			Email:      req.Email,
			Phone:      req.Phone,
			Address:    req.Address,
			City:       req.City,
			PostalCode: req.PostalCode,
		},
		Currency: currency,
		Status:   orders.OrderStatusConfirmed,
	}
	for _, item := range items {
		order.Items = append(order.Items, orders.OrderItem{
			ProductID:   item.ProductID,
			VariantKey:  item.VariantKey,
			ProductName: item.Name,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Subtotal:    item.UnitPrice * float64(item.Quantity),
		})
		order.TotalAmount += item.UnitPrice * float64(item.Quantity)
	}

	if err := s.repo.CreateOrder(ctx, order); err != nil {
		if errors.Is(err, orders.ErrDuplicateCheckout) {
			// Lost the race against a concurrent retry: return its result.
			return s.repo.GetOrderByIdempotencyKey(ctx, req.IdempotencyKey)
		}
		return nil, fmt.Errorf("create order: %w", err)
	}

	if err := s.publisher.PublishOrderCreated(ctx, order); err != nil {
		// The order exists either way; the event stream catches up later.
		s.logger.Error("publish order event failed", zap.String("order_id", order.ID.String()), zap.Error(err))
	}

	cartStore.Clear(ctx)
	return order, nil
}

func validate(req *Request) error {
	if strings.TrimSpace(req.FullName) == "" {
		return fmt.Errorf("%w: full name is required", ErrInvalidRequest)
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return fmt.Errorf("%w: invalid email address", ErrInvalidRequest)
	}
	if strings.TrimSpace(req.Address) == "" {
		return fmt.Errorf("%w: address is required", ErrInvalidRequest)
	}
	if strings.TrimSpace(req.City) == "" {
		return fmt.Errorf("%w: city is required", ErrInvalidRequest)
	}
	return nil
}
