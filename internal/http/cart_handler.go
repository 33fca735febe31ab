package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Siddharthnigam/jugglers-shop/internal/cart"
	"github.com/Siddharthnigam/jugglers-shop/internal/catalog"
	"github.com/Siddharthnigam/jugglers-shop/internal/domain"
	"github.com/Siddharthnigam/jugglers-shop/internal/session"
)

type CartHandler struct {
	sessions *session.Manager
	catalog  catalog.Catalog
	timeout  time.Duration
}

func NewCartHandler(sessions *session.Manager, cat catalog.Catalog, timeout time.Duration) *CartHandler {
	return &CartHandler{
		sessions: sessions,
		catalog:  cat,
		timeout:  timeout,
	}
}

type AddItemRequestDTO struct {
	ProductID  string `json:"product_id"`
	VariantKey string `json:"variant_key"`
}

type UpdateQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

type UpdateVariantRequestDTO struct {
	VariantKey string `json:"variant_key"`
}

type CartViewDTO struct {
	Items      []domain.LineItem `json:"items"`
	TotalItems int               `json:"total_items"`
	TotalPrice float64           `json:"total_price"`
}

func cartView(store *cart.Store) CartViewDTO {
	items := store.Items()
	return CartViewDTO{
		Items:      items,
		TotalItems: domain.TotalItems(items),
		TotalPrice: domain.TotalPrice(items),
	}
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	store, ok := h.cartStore(ctx, w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, cartView(store))
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	store, ok := h.cartStore(ctx, w, r)
	if !ok {
		return
	}

	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ProductID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}

	product, err := h.catalog.GetByID(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "product not found")
			return
		}
		respondError(w, http.StatusBadGateway, "catalog_unavailable", "product catalog unavailable")
		return
	}

	snap, err := product.Snapshot(req.VariantKey)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrVariantNotFound):
			respondError(w, http.StatusBadRequest, "invalid_variant", "variant not available for product")
		case errors.Is(err, domain.ErrProductUnavailable):
			respondError(w, http.StatusConflict, "product_unavailable", "product is not active")
		default:
			respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		}
		return
	}

	if err := store.AddItem(ctx, snap); err != nil {
		handleCartError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, cartView(store))
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	store, ok := h.cartStore(ctx, w, r)
	if !ok {
		return
	}

	itemID := chi.URLParam(r, "item_id")
	if itemID == "" {
		respondError(w, http.StatusBadRequest, "invalid_item_id", "item id is required")
		return
	}

	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Quantity > 99 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be at most 99")
		return
	}

	if err := store.UpdateQuantity(ctx, itemID, req.Quantity); err != nil {
		handleCartError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, cartView(store))
}

func (h *CartHandler) UpdateVariant(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	store, ok := h.cartStore(ctx, w, r)
	if !ok {
		return
	}

	itemID := chi.URLParam(r, "item_id")
	var req UpdateVariantRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if err := store.UpdateVariant(ctx, itemID, req.VariantKey); err != nil {
		handleCartError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, cartView(store))
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	store, ok := h.cartStore(ctx, w, r)
	if !ok {
		return
	}

	store.RemoveItem(ctx, chi.URLParam(r, "item_id"))
	respondJSON(w, http.StatusOK, cartView(store))
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	store, ok := h.cartStore(ctx, w, r)
	if !ok {
		return
	}

	store.Clear(ctx)
	respondJSON(w, http.StatusOK, cartView(store))
}

func (h *CartHandler) cartStore(ctx context.Context, w http.ResponseWriter, r *http.Request) (*cart.Store, bool) {
	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing session")
		return nil, false
	}
	return h.sessions.Cart(ctx, sessionID), true
}

func handleCartError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, cart.ErrStockLimit):
		respondError(w, http.StatusConflict, "stock_limit", "maximum stock limit reached")
	case errors.Is(err, cart.ErrOutOfStock):
		respondError(w, http.StatusConflict, "out_of_stock", "item is out of stock")
	default:
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
