package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Siddharthnigam/jugglers-shop/internal/catalog"
	"github.com/Siddharthnigam/jugglers-shop/internal/domain"
	"github.com/Siddharthnigam/jugglers-shop/internal/session"
	"github.com/Siddharthnigam/jugglers-shop/internal/wishlist"
)

type WishlistHandler struct {
	store    *wishlist.Store
	catalog  catalog.Catalog
	sessions *session.Manager
	timeout  time.Duration
}

func NewWishlistHandler(store *wishlist.Store, cat catalog.Catalog, sessions *session.Manager, timeout time.Duration) *WishlistHandler {
	return &WishlistHandler{
		store:    store,
		catalog:  cat,
		sessions: sessions,
		timeout:  timeout,
	}
}

type WishlistAddRequestDTO struct {
	ProductID string `json:"product_id"`
}

type MoveToCartRequestDTO struct {
	VariantKey string `json:"variant_key"`
}

type WishlistResponse struct {
	Items []wishlist.Item `json:"items"`
}

func (h *WishlistHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, &WishlistResponse{Items: h.store.List(userID)})
}

func (h *WishlistHandler) Add(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req WishlistAddRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if _, err := h.catalog.GetByID(ctx, req.ProductID); err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "product not found")
			return
		}
		respondError(w, http.StatusBadGateway, "catalog_unavailable", "product catalog unavailable")
		return
	}

	h.store.Add(userID, req.ProductID)
	respondJSON(w, http.StatusCreated, &WishlistResponse{Items: h.store.List(userID)})
}

func (h *WishlistHandler) Remove(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	h.store.Remove(userID, chi.URLParam(r, "product_id"))
	respondJSON(w, http.StatusOK, &WishlistResponse{Items: h.store.List(userID)})
}

// MoveToCart adds the wishlist product to the session cart and drops it
// from the wishlist when the add succeeds.
func (h *WishlistHandler) MoveToCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing session")
		return
	}

	productID := chi.URLParam(r, "product_id")
	if !h.store.Contains(userID, productID) {
		respondError(w, http.StatusNotFound, "not_found", "product not on wishlist")
		return
	}

	var req MoveToCartRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	product, err := h.catalog.GetByID(ctx, productID)
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
		respondError(w, http.StatusBadRequest, "invalid_variant", "variant not available for product")
		return
	}

	if err := h.store.MoveToCart(ctx, userID, h.sessions.Cart(ctx, sessionID), snap); err != nil {
		handleCartError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, &WishlistResponse{Items: h.store.List(userID)})
}

func (h *WishlistHandler) userID(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := getUserID(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return "", false
	}
	return userID, true
}
