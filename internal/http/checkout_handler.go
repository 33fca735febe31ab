package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/Siddharthnigam/jugglers-shop/internal/checkout"
	"github.com/Siddharthnigam/jugglers-shop/internal/session"
)

type CheckoutHandler struct {
	service  *checkout.Service
	sessions *session.Manager
	timeout  time.Duration
}

func NewCheckoutHandler(service *checkout.Service, sessions *session.Manager, timeout time.Duration) *CheckoutHandler {
	return &CheckoutHandler{
		service:  service,
		sessions: sessions,
		timeout:  timeout,
	}
}

type CheckoutRequestDTO struct {
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
}

func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing session")
		return
	}

	var dto CheckoutRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	req := &checkout.Request{
		SessionID:      sessionID,
		IdempotencyKey: r.Header.Get("Idempotency-Key"),
		FullName:       dto.FullName,
		Email:          dto.Email,
		Phone:          dto.Phone,
		Address:        dto.Address,
		City:           dto.City,
		PostalCode:     dto.PostalCode,
	}

	order, err := h.service.Submit(ctx, req, h.sessions.Cart(ctx, sessionID))
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrInvalidRequest):
			respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
		case errors.Is(err, checkout.ErrEmptyCart):
			respondError(w, http.StatusConflict, "empty_cart", "cart is empty")
		default:
			respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		}
		return
	}

	respondJSON(w, http.StatusCreated, order)
}
