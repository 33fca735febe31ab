package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Siddharthnigam/jugglers-shop/internal/catalog"
	"github.com/Siddharthnigam/jugglers-shop/internal/checkout"
	"github.com/Siddharthnigam/jugglers-shop/internal/orders"
	"github.com/Siddharthnigam/jugglers-shop/internal/session"
	"github.com/Siddharthnigam/jugglers-shop/internal/wishlist"
)

type RouterConfig struct {
	Sessions       *session.Manager
	Catalog        catalog.Catalog
	Checkout       *checkout.Service
	Orders         orders.Repository
	Wishlist       *wishlist.Store
	RequestTimeout time.Duration
}

// NewRouter assembles the storefront API surface.
func NewRouter(cfg RouterConfig) *chi.Mux {
	cartHandler := NewCartHandler(cfg.Sessions, cfg.Catalog, cfg.RequestTimeout)
	productHandler := NewProductHandler(cfg.Catalog, cfg.RequestTimeout)
	checkoutHandler := NewCheckoutHandler(cfg.Checkout, cfg.Sessions, cfg.RequestTimeout)
	ordersHandler := NewOrdersHandler(cfg.Orders, cfg.RequestTimeout)
	wishlistHandler := NewWishlistHandler(cfg.Wishlist, cfg.Catalog, cfg.Sessions, cfg.RequestTimeout)

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestIDMiddleware)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(SessionMiddleware)
	r.Use(MockAuthMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", productHandler.List)
			r.Get("/featured", productHandler.Featured)
			r.Get("/categories", productHandler.Categories)
			r.Get("/{slug}", productHandler.GetBySlug)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.GetCart)
			r.Delete("/", cartHandler.ClearCart)
			r.Post("/items", cartHandler.AddItem)
			r.Put("/items/{item_id}", cartHandler.UpdateQuantity)
			r.Put("/items/{item_id}/variant", cartHandler.UpdateVariant)
			r.Delete("/items/{item_id}", cartHandler.RemoveItem)
		})

		r.Post("/checkout", checkoutHandler.Submit)

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", ordersHandler.List)
			r.Get("/{order_id}", ordersHandler.Get)
		})

		r.Route("/wishlist", func(r chi.Router) {
			r.Get("/", wishlistHandler.List)
			r.Post("/", wishlistHandler.Add)
			r.Delete("/{product_id}", wishlistHandler.Remove)
			r.Post("/{product_id}/move", wishlistHandler.MoveToCart)
		})
	})

	return r
}
