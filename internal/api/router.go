package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/saydulla27/foodapp-frontend/internal/api/handlers"
	"github.com/saydulla27/foodapp-frontend/internal/backend"
	"github.com/saydulla27/foodapp-frontend/internal/cart"
	"github.com/saydulla27/foodapp-frontend/internal/checkout"
	"github.com/saydulla27/foodapp-frontend/internal/events"
)

// NewRouter builds the HTTP router for the storefront service
func NewRouter(store cart.Store, client *backend.Client, publisher events.Publisher) http.Handler {
	r := chi.NewRouter()

	h := handlers.NewStorefrontHandler(checkout.NewManager(), store, client, publisher)

	// Customer storefront sessions (Mini-App flow)
	r.Route("/store", func(r chi.Router) {
		r.Post("/sessions", h.CreateSession)
		r.Route("/sessions/{sessionID}", func(r chi.Router) {
			r.Get("/", h.GetState)
			r.Get("/menu", h.GetMenu)
			r.Post("/category", h.SelectCategory)
			r.Post("/page", h.Navigate)
			r.Post("/cart/adjust", h.AdjustCart)
			r.Post("/cart/clear", h.ClearCart)
			r.Post("/checkout", h.SetCheckoutInput)
			r.Post("/location/request", h.BeginLocation)
			r.Post("/location/result", h.CompleteLocation)
			r.Post("/submit", h.Submit)
			r.Post("/reset", h.Reset)
		})
	})

	// Admin reporting
	r.Get("/admin/reports", h.Reports)

	// health
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	return r
}
