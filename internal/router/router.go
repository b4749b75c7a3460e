package router

import (
	"net/http"
	"strings"

	"storefront/internal/handler"
	"storefront/internal/middleware"

	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
func New(
	productHandler *handler.ProductHandler,
	userHandler *handler.UserHandler,
	orderHandler *handler.OrderHandler,
	apiKey string,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint (no authentication required)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	// Catalogue routes: list, search, and per-product operations.
	productsHandler := func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/products/search") {
			productHandler.Search(w, r)
			return
		}
		if r.URL.Path == "/api/products" || r.URL.Path == "/api/products/" {
			productHandler.GetAll(w, r)
			return
		}
		http.Error(w, "not found", http.StatusNotFound)
	}
	mux.HandleFunc("/api/products", productsHandler)
	mux.HandleFunc("/api/products/", productsHandler)
	mux.HandleFunc("/api/product", productHandler.Add)
	mux.HandleFunc("/api/product/", productHandler.ByID)

	// Account routes: register, login, addresses.
	mux.HandleFunc("/api/users/", userHandler.Route)

	// Order routes: placement and listing.
	orderRouteHandler := func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/orders/place" {
			orderHandler.Place(w, r)
			return
		}
		if r.URL.Path == "/api/orders" || r.URL.Path == "/api/orders/" {
			orderHandler.GetAll(w, r)
			return
		}
		http.Error(w, "not found", http.StatusNotFound)
	}
	mux.HandleFunc("/api/orders", orderRouteHandler)
	mux.HandleFunc("/api/orders/", orderRouteHandler)

	// Coupon validity check.
	mux.HandleFunc("/api/coupons/", orderHandler.CheckCoupon)

	// Apply middleware in order: Recovery -> Logging -> CORS -> APIKeyAuth
	var h http.Handler = mux
	if apiKey != "" {
		h = middleware.APIKeyAuth(apiKey, logger)(h)
	}
	h = middleware.CORS(h)
	h = middleware.Logging(logger)(h)
	h = middleware.Recovery(logger)(h)

	return h
}
