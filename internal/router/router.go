package router

import (
	"net/http"

	"github.com/rs/zerolog"

	"stylekart/internal/handler"
	"stylekart/internal/metrics"
	"stylekart/internal/middleware"
)

// New creates the HTTP router with all routes and middleware configured.
func New(
	productHandler *handler.ProductHandler,
	taxonomyHandler *handler.TaxonomyHandler,
	offerHandler *handler.OfferHandler,
	cartHandler *handler.CartHandler,
	wishlistHandler *handler.WishlistHandler,
	userHandler *handler.UserHandler,
	recorder *metrics.Recorder,
	apiKey string,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint (no authentication required)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})
	mux.Handle("GET /metrics", recorder.Handler())

	// Storefront reads
	mux.HandleFunc("GET /api/products", productHandler.List)
	mux.HandleFunc("GET /api/products/featured", productHandler.Featured)
	mux.HandleFunc("GET /api/products/slug/{slug}", productHandler.GetBySlug)
	mux.HandleFunc("GET /api/products/{id}", productHandler.GetByID)
	mux.HandleFunc("GET /api/products/{id}/offer", offerHandler.BestForProduct)
	mux.HandleFunc("GET /api/offers", offerHandler.List)

	mux.HandleFunc("GET /api/genders", taxonomyHandler.ListGenders)
	mux.HandleFunc("GET /api/genders/{id}", taxonomyHandler.GetGender)
	mux.HandleFunc("GET /api/categories", taxonomyHandler.ListCategories)
	mux.HandleFunc("GET /api/categories/{id}", taxonomyHandler.GetCategory)
	mux.HandleFunc("GET /api/subcategories", taxonomyHandler.ListSubcategories)
	mux.HandleFunc("GET /api/subcategories/{id}", taxonomyHandler.GetSubcategory)

	// Cart and wishlist, shared by users and guests
	mux.HandleFunc("GET /api/cart", cartHandler.Get)
	mux.HandleFunc("DELETE /api/cart", cartHandler.Clear)
	mux.HandleFunc("POST /api/cart/items", cartHandler.AddItem)
	mux.HandleFunc("PUT /api/cart/items/{productId}", cartHandler.UpdateQuantity)
	mux.HandleFunc("DELETE /api/cart/items/{productId}", cartHandler.RemoveItem)

	mux.HandleFunc("GET /api/wishlist", wishlistHandler.List)
	mux.HandleFunc("DELETE /api/wishlist", wishlistHandler.Clear)
	mux.HandleFunc("POST /api/wishlist/items", wishlistHandler.Add)
	mux.HandleFunc("DELETE /api/wishlist/items/{productId}", wishlistHandler.Remove)

	// Accounts
	mux.HandleFunc("POST /api/auth/register", userHandler.Register)
	mux.HandleFunc("POST /api/auth/login", userHandler.Login)

	// Admin catalogue writes, guarded by the API key middleware
	mux.HandleFunc("POST /api/admin/products", productHandler.Create)
	mux.HandleFunc("PUT /api/admin/products/{id}", productHandler.Update)
	mux.HandleFunc("DELETE /api/admin/products/{id}", productHandler.Delete)

	mux.HandleFunc("POST /api/admin/offers", offerHandler.Upsert)

	mux.HandleFunc("POST /api/admin/genders", taxonomyHandler.CreateGender)
	mux.HandleFunc("PUT /api/admin/genders/{id}", taxonomyHandler.UpdateGender)
	mux.HandleFunc("DELETE /api/admin/genders/{id}", taxonomyHandler.DeleteGender)

	mux.HandleFunc("POST /api/admin/categories", taxonomyHandler.CreateCategory)
	mux.HandleFunc("PUT /api/admin/categories/{id}", taxonomyHandler.UpdateCategory)
	mux.HandleFunc("DELETE /api/admin/categories/{id}", taxonomyHandler.DeleteCategory)

	mux.HandleFunc("POST /api/admin/subcategories", taxonomyHandler.CreateSubcategory)
	mux.HandleFunc("PUT /api/admin/subcategories/{id}", taxonomyHandler.UpdateSubcategory)
	mux.HandleFunc("DELETE /api/admin/subcategories/{id}", taxonomyHandler.DeleteSubcategory)

	// Apply middleware in order: Recovery -> Logging -> CORS -> APIKeyAuth
	var h http.Handler = mux
	h = middleware.APIKeyAuth(apiKey, logger)(h)
	h = middleware.CORS(h)
	h = middleware.Logging(logger, recorder)(h)
	h = middleware.Recovery(logger)(h)

	return h
}
