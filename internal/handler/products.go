package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/quickbite/kiosk/internal/catalog"
)

// ProductReader is satisfied by *catalog.Catalog.
type ProductReader interface {
	Products() []catalog.Product
	ProductsByCategory(categoryID string) []catalog.Product
	Product(id string) (catalog.Product, error)
}

// ProductHandler serves the browsable menu. Out-of-stock products are
// listed like any other; only adding them to a cart is refused.
type ProductHandler struct {
	store ProductReader
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(store ProductReader) *ProductHandler {
	return &ProductHandler{store: store}
}

// RegisterRoutes registers product read endpoints, mounted at /products.
func (h *ProductHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
}

// List returns all products, newest first, optionally filtered by ?category=.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	var products []catalog.Product
	if cat := r.URL.Query().Get("category"); cat != "" {
		products = h.store.ProductsByCategory(cat)
	} else {
		products = h.store.Products()
	}
	writeJSON(w, http.StatusOK, toProductResponses(products))
}

// Get returns a single product.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.store.Product(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err, "get product")
		return
	}
	writeJSON(w, http.StatusOK, toProductResponse(p))
}
