package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/quickbite/kiosk/internal/catalog"
)

// CategoryReader is satisfied by *catalog.Catalog.
type CategoryReader interface {
	Categories() []catalog.Category
	Category(id string) (catalog.Category, error)
}

// CategoryHandler serves the menu sidebar.
type CategoryHandler struct {
	store CategoryReader
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(store CategoryReader) *CategoryHandler {
	return &CategoryHandler{store: store}
}

// RegisterRoutes registers category endpoints, mounted at /categories.
func (h *CategoryHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
}

// List returns every category in menu order.
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Categories())
}

// Get returns one category.
func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	c, err := h.store.Category(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err, "get category")
		return
	}
	writeJSON(w, http.StatusOK, c)
}
