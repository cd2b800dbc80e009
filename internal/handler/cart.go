package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/quickbite/kiosk/internal/cart"
	"github.com/quickbite/kiosk/internal/catalog"
)

// CartHandler edits the cart of the caller's session.
type CartHandler struct {
	sessions SessionStore
	products ProductReader
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(sessions SessionStore, products ProductReader) *CartHandler {
	return &CartHandler{sessions: sessions, products: products}
}

// RegisterRoutes registers cart endpoints, mounted at /cart behind
// middleware.Authenticate.
func (h *CartHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.Get)
	r.Post("/items", h.AddItem)
	r.Patch("/items/{cartId}", h.UpdateQuantity)
	r.Delete("/", h.Clear)
}

type addItemRequest struct {
	ProductID string   `json:"product_id"`
	OptionIDs []string `json:"option_ids"`
}

type updateQuantityRequest struct {
	Delta int `json:"delta"`
}

// Get returns the cart and its current total.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r, h.sessions)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toCartResponse(s.Cart().Items()))
}

// AddItem appends a customized product as a new cart line.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r, h.sessions)
	if !ok {
		return
	}

	var req addItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err, "add cart item")
		return
	}

	p, err := h.products.Product(req.ProductID)
	if err != nil {
		writeError(w, err, "add cart item")
		return
	}

	selected := make([]catalog.ProductOption, len(req.OptionIDs))
	for i, id := range req.OptionIDs {
		selected[i] = catalog.ProductOption{ID: id}
	}

	if _, err := s.Cart().AddItem(p, selected); err != nil {
		writeError(w, err, "add cart item")
		return
	}
	writeJSON(w, http.StatusCreated, toCartResponse(s.Cart().Items()))
}

// UpdateQuantity applies a +/- delta to one line. A line that drops to zero
// is removed; an unknown line is left alone.
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r, h.sessions)
	if !ok {
		return
	}

	var req updateQuantityRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err, "update cart item")
		return
	}

	s.Cart().UpdateQuantity(chi.URLParam(r, "cartId"), req.Delta)
	writeJSON(w, http.StatusOK, toCartResponse(s.Cart().Items()))
}

// Clear empties the cart.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r, h.sessions)
	if !ok {
		return
	}
	s.Cart().Clear()
	writeJSON(w, http.StatusOK, toCartResponse([]cart.Item{}))
}
