package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/quickbite/kiosk/internal/cart"
	"github.com/quickbite/kiosk/internal/money"
)

// CustomizationHandler prices a product with a set of selected options, as
// the customization modal shows it before the item is added.
type CustomizationHandler struct {
	store ProductReader
}

// NewCustomizationHandler creates a new CustomizationHandler.
func NewCustomizationHandler(store ProductReader) *CustomizationHandler {
	return &CustomizationHandler{store: store}
}

// RegisterRoutes registers the pricing endpoint inside /products.
func (h *CustomizationHandler) RegisterRoutes(r chi.Router) {
	r.Post("/{id}/price", h.Price)
}

type priceRequest struct {
	OptionIDs []string `json:"option_ids"`
}

type priceResponse struct {
	ProductID       string           `json:"product_id"`
	BasePrice       string           `json:"base_price"`
	SelectedOptions []optionResponse `json:"selected_options"`
	CurrentPrice    string           `json:"current_price"`
	DisplayPrice    string           `json:"display_price"`
}

// Price resolves the option ids against the product. Repeated ids count once.
func (h *CustomizationHandler) Price(w http.ResponseWriter, r *http.Request) {
	p, err := h.store.Product(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err, "price product")
		return
	}

	var req priceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err, "price product")
		return
	}

	c := cart.NewCustomization(p)
	if err := c.Select(req.OptionIDs...); err != nil {
		writeError(w, err, "price product")
		return
	}

	price := c.CurrentPrice()
	writeJSON(w, http.StatusOK, priceResponse{
		ProductID:       p.ID,
		BasePrice:       money.String(p.Price),
		SelectedOptions: toOptionResponses(c.Selected()),
		CurrentPrice:    money.String(price),
		DisplayPrice:    money.Display(price),
	})
}
