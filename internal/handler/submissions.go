package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/quickbite/kiosk/internal/apperr"
	"github.com/quickbite/kiosk/internal/cart"
	"github.com/quickbite/kiosk/internal/catalog"
	"github.com/quickbite/kiosk/internal/logx"
	"github.com/quickbite/kiosk/internal/money"
	"github.com/shopspring/decimal"
)

// SubmissionRequest is the order submission contract used by kiosks that
// keep their cart client-side.
type SubmissionRequest struct {
	Items      []SubmissionItem `json:"items"`
	TotalPrice decimal.Decimal  `json:"total_price"`
}

// SubmissionItem is one cart line of a submission.
type SubmissionItem struct {
	ProductID string   `json:"productId"`
	Quantity  int      `json:"quantity"`
	Options   []string `json:"options"`
}

// SubmissionResponse confirms a placed order.
type SubmissionResponse struct {
	OrderID     uuid.UUID   `json:"order_id"`
	OrderNumber string      `json:"order_number"`
	Status      string      `json:"status"`
	TotalPrice  json.Number `json:"total_price"`
}

// SubmissionHandler accepts whole-cart order submissions.
type SubmissionHandler struct {
	products ProductReader
	orders   OrderStore
}

// NewSubmissionHandler creates a new SubmissionHandler.
func NewSubmissionHandler(products ProductReader, orders OrderStore) *SubmissionHandler {
	return &SubmissionHandler{products: products, orders: orders}
}

// RegisterRoutes registers the submission endpoint, mounted at /api.
func (h *SubmissionHandler) RegisterRoutes(r chi.Router) {
	r.Post("/orders", h.Submit)
}

// Submit re-prices every line from the catalog and places the order. The
// client's total must match the server's.
func (h *SubmissionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req SubmissionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err, "submit order")
		return
	}

	items, err := h.price(req.Items)
	if err != nil {
		writeError(w, err, "submit order")
		return
	}

	// Kiosk clients sum prices in floating point, so compare at cents.
	total := cart.Total(items)
	if !req.TotalPrice.Round(2).Equal(total) {
		writeError(w, apperr.Validation(fmt.Sprintf(
			"total_price %s does not match %s", req.TotalPrice.String(), money.String(total),
		)), "submit order")
		return
	}

	o, err := h.orders.PlaceOrder(r.Context(), items)
	if err != nil {
		writeError(w, err, "submit order")
		return
	}

	logx.Info().Str("order_number", o.Number).Str("total", money.String(o.Total)).Msg("order submitted")
	writeJSON(w, http.StatusCreated, SubmissionResponse{
		OrderID:     o.ID,
		OrderNumber: o.Number,
		Status:      o.Status,
		TotalPrice:  json.Number(money.String(o.Total)),
	})
}

// price builds cart lines through a scratch cart so submissions get the same
// stock and option checks as the kiosk.
func (h *SubmissionHandler) price(lines []SubmissionItem) ([]cart.Item, error) {
	scratch := cart.New()
	for i, line := range lines {
		if line.Quantity <= 0 {
			return nil, apperr.Validation(fmt.Sprintf("items[%d]: quantity must be > 0", i))
		}
		p, err := h.products.Product(line.ProductID)
		if err != nil {
			return nil, fmt.Errorf("items[%d]: %w", i, err)
		}
		selected := make([]catalog.ProductOption, len(line.Options))
		for j, id := range line.Options {
			selected[j] = catalog.ProductOption{ID: id}
		}
		item, err := scratch.AddItem(p, selected)
		if err != nil {
			return nil, fmt.Errorf("items[%d]: %w", i, err)
		}
		scratch.UpdateQuantity(item.CartID, line.Quantity-1)
	}
	return scratch.Items(), nil
}
