package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/quickbite/kiosk/internal/apperr"
	"github.com/quickbite/kiosk/internal/cart"
	"github.com/quickbite/kiosk/internal/logx"
	"github.com/quickbite/kiosk/internal/service"
)

// OrderStore is satisfied by *service.OrderBook.
type OrderStore interface {
	PlaceOrder(ctx context.Context, items []cart.Item) (*service.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*service.Order, error)
	Get(id uuid.UUID) (*service.Order, error)
	ListActive() []service.Order
	Board() service.Board
}

// OrderHandler serves the kitchen and tracking displays.
type OrderHandler struct {
	store OrderStore
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(store OrderStore) *OrderHandler {
	return &OrderHandler{store: store}
}

// RegisterRoutes registers the read endpoints, mounted at /orders.
func (h *OrderHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.ListActive)
	r.Get("/board", h.Board)
	r.Get("/{id}", h.Get)
}

// RegisterStaffRoutes registers status changes, mounted at /orders behind
// a role check.
func (h *OrderHandler) RegisterStaffRoutes(r chi.Router) {
	r.Patch("/{id}/status", h.UpdateStatus)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// ListActive returns the kitchen queue, most recent first.
func (h *OrderHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toOrderResponses(h.store.ListActive()))
}

// Board returns active orders split into preparing and ready.
func (h *OrderHandler) Board(w http.ResponseWriter, r *http.Request) {
	b := h.store.Board()
	writeJSON(w, http.StatusOK, boardResponse{
		Preparing: toOrderResponses(b.Preparing),
		Ready:     toOrderResponses(b.Ready),
	})
}

// Get returns one order.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseOrderID(w, r)
	if !ok {
		return
	}
	o, err := h.store.Get(id)
	if err != nil {
		writeError(w, err, "get order")
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(*o))
}

// UpdateStatus moves an order along its lifecycle. Illegal transitions are
// answered with 409 and leave the order unchanged.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := parseOrderID(w, r)
	if !ok {
		return
	}

	var req updateStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err, "update order status")
		return
	}
	if req.Status == "" {
		writeError(w, apperr.Validation("status is required"), "update order status")
		return
	}

	o, err := h.store.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		writeError(w, err, "update order status")
		return
	}

	logx.Info().Str("order_number", o.Number).Str("status", o.Status).Msg("order status updated")
	writeJSON(w, http.StatusOK, toOrderResponse(*o))
}

func parseOrderID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid order ID"})
		return uuid.Nil, false
	}
	return id, true
}
