package handler

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/quickbite/kiosk/internal/apperr"
	"github.com/quickbite/kiosk/internal/catalog"
	"github.com/quickbite/kiosk/internal/enum"
	"github.com/quickbite/kiosk/internal/logx"
	"github.com/quickbite/kiosk/internal/money"
	"github.com/quickbite/kiosk/internal/service"
	"github.com/shopspring/decimal"
)

// InventoryStore is satisfied by *catalog.Inventory.
type InventoryStore interface {
	AddProduct(in catalog.ProductInput) (catalog.Product, error)
	DeleteProduct(id string) bool
	ToggleStock(id string) (catalog.Product, bool)
	Stats() catalog.Stats
}

// OrderLister is satisfied by *service.OrderBook.
type OrderLister interface {
	List() []service.Order
	ListActive() []service.Order
}

// CatalogNotifier is told about every catalog change.
type CatalogNotifier interface {
	NotifyCatalog(ctx context.Context, product catalog.Product)
}

// AdminHandler serves the back-office inventory and dashboard endpoints.
type AdminHandler struct {
	inventory InventoryStore
	orders    OrderLister
	notifier  CatalogNotifier
}

// NewAdminHandler creates a new AdminHandler. notifier may be nil.
func NewAdminHandler(inventory InventoryStore, orders OrderLister, notifier CatalogNotifier) *AdminHandler {
	return &AdminHandler{inventory: inventory, orders: orders, notifier: notifier}
}

// RegisterRoutes registers admin endpoints, mounted at /admin.
func (h *AdminHandler) RegisterRoutes(r chi.Router) {
	r.Post("/products", h.CreateProduct)
	r.Delete("/products/{id}", h.DeleteProduct)
	r.Patch("/products/{id}/stock", h.ToggleStock)
	r.Get("/stats", h.Stats)
}

// --- Request / Response types ---

type createOptionRequest struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price string `json:"price"`
}

type createProductRequest struct {
	Name        string                `json:"name"`
	Description string                `json:"description"`
	Price       string                `json:"price"`
	CategoryID  string                `json:"category_id"`
	Image       string                `json:"image"`
	Options     []createOptionRequest `json:"options"`
	Calories    *int                  `json:"calories"`
	Allergens   []string              `json:"allergens"`
}

type statsResponse struct {
	Products     int    `json:"products"`
	Categories   int    `json:"categories"`
	OutOfStock   int    `json:"out_of_stock"`
	ActiveOrders int    `json:"active_orders"`
	TotalOrders  int    `json:"total_orders"`
	Revenue      string `json:"revenue"`
}

func (req createProductRequest) toInput() (catalog.ProductInput, error) {
	in := catalog.ProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		CategoryID:  req.CategoryID,
		Image:       req.Image,
		Calories:    req.Calories,
		Allergens:   req.Allergens,
	}
	for i, o := range req.Options {
		if o.ID == "" {
			o.ID = fmt.Sprintf("opt%d", i+1)
		}
		if strings.TrimSpace(o.Name) == "" {
			return in, apperr.Validation("option name is required")
		}
		price := decimal.Zero
		if strings.TrimSpace(o.Price) != "" {
			var err error
			if price, err = money.Parse(o.Price); err != nil {
				return in, apperr.Validation("invalid option price")
			}
		}
		in.Options = append(in.Options, catalog.ProductOption{ID: o.ID, Name: o.Name, Price: price})
	}
	return in, nil
}

// --- Handlers ---

// CreateProduct adds a product to the menu.
func (h *AdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err, "create product")
		return
	}

	in, err := req.toInput()
	if err != nil {
		writeError(w, err, "create product")
		return
	}

	p, err := h.inventory.AddProduct(in)
	if err != nil {
		writeError(w, err, "create product")
		return
	}

	logx.Info().Str("product_id", p.ID).Str("name", p.Name).Msg("product added")
	h.notify(r.Context(), p)
	writeJSON(w, http.StatusCreated, toProductResponse(p))
}

// DeleteProduct removes a product. Deleting an unknown product succeeds.
func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if h.inventory.DeleteProduct(id) {
		logx.Info().Str("product_id", id).Msg("product deleted")
		h.notify(r.Context(), catalog.Product{ID: id})
	}
	w.WriteHeader(http.StatusNoContent)
}

// ToggleStock flips a product's out-of-stock flag. An unknown product is a
// no-op answered with 204.
func (h *AdminHandler) ToggleStock(w http.ResponseWriter, r *http.Request) {
	p, ok := h.inventory.ToggleStock(chi.URLParam(r, "id"))
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	h.notify(r.Context(), p)
	writeJSON(w, http.StatusOK, toProductResponse(p))
}

// Stats returns the dashboard tiles.
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	s := h.inventory.Stats()
	all := h.orders.List()

	resp := statsResponse{
		Products:     s.Products,
		Categories:   s.Categories,
		OutOfStock:   s.OutOfStock,
		ActiveOrders: len(h.orders.ListActive()),
		TotalOrders:  len(all),
	}
	revenue := decimal.Zero
	for _, o := range all {
		if o.Status == enum.OrderStatusCancelled {
			continue
		}
		revenue = revenue.Add(o.Total)
	}
	resp.Revenue = money.String(revenue)
	writeJSON(w, http.StatusOK, resp)
}

func (h *AdminHandler) notify(ctx context.Context, p catalog.Product) {
	if h.notifier != nil {
		h.notifier.NotifyCatalog(ctx, p)
	}
}
