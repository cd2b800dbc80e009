package handler

import (
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/quickbite/kiosk/internal/enum"
	"github.com/quickbite/kiosk/internal/money"
	"github.com/quickbite/kiosk/internal/service"
	"github.com/shopspring/decimal"
)

// ReportsHandler aggregates placed orders for the back office. Cancelled
// orders are left out of every report.
type ReportsHandler struct {
	orders OrderLister
	now    func() time.Time
}

// NewReportsHandler creates a new ReportsHandler.
func NewReportsHandler(orders OrderLister) *ReportsHandler {
	return &ReportsHandler{orders: orders, now: time.Now}
}

// RegisterRoutes registers report endpoints, mounted at /admin/reports.
func (h *ReportsHandler) RegisterRoutes(r chi.Router) {
	r.Get("/product-sales", h.ProductSales)
	r.Get("/hourly-sales", h.HourlySales)
}

// --- Response types ---

type productSalesResponse struct {
	ProductID    string `json:"product_id"`
	ProductName  string `json:"product_name"`
	QuantitySold int    `json:"quantity_sold"`
	TotalRevenue string `json:"total_revenue"`
}

type hourlySalesResponse struct {
	Hour         int    `json:"hour"`
	OrderCount   int    `json:"order_count"`
	TotalRevenue string `json:"total_revenue"`
}

// --- Handlers ---

// ProductSales returns top selling products by quantity, then revenue.
func (h *ReportsHandler) ProductSales(w http.ResponseWriter, r *http.Request) {
	orders, err := h.ordersInRange(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	type row struct {
		id, name string
		qty      int
		revenue  decimal.Decimal
	}
	rows := map[string]*row{}
	for _, o := range orders {
		for _, it := range o.Items {
			rw, ok := rows[it.Product.ID]
			if !ok {
				rw = &row{id: it.Product.ID, name: it.Product.Name, revenue: decimal.Zero}
				rows[it.Product.ID] = rw
			}
			rw.qty += it.Quantity
			rw.revenue = rw.revenue.Add(it.LineTotal())
		}
	}

	sorted := make([]*row, 0, len(rows))
	for _, rw := range rows {
		sorted = append(sorted, rw)
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].qty != sorted[j].qty {
			return sorted[i].qty > sorted[j].qty
		}
		if c := sorted[i].revenue.Cmp(sorted[j].revenue); c != 0 {
			return c > 0
		}
		return sorted[i].id < sorted[j].id
	})

	resp := make([]productSalesResponse, len(sorted))
	for i, rw := range sorted {
		resp[i] = productSalesResponse{
			ProductID:    rw.id,
			ProductName:  rw.name,
			QuantitySold: rw.qty,
			TotalRevenue: money.String(rw.revenue),
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// HourlySales returns order count and revenue per hour of day, for hours
// that had orders.
func (h *ReportsHandler) HourlySales(w http.ResponseWriter, r *http.Request) {
	orders, err := h.ordersInRange(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	var counts [24]int
	var revenue [24]decimal.Decimal
	for _, o := range orders {
		hr := o.Timestamp.In(time.Local).Hour()
		counts[hr]++
		revenue[hr] = revenue[hr].Add(o.Total)
	}

	resp := []hourlySalesResponse{}
	for hr := 0; hr < 24; hr++ {
		if counts[hr] == 0 {
			continue
		}
		resp = append(resp, hourlySalesResponse{
			Hour:         hr,
			OrderCount:   counts[hr],
			TotalRevenue: money.String(revenue[hr]),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- Helpers ---

func (h *ReportsHandler) ordersInRange(r *http.Request) ([]service.Order, error) {
	start, end, err := parseDateRange(r, h.now())
	if err != nil {
		return nil, err
	}
	var out []service.Order
	for _, o := range h.orders.List() {
		if o.Status == enum.OrderStatusCancelled {
			continue
		}
		if o.Timestamp.Before(start) || !o.Timestamp.Before(end) {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

// parseDateRange parses start_date and end_date query params in local time.
// Defaults to today only. The returned end is exclusive (next day midnight).
func parseDateRange(r *http.Request, now time.Time) (time.Time, time.Time, error) {
	const layout = "2006-01-02"

	now = now.In(time.Local)
	startDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	endDate := startDate.AddDate(0, 0, 1)

	if s := r.URL.Query().Get("start_date"); s != "" {
		t, err := time.ParseInLocation(layout, s, time.Local)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid start_date format: %w", err)
		}
		startDate = t
	}

	if s := r.URL.Query().Get("end_date"); s != "" {
		t, err := time.ParseInLocation(layout, s, time.Local)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid end_date format: %w", err)
		}
		endDate = t.AddDate(0, 0, 1)
	}

	if !startDate.Before(endDate) {
		return time.Time{}, time.Time{}, fmt.Errorf("start_date must be before end_date")
	}

	return startDate, endDate, nil
}
