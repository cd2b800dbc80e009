package handler

import (
	"time"

	"github.com/google/uuid"
	"github.com/quickbite/kiosk/internal/cart"
	"github.com/quickbite/kiosk/internal/catalog"
	"github.com/quickbite/kiosk/internal/money"
	"github.com/quickbite/kiosk/internal/service"
)

type optionResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price string `json:"price"`
	Label string `json:"label"`
}

type productResponse struct {
	ID           string           `json:"id"`
	CategoryID   string           `json:"category_id"`
	Name         string           `json:"name"`
	Description  string           `json:"description"`
	Price        string           `json:"price"`
	DisplayPrice string           `json:"display_price"`
	Image        string           `json:"image"`
	Options      []optionResponse `json:"options"`
	Calories     *int             `json:"calories,omitempty"`
	Allergens    []string         `json:"allergens,omitempty"`
	IsOutOfStock bool             `json:"is_out_of_stock"`
}

type cartItemResponse struct {
	CartID          string           `json:"cart_id"`
	ProductID       string           `json:"product_id"`
	Name            string           `json:"name"`
	Quantity        int              `json:"quantity"`
	SelectedOptions []optionResponse `json:"selected_options"`
	UnitPrice       string           `json:"unit_price"`
	LineTotal       string           `json:"line_total"`
}

type cartResponse struct {
	Items []cartItemResponse `json:"items"`
	Total string             `json:"total"`
}

type orderResponse struct {
	ID        uuid.UUID          `json:"id"`
	Number    string             `json:"order_number"`
	Status    string             `json:"status"`
	Total     string             `json:"total"`
	Items     []cartItemResponse `json:"items"`
	Timestamp time.Time          `json:"timestamp"`
	UpdatedAt time.Time          `json:"updated_at"`
}

type boardResponse struct {
	Preparing []orderResponse `json:"preparing"`
	Ready     []orderResponse `json:"ready"`
}

func toOptionResponses(opts []catalog.ProductOption) []optionResponse {
	resp := make([]optionResponse, len(opts))
	for i, o := range opts {
		resp[i] = optionResponse{
			ID:    o.ID,
			Name:  o.Name,
			Price: money.String(o.Price),
			Label: money.OptionLabel(o.Price),
		}
	}
	return resp
}

func toProductResponse(p catalog.Product) productResponse {
	return productResponse{
		ID:           p.ID,
		CategoryID:   p.CategoryID,
		Name:         p.Name,
		Description:  p.Description,
		Price:        money.String(p.Price),
		DisplayPrice: money.Display(p.Price),
		Image:        p.Image,
		Options:      toOptionResponses(p.Options),
		Calories:     p.Calories,
		Allergens:    p.Allergens,
		IsOutOfStock: p.IsOutOfStock,
	}
}

func toProductResponses(products []catalog.Product) []productResponse {
	resp := make([]productResponse, len(products))
	for i, p := range products {
		resp[i] = toProductResponse(p)
	}
	return resp
}

func toCartItemResponses(items []cart.Item) []cartItemResponse {
	resp := make([]cartItemResponse, len(items))
	for i, it := range items {
		resp[i] = cartItemResponse{
			CartID:          it.CartID,
			ProductID:       it.Product.ID,
			Name:            it.Product.Name,
			Quantity:        it.Quantity,
			SelectedOptions: toOptionResponses(it.SelectedOptions),
			UnitPrice:       money.String(it.TotalPrice),
			LineTotal:       money.String(it.LineTotal()),
		}
	}
	return resp
}

func toCartResponse(items []cart.Item) cartResponse {
	return cartResponse{
		Items: toCartItemResponses(items),
		Total: money.String(cart.Total(items)),
	}
}

func toOrderResponse(o service.Order) orderResponse {
	return orderResponse{
		ID:        o.ID,
		Number:    o.Number,
		Status:    o.Status,
		Total:     money.String(o.Total),
		Items:     toCartItemResponses(o.Items),
		Timestamp: o.Timestamp,
		UpdatedAt: o.UpdatedAt,
	}
}

func toOrderResponses(orders []service.Order) []orderResponse {
	resp := make([]orderResponse, len(orders))
	for i, o := range orders {
		resp[i] = toOrderResponse(o)
	}
	return resp
}
