// Package catalog holds the kiosk menu: the immutable category list and the
// product list that only the back-office Inventory may change.
package catalog

import (
	"errors"
	"fmt"
	"sync"

	"github.com/quickbite/kiosk/internal/apperr"
	"github.com/shopspring/decimal"
)

var (
	ErrProductNotFound  = apperr.NotFound("product not found")
	ErrCategoryNotFound = apperr.NotFound("category not found")
	ErrNoCategories     = errors.New("catalog needs at least one category")
)

// Category groups products on the menu sidebar.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// ProductOption is an add-on chosen at cart-add time.
type ProductOption struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// Product is a menu entry.
type Product struct {
	ID           string          `json:"id"`
	CategoryID   string          `json:"category_id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	Image        string          `json:"image"`
	Options      []ProductOption `json:"options"`
	Calories     *int            `json:"calories,omitempty"`
	Allergens    []string        `json:"allergens,omitempty"`
	IsOutOfStock bool            `json:"is_out_of_stock"`
}

// Option returns the option with the given id.
func (p Product) Option(id string) (ProductOption, bool) {
	for _, o := range p.Options {
		if o.ID == id {
			return o, true
		}
	}
	return ProductOption{}, false
}

// Clone returns a deep copy so snapshots never alias catalog state.
func (p Product) Clone() Product {
	c := p
	c.Options = append([]ProductOption(nil), p.Options...)
	c.Allergens = append([]string(nil), p.Allergens...)
	if p.Calories != nil {
		cal := *p.Calories
		c.Calories = &cal
	}
	return c
}

// Catalog is safe for concurrent use. Reads return copies.
type Catalog struct {
	mu         sync.RWMutex
	categories []Category
	products   []Product // newest first
}

// New builds a catalog. Every product must reference a known category and
// product ids must be unique.
func New(categories []Category, products []Product) (*Catalog, error) {
	if len(categories) == 0 {
		return nil, ErrNoCategories
	}
	known := make(map[string]bool, len(categories))
	for _, c := range categories {
		if known[c.ID] {
			return nil, fmt.Errorf("duplicate category %q", c.ID)
		}
		known[c.ID] = true
	}

	seen := make(map[string]bool, len(products))
	ps := make([]Product, 0, len(products))
	for _, p := range products {
		if !known[p.CategoryID] {
			return nil, fmt.Errorf("product %q: unknown category %q", p.ID, p.CategoryID)
		}
		if seen[p.ID] {
			return nil, fmt.Errorf("duplicate product %q", p.ID)
		}
		seen[p.ID] = true
		ps = append(ps, p.Clone())
	}

	return &Catalog{
		categories: append([]Category(nil), categories...),
		products:   ps,
	}, nil
}

// Categories returns the categories in menu order.
func (c *Catalog) Categories() []Category {
	return append([]Category(nil), c.categories...)
}

// Category returns the category with the given id.
func (c *Catalog) Category(id string) (Category, error) {
	for _, cat := range c.categories {
		if cat.ID == id {
			return cat, nil
		}
	}
	return Category{}, fmt.Errorf("%s: %w", id, ErrCategoryNotFound)
}

// Products returns every product, newest first.
func (c *Catalog) Products() []Product {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Product, len(c.products))
	for i, p := range c.products {
		out[i] = p.Clone()
	}
	return out
}

// ProductsByCategory returns the products in categoryID, including the ones
// that are out of stock.
func (c *Catalog) ProductsByCategory(categoryID string) []Product {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var out []Product
	for _, p := range c.products {
		if p.CategoryID == categoryID {
			out = append(out, p.Clone())
		}
	}
	return out
}

// Product returns the product with the given id.
func (c *Catalog) Product(id string) (Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if i := c.indexOf(id); i >= 0 {
		return c.products[i].Clone(), nil
	}
	return Product{}, fmt.Errorf("%s: %w", id, ErrProductNotFound)
}

// indexOf must be called with mu held.
func (c *Catalog) indexOf(id string) int {
	for i, p := range c.products {
		if p.ID == id {
			return i
		}
	}
	return -1
}
