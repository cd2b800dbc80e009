package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/quickbite/kiosk/internal/apperr"
	"github.com/quickbite/kiosk/internal/money"
)

// Errors returned by the inventory.
var (
	ErrNameRequired    = apperr.Validation("name is required")
	ErrPriceRequired   = apperr.Validation("price is required")
	ErrInvalidPrice    = apperr.Validation("invalid price")
	ErrNegativePrice   = apperr.Validation("price must be >= 0")
	ErrUnknownCategory = apperr.Validation("unknown category_id")
)

// ProductInput is the back-office "add new item" form.
type ProductInput struct {
	Name        string
	Description string
	Price       string
	CategoryID  string
	Image       string
	Options     []ProductOption
	Calories    *int
	Allergens   []string
}

// Stats backs the dashboard tiles.
type Stats struct {
	Products   int `json:"products"`
	Categories int `json:"categories"`
	OutOfStock int `json:"out_of_stock"`
}

// Inventory is the only write path into a Catalog.
type Inventory struct {
	catalog *Catalog
	newID   func() string
}

// NewInventory creates an Inventory over c.
func NewInventory(c *Catalog) *Inventory {
	return &Inventory{
		catalog: c,
		newID:   func() string { return "p-" + uuid.NewString() },
	}
}

// AddProduct validates in and prepends the new product to the catalog.
// An empty category falls back to the first category on the menu.
func (inv *Inventory) AddProduct(in ProductInput) (Product, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return Product{}, ErrNameRequired
	}
	if strings.TrimSpace(in.Price) == "" {
		return Product{}, ErrPriceRequired
	}
	price, err := money.Parse(in.Price)
	if err != nil {
		if errors.Is(err, money.ErrNegativePrice) {
			return Product{}, ErrNegativePrice
		}
		return Product{}, ErrInvalidPrice
	}

	categoryID := in.CategoryID
	if categoryID == "" {
		categoryID = inv.catalog.categories[0].ID
	}
	if _, err := inv.catalog.Category(categoryID); err != nil {
		return Product{}, fmt.Errorf("%s: %w", categoryID, ErrUnknownCategory)
	}

	seen := make(map[string]bool, len(in.Options))
	for _, o := range in.Options {
		if o.ID == "" || seen[o.ID] {
			return Product{}, apperr.Validation("option ids must be unique and non-empty")
		}
		if o.Price.IsNegative() {
			return Product{}, apperr.Validation("option price must be >= 0")
		}
		seen[o.ID] = true
	}

	image := in.Image
	if image == "" {
		image = DefaultImage
	}

	p := Product{
		ID:          inv.newID(),
		CategoryID:  categoryID,
		Name:        name,
		Description: in.Description,
		Price:       price,
		Image:       image,
		Options:     append([]ProductOption{}, in.Options...),
		Calories:    in.Calories,
		Allergens:   in.Allergens,
	}

	c := inv.catalog
	c.mu.Lock()
	c.products = append([]Product{p.Clone()}, c.products...)
	c.mu.Unlock()

	return p, nil
}

// DeleteProduct removes the product with id. It reports whether a product was
// removed; a missing id is a no-op.
func (inv *Inventory) DeleteProduct(id string) bool {
	c := inv.catalog
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(id)
	if i < 0 {
		return false
	}
	c.products = append(c.products[:i], c.products[i+1:]...)
	return true
}

// ToggleStock flips the out-of-stock flag of the product with id and returns
// the updated product. A missing id is a no-op reported by ok=false.
func (inv *Inventory) ToggleStock(id string) (p Product, ok bool) {
	c := inv.catalog
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(id)
	if i < 0 {
		return Product{}, false
	}
	c.products[i].IsOutOfStock = !c.products[i].IsOutOfStock
	return c.products[i].Clone(), true
}

// Stats summarises the catalog for the back office.
func (inv *Inventory) Stats() Stats {
	c := inv.catalog
	c.mu.RLock()
	defer c.mu.RUnlock()

	s := Stats{Products: len(c.products), Categories: len(c.categories)}
	for _, p := range c.products {
		if p.IsOutOfStock {
			s.OutOfStock++
		}
	}
	return s
}
