package cart

import (
	"fmt"

	"github.com/quickbite/kiosk/internal/catalog"
	"github.com/shopspring/decimal"
)

// Customization tracks the options a customer has toggled on a product
// before adding it to the cart.
type Customization struct {
	product  catalog.Product
	selected map[string]bool
}

// NewCustomization starts with no options selected.
func NewCustomization(product catalog.Product) *Customization {
	return &Customization{product: product.Clone(), selected: make(map[string]bool)}
}

// Product returns the product being customized.
func (c *Customization) Product() catalog.Product { return c.product.Clone() }

// Toggle selects optionID, or deselects it if already selected. It reports
// whether the option is selected afterwards.
func (c *Customization) Toggle(optionID string) (bool, error) {
	if _, ok := c.product.Option(optionID); !ok {
		return false, fmt.Errorf("%s: %w", optionID, ErrUnknownOption)
	}
	if c.selected[optionID] {
		delete(c.selected, optionID)
		return false, nil
	}
	c.selected[optionID] = true
	return true, nil
}

// Select replaces the selection with optionIDs. Duplicates collapse.
func (c *Customization) Select(optionIDs ...string) error {
	next := make(map[string]bool, len(optionIDs))
	for _, id := range optionIDs {
		if _, ok := c.product.Option(id); !ok {
			return fmt.Errorf("%s: %w", id, ErrUnknownOption)
		}
		next[id] = true
	}
	c.selected = next
	return nil
}

// Selected returns the selected options in the product's option order.
func (c *Customization) Selected() []catalog.ProductOption {
	out := []catalog.ProductOption{}
	for _, o := range c.product.Options {
		if c.selected[o.ID] {
			out = append(out, o)
		}
	}
	return out
}

// CurrentPrice is the product price plus every selected option.
func (c *Customization) CurrentPrice() decimal.Decimal {
	price := c.product.Price
	for _, o := range c.Selected() {
		price = price.Add(o.Price)
	}
	return price
}

// Resolve prices product with the final option set optionIDs.
func Resolve(product catalog.Product, optionIDs []string) ([]catalog.ProductOption, decimal.Decimal, error) {
	c := NewCustomization(product)
	if err := c.Select(optionIDs...); err != nil {
		return nil, decimal.Zero, err
	}
	return c.Selected(), c.CurrentPrice(), nil
}
