// Package cart aggregates a kiosk customer's in-progress selections and
// prices them.
package cart

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/quickbite/kiosk/internal/apperr"
	"github.com/quickbite/kiosk/internal/catalog"
	"github.com/shopspring/decimal"
)

// Errors returned by the cart.
var (
	ErrOutOfStock    = apperr.Validation("product is out of stock")
	ErrUnknownOption = apperr.Validation("option not offered for product")
)

// Item is one add-to-cart event. TotalPrice is the unit price captured when
// the item was added; later catalog price changes do not affect it.
type Item struct {
	CartID          string                  `json:"cart_id"`
	Product         catalog.Product         `json:"product"`
	Quantity        int                     `json:"quantity"`
	SelectedOptions []catalog.ProductOption `json:"selected_options"`
	TotalPrice      decimal.Decimal         `json:"total_price"`
}

// LineTotal is TotalPrice × Quantity.
func (it Item) LineTotal() decimal.Decimal {
	return it.TotalPrice.Mul(decimal.NewFromInt(int64(it.Quantity)))
}

// Clone returns a deep copy of it.
func (it Item) Clone() Item {
	c := it
	c.Product = it.Product.Clone()
	c.SelectedOptions = append([]catalog.ProductOption(nil), it.SelectedOptions...)
	return c
}

// Total sums the line totals of items.
func Total(items []Item) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.LineTotal())
	}
	return total
}

// Cart is safe for concurrent use; mutations apply in call order.
type Cart struct {
	mu    sync.Mutex
	items []Item
	seq   uint64
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{}
}

// AddItem appends a new line for product with the given options at quantity 1.
// Identical customizations are never merged. The options are resolved against
// the product so the captured prices are the product's own.
func (c *Cart) AddItem(product catalog.Product, selected []catalog.ProductOption) (Item, error) {
	if product.IsOutOfStock {
		return Item{}, fmt.Errorf("%s: %w", product.ID, ErrOutOfStock)
	}

	ids := make([]string, len(selected))
	for i, o := range selected {
		ids[i] = o.ID
	}
	options, unitPrice, err := Resolve(product, ids)
	if err != nil {
		return Item{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.seq++
	item := Item{
		CartID:          product.ID + "-" + strconv.FormatUint(c.seq, 10),
		Product:         product.Clone(),
		Quantity:        1,
		SelectedOptions: options,
		TotalPrice:      unitPrice,
	}
	c.items = append(c.items, item)
	return item.Clone(), nil
}

// UpdateQuantity adds delta to the quantity of the item with cartID. The item
// is removed once its quantity reaches zero. An unknown cartID is a no-op.
// It returns the updated item and whether it is still in the cart.
func (c *Cart) UpdateQuantity(cartID string, delta int) (Item, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].CartID != cartID {
			continue
		}
		q := c.items[i].Quantity + delta
		if q <= 0 {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return Item{}, false
		}
		c.items[i].Quantity = q
		return c.items[i].Clone(), true
	}
	return Item{}, false
}

// Total is recomputed from the current items on every call.
func (c *Cart) Total() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Total(c.items)
}

// Items returns a deep copy of the cart lines in insertion order.
func (c *Cart) Items() []Item {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Item, len(c.items))
	for i, it := range c.items {
		out[i] = it.Clone()
	}
	return out
}

// Len returns the number of lines.
func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool { return c.Len() == 0 }

// Clear empties the cart. The cart id sequence keeps counting.
func (c *Cart) Clear() {
	c.mu.Lock()
	c.items = nil
	c.mu.Unlock()
}
