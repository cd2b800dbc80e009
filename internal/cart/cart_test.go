package cart

import (
	"fmt"
	"testing"

	"github.com/quickbite/kiosk/internal/apperr"
	"github.com/quickbite/kiosk/internal/catalog"
	"github.com/quickbite/kiosk/internal/money"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cheeseburger(t *testing.T) catalog.Product {
	t.Helper()
	p, err := catalog.Default().Product("b1")
	require.NoError(t, err)
	return p
}

func options(t *testing.T, p catalog.Product, ids ...string) []catalog.ProductOption {
	t.Helper()
	var out []catalog.ProductOption
	for _, id := range ids {
		o, ok := p.Option(id)
		require.True(t, ok, "option %s", id)
		out = append(out, o)
	}
	return out
}

// recomputed sums the lines independently of Cart.Total.
func recomputed(items []Item) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(it.TotalPrice.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return sum
}

func TestAddItem_PricesOptions(t *testing.T) {
	c := New()
	p := cheeseburger(t)

	item, err := c.AddItem(p, options(t, p, "opt1", "opt2"))
	require.NoError(t, err)

	assert.Equal(t, 1, item.Quantity)
	assert.Equal(t, "11.49", money.String(item.TotalPrice))
	assert.Len(t, item.SelectedOptions, 2)
}

func TestTotal_Scenario(t *testing.T) {
	c := New()
	p := cheeseburger(t)

	item, err := c.AddItem(p, options(t, p, "opt1", "opt2"))
	require.NoError(t, err)
	_, ok := c.UpdateQuantity(item.CartID, 1)
	require.True(t, ok)

	assert.Equal(t, "22.98", money.String(c.Total()))
}

func TestAddItem_NeverMerges(t *testing.T) {
	c := New()
	p := cheeseburger(t)

	a, err := c.AddItem(p, nil)
	require.NoError(t, err)
	b, err := c.AddItem(p, nil)
	require.NoError(t, err)

	assert.NotEqual(t, a.CartID, b.CartID)
	assert.Equal(t, 2, c.Len())
}

func TestAddItem_UniqueCartIDsAcrossClear(t *testing.T) {
	c := New()
	p := cheeseburger(t)

	seen := map[string]bool{}
	for i := 0; i < 5; i++ {
		it, err := c.AddItem(p, nil)
		require.NoError(t, err)
		require.False(t, seen[it.CartID], "duplicate cart id %s", it.CartID)
		seen[it.CartID] = true
		if i == 2 {
			c.Clear()
		}
	}
}

func TestAddItem_OutOfStock(t *testing.T) {
	c := New()
	p := cheeseburger(t)
	p.IsOutOfStock = true

	_, err := c.AddItem(p, nil)
	assert.ErrorIs(t, err, ErrOutOfStock)
	assert.True(t, apperr.IsValidation(err))
	assert.True(t, c.IsEmpty())
}

func TestAddItem_UnknownOption(t *testing.T) {
	c := New()
	p := cheeseburger(t)

	_, err := c.AddItem(p, []catalog.ProductOption{{ID: "opt6", Price: decimal.Zero}})
	assert.ErrorIs(t, err, ErrUnknownOption)
	assert.True(t, c.IsEmpty())
}

func TestAddItem_UsesCatalogOptionPrice(t *testing.T) {
	c := New()
	p := cheeseburger(t)

	forged := catalog.ProductOption{ID: "opt2", Name: "Bacon", Price: decimal.NewFromInt(-100)}
	item, err := c.AddItem(p, []catalog.ProductOption{forged, forged})
	require.NoError(t, err)

	assert.Len(t, item.SelectedOptions, 1)
	assert.Equal(t, "10.49", money.String(item.TotalPrice))
}

func TestPriceSnapshot(t *testing.T) {
	c := New()
	p := cheeseburger(t)

	_, err := c.AddItem(p, nil)
	require.NoError(t, err)

	p.Price = decimal.NewFromInt(100)
	assert.Equal(t, "8.99", money.String(c.Total()))
}

func TestUpdateQuantity_RemovesAtZero(t *testing.T) {
	c := New()
	p := cheeseburger(t)

	item, err := c.AddItem(p, nil)
	require.NoError(t, err)

	_, ok := c.UpdateQuantity(item.CartID, -1)
	assert.False(t, ok)
	assert.True(t, c.IsEmpty())
}

func TestUpdateQuantity_ClampsBelowZero(t *testing.T) {
	c := New()
	p := cheeseburger(t)

	item, err := c.AddItem(p, nil)
	require.NoError(t, err)
	c.UpdateQuantity(item.CartID, 2)

	_, ok := c.UpdateQuantity(item.CartID, -10)
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
	assert.True(t, c.Total().IsZero())
}

func TestUpdateQuantity_UnknownIsNoop(t *testing.T) {
	c := New()
	p := cheeseburger(t)

	_, err := c.AddItem(p, nil)
	require.NoError(t, err)

	_, ok := c.UpdateQuantity("nope", 3)
	assert.False(t, ok)
	assert.Equal(t, "8.99", money.String(c.Total()))
}

func TestTotal_MatchesRecomputationAfterSequence(t *testing.T) {
	c := New()
	menu := catalog.Default()

	ops := []struct {
		product string
		opts    []string
		delta   int
	}{
		{"b1", []string{"opt1"}, 2},
		{"s1", []string{"opt4", "opt5"}, 0},
		{"d1", []string{"opt6"}, -1},
		{"b2", nil, 4},
		{"d1", []string{"opt6", "opt7"}, -3},
	}

	for i, op := range ops {
		p, err := menu.Product(op.product)
		require.NoError(t, err)
		item, err := c.AddItem(p, options(t, p, op.opts...))
		require.NoError(t, err)
		c.UpdateQuantity(item.CartID, op.delta)

		items := c.Items()
		for _, it := range items {
			require.Greater(t, it.Quantity, 0, fmt.Sprintf("step %d", i))
		}
		require.True(t, c.Total().Equal(recomputed(items)), "step %d", i)
	}
}

func TestItems_ReturnsCopies(t *testing.T) {
	c := New()
	p := cheeseburger(t)
	_, err := c.AddItem(p, options(t, p, "opt1"))
	require.NoError(t, err)

	items := c.Items()
	items[0].Quantity = 50
	items[0].SelectedOptions[0].Price = decimal.NewFromInt(50)

	assert.Equal(t, "9.99", money.String(c.Total()))
}

func TestClear(t *testing.T) {
	c := New()
	p := cheeseburger(t)
	_, err := c.AddItem(p, nil)
	require.NoError(t, err)

	c.Clear()
	assert.True(t, c.IsEmpty())
	assert.True(t, c.Total().IsZero())
}
