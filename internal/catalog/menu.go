package catalog

import "github.com/quickbite/kiosk/internal/money"

// DefaultImage is used for back-office products created without a picture.
const DefaultImage = "https://images.unsplash.com/photo-1546069901-ba9599a7e63c?auto=format&fit=crop&q=80&w=400"

// Default returns the QuickBite launch menu.
func Default() *Catalog {
	c, err := New(defaultCategories(), defaultProducts())
	if err != nil {
		panic("catalog: default menu: " + err.Error())
	}
	return c
}

func defaultCategories() []Category {
	return []Category{
		{ID: "burgers", Name: "Burgers", Icon: "🍔"},
		{ID: "sides", Name: "Sides", Icon: "🍟"},
		{ID: "drinks", Name: "Drinks", Icon: "🥤"},
		{ID: "desserts", Name: "Desserts", Icon: "🍦"},
	}
}

func defaultProducts() []Product {
	extraCheese := ProductOption{ID: "opt1", Name: "Extra Cheese", Price: money.MustParse("1.00")}
	bacon := ProductOption{ID: "opt2", Name: "Bacon", Price: money.MustParse("1.50")}

	return []Product{
		{
			ID:          "b1",
			CategoryID:  "burgers",
			Name:        "Classic Cheeseburger",
			Description: "100% beef patty with melted cheddar, lettuce, and tomato.",
			Price:       money.MustParse("8.99"),
			Image:       "https://images.unsplash.com/photo-1568901346375-23c9450c58cd?auto=format&fit=crop&q=80&w=400",
			Options: []ProductOption{
				extraCheese,
				bacon,
				{ID: "opt3", Name: "Jalapenos", Price: money.MustParse("0.50")},
			},
		},
		{
			ID:          "b2",
			CategoryID:  "burgers",
			Name:        "Spicy BBQ Burger",
			Description: "Smoky BBQ sauce, jalapeños, and crispy onions.",
			Price:       money.MustParse("9.49"),
			Image:       "https://images.unsplash.com/photo-1594212699903-ec8a3eca50f5?auto=format&fit=crop&q=80&w=400",
			Options:     []ProductOption{extraCheese, bacon},
		},
		{
			ID:          "s1",
			CategoryID:  "sides",
			Name:        "Regular Fries",
			Description: "Golden crispy potato fries with sea salt.",
			Price:       money.MustParse("3.49"),
			Image:       "https://images.unsplash.com/photo-1573080496219-bb080dd4f877?auto=format&fit=crop&q=80&w=400",
			Options: []ProductOption{
				{ID: "opt4", Name: "Large Size", Price: money.MustParse("1.00")},
				{ID: "opt5", Name: "Cheese Dip", Price: money.MustParse("0.75")},
			},
		},
		{
			ID:          "d1",
			CategoryID:  "drinks",
			Name:        "Fresh Lemonade",
			Description: "House-made lemonade with real lemons.",
			Price:       money.MustParse("2.99"),
			Image:       "https://images.unsplash.com/photo-1523362628242-f513a30ef2b1?auto=format&fit=crop&q=80&w=400",
			Options: []ProductOption{
				{ID: "opt6", Name: "Extra Ice", Price: money.MustParse("0")},
				{ID: "opt7", Name: "Large", Price: money.MustParse("0.50")},
			},
		},
	}
}
