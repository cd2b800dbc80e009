package handler_test

import (
	"net/http"
	"testing"
)

func TestCategoryList(t *testing.T) {
	env := setupRouter(t)

	rr := doRequest(t, env.router, "GET", "/categories", "", nil)
	expectStatus(t, rr, http.StatusOK)

	cats := decodeListResponse(t, rr)
	if len(cats) != 4 {
		t.Fatalf("expected 4 categories, got %d", len(cats))
	}
	if cats[0]["id"] != "burgers" {
		t.Errorf("first category: got %v, want burgers", cats[0]["id"])
	}
}

func TestCategoryGet_NotFound(t *testing.T) {
	env := setupRouter(t)

	rr := doRequest(t, env.router, "GET", "/categories/pizza", "", nil)
	expectStatus(t, rr, http.StatusNotFound)
}

func TestProductList(t *testing.T) {
	env := setupRouter(t)

	rr := doRequest(t, env.router, "GET", "/products", "", nil)
	expectStatus(t, rr, http.StatusOK)
	if n := len(decodeListResponse(t, rr)); n != 4 {
		t.Fatalf("expected 4 products, got %d", n)
	}
}

func TestProductList_ByCategory(t *testing.T) {
	env := setupRouter(t)

	rr := doRequest(t, env.router, "GET", "/products?category=burgers", "", nil)
	expectStatus(t, rr, http.StatusOK)

	products := decodeListResponse(t, rr)
	if len(products) != 2 {
		t.Fatalf("expected 2 burgers, got %d", len(products))
	}
	for _, p := range products {
		if p["category_id"] != "burgers" {
			t.Errorf("unexpected category %v", p["category_id"])
		}
	}
}

func TestProductGet(t *testing.T) {
	env := setupRouter(t)

	rr := doRequest(t, env.router, "GET", "/products/d1", "", nil)
	expectStatus(t, rr, http.StatusOK)

	p := decodeResponse(t, rr)
	if p["price"] != "2.99" || p["display_price"] != "$2.99" {
		t.Errorf("price: got %v / %v", p["price"], p["display_price"])
	}
	opts := p["options"].([]interface{})
	ice := opts[0].(map[string]interface{})
	if ice["label"] != "FREE" {
		t.Errorf("free option label: got %v, want FREE", ice["label"])
	}
	large := opts[1].(map[string]interface{})
	if large["label"] != "+$0.50" {
		t.Errorf("option label: got %v, want +$0.50", large["label"])
	}
}

func TestProductGet_NotFound(t *testing.T) {
	env := setupRouter(t)

	rr := doRequest(t, env.router, "GET", "/products/nope", "", nil)
	expectStatus(t, rr, http.StatusNotFound)
	if decodeResponse(t, rr)["error"] == nil {
		t.Fatal("expected error message")
	}
}

func TestProductPrice(t *testing.T) {
	env := setupRouter(t)

	tests := []struct {
		name    string
		options []string
		want    string
	}{
		{"base price", nil, "8.99"},
		{"cheese and bacon", []string{"opt1", "opt2"}, "11.49"},
		{"duplicates count once", []string{"opt1", "opt1"}, "9.99"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := doRequest(t, env.router, "POST", "/products/b1/price", "", map[string]interface{}{"option_ids": tt.options})
			expectStatus(t, rr, http.StatusOK)

			resp := decodeResponse(t, rr)
			if resp["current_price"] != tt.want {
				t.Errorf("current_price: got %v, want %s", resp["current_price"], tt.want)
			}
			if resp["base_price"] != "8.99" {
				t.Errorf("base_price: got %v", resp["base_price"])
			}
		})
	}
}

func TestProductPrice_UnknownOption(t *testing.T) {
	env := setupRouter(t)

	rr := doRequest(t, env.router, "POST", "/products/b1/price", "", map[string]interface{}{"option_ids": []string{"opt6"}})
	expectStatus(t, rr, http.StatusBadRequest)
}

func TestProductPrice_InvalidBody(t *testing.T) {
	env := setupRouter(t)

	rr := doRequest(t, env.router, "POST", "/products/b1/price", "", "not an object")
	expectStatus(t, rr, http.StatusBadRequest)
}
