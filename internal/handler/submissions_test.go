package handler_test

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"
)

func TestSubmit(t *testing.T) {
	env := setupRouter(t)

	rr := doRequest(t, env.router, "POST", "/api/orders", "", map[string]interface{}{
		"items": []map[string]interface{}{
			{"productId": "b1", "quantity": 2, "options": []string{"opt1", "opt2"}},
		},
		"total_price": 22.98,
	})
	expectStatus(t, rr, http.StatusCreated)

	resp := decodeResponse(t, rr)
	if resp["status"] != "PENDING" || resp["order_number"] != "001" {
		t.Errorf("unexpected response: %v", resp)
	}
	if resp["total_price"] != 22.98 {
		t.Errorf("total_price: got %v, want 22.98", resp["total_price"])
	}
	if len(env.orders.ListActive()) != 1 {
		t.Fatal("expected one active order")
	}
}

func TestSubmit_FloatingPointTotal(t *testing.T) {
	env := setupRouter(t)

	// 5 x 3.49 summed as JS numbers.
	rr := doRequest(t, env.router, "POST", "/api/orders", "", map[string]interface{}{
		"items":       []map[string]interface{}{{"productId": "s1", "quantity": 5, "options": []string{}}},
		"total_price": json.Number("17.450000000000003"),
	})
	expectStatus(t, rr, http.StatusCreated)

	if got := decodeResponse(t, rr)["total_price"]; got != 17.45 {
		t.Errorf("total_price: got %v, want 17.45", got)
	}
}

func TestSubmit_MismatchReportsClientTotal(t *testing.T) {
	env := setupRouter(t)

	rr := doRequest(t, env.router, "POST", "/api/orders", "", map[string]interface{}{
		"items":       []map[string]interface{}{{"productId": "s1", "quantity": 5, "options": []string{}}},
		"total_price": json.Number("17.456"),
	})
	expectStatus(t, rr, http.StatusBadRequest)

	msg, _ := decodeResponse(t, rr)["error"].(string)
	if !strings.Contains(msg, "17.456") || !strings.Contains(msg, "17.45") {
		t.Errorf("error: got %q", msg)
	}
}

func TestSubmit_IgnoresClientPrices(t *testing.T) {
	env := setupRouter(t)

	// Option prices come from the catalog, so a total computed from forged
	// prices does not match.
	rr := doRequest(t, env.router, "POST", "/api/orders", "", map[string]interface{}{
		"items":       []map[string]interface{}{{"productId": "b1", "quantity": 1}},
		"total_price": 1.00,
	})
	expectStatus(t, rr, http.StatusBadRequest)
	if len(env.orders.List()) != 0 {
		t.Fatal("no order should be created")
	}
}

func TestSubmit_Errors(t *testing.T) {
	env := setupRouter(t)

	tests := []struct {
		name string
		body map[string]interface{}
		want int
	}{
		{"empty cart", map[string]interface{}{"items": []interface{}{}, "total_price": 0}, http.StatusBadRequest},
		{"zero quantity", map[string]interface{}{
			"items":       []map[string]interface{}{{"productId": "b1", "quantity": 0}},
			"total_price": 0,
		}, http.StatusBadRequest},
		{"unknown product", map[string]interface{}{
			"items":       []map[string]interface{}{{"productId": "zz", "quantity": 1}},
			"total_price": 1,
		}, http.StatusNotFound},
		{"unknown option", map[string]interface{}{
			"items":       []map[string]interface{}{{"productId": "s1", "quantity": 1, "options": []string{"opt1"}}},
			"total_price": 4.49,
		}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := doRequest(t, env.router, "POST", "/api/orders", "", tt.body)
			expectStatus(t, rr, tt.want)
		})
	}
	if len(env.orders.List()) != 0 {
		t.Fatal("no order should be created")
	}
}
