package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassification(t *testing.T) {
	v := Validation("cart is empty")
	wrapped := fmt.Errorf("checkout: %w", v)

	assert.True(t, IsValidation(wrapped))
	assert.False(t, IsNotFound(wrapped))
	assert.True(t, errors.Is(wrapped, v))
	assert.Equal(t, "checkout: cart is empty", wrapped.Error())
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"validation", Validation("bad"), http.StatusBadRequest},
		{"not found", fmt.Errorf("lookup: %w", NotFound("missing")), http.StatusNotFound},
		{"transition", InvalidTransition("nope"), http.StatusConflict},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}
