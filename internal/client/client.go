// Package client submits finished carts to a kiosk API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/quickbite/kiosk/internal/cart"
	"github.com/quickbite/kiosk/internal/logx"
	"github.com/quickbite/kiosk/internal/money"
	"github.com/shopspring/decimal"
)

// ErrSubmitFailed wraps every transport or server failure. Submissions are
// never retried here; the caller decides.
var ErrSubmitFailed = errors.New("order submission failed")

// StatusError is a non-2xx answer from the API.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("status %d: %s", e.StatusCode, e.Message)
}

// Line is one submitted cart line.
type Line struct {
	ProductID string   `json:"productId"`
	Quantity  int      `json:"quantity"`
	Options   []string `json:"options"`
}

type submitRequest struct {
	Items      []Line      `json:"items"`
	TotalPrice json.Number `json:"total_price"`
}

// Confirmation is the API's answer to a placed order.
type Confirmation struct {
	OrderID     uuid.UUID       `json:"order_id"`
	OrderNumber string          `json:"order_number"`
	Status      string          `json:"status"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a Client for the API at baseURL.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// LinesFromCart converts cart items to submission lines.
func LinesFromCart(items []cart.Item) []Line {
	lines := make([]Line, len(items))
	for i, it := range items {
		opts := make([]string, len(it.SelectedOptions))
		for j, o := range it.SelectedOptions {
			opts[j] = o.ID
		}
		lines[i] = Line{ProductID: it.Product.ID, Quantity: it.Quantity, Options: opts}
	}
	return lines
}

// SubmitOrder posts one order. It makes exactly one request.
func (c *Client) SubmitOrder(ctx context.Context, lines []Line, total decimal.Decimal) (*Confirmation, error) {
	payload := submitRequest{
		Items:      make([]Line, len(lines)),
		TotalPrice: json.Number(money.String(total)),
	}
	for i, l := range lines {
		if l.Options == nil {
			l.Options = []string{}
		}
		payload.Items[i] = l
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: encode: %w", ErrSubmitFailed, err)
	}

	url := c.baseURL + "/api/orders"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSubmitFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		logx.Error().Err(err).Str("url", url).Msg("submit order")
		return nil, fmt.Errorf("%w: %w", ErrSubmitFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e struct {
			Error string `json:"error"`
		}
		json.NewDecoder(resp.Body).Decode(&e)
		if e.Error == "" {
			e.Error = http.StatusText(resp.StatusCode)
		}
		statusErr := &StatusError{StatusCode: resp.StatusCode, Message: e.Error}
		logx.Error().Int("status", resp.StatusCode).Str("error", e.Error).Msg("submit order rejected")
		return nil, fmt.Errorf("%w: %w", ErrSubmitFailed, statusErr)
	}

	var conf Confirmation
	if err := json.NewDecoder(resp.Body).Decode(&conf); err != nil {
		logx.Error().Err(err).Msg("decode order confirmation")
		return nil, fmt.Errorf("%w: decode: %w", ErrSubmitFailed, err)
	}
	return &conf, nil
}
