package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/quickbite/kiosk/internal/apperr"
	"github.com/quickbite/kiosk/internal/cart"
	"github.com/quickbite/kiosk/internal/enum"
	"github.com/shopspring/decimal"
)

// Errors returned by the order book.
var (
	ErrEmptyCart     = apperr.Validation("cart is empty")
	ErrInvalidStatus = apperr.Validation("invalid status")
	ErrOrderNotFound = apperr.NotFound("order not found")
)

// Order is a submitted cart. Everything but Status is fixed at placement.
type Order struct {
	ID        uuid.UUID       `json:"id"`
	Number    string          `json:"order_number"`
	Items     []cart.Item     `json:"items"`
	Total     decimal.Decimal `json:"total"`
	Status    string          `json:"status"`
	Timestamp time.Time       `json:"timestamp"`
	UpdatedAt time.Time       `json:"updated_at"`

	seq int
}

func (o *Order) clone() Order {
	c := *o
	c.Items = cloneItems(o.Items)
	return c
}

func cloneItems(items []cart.Item) []cart.Item {
	out := make([]cart.Item, len(items))
	for i, it := range items {
		out[i] = it.Clone()
	}
	return out
}

// Board is the customer-facing tracking display.
type Board struct {
	Preparing []Order `json:"preparing"`
	Ready     []Order `json:"ready"`
}

// Notifier receives order lifecycle events, e.g. to push them to displays.
type Notifier interface {
	NotifyOrder(ctx context.Context, eventType string, order Order)
}

// Recorder receives order metrics.
type Recorder interface {
	OrderPlaced(total decimal.Decimal)
	StatusChanged(from, to string)
}

// Option configures an OrderBook.
type Option func(*OrderBook)

// WithNotifier sets the event sink.
func WithNotifier(n Notifier) Option { return func(b *OrderBook) { b.notifier = n } }

// WithRecorder sets the metrics sink.
func WithRecorder(r Recorder) Option { return func(b *OrderBook) { b.recorder = r } }

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option { return func(b *OrderBook) { b.now = now } }

// OrderBook owns every submitted order and is the only place an order's
// status may change. It is safe for concurrent use.
type OrderBook struct {
	mu     sync.RWMutex
	orders map[uuid.UUID]*Order
	seq    int

	now      func() time.Time
	notifier Notifier
	recorder Recorder
}

// NewOrderBook creates an empty OrderBook.
func NewOrderBook(opts ...Option) *OrderBook {
	b := &OrderBook{
		orders: make(map[uuid.UUID]*Order),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// PlaceOrder creates a PENDING order from a cart snapshot. An empty snapshot
// is rejected and no order is created.
func (b *OrderBook) PlaceOrder(ctx context.Context, items []cart.Item) (*Order, error) {
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}
	for i, it := range items {
		if it.Quantity <= 0 {
			return nil, fmt.Errorf("item[%d]: %w", i, apperr.Validation("quantity must be > 0"))
		}
	}

	now := b.now()
	o := &Order{
		ID:        uuid.New(),
		Items:     cloneItems(items),
		Total:     cart.Total(items),
		Status:    enum.OrderStatusPending,
		Timestamp: now,
		UpdatedAt: now,
	}

	b.mu.Lock()
	b.seq++
	o.seq = b.seq
	o.Number = fmt.Sprintf("%03d", b.seq)
	b.orders[o.ID] = o
	placed := o.clone()
	b.mu.Unlock()

	if b.recorder != nil {
		b.recorder.OrderPlaced(placed.Total)
	}
	if b.notifier != nil {
		b.notifier.NotifyOrder(ctx, enum.EventOrderCreated, placed)
	}
	return &placed, nil
}

// UpdateStatus moves the order to status if the transition is allowed.
// Rejected transitions leave the order untouched.
func (b *OrderBook) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*Order, error) {
	if !IsValidOrderStatus(status) {
		return nil, fmt.Errorf("%q: %w", status, ErrInvalidStatus)
	}

	b.mu.Lock()
	o, ok := b.orders[id]
	if !ok {
		b.mu.Unlock()
		return nil, fmt.Errorf("%s: %w", id, ErrOrderNotFound)
	}
	from := o.Status
	if err := ValidateStatusTransition(from, status); err != nil {
		b.mu.Unlock()
		return nil, err
	}
	o.Status = status
	o.UpdatedAt = b.now()
	updated := o.clone()
	b.mu.Unlock()

	if b.recorder != nil {
		b.recorder.StatusChanged(from, status)
	}
	if b.notifier != nil {
		b.notifier.NotifyOrder(ctx, enum.EventOrderStatusChanged, updated)
	}
	return &updated, nil
}

// Get returns the order with id.
func (b *OrderBook) Get(id uuid.UUID) (*Order, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	o, ok := b.orders[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", id, ErrOrderNotFound)
	}
	c := o.clone()
	return &c, nil
}

// List returns every order, most recent first.
func (b *OrderBook) List() []Order {
	return b.filter(func(*Order) bool { return true })
}

// ListActive returns the orders the kitchen still has to deal with, most
// recent first.
func (b *OrderBook) ListActive() []Order {
	return b.filter(func(o *Order) bool { return IsActiveStatus(o.Status) })
}

// Board partitions the active orders for the tracking display.
func (b *OrderBook) Board() Board {
	board := Board{Preparing: []Order{}, Ready: []Order{}}
	for _, o := range b.ListActive() {
		if o.Status == enum.OrderStatusReady {
			board.Ready = append(board.Ready, o)
		} else {
			board.Preparing = append(board.Preparing, o)
		}
	}
	return board
}

func (b *OrderBook) filter(keep func(*Order) bool) []Order {
	b.mu.RLock()
	out := make([]Order, 0, len(b.orders))
	for _, o := range b.orders {
		if keep(o) {
			out = append(out, o.clone())
		}
	}
	b.mu.RUnlock()

	// seq follows placement order and breaks timestamp ties.
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].Timestamp.After(out[j].Timestamp)
		}
		return out[i].seq > out[j].seq
	})
	return out
}

// --- Transitions ---

// IsValidOrderStatus checks if the given status is a valid order status.
func IsValidOrderStatus(s string) bool {
	switch s {
	case enum.OrderStatusPending,
		enum.OrderStatusPreparing,
		enum.OrderStatusReady,
		enum.OrderStatusCompleted,
		enum.OrderStatusCancelled:
		return true
	}
	return false
}

// IsActiveStatus reports whether an order in status still needs attention.
func IsActiveStatus(s string) bool {
	return s != enum.OrderStatusCompleted && s != enum.OrderStatusCancelled
}

// allowedTransitions defines valid status transitions.
// Key is current status, value is the set of statuses it can transition to.
var allowedTransitions = map[string][]string{
	enum.OrderStatusPending:   {enum.OrderStatusPreparing, enum.OrderStatusCancelled},
	enum.OrderStatusPreparing: {enum.OrderStatusReady, enum.OrderStatusCancelled},
	enum.OrderStatusReady:     {enum.OrderStatusCompleted, enum.OrderStatusCancelled},
}

// ValidateStatusTransition checks if the transition from current to next is allowed.
func ValidateStatusTransition(current, next string) error {
	allowed, ok := allowedTransitions[current]
	if !ok {
		return apperr.InvalidTransition(fmt.Sprintf("cannot transition from %s", current))
	}
	for _, s := range allowed {
		if s == next {
			return nil
		}
	}
	return apperr.InvalidTransition(fmt.Sprintf("cannot transition from %s to %s", current, next))
}
