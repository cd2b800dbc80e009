// Package session tracks one kiosk screen: which view it shows, the cart it
// is building and the confirmation auto-reset.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/quickbite/kiosk/internal/apperr"
	"github.com/quickbite/kiosk/internal/cart"
	"github.com/quickbite/kiosk/internal/enum"
	"github.com/quickbite/kiosk/internal/logx"
	"github.com/quickbite/kiosk/internal/service"
	"github.com/shopspring/decimal"
)

const DefaultAutoResetDelay = 10 * time.Second

var (
	ErrSessionNotFound = apperr.NotFound("session not found")
	ErrSessionClosed   = apperr.InvalidTransition("session is closed")
	ErrInvalidRole     = apperr.Validation("role must be CUSTOMER or ADMIN")
)

// Timer is the part of *time.Timer a session needs.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f after d. time.AfterFunc satisfies it through
// RealAfterFunc; tests inject a manual clock.
type AfterFunc func(d time.Duration, f func()) Timer

// RealAfterFunc wraps time.AfterFunc.
func RealAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// OrderPlacer submits a cart snapshot.
type OrderPlacer interface {
	PlaceOrder(ctx context.Context, items []cart.Item) (*service.Order, error)
}

// View is a point-in-time copy of a session for rendering.
type View struct {
	ID        uuid.UUID       `json:"session_id"`
	Role      string          `json:"role"`
	State     string          `json:"state"`
	Cart      []cart.Item     `json:"cart"`
	CartTotal decimal.Decimal `json:"cart_total"`
	LastOrder *service.Order  `json:"last_order,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// Session is safe for concurrent use.
type Session struct {
	ID        uuid.UUID
	Role      string
	CreatedAt time.Time

	mu        sync.Mutex
	state     string
	cart      *cart.Cart
	lastOrder *service.Order
	timer     Timer
	timerGen  uint64
	closed    bool

	placer    OrderPlacer
	delay     time.Duration
	afterFunc AfterFunc
}

func newSession(role string, placer OrderPlacer, delay time.Duration, af AfterFunc, now time.Time) *Session {
	s := &Session{
		ID:        uuid.New(),
		Role:      role,
		CreatedAt: now,
		state:     homeFor(role),
		cart:      cart.New(),
		placer:    placer,
		delay:     delay,
		afterFunc: af,
	}
	return s
}

func homeFor(role string) string {
	if role == enum.UserRoleAdmin {
		return enum.SessionStateAdminDashboard
	}
	return enum.SessionStateHome
}

// Cart returns the session's cart.
func (s *Session) Cart() *cart.Cart { return s.cart }

// State returns the current view.
func (s *Session) State() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// View snapshots the session.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := View{
		ID:        s.ID,
		Role:      s.Role,
		State:     s.state,
		Cart:      s.cart.Items(),
		CartTotal: s.cart.Total(),
		CreatedAt: s.CreatedAt,
	}
	if s.lastOrder != nil {
		o := *s.lastOrder
		v.LastOrder = &o
	}
	return v
}

// Start moves HOME → MENU.
func (s *Session) Start() error {
	return s.move(enum.SessionStateMenu, enum.SessionStateHome)
}

// Track opens the order tracking board from HOME.
func (s *Session) Track() error {
	return s.move(enum.SessionStateOrderTracking, enum.SessionStateHome)
}

// Cancel abandons the current flow: the cart is cleared and the session goes
// back to its home view.
func (s *Session) Cancel() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}
	s.stopTimerLocked()
	s.resetLocked()
	return nil
}

// Checkout places the cart, clears it and shows the confirmation. The
// session returns home on its own after the auto-reset delay unless Done is
// called first.
func (s *Session) Checkout(ctx context.Context) (*service.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrSessionClosed
	}
	if s.state != enum.SessionStateMenu {
		return nil, apperr.InvalidTransition(fmt.Sprintf("cannot check out from %s", s.state))
	}

	order, err := s.placer.PlaceOrder(ctx, s.cart.Items())
	if err != nil {
		return nil, err
	}

	s.cart.Clear()
	s.lastOrder = order
	s.state = enum.SessionStateConfirmation
	s.scheduleResetLocked()

	logx.Info().
		Str("session_id", s.ID.String()).
		Str("order_number", order.Number).
		Dur("auto_reset", s.delay).
		Msg("order placed")
	return order, nil
}

// Done leaves the confirmation view immediately.
func (s *Session) Done() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}
	if s.state != enum.SessionStateConfirmation {
		return apperr.InvalidTransition(fmt.Sprintf("cannot finish from %s", s.state))
	}
	s.stopTimerLocked()
	s.resetLocked()
	return nil
}

// Close stops any pending auto-reset. Closing twice is a no-op.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.stopTimerLocked()
	s.closed = true
	s.cart.Clear()
}

func (s *Session) move(to string, from ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}
	for _, f := range from {
		if s.state == f {
			s.state = to
			return nil
		}
	}
	return apperr.InvalidTransition(fmt.Sprintf("cannot transition from %s to %s", s.state, to))
}

// scheduleResetLocked must be called with mu held.
func (s *Session) scheduleResetLocked() {
	s.stopTimerLocked()
	gen := s.timerGen
	s.timer = s.afterFunc(s.delay, func() { s.autoReset(gen) })
}

// stopTimerLocked must be called with mu held. Bumping the generation makes
// a callback that already started see itself as stale.
func (s *Session) stopTimerLocked() {
	s.timerGen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// resetLocked must be called with mu held. Lines added after checkout never
// reach the next customer.
func (s *Session) resetLocked() {
	s.cart.Clear()
	s.state = homeFor(s.Role)
}

func (s *Session) autoReset(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || gen != s.timerGen || s.state != enum.SessionStateConfirmation {
		return
	}
	s.timer = nil
	s.resetLocked()
	logx.Debug().Str("session_id", s.ID.String()).Msg("confirmation auto-reset")
}
