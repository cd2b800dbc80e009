package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/quickbite/kiosk/internal/auth"
	"github.com/quickbite/kiosk/internal/logx"
	"github.com/quickbite/kiosk/internal/middleware"
	"github.com/quickbite/kiosk/internal/session"
)

// SessionStore is satisfied by *session.Manager.
type SessionStore interface {
	Create(role string) (*session.Session, error)
	Get(id uuid.UUID) (*session.Session, error)
	Close(id uuid.UUID) error
}

// SessionHandler opens kiosk sessions and drives their view state.
type SessionHandler struct {
	store  SessionStore
	secret string
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(store SessionStore, secret string) *SessionHandler {
	return &SessionHandler{store: store, secret: secret}
}

// RegisterPublicRoutes registers the login-screen endpoint.
func (h *SessionHandler) RegisterPublicRoutes(r chi.Router) {
	r.Post("/sessions", h.Create)
}

// RegisterRoutes registers endpoints that act on the caller's session.
// Expected behind middleware.Authenticate.
func (h *SessionHandler) RegisterRoutes(r chi.Router) {
	r.Get("/session", h.Get)
	r.Post("/session/start", h.Start)
	r.Post("/session/track", h.Track)
	r.Post("/session/cancel", h.Cancel)
	r.Post("/session/checkout", h.Checkout)
	r.Post("/session/done", h.Done)
	r.Delete("/session", h.Close)
}

// --- Request / Response types ---

type createSessionRequest struct {
	Role string `json:"role"`
}

type createSessionResponse struct {
	SessionID uuid.UUID `json:"session_id"`
	Role      string    `json:"role"`
	State     string    `json:"state"`
	Token     string    `json:"token"`
}

type sessionResponse struct {
	SessionID uuid.UUID      `json:"session_id"`
	Role      string         `json:"role"`
	State     string         `json:"state"`
	Cart      cartResponse   `json:"cart"`
	LastOrder *orderResponse `json:"last_order"`
}

type checkoutResponse struct {
	Order   orderResponse   `json:"order"`
	Session sessionResponse `json:"session"`
}

func toSessionResponse(v session.View) sessionResponse {
	resp := sessionResponse{
		SessionID: v.ID,
		Role:      v.Role,
		State:     v.State,
		Cart:      toCartResponse(v.Cart),
	}
	if v.LastOrder != nil {
		o := toOrderResponse(*v.LastOrder)
		resp.LastOrder = &o
	}
	return resp
}

// currentSession resolves the session named by the request's token. It
// writes the error response itself and reports false on failure.
func currentSession(w http.ResponseWriter, r *http.Request, store SessionStore) (*session.Session, bool) {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "no kiosk session"})
		return nil, false
	}
	s, err := store.Get(claims.SessionID)
	if err != nil {
		writeError(w, err, "load session")
		return nil, false
	}
	return s, true
}

// --- Handlers ---

// Create opens a session for the role picked on the login screen and returns
// the token that identifies it.
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err, "create session")
		return
	}

	s, err := h.store.Create(req.Role)
	if err != nil {
		writeError(w, err, "create session")
		return
	}

	token, err := auth.GenerateToken(h.secret, s.ID, s.Role)
	if err != nil {
		h.store.Close(s.ID)
		writeError(w, err, "generate session token")
		return
	}

	logx.Info().Str("session_id", s.ID.String()).Str("role", s.Role).Msg("session opened")
	writeJSON(w, http.StatusCreated, createSessionResponse{
		SessionID: s.ID,
		Role:      s.Role,
		State:     s.State(),
		Token:     token,
	})
}

// Get returns the caller's session.
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r, h.store)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toSessionResponse(s.View()))
}

// Start moves the session from HOME to the menu.
func (h *SessionHandler) Start(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, "start session", (*session.Session).Start)
}

// Track opens the order tracking board.
func (h *SessionHandler) Track(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, "track orders", (*session.Session).Track)
}

// Cancel clears the cart and returns home.
func (h *SessionHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, "cancel session", (*session.Session).Cancel)
}

// Done leaves the confirmation view before the auto-reset fires.
func (h *SessionHandler) Done(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, "finish session", (*session.Session).Done)
}

// Checkout places the session's cart as an order.
func (h *SessionHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r, h.store)
	if !ok {
		return
	}

	order, err := s.Checkout(r.Context())
	if err != nil {
		writeError(w, err, "checkout")
		return
	}

	writeJSON(w, http.StatusCreated, checkoutResponse{
		Order:   toOrderResponse(*order),
		Session: toSessionResponse(s.View()),
	})
}

// Close tears the session down. Its token stops working.
func (h *SessionHandler) Close(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "no kiosk session"})
		return
	}
	if err := h.store.Close(claims.SessionID); err != nil {
		writeError(w, err, "close session")
		return
	}
	logx.Info().Str("session_id", claims.SessionID.String()).Msg("session closed")
	w.WriteHeader(http.StatusNoContent)
}

func (h *SessionHandler) apply(w http.ResponseWriter, r *http.Request, action string, fn func(*session.Session) error) {
	s, ok := currentSession(w, r, h.store)
	if !ok {
		return
	}
	if err := fn(s); err != nil {
		writeError(w, err, action)
		return
	}
	writeJSON(w, http.StatusOK, toSessionResponse(s.View()))
}
