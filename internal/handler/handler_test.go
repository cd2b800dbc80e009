package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/quickbite/kiosk/internal/catalog"
	"github.com/quickbite/kiosk/internal/enum"
	"github.com/quickbite/kiosk/internal/handler"
	"github.com/quickbite/kiosk/internal/middleware"
	"github.com/quickbite/kiosk/internal/service"
	"github.com/quickbite/kiosk/internal/session"
)

const testSecret = "test-secret"

// --- Test doubles ---

type stoppedTimer struct{ stopped bool }

func (t *stoppedTimer) Stop() bool { t.stopped = true; return true }

// pendingResets collects auto-reset callbacks so tests can fire them.
type pendingResets struct {
	mu  sync.Mutex
	fns []func()
}

func (p *pendingResets) AfterFunc(d time.Duration, f func()) session.Timer {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.fns = append(p.fns, f)
	return &stoppedTimer{}
}

type catalogNotifier struct {
	mu       sync.Mutex
	products []catalog.Product
}

func (n *catalogNotifier) NotifyCatalog(ctx context.Context, p catalog.Product) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.products = append(n.products, p)
}

// --- Test environment ---

type testEnv struct {
	router   chi.Router
	catalog  *catalog.Catalog
	orders   *service.OrderBook
	sessions *session.Manager
	resets   *pendingResets
	notifier *catalogNotifier
}

func setupRouter(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		catalog:  catalog.Default(),
		orders:   service.NewOrderBook(),
		resets:   &pendingResets{},
		notifier: &catalogNotifier{},
	}
	env.sessions = session.NewManager(env.orders, 0, session.WithAfterFunc(env.resets.AfterFunc))

	sessionHandler := handler.NewSessionHandler(env.sessions, testSecret)
	orderHandler := handler.NewOrderHandler(env.orders)
	productHandler := handler.NewProductHandler(env.catalog)

	r := chi.NewRouter()
	sessionHandler.RegisterPublicRoutes(r)
	r.Route("/categories", handler.NewCategoryHandler(env.catalog).RegisterRoutes)
	r.Route("/products", func(r chi.Router) {
		productHandler.RegisterRoutes(r)
		handler.NewCustomizationHandler(env.catalog).RegisterRoutes(r)
	})
	r.Route("/api", handler.NewSubmissionHandler(env.catalog, env.orders).RegisterRoutes)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(testSecret))
		sessionHandler.RegisterRoutes(r)
		r.Route("/cart", handler.NewCartHandler(env.sessions, env.catalog).RegisterRoutes)
		r.Route("/orders", func(r chi.Router) {
			orderHandler.RegisterRoutes(r)
			r.With(middleware.RequireRole(enum.UserRoleAdmin)).Group(orderHandler.RegisterStaffRoutes)
		})
		r.With(middleware.RequireRole(enum.UserRoleAdmin)).Route("/admin", func(r chi.Router) {
			handler.NewAdminHandler(catalog.NewInventory(env.catalog), env.orders, env.notifier).RegisterRoutes(r)
			r.Route("/reports", handler.NewReportsHandler(env.orders).RegisterRoutes)
		})
	})

	env.router = r
	return env
}

func doRequest(t *testing.T, router http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func decodeResponse(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp
}

func decodeListResponse(t *testing.T, rr *httptest.ResponseRecorder) []map[string]interface{} {
	t.Helper()
	var resp []map[string]interface{}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp
}

func expectStatus(t *testing.T, rr *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rr.Code != want {
		t.Fatalf("status: got %d, want %d; body: %s", rr.Code, want, rr.Body.String())
	}
}

// openSession logs in with role and returns the session token.
func (env *testEnv) openSession(t *testing.T, role string) string {
	t.Helper()
	rr := doRequest(t, env.router, "POST", "/sessions", "", map[string]string{"role": role})
	expectStatus(t, rr, http.StatusCreated)
	token, _ := decodeResponse(t, rr)["token"].(string)
	if token == "" {
		t.Fatal("expected token")
	}
	return token
}

// placeOrder runs a customer through start, add and checkout and returns the
// session token and the order's id.
func (env *testEnv) placeOrder(t *testing.T) (string, string) {
	t.Helper()
	token := env.openSession(t, enum.UserRoleCustomer)
	expectStatus(t, doRequest(t, env.router, "POST", "/session/start", token, nil), http.StatusOK)
	expectStatus(t, doRequest(t, env.router, "POST", "/cart/items", token,
		map[string]interface{}{"product_id": "b1", "option_ids": []string{"opt1"}}), http.StatusCreated)
	rr := doRequest(t, env.router, "POST", "/session/checkout", token, nil)
	expectStatus(t, rr, http.StatusCreated)
	order := decodeResponse(t, rr)["order"].(map[string]interface{})
	return token, order["id"].(string)
}
