package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/quickbite/kiosk/internal/catalog"
	"github.com/quickbite/kiosk/internal/config"
	"github.com/quickbite/kiosk/internal/enum"
	"github.com/quickbite/kiosk/internal/handler"
	"github.com/quickbite/kiosk/internal/logx"
	"github.com/quickbite/kiosk/internal/metrics"
	mw "github.com/quickbite/kiosk/internal/middleware"
	"github.com/quickbite/kiosk/internal/service"
	"github.com/quickbite/kiosk/internal/session"
	"github.com/quickbite/kiosk/internal/ws"
)

// Deps are the long-lived components the routes are served from.
type Deps struct {
	Catalog  *catalog.Catalog
	Orders   *service.OrderBook
	Sessions *session.Manager
	Hub      *ws.Hub
	Notifier *ws.Notifier
	Metrics  *metrics.Metrics
}

// New creates a Chi router with all application routes wired up.
// Session routes require a token; admin routes also require the ADMIN role.
func New(cfg *config.Config, d Deps) chi.Router {
	r := chi.NewRouter()

	// Standard middleware
	r.Use(middleware.RequestID)
	r.Use(mw.RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(d.Metrics.Instrument)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300, // 5 minutes
	}))

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","version":"1.0.0"}`))
	})
	r.Handle("/metrics", d.Metrics.Handler())

	sessionHandler := handler.NewSessionHandler(d.Sessions, cfg.SessionSecret)
	sessionHandler.RegisterPublicRoutes(r)

	categoryHandler := handler.NewCategoryHandler(d.Catalog)
	r.Route("/categories", categoryHandler.RegisterRoutes)

	productHandler := handler.NewProductHandler(d.Catalog)
	customizationHandler := handler.NewCustomizationHandler(d.Catalog)
	r.Route("/products", func(r chi.Router) {
		productHandler.RegisterRoutes(r)
		customizationHandler.RegisterRoutes(r)
	})

	submissionHandler := handler.NewSubmissionHandler(d.Catalog, d.Orders)
	r.Route("/api", submissionHandler.RegisterRoutes)

	// WebSocket route (handles auth internally via query param)
	r.Get("/ws/orders", func(w http.ResponseWriter, r *http.Request) {
		ws.ServeWS(d.Hub, cfg.SessionSecret, w, r)
	})

	// Session-scoped routes
	r.Group(func(r chi.Router) {
		r.Use(mw.Authenticate(cfg.SessionSecret))

		sessionHandler.RegisterRoutes(r)

		cartHandler := handler.NewCartHandler(d.Sessions, d.Catalog)
		r.Route("/cart", cartHandler.RegisterRoutes)

		orderHandler := handler.NewOrderHandler(d.Orders)
		r.Route("/orders", func(r chi.Router) {
			orderHandler.RegisterRoutes(r)
			r.With(mw.RequireRole(enum.UserRoleAdmin)).Group(orderHandler.RegisterStaffRoutes)
		})

		// Back office
		r.Group(func(r chi.Router) {
			r.Use(mw.RequireRole(enum.UserRoleAdmin))
			adminHandler := handler.NewAdminHandler(catalog.NewInventory(d.Catalog), d.Orders, d.Notifier)
			reportsHandler := handler.NewReportsHandler(d.Orders)
			r.Route("/admin", func(r chi.Router) {
				adminHandler.RegisterRoutes(r)
				r.Route("/reports", reportsHandler.RegisterRoutes)
			})
		})
	})

	logx.Debug().Msg("router initialized")
	return r
}
