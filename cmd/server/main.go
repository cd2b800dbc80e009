package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/quickbite/kiosk/internal/catalog"
	"github.com/quickbite/kiosk/internal/config"
	"github.com/quickbite/kiosk/internal/logx"
	"github.com/quickbite/kiosk/internal/metrics"
	"github.com/quickbite/kiosk/internal/router"
	"github.com/quickbite/kiosk/internal/service"
	"github.com/quickbite/kiosk/internal/session"
	"github.com/quickbite/kiosk/internal/ws"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	logx.Init(cfg.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hub := ws.NewHub()
	go hub.Run(ctx)

	m := metrics.New()
	notifier := ws.NewNotifier(hub)
	orders := service.NewOrderBook(service.WithNotifier(notifier), service.WithRecorder(m))
	sessions := session.NewManager(orders, cfg.AutoResetDelay)
	defer sessions.CloseAll()

	r := router.New(cfg, router.Deps{
		Catalog:  catalog.Default(),
		Orders:   orders,
		Sessions: sessions,
		Hub:      hub,
		Notifier: notifier,
		Metrics:  m,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logx.Info().Str("port", cfg.Port).Str("environment", cfg.Environment).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logx.Fatal().Err(err).Msg("listen")
		}
	}()

	<-ctx.Done()
	logx.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logx.Error().Err(err).Msg("shutdown")
	}
}
