package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"omanvat/internal/app"
	"omanvat/internal/config"
	"omanvat/internal/database"
	"omanvat/internal/logging"
	"omanvat/internal/websocket"
)

// @title           Oman VAT Localization API
// @version         1.0
// @description     Sets up Oman VAT for companies: VAT settings, custom fields, permissions and tax templates.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load(config.DefaultEnvFile)
	if err != nil {
		slog.Error("configuration invalid", "error", err)
		os.Exit(1)
	}
	logging.Setup(cfg.LogLevel, cfg.LogFormat)

	db, err := database.NewConnection(cfg.DSN(), cfg.LogLevel == "debug")
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	slog.Info("connected to PostgreSQL")

	// Set up WebSocket Hub
	hub := websocket.NewHub()
	go hub.Run()
	defer hub.Stop()

	a := app.New(cfg, db, hub)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           app.NewRouter(a, hub),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("server listening", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown failed", "error", err)
	}
}
