// main is the entry point of the BoraLer web front end.
//
// STARTUP SEQUENCE:
//  1. Load configuration from a YAML file
//  2. Initialise the logger
//  3. Build the upstream clients (backend, ViaCEP, BigDataCloud)
//  4. Open the optional SQLite address cache
//  5. Register all HTTP routes
//  6. Start the HTTP server in a separate goroutine
//  7. Block until an OS signal (Ctrl+C / kill) arrives
//  8. Gracefully shut down: finish in-flight requests, then exit
//
// RUNNING THE SERVER:
//
//	go run ./cmd/boraler-web --config=config/local.yaml
//
// or (with the environment variable):
//
//	CONFIG_PATH=config/local.yaml go run ./cmd/boraler-web
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

	"github.com/boraler/boraler-web/internal/backend"
	"github.com/boraler/boraler-web/internal/cep"
	"github.com/boraler/boraler-web/internal/config"
	"github.com/boraler/boraler-web/internal/geo"
	"github.com/boraler/boraler-web/internal/http/middleware"
	"github.com/boraler/boraler-web/internal/http/session"
	"github.com/boraler/boraler-web/internal/storage/sqlite"
)

func main() {
	// ── 1. Load Config ────────────────────────────────────────────────────
	cfg := config.MustLoad()

	// ── 2. Initialise Logger ──────────────────────────────────────────────
	log := setupLogger(cfg.Env)
	slog.SetDefault(log)

	log.Info("starting boraler-web",
		slog.String("env", cfg.Env),
		slog.String("version", "1.0.0"),
	)

	// ── 3. Upstream Clients ───────────────────────────────────────────────
	// Each outbound call carries the request context, so a client that
	// hangs up cancels the upstream request too.
	httpClient := &http.Client{Timeout: 10 * time.Second}

	api := backend.New(cfg.Backend.BaseURL, httpClient)
	places := geo.New(cfg.Geocoding.BaseURL, httpClient)

	var addresses cep.Resolver = cep.New(cfg.ViaCEP.BaseURL, httpClient)

	// ── 4. Address Cache (optional) ───────────────────────────────────────
	// An empty path disables the cache; ViaCEP is then asked every time.
	if cfg.AddressCache.Path != "" {
		store, err := sqlite.New(cfg.AddressCache.Path)
		if err != nil {
			log.Error("failed to initialise address cache",
				slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer store.Close()

		addresses = cep.NewCached(addresses, store, log)
		log.Info("address cache initialised",
			slog.String("path", cfg.AddressCache.Path))
	}

	// ── 5. Register HTTP Routes ───────────────────────────────────────────
	sessions := session.New(cfg.Session)
	router := newRouter(api, addresses, places, sessions)

	// ── 6. Create the HTTP Server ─────────────────────────────────────────
	server := &http.Server{
		Addr:    cfg.HTTPServer.Addr,
		Handler: middleware.Logger(log, router),

		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("server started", slog.String("address", cfg.HTTPServer.Addr))

		if err := server.ListenAndServe(); err != nil &&
			!errors.Is(err, http.ErrServerClosed) {
			log.Error("server encountered an error",
				slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// ── 7. Wait for Shutdown Signal ───────────────────────────────────────
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	<-done

	log.Info("shutdown signal received, stopping server...")

	// ── 8. Graceful Shutdown ──────────────────────────────────────────────
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("failed to shutdown server gracefully",
			slog.String("error", err.Error()))
		return
	}

	log.Info("server stopped gracefully")
}

// setupLogger returns a *slog.Logger configured for the given environment.
//
// Development (dev): human-readable text output at DEBUG level.
// Production (prod): machine-readable JSON output at INFO level.
func setupLogger(env string) *slog.Logger {
	switch env {
	case "prod":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	case "staging":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	default:
		return slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	}
}
