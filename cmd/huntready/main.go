package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	hrhttp "github.com/huntready/huntready/internal/adapter/http"
	"github.com/huntready/huntready/internal/adapter/litellm"
	"github.com/huntready/huntready/internal/adapter/memnats"
	hrotel "github.com/huntready/huntready/internal/adapter/otel"
	"github.com/huntready/huntready/internal/adapter/ristretto"
	"github.com/huntready/huntready/internal/adapter/ws"
	"github.com/huntready/huntready/internal/config"
	"github.com/huntready/huntready/internal/logger"
	"github.com/huntready/huntready/internal/middleware"
	"github.com/huntready/huntready/internal/resilience"
	"github.com/huntready/huntready/internal/service"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	log, logCloser := logger.NewAsync(cfg.Logging)
	defer logCloser.Close()
	slog.SetDefault(log)

	slog.Info("config loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Logging.Level,
		"memory_stream", cfg.Memory.Stream,
	)

	ctx := context.Background()

	// --- Infrastructure ---

	otelShutdown, err := hrotel.Init(ctx, cfg.Otel, cfg.Logging.Service)
	if err != nil {
		return fmt.Errorf("otel: %w", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := otelShutdown(flushCtx); err != nil {
			slog.Warn("otel shutdown failed", "error", err)
		}
	}()

	l1, err := ristretto.New(cfg.Cache.L1MaxSizeMB << 20)
	if err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	defer l1.Close()

	store, err := memnats.Connect(ctx, cfg.NATS.URL, cfg.Memory, l1, log)
	if err != nil {
		return fmt.Errorf("memory store: %w", err)
	}
	defer func() { _ = store.Close() }()

	llmClient := litellm.NewClient(cfg.LiteLLM)
	llmClient.SetBreaker(resilience.NewBreaker(cfg.Breaker.MaxFailures, cfg.Breaker.Timeout))

	// --- Services ---

	hub := ws.NewHub()
	identitySvc := service.NewIdentityService(store, hub, log)
	memorySvc := service.NewMemoryService(store, hub, cfg.Memory, log)
	coordinator := service.NewCoordinator(identitySvc, memorySvc, llmClient, hub, log)

	metrics, err := hrotel.NewMetrics()
	if err != nil {
		return fmt.Errorf("metrics: %w", err)
	}
	coordinator.SetMetrics(metrics)

	// --- HTTP ---

	handlers := &hrhttp.Handlers{
		Identity:    identitySvc,
		Memory:      memorySvc,
		Coordinator: coordinator,
		Limits:      hrhttp.DefaultLimits(),
	}

	r := chi.NewRouter()

	r.Use(hrotel.HTTPMiddleware(cfg.Logging.Service))
	r.Use(hrhttp.CORS(cfg.Server.CORSOrigin))
	r.Use(hrhttp.Logger)
	r.Use(middleware.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(120 * time.Second))

	r.Get("/health", healthHandler(memorySvc))
	r.Get("/ws", hub.HandleWS)

	hrhttp.MountRoutes(r, handlers)

	addr := ":" + cfg.Server.Port

	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("starting server", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed", "error", err)
		}
	}()

	<-done
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

// healthHandler reports service liveness and memory store reachability.
// The service is "ok" even when memory is down; agents degrade instead of
// failing.
func healthHandler(memorySvc *service.MemoryService) http.HandlerFunc {
	type healthStatus struct {
		Status        string `json:"status"`
		MemoryHealthy bool   `json:"memory_healthy"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := healthStatus{
			Status:        "ok",
			MemoryHealthy: memorySvc.Healthy(ctx),
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(status); err != nil {
			slog.Error("write health response", "error", err)
		}
	}
}
