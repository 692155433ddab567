// Package main is the entry point for the booking intake API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
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

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/ybfstudio/booking-api/internal/config"
	"github.com/ybfstudio/booking-api/internal/handler"
	"github.com/ybfstudio/booking-api/internal/middleware"
	"github.com/ybfstudio/booking-api/internal/notify"
	"github.com/ybfstudio/booking-api/internal/ratelimit"
	"github.com/ybfstudio/booking-api/internal/repo"
	"github.com/ybfstudio/booking-api/internal/service"
	"github.com/ybfstudio/booking-api/internal/session"
)

// maxBodyBytes caps booking submission bodies. The largest legitimate
// payload is well under this.
const maxBodyBytes = 1 << 20 // 1 MiB

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	// log/slog with a JSON handler writes machine-readable output suitable
	// for log aggregators.
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Database ---------------------------------------------------------
	// pgxpool manages a pool of Postgres connections.
	// New() does not open connections immediately — the first query does.
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Verify the DB is reachable before accepting traffic.
	if err := pool.Ping(context.Background()); err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	slog.Info("database connection established")

	// --- Rate limiter -----------------------------------------------------
	// In-process sliding window by default; Redis-backed when REDIS_URL is
	// set so counters are shared across instances.
	janitorCtx, stopJanitor := context.WithCancel(context.Background())
	defer stopJanitor()

	var limiter ratelimit.Limiter
	if cfg.RedisURL != "" {
		redisOpts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			slog.Error("invalid REDIS_URL", "error", err)
			os.Exit(1)
		}
		limiter = ratelimit.NewRedisStore(redis.NewClient(redisOpts), cfg.RateLimitWindow, cfg.RateLimitMax, logger)
		slog.Info("rate limiter using redis store")
	} else {
		store := ratelimit.NewMemoryStore(cfg.RateLimitWindow, cfg.RateLimitMax)
		store.StartJanitor(janitorCtx, 2*time.Minute)
		limiter = store
	}

	// --- Notifications ----------------------------------------------------
	var notifier notify.Notifier
	if cfg.NotifyWebhookURL != "" {
		notifier = notify.NewWebhookNotifier(cfg.NotifyWebhookURL)
	} else {
		slog.Warn("NOTIFY_WEBHOOK_URL not set, notifications will only be logged")
		notifier = &notify.LogNotifier{Log: logger}
	}
	dispatcher := notify.NewDispatcher(notifier, cfg.NotifyStaffEmail, logger)

	// --- Services & handlers ----------------------------------------------
	bookingSvc := service.NewBookingService(
		repo.NewCatalogRepo(pool),
		repo.NewBookingRepo(pool),
		dispatcher,
	)
	srv := handler.NewServer(bookingSvc, &session.HeaderProvider{})

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer.
	// RealIP sets r.RemoteAddr from X-Forwarded-For / X-Real-IP (safe behind
	// a proxy), which also feeds the rate limiter's client key.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(maxBodyBytes))

	r.Get("/healthz", srv.GetHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	r.With(ratelimit.Middleware(limiter, nil)).
		Post("/service-requests", srv.CreateBooking)

	// --- HTTP Server ------------------------------------------------------
	// Explicit timeouts prevent slowloris and resource exhaustion attacks.
	httpSrv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
