// Package main is the entry point for the GreenPath API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"database/sql"
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
	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for database/sql
	"github.com/pressly/goose/v3"

	"github.com/BayanAljaar/greenpath/backend/internal/config"
	"github.com/BayanAljaar/greenpath/backend/internal/handler"
	"github.com/BayanAljaar/greenpath/backend/internal/middleware"
	"github.com/BayanAljaar/greenpath/backend/internal/nav"
	"github.com/BayanAljaar/greenpath/backend/internal/repo"
	"github.com/BayanAljaar/greenpath/backend/internal/routing"
	"github.com/BayanAljaar/greenpath/backend/internal/service"
	"github.com/BayanAljaar/greenpath/backend/migrations"
)

// maxBodyBytes caps JSON request bodies. Position fixes and trip payloads
// are tiny; 1 MiB leaves generous headroom.
const maxBodyBytes = 1 << 20

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	// JSON handler writes machine-readable output suitable for log aggregators.
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Migrations -------------------------------------------------------
	// goose drives the embedded SQL migrations through database/sql before
	// the pool accepts traffic, so the schema always matches the binary.
	if err := migrate(cfg.DatabaseURL); err != nil {
		slog.Error("migrations failed", "error", err)
		os.Exit(1)
	}
	slog.Info("migrations up to date")

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

	// --- Services ---------------------------------------------------------
	tripRepo := repo.NewTripRepo(pool)
	placeRepo := repo.NewPlaceRepo(pool)
	tripSvc := service.NewTripService(tripRepo, placeRepo)
	placeSvc := service.NewPlaceService(tripRepo, placeRepo)
	tracker := nav.NewTracker(tripSvc)

	routes, err := buildRouting(cfg)
	if err != nil {
		slog.Error("routing setup failed", "error", err)
		os.Exit(1)
	}

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer.
	// RequestID generates a unique trace ID per request.
	// RealIP sets r.RemoteAddr from X-Forwarded-For / X-Real-IP (safe behind a proxy).
	// SlogLogger writes one structured JSON log line per request.
	// Recoverer catches panics and returns HTTP 500 instead of crashing.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(maxBodyBytes))

	srv := handler.NewServer(tripSvc, placeSvc, tracker, routes)
	r.Mount("/", srv.Routes())

	// --- HTTP Server ------------------------------------------------------
	// Explicit timeouts prevent slowloris and resource exhaustion attacks.
	httpSrv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
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

// migrate applies all pending migrations against dsn.
func migrate(dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return err
	}
	_, err = provider.Up(context.Background())
	return err
}

// buildRouting assembles the routing provider chain from configuration.
//
// OpenRouteService is tried first when an API key is configured; the
// great-circle estimator terminates the chain so a route is always produced.
// With a Redis address configured, the whole chain sits behind the cache.
func buildRouting(cfg config.Config) (routing.Provider, error) {
	chain := routing.Chain{}

	if cfg.ORSAPIKey != "" {
		ors, err := routing.NewORSProvider(cfg.ORSAPIKey, cfg.ORSBaseURL)
		if err != nil {
			return nil, err
		}
		chain = append(chain, ors)
	}
	chain = append(chain, routing.GreatCircleProvider{})

	if cfg.RedisAddr == "" {
		return chain, nil
	}

	rdb, err := routing.NewRedisClient(context.Background(), cfg.RedisAddr)
	if err != nil {
		return nil, err
	}
	slog.Info("route cache enabled", "addr", cfg.RedisAddr)
	return routing.NewCachedProvider(chain, rdb), nil
}
