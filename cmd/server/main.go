package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	overlayhandler "visitmap/internal/overlay/handler"
	overlaymetrics "visitmap/internal/overlay/metrics"
	"visitmap/internal/overlay/reconcile"
	overlayservice "visitmap/internal/overlay/service"
	overlaystore "visitmap/internal/overlay/store"
	"visitmap/internal/palette"
	"visitmap/internal/platform/config"
	"visitmap/internal/platform/httpserver"
	"visitmap/internal/platform/logger"
	"visitmap/internal/platform/metrics"
	"visitmap/internal/platform/postgres"
	"visitmap/internal/platform/redis"
	httptransport "visitmap/internal/transport/http"
	tripstore "visitmap/internal/trips/store"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "visitmap: %v\n", err)
		os.Exit(1)
	}
}

type backends struct {
	trips    overlayservice.TripStore
	overlays overlaystore.Store
	checks   map[string]httptransport.HealthCheck
	closers  []func() error
}

func run() error {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load(".env")

	cfg, err := config.FromEnv()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	catalog, err := loadCatalog(cfg.PaletteFile)
	if err != nil {
		return err
	}

	reg := metrics.New()
	overlayMetrics := overlaymetrics.New(reg.Registerer())

	b, err := openBackends(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		for _, closeFn := range b.closers {
			if err := closeFn(); err != nil {
				log.Warn("close backend failed", "error", err)
			}
		}
	}()

	writer := reconcile.NewWriter(b.overlays,
		reconcile.WithWriteTimeout(cfg.WriteTimeout),
		reconcile.WithWriterLogger(log),
		reconcile.WithWriterMetrics(overlayMetrics),
	)
	defer writer.Close()

	svc, err := overlayservice.New(b.trips, b.overlays, writer, catalog,
		overlayservice.WithHomeCountry(cfg.HomeCountry),
		overlayservice.WithDefaultFill(cfg.DefaultFill),
		overlayservice.WithPalette(cfg.DefaultPalette),
		overlayservice.WithLogger(log),
		overlayservice.WithMetrics(overlayMetrics),
	)
	if err != nil {
		return fmt.Errorf("init overlay service: %w", err)
	}
	if err := svc.Load(ctx); err != nil {
		return fmt.Errorf("load overlays: %w", err)
	}

	router := httptransport.NewRouter(httptransport.RouterConfig{
		Logger:       log,
		Metrics:      reg.Handler(),
		HealthChecks: b.checks,
	}, overlayhandler.New(svc, log))
	srv := httpserver.New(cfg.Addr, router, log)

	log.Info("starting visitmap",
		"addr", cfg.Addr,
		"store_backend", cfg.StoreBackend,
		"collection", cfg.Collection,
		"palettes", catalog.Names(),
	)

	serveErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

func loadCatalog(path string) (*palette.Catalog, error) {
	if path == "" {
		return palette.Builtin(), nil
	}
	catalog, err := palette.LoadCatalogFile(path)
	if err != nil {
		return nil, fmt.Errorf("load palette catalog: %w", err)
	}
	return catalog, nil
}

func openBackends(ctx context.Context, cfg config.Server, log *slog.Logger) (*backends, error) {
	b := &backends{checks: map[string]httptransport.HealthCheck{}}

	switch cfg.StoreBackend {
	case config.BackendRedis:
		client, err := redis.New(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		b.closers = append(b.closers, client.Close)
		b.checks["redis"] = client.Health
		b.overlays = overlaystore.NewRedisStore(client.Client, overlaystore.WithRedisCollection(cfg.Collection))
		// Trips are owned by the trip manager; without a database the log
		// lives in memory and is replaced over HTTP.
		b.trips = tripstore.NewInMemory()

	case config.BackendPostgres:
		db, err := postgres.Open(ctx, cfg.Postgres)
		if err != nil {
			return nil, err
		}
		b.closers = append(b.closers, db.Close)
		b.checks["postgres"] = pingCheck(db)
		if err := postgres.EnsureSchema(ctx, db, log); err != nil {
			return nil, err
		}
		b.overlays = overlaystore.NewPostgresStore(db, overlaystore.WithPostgresCollection(cfg.Collection))
		b.trips = tripstore.NewPostgresStore(db, cfg.Collection)

	default:
		b.overlays = overlaystore.NewInMemory()
		b.trips = tripstore.NewInMemory()
	}
	return b, nil
}

func pingCheck(db *sql.DB) httptransport.HealthCheck {
	return db.PingContext
}
