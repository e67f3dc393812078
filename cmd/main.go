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

	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/okian/halloffame/internal/adapters/auth"
	"github.com/okian/halloffame/internal/adapters/http/api"
	"github.com/okian/halloffame/internal/adapters/http/site"
	"github.com/okian/halloffame/internal/adapters/http/swagger"
	"github.com/okian/halloffame/internal/adapters/repository"
	service "github.com/okian/halloffame/internal/app"
	"github.com/okian/halloffame/internal/config"
	"github.com/okian/halloffame/internal/seeder"
	"github.com/okian/halloffame/pkg/logger"
	"github.com/okian/halloffame/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout            = 10 * time.Second
	writeTimeout           = 30 * time.Second
	idleTimeout            = 60 * time.Second
	readHeaderTimeout      = 5 * time.Second
	shutdownTimeout        = 30 * time.Second
	serviceMetricsInterval = 15 * time.Second
)

// application holds the wired components of a running server.
type application struct {
	svc     *service.Service
	handler http.Handler
}

func main() {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		// Use stderr for initialization errors since logger isn't available yet
		_, _ = os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	if err := logger.Init(logger.WithFormat(cfg.LogFormat)); err != nil {
		_, _ = os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	log := logger.Get()

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	metrics.GetRegistry().MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	app, err := newApplication(ctx, cfg, log)
	if err != nil {
		log.Error(ctx, "failed to start", logger.Error(err))
		os.Exit(1)
	}
	defer func() {
		if err := app.svc.Close(); err != nil {
			log.Error(ctx, "failed to close store", logger.Error(err))
		}
	}()

	go startServiceMetricsUpdater(ctx, app.svc)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           app.handler,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(ctx, "HTTP server failed", logger.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	log.Info(ctx, "server stopped")
}

// newApplication opens the store and wires the service, the authenticator
// and every HTTP route.
func newApplication(ctx context.Context, cfg *config.Config, log logger.Logger) (*application, error) {
	store, err := repository.Open(ctx, cfg.StorageDriver, cfg.StorageDSN)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.StorageDriver, err)
	}

	svc := service.New(
		service.WithStore(store),
		service.WithLogger(log.Named("service")),
		service.WithMaxImportRows(cfg.MaxImportRows),
		service.WithImportDedupeSize(cfg.ImportDedupeSize),
	)

	if err := svc.BootstrapAdmins(ctx, cfg.AdminUserIDs); err != nil {
		_ = svc.Close()
		return nil, err
	}

	if cfg.SeedSampleData {
		n, err := store.Count(ctx)
		if err != nil {
			_ = svc.Close()
			return nil, fmt.Errorf("count students: %w", err)
		}
		if n == 0 {
			if _, err := svc.Seed(ctx, seeder.SampleStudents()); err != nil {
				_ = svc.Close()
				return nil, err
			}
		}
	}

	// A nil Authenticator makes every caller anonymous.
	var authn api.Authenticator
	if cfg.JWTSecret != "" {
		a, err := auth.New(cfg.JWTSecret, store,
			auth.WithAudience(cfg.JWTAudience),
			auth.WithLogger(log.Named("auth")),
		)
		if err != nil {
			_ = svc.Close()
			return nil, err
		}
		authn = a
	} else {
		log.Warn(ctx, "jwt_secret is empty; roster writes are disabled")
	}

	mux := http.NewServeMux()
	site.Register(ctx, mux)
	swagger.Register(ctx, mux)
	api.NewServer(svc, authn,
		api.WithMaxRankingsLimit(cfg.MaxRankingsLimit),
		api.WithLogger(log.Named("http")),
	).Register(ctx, mux)

	return &application{svc: svc, handler: mux}, nil
}

// startServiceMetricsUpdater refreshes the roster gauges so they stay
// correct when another process writes to a shared SQL store.
func startServiceMetricsUpdater(ctx context.Context, svc *service.Service) {
	ticker := time.NewTicker(serviceMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_ = svc.GetStats()
		}
	}
}
