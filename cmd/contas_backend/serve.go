package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SscSPs/contas_app/internal/adapters/notify"
	portsrepo "github.com/SscSPs/contas_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/contas_app/internal/core/ports/services"
	"github.com/SscSPs/contas_app/internal/core/services"
	"github.com/SscSPs/contas_app/internal/handlers"
	"github.com/SscSPs/contas_app/internal/middleware"
	"github.com/SscSPs/contas_app/internal/platform/config"
	"github.com/SscSPs/contas_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/contas_app/internal/repositories/memory"
	"github.com/SscSPs/contas_app/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 15 * time.Second

var skipMigrations bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return serve(ctx, cfg, logger)
	},
}

func serve(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	store, checks, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	notifier, closeNotifier, err := openNotifier(cfg, logger)
	if err != nil {
		return err
	}
	defer closeNotifier()

	container := services.NewContainer(store, notifier, services.ContainerConfig{
		Bills: services.BillServiceConfig{
			MaxInstallments:        cfg.MaxInstallments,
			AllowInterestOnPending: cfg.AllowInterestOnPending,
		},
		EvolutionMonths: cfg.BalanceEvolutionMonths,
	}, services.WithLocation(cfg.Location))

	rateLimiter, err := middleware.NewRateLimiter(cfg.RateLimit)
	if err != nil {
		return fmt.Errorf("invalid rate limit: %w", err)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID", "X-Report-Key", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if err := r.SetTrustedProxies(nil); err != nil {
		return fmt.Errorf("failed to set trusted proxies: %w", err)
	}

	handlers.RegisterRoutes(r, cfg, container, rateLimiter, checks)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("storage", cfg.StorageBackend))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed to run: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.Store, map[string]handlers.HealthChecker, error) {
	if cfg.StorageBackend == config.StorageMemory {
		logger.Warn("Using in-memory storage; data is lost on restart")
		return memory.NewStore(), nil, nil
	}

	if !skipMigrations {
		logger.Info("Running database migrations...")
		if err := pgsql.Migrate(cfg.DatabaseURL, false, 0, logger); err != nil {
			return nil, nil, err
		}
	}

	pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, database.PoolOptions{Ping: cfg.EnableDBCheck}, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database pool: %w", err)
	}
	logger.Info("Database connection pool established.")

	store := pgsql.NewStore(pool, cfg.TxMaxRetries, logger)
	checks := map[string]handlers.HealthChecker{"database": store.Ping}
	return store, checks, nil
}

// openNotifier connects to the broker when AMQP_URL is set and falls back to logging events.
func openNotifier(cfg *config.Config, logger *slog.Logger) (portssvc.BillNotifier, func(), error) {
	if cfg.AMQPURL == "" {
		logger.Info("AMQP_URL not set, bill events are only logged")
		return notify.LogNotifier{}, func() {}, nil
	}
	n, err := notify.NewAMQPNotifier(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to message broker: %w", err)
	}
	logger.Info("Publishing bill events", slog.String("exchange", cfg.AMQPExchange), slog.String("queue", cfg.AMQPQueue))
	return n, func() {
		if err := n.Close(); err != nil {
			logger.Error("Error closing broker connection", slog.String("error", err.Error()))
		}
	}, nil
}

func init() {
	serveCmd.Flags().BoolVar(&skipMigrations, "skip-migrations", false, "do not apply pending migrations on startup")
	rootCmd.Flags().AddFlagSet(serveCmd.Flags())
}
