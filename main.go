package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver for database/sql (migrations)
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/MariiaZhytnikova/Airguardian/pkg/config"
	"github.com/MariiaZhytnikova/Airguardian/pkg/database"
	"github.com/MariiaZhytnikova/Airguardian/pkg/handlers"
	"github.com/MariiaZhytnikova/Airguardian/pkg/metrics"
	"github.com/MariiaZhytnikova/Airguardian/pkg/middleware"
	"github.com/MariiaZhytnikova/Airguardian/pkg/nfz"
	"github.com/MariiaZhytnikova/Airguardian/pkg/repositories"
	"github.com/MariiaZhytnikova/Airguardian/pkg/services"
	"github.com/MariiaZhytnikova/Airguardian/pkg/upstream"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	// Load configuration
	cfg, err := config.Load(Version)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := newLogger(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Configuration loaded",
		zap.String("environment", cfg.Env),
		zap.String("drones_list_api", cfg.Drones.ListAPI),
		zap.String("owner_registry", cfg.Drones.OwnerAPI),
		zap.Float64("nfz_radius", cfg.Scan.NFZRadius),
		zap.Duration("scan_interval", cfg.Scan.Interval))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewConnection(ctx, &database.Config{URL: cfg.DatabaseURL})
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := runMigrations(cfg.DatabaseURL, logger); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	redisClient, err := database.NewRedisClient(cfg.RedisURL)
	if err != nil {
		logger.Fatal("Failed to connect to redis", zap.Error(err))
	}
	if redisClient != nil {
		defer func() { _ = redisClient.Close() }()
	}

	m := metrics.New()

	telemetry := upstream.NewTelemetryClient(cfg.Drones.ListAPI, cfg.Drones.FetchTimeout, logger)
	registry := upstream.NewRegistryClient(cfg.Drones.OwnerAPI, cfg.Drones.OwnerTimeout, logger)

	ownerRepo := repositories.NewOwnerRepository(db)
	violationRepo := repositories.NewViolationRepository(db)

	directory := services.NewOwnerDirectory(ownerRepo, registry, logger)
	recorder := services.NewViolationRecorder(directory, violationRepo, logger)
	query := services.NewViolationQuery(violationRepo, logger)

	zone := nfz.NewZone(cfg.Scan.NFZRadius)
	scanner := services.NewScanner(telemetry, recorder, zone, cfg.Scan.Interval, m, logger)
	go scanner.Start(ctx)

	mux := http.NewServeMux()

	healthHandler := handlers.NewHealthHandler(cfg, logger)
	healthHandler.RegisterRoutes(mux)

	dronesHandler := handlers.NewDronesHandler(telemetry, redisClient, cfg.Scan.SnapshotCacheTTL, cfg.Scan.NFZRadius, logger)
	dronesHandler.RegisterRoutes(mux)

	violationsHandler := handlers.NewViolationsHandler(query, scanner, cfg.Scan.ViolationWindow, logger)
	violationsHandler.RegisterRoutes(mux, middleware.RequireSecret(cfg.Secret, logger))

	mux.Handle("GET /metrics", promhttp.Handler())

	handler := middleware.RequestLogger(logger)(middleware.CORS(cfg.FrontendOrigin)(mux))

	srv := &http.Server{
		Addr:    cfg.BindAddr + ":" + cfg.Port,
		Handler: handler,
	}

	go func() {
		logger.Info("Starting airguardian", zap.String("addr", srv.Addr), zap.String("version", cfg.Version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", zap.Error(err))
	}
}

// runMigrations applies pending schema migrations through database/sql,
// which golang-migrate requires.
func runMigrations(databaseURL string, logger *zap.Logger) error {
	sqlDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	return database.RunMigrations(sqlDB, logger)
}

// newLogger builds a production logger, or a human-readable development
// logger when running locally.
func newLogger(env string) (*zap.Logger, error) {
	if env == "local" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
