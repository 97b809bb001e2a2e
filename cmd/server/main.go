package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/seu-repo/evplan/internal/adapter/cache"
	"github.com/seu-repo/evplan/internal/adapter/http/fiber/handlers"
	"github.com/seu-repo/evplan/internal/adapter/http/fiber/middleware"
	"github.com/seu-repo/evplan/internal/adapter/queue"
	"github.com/seu-repo/evplan/internal/adapter/storage/postgres"
	"github.com/seu-repo/evplan/internal/observability/telemetry"
	"github.com/seu-repo/evplan/internal/ports"
	"github.com/seu-repo/evplan/internal/service/environmental"
	"github.com/seu-repo/evplan/internal/service/health"
	"github.com/seu-repo/evplan/internal/service/projection"
	"github.com/seu-repo/evplan/pkg/config"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// 2. Initialize Logger
	logger, err := buildLogger(cfg.Logging)
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Sync()

	logger.Info("Starting EVPlan",
		zap.String("service", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	// 3. Initialize OpenTelemetry (Distributed Tracing)
	if cfg.OpenTelemetry.Enabled {
		tracerProvider, err := telemetry.InitTracer(cfg.OpenTelemetry.ServiceName, cfg.App.Version, cfg.OpenTelemetry.JaegerEndpoint)
		if err != nil {
			logger.Fatal("Failed to initialize tracer", zap.Error(err))
		}
		defer func() {
			if err := tracerProvider.Shutdown(context.Background()); err != nil {
				logger.Error("Error shutting down tracer provider", zap.Error(err))
			}
		}()
	}

	// 4. Initialize PostgreSQL Connection Pool
	db, err := postgres.NewConnection(cfg.Database.URL, cfg.Database.LogQueries, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("Failed to get underlying SQL DB", zap.Error(err))
	}
	defer sqlDB.Close()

	if cfg.Database.AutoMigrate {
		if err := postgres.RunMigrations(db); err != nil {
			logger.Fatal("Failed to run migrations", zap.Error(err))
		}
	}

	// 5. Initialize Cache (Redis, local fallback)
	var metricsCache ports.Cache
	metricsCache, err = cache.NewRedisCache(cfg.Redis.URL, logger)
	if err != nil {
		logger.Warn("Redis unavailable, using in-process cache", zap.Error(err))
		metricsCache = cache.NewLocalCache(cfg.Cache.CleanupInterval, logger)
	}
	defer metricsCache.Close()

	// 6. Initialize Message Queue
	messageQueue, err := buildQueue(cfg.Queue, logger)
	if err != nil {
		logger.Fatal("Failed to connect to message queue", zap.Error(err))
	}
	if messageQueue != nil {
		defer messageQueue.Close()
	}

	// 7. Initialize Repositories
	stationRepo := postgres.NewStationRepository(db, logger)
	pvRepo := postgres.NewPVInstallationRepository(db, logger)
	projectRepo := postgres.NewProjectRepository(db, logger)
	parameterRepo := postgres.NewParameterRepository(db, logger)
	analysisRepo := postgres.NewAnalysisRepository(db, logger)
	vehicleRepo := postgres.NewVehicleProfileRepository(db, logger)

	// 8. Initialize Services (Business Logic Layer)
	resolver := projection.NewAggregator(stationRepo, pvRepo, projectRepo, logger)
	financialService := projection.NewService(resolver, parameterRepo, analysisRepo, metricsCache, messageQueue, projectionConfig(cfg.Finance, logger), logger)
	environmentalService := environmental.NewService(resolver, analysisRepo, vehicleRepo, logger).
		WithDefaults(environmental.Defaults{
			ElectricityEmissions: cfg.Environment.DefaultElectricityEmissionFactor,
			FuelEmissions:        cfg.Environment.DefaultFuelEmissionFactor,
			RenewablePct:         cfg.Environment.DefaultRenewablePct,
		})

	// 9. Health Checks
	healthService := health.NewService(cfg.App.Version, logger)
	healthService.RegisterDatabase(sqlDB)
	healthService.RegisterCache(metricsCache)
	if pinger, ok := messageQueue.(interface{ Ping() error }); ok {
		healthService.RegisterQueue(cfg.Queue.Provider, pinger.Ping)
	}

	// 10. Initialize Fiber HTTP Server
	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: true,
		ReadTimeout:           cfg.HTTP.ReadTimeout,
		WriteTimeout:          cfg.HTTP.WriteTimeout,
		IdleTimeout:           cfg.HTTP.IdleTimeout,
		ErrorHandler:          middleware.ErrorHandler(logger),
	})

	// Global Middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(cfg.HTTP.AllowedOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, OPTIONS",
	}))

	// Health Check Endpoints
	healthHandler := handlers.NewHealthHandler(healthService)
	app.Get("/health", healthHandler.Live)
	app.Get("/ready", healthHandler.Ready)

	// Metrics endpoint for Prometheus
	if cfg.Prometheus.Enabled {
		app.Get(cfg.Prometheus.Path, func(c *fiber.Ctx) error {
			handler := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
			handler(c.Context())
			return nil
		})
	}

	// API v1 Routes
	v1 := app.Group("/api/v1")

	analysisHandler := handlers.NewAnalysisHandler(financialService, environmentalService, logger)
	v1.Post("/projects/:id/financial-analysis", analysisHandler.RunProjectFinancial)
	v1.Post("/stations/:id/financial-analysis", analysisHandler.RunStationFinancial)
	v1.Get("/projects/:id/loan-schedule", analysisHandler.GetLoanSchedule)
	v1.Post("/environmental-analyses/:id/run", analysisHandler.RunEnvironmental)

	// 11. Start HTTP Server
	go func() {
		logger.Info("Starting HTTP Server", zap.Int("port", cfg.HTTP.Port))
		if err := app.Listen(fmt.Sprintf(":%d", cfg.HTTP.Port)); err != nil {
			logger.Fatal("HTTP Server failed", zap.Error(err))
		}
	}()

	// 12. Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Error("Error during server shutdown", zap.Error(err))
	}
	logger.Info("Server exited")
}

func buildLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	return zapCfg.Build()
}

// buildQueue selects the event transport. An empty provider disables event
// publication; the analysis pipeline treats a nil queue as "do not publish".
func buildQueue(cfg config.QueueConfig, logger *zap.Logger) (queue.MessageQueue, error) {
	switch cfg.Provider {
	case "nats":
		return queue.NewNATSQueue(cfg.URL, cfg.MaxReconnects, cfg.ReconnectWait, logger)
	case "rabbitmq":
		return queue.NewRabbitMQQueue(cfg.URL, logger)
	case "":
		logger.Warn("No queue provider configured, analysis events disabled")
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown queue provider %q", cfg.Provider)
	}
}

// projectionConfig translates file configuration into engine configuration.
// Seasonal factor keys are month numbers; unparseable keys are skipped.
func projectionConfig(cfg config.FinanceConfig, logger *zap.Logger) *projection.Config {
	out := projection.DefaultConfig()
	if cfg.DecommissionProbability > 0 {
		out.DecommissionProbability = cfg.DecommissionProbability
	}
	if cfg.FailureAnnualIncrease > 0 {
		out.FailureAnnualIncrease = cfg.FailureAnnualIncrease
	}

	if len(cfg.SeasonalFactors) > 0 {
		factors := make(map[time.Month]float64, len(cfg.SeasonalFactors))
		for key, factor := range cfg.SeasonalFactors {
			month, err := strconv.Atoi(key)
			if err != nil || month < 1 || month > 12 {
				logger.Warn("Ignoring invalid seasonal factor key", zap.String("key", key))
				continue
			}
			factors[time.Month(month)] = factor
		}
		if len(factors) > 0 {
			out.SeasonalFactors = factors
		}
	}

	if cfg.SeverityEnabled {
		out.SeverityTiers = &projection.SeverityConfig{
			Minor:       severityTier(cfg.SeverityTiers.Minor),
			Major:       severityTier(cfg.SeverityTiers.Major),
			Replacement: severityTier(cfg.SeverityTiers.Replacement),
		}
	}
	return out
}

func severityTier(cfg config.SeverityTierConfig) projection.SeverityTier {
	return projection.SeverityTier{
		ProbabilityPct: cfg.ProbabilityPct,
		CostPct:        cfg.CostPct,
		DowntimeDays:   cfg.DowntimeDays,
	}
}
