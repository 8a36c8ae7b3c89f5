package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/octobees/sales-routes/api/internal/auth"
	"github.com/octobees/sales-routes/api/internal/cnpj"
	"github.com/octobees/sales-routes/api/internal/config"
	"github.com/octobees/sales-routes/api/internal/database"
	"github.com/octobees/sales-routes/api/internal/handler"
	"github.com/octobees/sales-routes/api/internal/logger"
	middlewarepkg "github.com/octobees/sales-routes/api/internal/middleware"
	"github.com/octobees/sales-routes/api/internal/repository"
	"github.com/octobees/sales-routes/api/internal/router"
	"github.com/octobees/sales-routes/api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logg, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = logg.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := database.Connect(ctx, cfg.DatabaseURL, database.PoolOptions{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		logg.Fatal("failed to connect database", zap.Error(err))
	}
	defer pool.Close()

	redisClient, err := database.ConnectRedis(ctx, cfg.RedisURL)
	if err != nil {
		logg.Fatal("failed to connect redis", zap.Error(err))
	}

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)

	auditRepo := repository.NewPGXAuditLogsRepository(pool)
	settingsRepo := repository.NewPGXSettingsRepository(pool)

	settingsService := service.NewSettingsService(settingsRepo, cfg.Registry.CNPJAKey, logg)
	registryClient := cnpj.NewClient(cnpj.Config{
		PrimaryBaseURL:  cfg.Registry.CNPJABaseURL,
		FallbackBaseURL: cfg.Registry.BrasilAPIURL,
		Keys:            settingsService,
		HTTPClient:      &http.Client{Timeout: cfg.Registry.Timeout},
		Timeout:         cfg.Registry.Timeout,
		PhoneRegion:     cfg.Registry.PhoneRegion,
		Logger:          logg.Named("cnpj"),
	})

	registryOpts := []service.RegistryOption{
		service.WithRegistryMetrics(service.NewRegistryMetrics(prometheus.DefaultRegisterer)),
		service.WithRegistryLogger(logg.Named("registry")),
	}
	if redisClient != nil {
		defer redisClient.Close()
		registryOpts = append(registryOpts, service.WithRecordCache(service.NewRedisRecordCache(redisClient, cfg.Registry.CacheTTL)))
	} else {
		logg.Info("REDIS_URL not set, registry cache disabled")
	}
	registryService := service.NewRegistryService(registryClient, registryOpts...)
	auditService := service.NewAuditService(auditRepo)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middlewarepkg.RequestID())
	e.Use(middlewarepkg.Logging(logg.Named("http")))
	e.Use(echoMiddleware.Recover())

	router.Register(e, cfg, jwtManager, router.Handlers{
		Registry: handler.NewRegistryHandler(registryService),
		Audit:    handler.NewAuditHandler(auditService),
		Settings: handler.NewSettingsHandler(settingsService),
		Metrics:  promhttp.Handler(),
	})

	serverErr := make(chan error, 1)
	go func() {
		logg.Info("starting server", zap.String("port", cfg.Port))
		serverErr <- e.Start(":" + cfg.Port)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logg.Info("shutting down", zap.String("signal", sig.String()))
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Fatal("server error", zap.Error(err))
		}
		return
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logg.Error("graceful shutdown failed", zap.Error(err))
	}
}
