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

	"golang.org/x/time/rate"

	"github.com/querydeck/querydeck/internal/api"
	"github.com/querydeck/querydeck/internal/auth"
	"github.com/querydeck/querydeck/internal/config"
	"github.com/querydeck/querydeck/internal/execute"
	"github.com/querydeck/querydeck/internal/forecast"
	"github.com/querydeck/querydeck/internal/observability"
	"github.com/querydeck/querydeck/internal/translate"
)

func main() {
	cfg, err := config.LoadFromEnv("querydeck-api")
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg, os.Stdout)
	db, err := execute.Open(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		logger.Error("failed to open database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxIdleTime(cfg.Database.ConnMaxIdleTime)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	forecaster := forecast.Fallback{
		Secondary: forecast.NewTrendModel(),
		Logger:    logger,
	}
	if cfg.Forecast.BaseURL != "" && cfg.Forecast.APIKey != "" {
		hosted, err := forecast.NewTimeGPTClient(forecast.TimeGPTConfig{
			BaseURL: cfg.Forecast.BaseURL,
			APIKey:  cfg.Forecast.APIKey,
			Timeout: cfg.Forecast.Timeout,
		})
		if err != nil {
			logger.Error("failed to initialize hosted forecaster", slog.Any("error", err))
			os.Exit(1)
		}
		forecaster.Primary = hosted
	}

	executor := &execute.Local{
		DB:         db,
		Driver:     cfg.Database.Driver,
		Forecaster: forecaster,
		Logger:     logger,
	}

	translator := &translate.Service{
		Schema: executor,
		Logger: logger,
	}
	if cfg.AI.TranslateEnabled {
		model, err := translate.NewChatModel(translate.ModelConfig{
			BaseURL:     cfg.AI.BaseURL,
			APIKey:      cfg.AI.APIKey,
			Model:       cfg.AI.Model,
			Temperature: cfg.AI.Temperature,
			Timeout:     cfg.AI.Timeout,
		})
		if err != nil {
			logger.Error("failed to initialize chat model", slog.Any("error", err))
			os.Exit(1)
		}
		translator.Model = model
	}

	deps := api.Dependencies{
		Logger:            logger,
		Translator:        translator,
		Executor:          executor,
		TranslateLimiter:  rate.NewLimiter(rate.Limit(cfg.RateLimit.TranslatePerSecond), cfg.RateLimit.TranslateBurst),
		Readiness:         api.CombineReadinessChecks(api.CheckDatabaseConfig(cfg), pingCheck(db)),
		DependencyTimeout: time.Second,
	}
	if cfg.Auth.Required {
		validator, err := auth.NewStaticAPIKeyValidator(cfg.Auth.StaticKeys)
		if err != nil {
			logger.Error("failed to parse static auth keys", slog.Any("error", err))
			os.Exit(1)
		}
		deps.AuthMiddleware = auth.Middleware(logger, validator)
	}

	handler := api.NewHandler(cfg, deps)
	server := &http.Server{
		Addr:         cfg.HTTP.Address,
		Handler:      handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("starting api server", slog.String("addr", cfg.HTTP.Address))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("api server failed", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	logger.Info("shutting down api server")
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", slog.Any("error", err))
		_ = server.Close()
		os.Exit(1)
	}
}

func pingCheck(db interface {
	PingContext(ctx context.Context) error
}) api.ReadinessCheck {
	return func(ctx context.Context) error {
		return db.PingContext(ctx)
	}
}
