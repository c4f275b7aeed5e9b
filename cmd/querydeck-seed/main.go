package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/querydeck/querydeck/internal/demo/seed"
	"github.com/querydeck/querydeck/internal/execute"
)

func main() {
	cfg, err := seed.LoadConfigFromEnv(os.LookupEnv)
	if err != nil {
		slog.Error("failed to load seed config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	db, err := execute.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		logger.Error("failed to open database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	service := &seed.Service{Config: cfg, Logger: logger}
	if err := service.Run(context.Background(), db); err != nil {
		logger.Error("seeding failed", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("done", slog.String("dsn", cfg.DSN))
}
