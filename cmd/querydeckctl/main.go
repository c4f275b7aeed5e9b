package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/querydeck/querydeck/internal/cli/querydeckctl"
	"github.com/querydeck/querydeck/internal/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	defaults := querydeckctl.Options{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
	if cfg, err := config.LoadFromEnv("querydeckctl"); err == nil {
		defaults.BaseURL = cfg.Client.BaseURL
		defaults.APIKey = cfg.Client.APIKey
		defaults.Timeout = cfg.Client.Timeout
	}

	os.Exit(querydeckctl.Run(ctx, os.Args[1:], defaults))
}
