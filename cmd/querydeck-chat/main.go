package main

import (
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/querydeck/querydeck/internal/config"
	"github.com/querydeck/querydeck/internal/conversation"
	"github.com/querydeck/querydeck/internal/execute"
	"github.com/querydeck/querydeck/internal/translate"
	"github.com/querydeck/querydeck/internal/view"
)

func main() {
	cfg, err := config.LoadFromEnv("querydeck-chat")
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	// The terminal owns stdout, so the chat client logs nowhere unless
	// asked to. Point QUERYDECK_LOG_JSON/LEVEL at a file via shell
	// redirection of stderr if needed.
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	translator, err := translate.NewClient(cfg.Client.BaseURL, cfg.Client.Timeout)
	if err != nil {
		slog.Error("failed to initialize translate client", slog.Any("error", err))
		os.Exit(1)
	}
	translator.APIKey = cfg.Client.APIKey
	executor, err := execute.NewClient(cfg.Client.BaseURL, cfg.Client.Timeout)
	if err != nil {
		slog.Error("failed to initialize execute client", slog.Any("error", err))
		os.Exit(1)
	}
	executor.APIKey = cfg.Client.APIKey

	conv := conversation.New(translator, executor, logger)
	program := tea.NewProgram(view.NewModel(conv), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		slog.Error("chat client failed", slog.Any("error", err))
		os.Exit(1)
	}
}
