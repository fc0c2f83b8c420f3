package main

import (
	"log/slog"
	"os"

	"github.com/marifyahya/test-backenddev/internal/app"
	"github.com/marifyahya/test-backenddev/internal/config"
	"github.com/marifyahya/test-backenddev/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logging.Init(cfg.Logging)

	if err := app.Run(cfg); err != nil {
		slog.Error("app stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
