package app

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

	"github.com/gin-gonic/gin"
	"github.com/marifyahya/test-backenddev/internal/config"
)

const shutdownTimeout = 10 * time.Second

// Run serves the API until SIGINT or SIGTERM, then drains in-flight requests
func Run(cfg *config.Config) error {
	gin.SetMode(cfg.GinMode)

	container, err := NewContainer(cfg)
	if err != nil {
		return err
	}
	defer container.Close()

	serve := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           container.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("listening", slog.String("addr", serve.Addr), slog.String("store", cfg.DBDriver))
		if err := serve.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)

	select {
	case err := <-serveErr:
		return fmt.Errorf("http server: %w", err)
	case sig := <-sigs:
		slog.Info("shutting down", slog.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := serve.Shutdown(ctx); err != nil {
		return err
	}
	return nil
}
