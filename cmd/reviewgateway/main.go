package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"NewsPoster/internal/app"
	"NewsPoster/internal/config"
	"NewsPoster/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	logger := logging.New(cfg.Logging.Level)

	gateway, err := app.NewGateway(cfg, logger)
	if err != nil {
		logger.Error("gateway setup failed", "error", err)
		os.Exit(1)
	}

	if err := gateway.Run(ctx); err != nil {
		logger.Error("gateway stopped", "error", err)
		os.Exit(1)
	}
}
