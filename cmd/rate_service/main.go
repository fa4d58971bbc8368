package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"fixrates/deploy/config"
	"fixrates/internal/rate_service/app"
)

func main() {
	cfg := config.NewConfig()

	ctx, cancel := context.WithCancel(context.Background())

	serviceApp := app.NewApp(cfg)
	serverDone := serviceApp.Start(ctx)

	done := make(chan os.Signal, 1)

	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	<-done
	slog.Info("Gracefully shutting down")

	cancel()
	slog.Info("stopping server")

	<-serverDone
	slog.Info("server stopped")
}
