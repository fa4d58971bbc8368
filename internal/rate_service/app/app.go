package app

import (
	"context"
	"log"
	"log/slog"
	"os"

	"fixrates/deploy/config"
	"fixrates/internal/rate_service/adapter/api_client/fixer"
	"fixrates/internal/rate_service/adapter/storage/postgres"
	"fixrates/internal/rate_service/ports/http/public"
	"fixrates/internal/rate_service/service"
)

type App struct {
	cfg *config.Config
}

func NewApp(cfg *config.Config) *App {
	return &App{cfg: cfg}
}

func (a *App) Start(ctx context.Context) <-chan struct{} {
	a.initLogger()
	slog.Info("Logger initialized")

	client := fixer.NewClient(a.cfg)
	slog.Info("Fixer client initialized", "url", a.cfg.Fixer.URL, "base", a.cfg.Fixer.BaseCurrency)

	audit := a.initAudit(ctx)

	rateService := a.initService(client, audit)
	slog.Info("Service initialized")

	serverDone := public.StartServer(ctx, rateService, a.cfg)
	slog.Info("server started", "port", a.cfg.HTTPServer.Port)

	return serverDone
}

func (a *App) initLogger() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level:     slog.LevelDebug,
		AddSource: false,
	}))
	slog.SetDefault(logger)
}

// initAudit returns nil when auditing is disabled; the service treats a
// nil store as "do not record".
func (a *App) initAudit(ctx context.Context) service.AuditStorage {
	if !a.cfg.Storage.Audit {
		slog.Info("Conversion audit disabled")
		return nil
	}

	storage, err := postgres.InitStorage(ctx, a.cfg)
	if err != nil {
		log.Fatalln("Failed to initialize PostgresSQL storage", "error", err)
	}
	slog.Info("Conversion audit storage initialized")

	return storage
}

func (a *App) initService(client service.RateClient, audit service.AuditStorage) *service.Service {
	rateService, err := service.NewService(client, audit, a.cfg)
	if err != nil {
		log.Fatalln("Failed to initialize rate service", "error", err)
	}

	return rateService
}
