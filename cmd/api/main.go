package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/campusops/stockroom-backend/api/routes"
	"github.com/campusops/stockroom-backend/internal/indents"
	"github.com/campusops/stockroom-backend/internal/inventory"
	"github.com/campusops/stockroom-backend/internal/labels"
	"github.com/campusops/stockroom-backend/internal/mailer"
	"github.com/campusops/stockroom-backend/internal/requests"
	"github.com/campusops/stockroom-backend/internal/stock"
	"github.com/campusops/stockroom-backend/pkg/config"
	"github.com/campusops/stockroom-backend/pkg/db"
	"github.com/campusops/stockroom-backend/pkg/logger"
	"github.com/campusops/stockroom-backend/pkg/metrics"
	"github.com/campusops/stockroom-backend/pkg/migrate"
	pkgredis "github.com/campusops/stockroom-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "stockroom"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "stockroom",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	var redisClient *pkgredis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = pkgredis.New(context.Background(), cfg.Redis)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
	} else {
		logg.Warn(context.Background(), "redis not configured, idempotency replay disabled")
	}

	ledgerSvc, err := inventory.NewService(inventory.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create inventory service", err)
		os.Exit(1)
	}

	stockSvc, err := stock.NewService(dbClient, stock.NewRepository(dbClient.DB()), ledgerSvc, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create stock service", err)
		os.Exit(1)
	}

	var notifier mailer.Notifier
	if cfg.Mail.Enabled() {
		notifier = mailer.New(cfg.Mail)
	} else {
		logg.Warn(context.Background(), "mail not configured, notifications disabled")
	}

	requestsSvc, err := requests.NewService(dbClient, requests.NewRepository(dbClient.DB()), ledgerSvc, notifier, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create requests service", err)
		os.Exit(1)
	}

	indentsSvc, err := indents.NewService(indents.NewRepository(dbClient.DB()), labels.NewCode128Renderer(), logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create indents service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting stockroom server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Dependencies{
			Config:    cfg,
			Logger:    logg,
			DB:        dbClient,
			Redis:     redisClient,
			Metrics:   metrics.NewHTTPMetrics(prometheus.DefaultRegisterer),
			Inventory: ledgerSvc,
			Stock:     stockSvc,
			Requests:  requestsSvc,
			Indents:   indentsSvc,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "stockroom server stopped unexpectedly", err)
		os.Exit(1)
	}
}
