package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"

	"github.com/Jhonaiker2309/supermarket-administration/internal/api"
	"github.com/Jhonaiker2309/supermarket-administration/internal/catalog"
	"github.com/Jhonaiker2309/supermarket-administration/internal/metrics"
	"github.com/Jhonaiker2309/supermarket-administration/internal/publisher"
	"github.com/Jhonaiker2309/supermarket-administration/internal/rate"
	"github.com/Jhonaiker2309/supermarket-administration/internal/rates"
	"github.com/Jhonaiker2309/supermarket-administration/internal/remote"
	"github.com/Jhonaiker2309/supermarket-administration/internal/syncer"
	"github.com/Jhonaiker2309/supermarket-administration/pkg/config"
	"github.com/Jhonaiker2309/supermarket-administration/pkg/logger"
	"github.com/Jhonaiker2309/supermarket-administration/pkg/utils"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Load configuration ---
	cfg := config.Load()

	logger.Init(cfg.ServiceName, cfg.Env, cfg.LogLevel)
	defer logger.Sync()
	logg := logger.S()
	logg.Info("starting [supermarketd]...")
	logg.Info("remote store: ", utils.MaskURL(cfg.StoreBaseURL))

	// --- Rate limiter for outbound store calls ---
	rateMgr := rate.NewManager(rate.Config{
		RequestsPerSecond: cfg.RequestsPerSecond,
		Burst:             cfg.Burst,
	})

	// --- Remote store client ---
	client := remote.NewClient(logg.Desugar(), cfg.StoreBaseURL, rateMgr, cfg.StoreTimeout)

	// --- Local fallback for the newest rate (optional) ---
	var fallback *rates.Fallback
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			DB:       cfg.RedisDB,
			Password: cfg.RedisPass,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			logg.Warnw("redis unavailable, rate fallback disabled", "error", err)
		} else {
			fallback = rates.NewFallback(rdb, logg.Desugar())
		}
	}

	// --- Change-event publisher (optional) ---
	var pub *publisher.Publisher
	if cfg.NATSURL != "" {
		nc, err := nats.Connect(cfg.NATSURL)
		if err != nil {
			logg.Warnw("NATS unavailable, change events disabled", "error", err)
		} else {
			pub, err = publisher.New(nc, cfg.OutboundSubject, cfg.ServiceName, logg.Desugar())
			if err != nil {
				logg.Warnw("failed to init publisher, change events disabled", "error", err)
				pub = nil
			}
		}
	}

	// --- Entity mirrors + facade ---
	products := catalog.NewStore(logg.Desugar(), client)
	rateStore := rates.NewStore(logg.Desugar(), client)
	facade := syncer.New(logg.Desugar(), products, rateStore, fallback, pub)

	if err := facade.Start(ctx); err != nil {
		// Collections stay reloadable through POST /api/v1/reload.
		logg.Warnw("initial load incomplete", "error", err)
	}

	// --- Metrics ---
	metrics.StartServer(fmt.Sprintf(":%d", cfg.MetricsPort))

	// --- HTTP API ---
	app := fiber.New(fiber.Config{AppName: cfg.ServiceName})
	handler := api.NewHandler(logg.Desugar(), facade)
	api.RegisterRoutes(app, handler)

	go func() {
		if err := app.Listen(fmt.Sprintf(":%d", cfg.Port)); err != nil {
			logg.Fatalw("api server stopped", "error", err)
		}
	}()
	logg.Infow("supermarketd ready", "port", cfg.Port, "metrics_port", cfg.MetricsPort)

	<-ctx.Done()
	logg.Info("shutting down...")
	if err := app.Shutdown(); err != nil {
		logg.Warnw("api shutdown failed", "error", err)
	}
}
