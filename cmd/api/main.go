package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kursadbilgin/sms-console/internal/config"
	infraredis "github.com/kursadbilgin/sms-console/internal/infra/redis"
	"github.com/kursadbilgin/sms-console/internal/observability"
	"github.com/kursadbilgin/sms-console/internal/provider"
	"github.com/kursadbilgin/sms-console/internal/service"
	"github.com/kursadbilgin/sms-console/internal/transport"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		rdb, err = infraredis.NewRedis(ctx, cfg.RedisURL)
		if err != nil {
			logger.Fatal("redis initialization failed", zap.Error(err))
		}
		defer rdb.Close()
	}

	metrics := observability.NewMetrics()

	dispatcher, err := service.NewDispatchService(
		provider.NewStandardProvider(cfg.Standard()),
		provider.NewSMPPProvider(cfg.SMPP()),
		provider.NewClient(),
		logger,
		metrics,
	)
	if err != nil {
		logger.Fatal("dispatcher initialization failed", zap.Error(err))
	}

	app, err := transport.NewApp(transport.AppDeps{
		Config:     cfg,
		Dispatcher: dispatcher,
		Logger:     logger,
		Metrics:    metrics,
		Redis:      rdb,
	})
	if err != nil {
		logger.Fatal("http app initialization failed", zap.Error(err))
	}

	g, groupCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("sms-console api started",
			zap.Int("port", cfg.APIPort),
			zap.Bool("redisSessions", rdb != nil),
		)
		return app.Listen(fmt.Sprintf(":%d", cfg.APIPort))
	})
	g.Go(func() error {
		<-groupCtx.Done()
		logger.Info("shutting down http server")
		return app.ShutdownWithTimeout(shutdownTimeout)
	})

	if err := g.Wait(); err != nil {
		logger.Error("sms-console api stopped with error", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
	logger.Info("sms-console api stopped")
}
