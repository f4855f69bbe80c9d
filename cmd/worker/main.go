package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/dronewear/storefront/internal/config"
	"github.com/dronewear/storefront/internal/events"
	kafkax "github.com/dronewear/storefront/internal/kafka"
	"github.com/dronewear/storefront/internal/logging"
	"github.com/dronewear/storefront/internal/orders"
	"github.com/dronewear/storefront/internal/postgres"
	"github.com/dronewear/storefront/internal/redisx"
	"github.com/dronewear/storefront/internal/worker"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer db.Close()

	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	warmer := &worker.CacheWarmer{
		Query:       &orders.Query{DB: db},
		Redis:       rdb,
		Log:         logger,
		ServiceName: cfg.ServiceName + "-worker",
	}

	cons := kafkax.NewConsumer(cfg.KafkaBrokers, cfg.WorkerGroup, events.TopicOrderCreated, cfg.WorkerCount, logger)

	go func() {
		logger.Info("worker started",
			zap.String("group", cfg.WorkerGroup),
			zap.String("topic", events.TopicOrderCreated),
			zap.Int("workers", cfg.WorkerCount),
		)
		if err := cons.Start(ctx, warmer.HandleOrderCreated); err != nil {
			logger.Error("consumer exit", zap.Error(err))
			cancel()
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	logger.Info("shutting down worker")
	cancel()
	time.Sleep(500 * time.Millisecond)
}
