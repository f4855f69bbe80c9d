package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/dronewear/storefront/internal/config"
	"github.com/dronewear/storefront/internal/events"
	"github.com/dronewear/storefront/internal/feedback"
	"github.com/dronewear/storefront/internal/httpx"
	kafkax "github.com/dronewear/storefront/internal/kafka"
	"github.com/dronewear/storefront/internal/logging"
	"github.com/dronewear/storefront/internal/orders"
	"github.com/dronewear/storefront/internal/postgres"
	"github.com/dronewear/storefront/internal/redisx"
	"github.com/dronewear/storefront/internal/stock"
	"github.com/dronewear/storefront/internal/users"
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

	// DB
	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer db.Close()
	if err := postgres.Migrate(ctx, db); err != nil {
		logger.Fatal("db migrate", zap.Error(err))
	}

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	// Kafka producers
	created := kafkax.NewProducer(cfg.KafkaBrokers, events.TopicOrderCreated, 1024, logger)
	created.Start(ctx)
	depleted := kafkax.NewProducer(cfg.KafkaBrokers, events.TopicStockDepleted, 256, logger)
	depleted.Start(ctx)

	// Handlers
	router := httpx.NewRouter()
	oh := &httpx.OrdersHandler{
		Assembler: &orders.Assembler{DB: db, Log: logger},
		Query:     &orders.Query{DB: db},
		Producer:  created,
		Depleted:  depleted,
		Redis:     rdb,
		Log:       logger,
		Service:   cfg.ServiceName,
	}
	oh.Register(router)
	(&httpx.StockHandler{Repo: &stock.Repo{DB: db}}).Register(router)
	(&httpx.UsersHandler{
		Repo:      &users.Repo{DB: db},
		JWTSecret: cfg.JWTSecret,
		TokenTTL:  24 * time.Hour,
	}).Register(router)
	(&httpx.FeedbackHandler{Repo: &feedback.Repo{DB: db}}).Register(router)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	go func() {
		logger.Info("HTTP listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen", zap.Error(err))
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	logger.Info("shutting down")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	created.Close() // close inbox -> flush & close writer
	depleted.Close()
	cancel() // stop producer loops
	created.WaitClosed()
	depleted.WaitClosed()
}
