package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	httpapi "tableside/analytics-svc/internal/api/http"
	"tableside/analytics-svc/internal/service"
	"tableside/analytics-svc/internal/storage"
	"tableside/config"

	_ "github.com/lib/pq"
)

func main() {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db := config.MustInitPostgres(cfg)
	defer db.Close()

	rdb := config.MustInitRedis(cfg)
	defer rdb.Close()

	store := storage.NewStore(db, rdb)

	if cfg.KafkaEnabled() {
		reader := config.NewKafkaReader(cfg, cfg.OrderChangesTopic, "analytics-svc")
		defer reader.Close()
		consumer := service.NewConsumer(reader, store, cfg.Location)
		go consumer.Start(ctx)
	} else {
		log.Println("Warning: KAFKA_BROKER is not set, daily counters will not be updated")
	}

	analytics := service.NewAnalyticsService(store, cfg.Location)
	handler := httpapi.NewHandler(analytics)
	httpapi.StartServer(ctx, ":"+cfg.AnalyticsPort, httpapi.NewRouter(handler))
}
