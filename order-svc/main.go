package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"tableside/config"
	httpapi "tableside/order-svc/internal/api/http"
	"tableside/order-svc/internal/notify"
	"tableside/order-svc/internal/service"
	"tableside/order-svc/internal/storage"

	_ "github.com/lib/pq"
)

const (
	pinAttemptWindow = 5 * time.Minute
	pinMaxAttempts   = 3
)

func main() {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db := config.MustInitPostgres(cfg)
	defer db.Close()

	repo := storage.NewPostgresRepository(db)
	if err := repo.EnsureSchema(); err != nil {
		log.Fatal("Failed to ensure schema:", err)
	}

	rdb := config.MustInitRedis(cfg)
	defer rdb.Close()

	cache := storage.NewRedisCache(rdb, cfg.CacheTTL)
	limiter := storage.NewAttemptLimiter(rdb, pinAttemptWindow, pinMaxAttempts)

	projections := service.NewProjectionService(repo, repo, cache, cfg.Location)
	sessions := service.NewSessionManager(cfg.SessionSecret, cfg.SessionTTL)
	admin := service.NewAdminService(repo, sessions, limiter, projections)
	if err := admin.Seed(cfg.RestaurantName, cfg.AdminDefaultPIN, cfg.SecurityDefPIN); err != nil {
		log.Fatal("Failed to seed settings:", err)
	}
	orders := service.NewOrderService(repo, projections)
	menu := service.NewMenuService(repo, repo, projections)
	qr := service.TableQRGenerator{BaseURL: cfg.PublicBaseURL}

	// Views are dropped before any subscriber is woken, so a refresh never
	// reads a cache entry the change made stale.
	bridge := notify.NewBridge(projections)
	listener := config.MustListen(cfg, storage.OrderChangesChannel)
	defer listener.Close()
	go bridge.Listen(ctx, listener)

	if cfg.KafkaEnabled() {
		writer := config.NewKafkaWriter(cfg, cfg.OrderChangesTopic)
		defer writer.Close()
		go notify.Relay(ctx,
			bridge.Subscribe(notify.Filter{}, notify.DefaultBuffer),
			storage.NewKafkaPublisher(writer))
	} else {
		log.Println("Warning: KAFKA_BROKER is not set, order changes are not published")
	}

	handler := httpapi.NewHandler(orders, projections, menu, admin, qr, bridge)
	if len(cfg.TrustedProxies) > 0 {
		if err := handler.SetTrustedProxies(cfg.TrustedProxies); err != nil {
			log.Fatal("Invalid TRUSTED_PROXIES:", err)
		}
	}
	httpapi.StartServer(ctx, ":"+cfg.Port, httpapi.NewRouter(handler))
}
