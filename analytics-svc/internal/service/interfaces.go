package service

import (
	"context"
	"time"

	"tableside/analytics-svc/internal/domain"

	"github.com/segmentio/kafka-go"
)

type StoreInterface interface {
	OrderLines(orderID string) ([]domain.OrderLine, error)
	MarkCounted(ctx context.Context, orderID string) (bool, error)
	IncrementDaily(ctx context.Context, date string, lines []domain.OrderLine) error
	TopDaily(ctx context.Context, date string, limit int) ([]domain.DishPopularity, error)
	DishNames(ids []int) (map[int]string, error)
	TopDailyFromDB(from, to time.Time, limit int) ([]domain.DishPopularity, error)
}

type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

type AnalyticsInterface interface {
	TopToday(ctx context.Context) (*domain.DailyReport, error)
	Daily(ctx context.Context, date string) (*domain.DailyReport, error)
}
