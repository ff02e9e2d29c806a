package mocks

import (
	"context"
	"time"

	"tableside/analytics-svc/internal/domain"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/mock"
)

type StoreInterface struct {
	mock.Mock
}

func (_m *StoreInterface) OrderLines(orderID string) ([]domain.OrderLine, error) {
	ret := _m.Called(orderID)
	var r0 []domain.OrderLine
	if v := ret.Get(0); v != nil {
		r0 = v.([]domain.OrderLine)
	}
	r1 := ret.Error(1)
	return r0, r1
}

func (_m *StoreInterface) MarkCounted(ctx context.Context, orderID string) (bool, error) {
	ret := _m.Called(ctx, orderID)
	r0, _ := ret.Get(0).(bool)
	r1 := ret.Error(1)
	return r0, r1
}

func (_m *StoreInterface) IncrementDaily(ctx context.Context, date string, lines []domain.OrderLine) error {
	ret := _m.Called(ctx, date, lines)
	return ret.Error(0)
}

func (_m *StoreInterface) TopDaily(ctx context.Context, date string, limit int) ([]domain.DishPopularity, error) {
	ret := _m.Called(ctx, date, limit)
	var r0 []domain.DishPopularity
	if v := ret.Get(0); v != nil {
		r0 = v.([]domain.DishPopularity)
	}
	r1 := ret.Error(1)
	return r0, r1
}

func (_m *StoreInterface) DishNames(ids []int) (map[int]string, error) {
	ret := _m.Called(ids)
	var r0 map[int]string
	if v := ret.Get(0); v != nil {
		r0 = v.(map[int]string)
	}
	r1 := ret.Error(1)
	return r0, r1
}

func (_m *StoreInterface) TopDailyFromDB(from time.Time, to time.Time, limit int) ([]domain.DishPopularity, error) {
	ret := _m.Called(from, to, limit)
	var r0 []domain.DishPopularity
	if v := ret.Get(0); v != nil {
		r0 = v.([]domain.DishPopularity)
	}
	r1 := ret.Error(1)
	return r0, r1
}

func NewStoreInterface(t interface {
	mock.TestingT
	Cleanup(func())
}) *StoreInterface {
	m := &StoreInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

type MessageReader struct {
	mock.Mock
}

func (_m *MessageReader) ReadMessage(ctx context.Context) (kafka.Message, error) {
	ret := _m.Called(ctx)
	r0, _ := ret.Get(0).(kafka.Message)
	r1 := ret.Error(1)
	return r0, r1
}

func NewMessageReader(t interface {
	mock.TestingT
	Cleanup(func())
}) *MessageReader {
	m := &MessageReader{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

type AnalyticsInterface struct {
	mock.Mock
}

func (_m *AnalyticsInterface) TopToday(ctx context.Context) (*domain.DailyReport, error) {
	ret := _m.Called(ctx)
	var r0 *domain.DailyReport
	if v := ret.Get(0); v != nil {
		r0 = v.(*domain.DailyReport)
	}
	r1 := ret.Error(1)
	return r0, r1
}

func (_m *AnalyticsInterface) Daily(ctx context.Context, date string) (*domain.DailyReport, error) {
	ret := _m.Called(ctx, date)
	var r0 *domain.DailyReport
	if v := ret.Get(0); v != nil {
		r0 = v.(*domain.DailyReport)
	}
	r1 := ret.Error(1)
	return r0, r1
}

func NewAnalyticsInterface(t interface {
	mock.TestingT
	Cleanup(func())
}) *AnalyticsInterface {
	m := &AnalyticsInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
