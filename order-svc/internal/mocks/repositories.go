package mocks

import (
	"context"
	"time"

	"tableside/order-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

type OrderRepository struct {
	mock.Mock
}

func (_m *OrderRepository) CreateOrder(req domain.CreateOrderRequest) (*domain.Order, error) {
	ret := _m.Called(req)
	var r0 *domain.Order
	if v := ret.Get(0); v != nil {
		r0 = v.(*domain.Order)
	}
	r1 := ret.Error(1)
	return r0, r1
}

func (_m *OrderRepository) GetOrder(id string) (*domain.Order, error) {
	ret := _m.Called(id)
	var r0 *domain.Order
	if v := ret.Get(0); v != nil {
		r0 = v.(*domain.Order)
	}
	r1 := ret.Error(1)
	return r0, r1
}

func (_m *OrderRepository) ListOrdersByStatus(statuses []domain.Status, newestFirst bool, limit int) ([]domain.Order, error) {
	ret := _m.Called(statuses, newestFirst, limit)
	var r0 []domain.Order
	if v := ret.Get(0); v != nil {
		r0 = v.([]domain.Order)
	}
	r1 := ret.Error(1)
	return r0, r1
}

func (_m *OrderRepository) ListOrdersCreatedBetween(from time.Time, to time.Time) ([]domain.Order, error) {
	ret := _m.Called(from, to)
	var r0 []domain.Order
	if v := ret.Get(0); v != nil {
		r0 = v.([]domain.Order)
	}
	r1 := ret.Error(1)
	return r0, r1
}

func (_m *OrderRepository) UpdateStatus(id string, from domain.Status, to domain.Status) (int64, error) {
	ret := _m.Called(id, from, to)
	r0, _ := ret.Get(0).(int64)
	r1 := ret.Error(1)
	return r0, r1
}

func (_m *OrderRepository) MarkPaid(id string) (int64, error) {
	ret := _m.Called(id)
	r0, _ := ret.Get(0).(int64)
	r1 := ret.Error(1)
	return r0, r1
}

func (_m *OrderRepository) SetAdditionalMessage(id string, message string, allowed []domain.Status) (int64, error) {
	ret := _m.Called(id, message, allowed)
	r0, _ := ret.Get(0).(int64)
	r1 := ret.Error(1)
	return r0, r1
}

func (_m *OrderRepository) ArchiveCompleted() (int64, error) {
	ret := _m.Called()
	r0, _ := ret.Get(0).(int64)
	r1 := ret.Error(1)
	return r0, r1
}

func (_m *OrderRepository) ArchivePaid() (int64, error) {
	ret := _m.Called()
	r0, _ := ret.Get(0).(int64)
	r1 := ret.Error(1)
	return r0, r1
}

func NewOrderRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *OrderRepository {
	m := &OrderRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

type MenuRepository struct {
	mock.Mock
}

func (_m *MenuRepository) ListCategories() ([]domain.Category, error) {
	ret := _m.Called()
	var r0 []domain.Category
	if v := ret.Get(0); v != nil {
		r0 = v.([]domain.Category)
	}
	r1 := ret.Error(1)
	return r0, r1
}

func (_m *MenuRepository) CreateCategory(c *domain.Category) error {
	ret := _m.Called(c)
	r0 := ret.Error(0)
	return r0
}

func (_m *MenuRepository) UpdateCategory(c *domain.Category) (int64, error) {
	ret := _m.Called(c)
	r0, _ := ret.Get(0).(int64)
	r1 := ret.Error(1)
	return r0, r1
}

func (_m *MenuRepository) DeleteCategory(id int) (int64, error) {
	ret := _m.Called(id)
	r0, _ := ret.Get(0).(int64)
	r1 := ret.Error(1)
	return r0, r1
}

func (_m *MenuRepository) ListDishes(categoryID *int) ([]domain.Dish, error) {
	ret := _m.Called(categoryID)
	var r0 []domain.Dish
	if v := ret.Get(0); v != nil {
		r0 = v.([]domain.Dish)
	}
	r1 := ret.Error(1)
	return r0, r1
}

func (_m *MenuRepository) GetDish(id int) (*domain.Dish, error) {
	ret := _m.Called(id)
	var r0 *domain.Dish
	if v := ret.Get(0); v != nil {
		r0 = v.(*domain.Dish)
	}
	r1 := ret.Error(1)
	return r0, r1
}

func (_m *MenuRepository) CreateDish(dish *domain.Dish) error {
	ret := _m.Called(dish)
	r0 := ret.Error(0)
	return r0
}

func (_m *MenuRepository) UpdateDish(dish *domain.Dish) (int64, error) {
	ret := _m.Called(dish)
	r0, _ := ret.Get(0).(int64)
	r1 := ret.Error(1)
	return r0, r1
}

func (_m *MenuRepository) DeleteDish(id int) (int64, error) {
	ret := _m.Called(id)
	r0, _ := ret.Get(0).(int64)
	r1 := ret.Error(1)
	return r0, r1
}

func (_m *MenuRepository) UpdateDishImage(id int, imageURL string) (int64, error) {
	ret := _m.Called(id, imageURL)
	r0, _ := ret.Get(0).(int64)
	r1 := ret.Error(1)
	return r0, r1
}

func NewMenuRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MenuRepository {
	m := &MenuRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

type SettingsRepository struct {
	mock.Mock
}

func (_m *SettingsRepository) GetSettings() (*domain.RestaurantSettings, error) {
	ret := _m.Called()
	var r0 *domain.RestaurantSettings
	if v := ret.Get(0); v != nil {
		r0 = v.(*domain.RestaurantSettings)
	}
	r1 := ret.Error(1)
	return r0, r1
}

func (_m *SettingsRepository) UpdateSettings(s *domain.RestaurantSettings) error {
	ret := _m.Called(s)
	r0 := ret.Error(0)
	return r0
}

func (_m *SettingsRepository) UpdatePINHash(kind domain.PINKind, hash string) error {
	ret := _m.Called(kind, hash)
	r0 := ret.Error(0)
	return r0
}

func (_m *SettingsRepository) SeedSettings(s *domain.RestaurantSettings) error {
	ret := _m.Called(s)
	r0 := ret.Error(0)
	return r0
}

func NewSettingsRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *SettingsRepository {
	m := &SettingsRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

type ProjectionCache struct {
	mock.Mock
}

func (_m *ProjectionCache) ProjectionKey(view string, parts ...string) string {
	ret := _m.Called(view, parts)
	r0, _ := ret.Get(0).(string)
	return r0
}

func (_m *ProjectionCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	ret := _m.Called(ctx, key, dest)
	r0, _ := ret.Get(0).(bool)
	r1 := ret.Error(1)
	return r0, r1
}

func (_m *ProjectionCache) Generation(ctx context.Context) (int64, error) {
	ret := _m.Called(ctx)
	r0, _ := ret.Get(0).(int64)
	r1 := ret.Error(1)
	return r0, r1
}

func (_m *ProjectionCache) SetIfGeneration(ctx context.Context, key string, value interface{}, generation int64) (bool, error) {
	ret := _m.Called(ctx, key, value, generation)
	r0, _ := ret.Get(0).(bool)
	r1 := ret.Error(1)
	return r0, r1
}

func (_m *ProjectionCache) Delete(ctx context.Context, keys ...string) error {
	ret := _m.Called(ctx, keys)
	r0 := ret.Error(0)
	return r0
}

func (_m *ProjectionCache) DeleteMatching(ctx context.Context, pattern string) error {
	ret := _m.Called(ctx, pattern)
	r0 := ret.Error(0)
	return r0
}

func NewProjectionCache(t interface {
	mock.TestingT
	Cleanup(func())
}) *ProjectionCache {
	m := &ProjectionCache{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

type AttemptLimiter struct {
	mock.Mock
}

func (_m *AttemptLimiter) Attempt(ctx context.Context, key string) (bool, error) {
	ret := _m.Called(ctx, key)
	r0, _ := ret.Get(0).(bool)
	r1 := ret.Error(1)
	return r0, r1
}

func (_m *AttemptLimiter) Reset(ctx context.Context, key string) error {
	ret := _m.Called(ctx, key)
	r0 := ret.Error(0)
	return r0
}

func NewAttemptLimiter(t interface {
	mock.TestingT
	Cleanup(func())
}) *AttemptLimiter {
	m := &AttemptLimiter{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

type Invalidator struct {
	mock.Mock
}

func (_m *Invalidator) Invalidate(ctx context.Context, event domain.ChangeEvent) {
	_m.Called(ctx, event)
}

func NewInvalidator(t interface {
	mock.TestingT
	Cleanup(func())
}) *Invalidator {
	m := &Invalidator{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
