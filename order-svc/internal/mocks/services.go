package mocks

import (
	"context"

	"tableside/order-svc/internal/domain"
	"tableside/order-svc/internal/service"

	"github.com/stretchr/testify/mock"
)

type OrderService struct {
	mock.Mock
}

func (_m *OrderService) Create(ctx context.Context, req domain.CreateOrderRequest) (*domain.Order, error) {
	ret := _m.Called(ctx, req)
	var r0 *domain.Order
	if v := ret.Get(0); v != nil {
		r0 = v.(*domain.Order)
	}
	r1 := ret.Error(1)
	return r0, r1
}

func (_m *OrderService) Get(ctx context.Context, id string) (*domain.Order, error) {
	ret := _m.Called(ctx, id)
	var r0 *domain.Order
	if v := ret.Get(0); v != nil {
		r0 = v.(*domain.Order)
	}
	r1 := ret.Error(1)
	return r0, r1
}

func (_m *OrderService) UpdateStatus(ctx context.Context, id string, status domain.Status) (*domain.Order, error) {
	ret := _m.Called(ctx, id, status)
	var r0 *domain.Order
	if v := ret.Get(0); v != nil {
		r0 = v.(*domain.Order)
	}
	r1 := ret.Error(1)
	return r0, r1
}

func (_m *OrderService) MarkPaid(ctx context.Context, session service.Session, id string) (*domain.Order, error) {
	ret := _m.Called(ctx, session, id)
	var r0 *domain.Order
	if v := ret.Get(0); v != nil {
		r0 = v.(*domain.Order)
	}
	r1 := ret.Error(1)
	return r0, r1
}

func (_m *OrderService) SetAdditionalMessage(ctx context.Context, id string, text string) (*domain.Order, error) {
	ret := _m.Called(ctx, id, text)
	var r0 *domain.Order
	if v := ret.Get(0); v != nil {
		r0 = v.(*domain.Order)
	}
	r1 := ret.Error(1)
	return r0, r1
}

func (_m *OrderService) ArchiveCompleted(ctx context.Context) (int64, error) {
	ret := _m.Called(ctx)
	r0, _ := ret.Get(0).(int64)
	r1 := ret.Error(1)
	return r0, r1
}

func (_m *OrderService) ArchivePaid(ctx context.Context, session service.Session) (int64, error) {
	ret := _m.Called(ctx, session)
	r0, _ := ret.Get(0).(int64)
	r1 := ret.Error(1)
	return r0, r1
}

func NewOrderService(t interface {
	mock.TestingT
	Cleanup(func())
}) *OrderService {
	m := &OrderService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

type ProjectionService struct {
	mock.Mock
}

func (_m *ProjectionService) KitchenActive(ctx context.Context) ([]service.OrderView, error) {
	ret := _m.Called(ctx)
	var r0 []service.OrderView
	if v := ret.Get(0); v != nil {
		r0 = v.([]service.OrderView)
	}
	r1 := ret.Error(1)
	return r0, r1
}

func (_m *ProjectionService) KitchenHistory(ctx context.Context) ([]service.OrderView, error) {
	ret := _m.Called(ctx)
	var r0 []service.OrderView
	if v := ret.Get(0); v != nil {
		r0 = v.([]service.OrderView)
	}
	r1 := ret.Error(1)
	return r0, r1
}

func (_m *ProjectionService) Caisse(ctx context.Context, session service.Session) (*service.CaisseView, error) {
	ret := _m.Called(ctx, session)
	var r0 *service.CaisseView
	if v := ret.Get(0); v != nil {
		r0 = v.(*service.CaisseView)
	}
	r1 := ret.Error(1)
	return r0, r1
}

func (_m *ProjectionService) GuestStatus(ctx context.Context, id string) (*service.OrderView, error) {
	ret := _m.Called(ctx, id)
	var r0 *service.OrderView
	if v := ret.Get(0); v != nil {
		r0 = v.(*service.OrderView)
	}
	r1 := ret.Error(1)
	return r0, r1
}

func (_m *ProjectionService) Invalidate(ctx context.Context, event domain.ChangeEvent) {
	_m.Called(ctx, event)
}

func NewProjectionService(t interface {
	mock.TestingT
	Cleanup(func())
}) *ProjectionService {
	m := &ProjectionService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

type MenuService struct {
	mock.Mock
}

func (_m *MenuService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	ret := _m.Called(ctx)
	var r0 []domain.Category
	if v := ret.Get(0); v != nil {
		r0 = v.([]domain.Category)
	}
	r1 := ret.Error(1)
	return r0, r1
}

func (_m *MenuService) CreateCategory(ctx context.Context, session service.Session, name string) (*domain.Category, error) {
	ret := _m.Called(ctx, session, name)
	var r0 *domain.Category
	if v := ret.Get(0); v != nil {
		r0 = v.(*domain.Category)
	}
	r1 := ret.Error(1)
	return r0, r1
}

func (_m *MenuService) UpdateCategory(ctx context.Context, session service.Session, c domain.Category) (*domain.Category, error) {
	ret := _m.Called(ctx, session, c)
	var r0 *domain.Category
	if v := ret.Get(0); v != nil {
		r0 = v.(*domain.Category)
	}
	r1 := ret.Error(1)
	return r0, r1
}

func (_m *MenuService) DeleteCategory(ctx context.Context, session service.Session, id int) error {
	ret := _m.Called(ctx, session, id)
	r0 := ret.Error(0)
	return r0
}

func (_m *MenuService) ListDishes(ctx context.Context, categoryID *int) ([]service.DishView, error) {
	ret := _m.Called(ctx, categoryID)
	var r0 []service.DishView
	if v := ret.Get(0); v != nil {
		r0 = v.([]service.DishView)
	}
	r1 := ret.Error(1)
	return r0, r1
}

func (_m *MenuService) CreateDish(ctx context.Context, session service.Session, input service.DishInput) (*service.DishView, error) {
	ret := _m.Called(ctx, session, input)
	var r0 *service.DishView
	if v := ret.Get(0); v != nil {
		r0 = v.(*service.DishView)
	}
	r1 := ret.Error(1)
	return r0, r1
}

func (_m *MenuService) UpdateDish(ctx context.Context, session service.Session, id int, input service.DishInput) (*service.DishView, error) {
	ret := _m.Called(ctx, session, id, input)
	var r0 *service.DishView
	if v := ret.Get(0); v != nil {
		r0 = v.(*service.DishView)
	}
	r1 := ret.Error(1)
	return r0, r1
}

func (_m *MenuService) DeleteDish(ctx context.Context, session service.Session, id int) error {
	ret := _m.Called(ctx, session, id)
	r0 := ret.Error(0)
	return r0
}

func (_m *MenuService) UpdateDishImage(ctx context.Context, session service.Session, id int, imageURL string) error {
	ret := _m.Called(ctx, session, id, imageURL)
	r0 := ret.Error(0)
	return r0
}

func NewMenuService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MenuService {
	m := &MenuService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

type AdminService struct {
	mock.Mock
}

func (_m *AdminService) Login(ctx context.Context, pin string, clientKey string) (service.Session, error) {
	ret := _m.Called(ctx, pin, clientKey)
	r0, _ := ret.Get(0).(service.Session)
	r1 := ret.Error(1)
	return r0, r1
}

func (_m *AdminService) UnlockSecurity(ctx context.Context, session service.Session, pin string, clientKey string) (service.Session, error) {
	ret := _m.Called(ctx, session, pin, clientKey)
	r0, _ := ret.Get(0).(service.Session)
	r1 := ret.Error(1)
	return r0, r1
}

func (_m *AdminService) ParseSession(token string) (service.Session, error) {
	ret := _m.Called(token)
	r0, _ := ret.Get(0).(service.Session)
	r1 := ret.Error(1)
	return r0, r1
}

func (_m *AdminService) Settings(ctx context.Context) (*domain.RestaurantSettings, error) {
	ret := _m.Called(ctx)
	var r0 *domain.RestaurantSettings
	if v := ret.Get(0); v != nil {
		r0 = v.(*domain.RestaurantSettings)
	}
	r1 := ret.Error(1)
	return r0, r1
}

func (_m *AdminService) UpdateSettings(ctx context.Context, session service.Session, input service.SettingsInput) (*domain.RestaurantSettings, error) {
	ret := _m.Called(ctx, session, input)
	var r0 *domain.RestaurantSettings
	if v := ret.Get(0); v != nil {
		r0 = v.(*domain.RestaurantSettings)
	}
	r1 := ret.Error(1)
	return r0, r1
}

func (_m *AdminService) ChangePIN(ctx context.Context, session service.Session, input service.PINChange, clientKey string) error {
	ret := _m.Called(ctx, session, input, clientKey)
	r0 := ret.Error(0)
	return r0
}

func NewAdminService(t interface {
	mock.TestingT
	Cleanup(func())
}) *AdminService {
	m := &AdminService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

type QRGenerator struct {
	mock.Mock
}

func (_m *QRGenerator) Generate(table string) ([]byte, error) {
	ret := _m.Called(table)
	var r0 []byte
	if v := ret.Get(0); v != nil {
		r0 = v.([]byte)
	}
	r1 := ret.Error(1)
	return r0, r1
}

func (_m *QRGenerator) MenuLink(table string) string {
	ret := _m.Called(table)
	r0, _ := ret.Get(0).(string)
	return r0
}

func (_m *QRGenerator) StatusLink(orderID string, table string) string {
	ret := _m.Called(orderID, table)
	r0, _ := ret.Get(0).(string)
	return r0
}

func NewQRGenerator(t interface {
	mock.TestingT
	Cleanup(func())
}) *QRGenerator {
	m := &QRGenerator{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

var (
	_ service.OrderRepository    = (*OrderRepository)(nil)
	_ service.MenuRepository     = (*MenuRepository)(nil)
	_ service.SettingsRepository = (*SettingsRepository)(nil)
	_ service.ProjectionCache    = (*ProjectionCache)(nil)
	_ service.AttemptLimiter     = (*AttemptLimiter)(nil)
	_ service.Invalidator        = (*Invalidator)(nil)

	_ service.OrderServiceInterface      = (*OrderService)(nil)
	_ service.ProjectionServiceInterface = (*ProjectionService)(nil)
	_ service.MenuServiceInterface       = (*MenuService)(nil)
	_ service.AdminServiceInterface      = (*AdminService)(nil)
	_ service.QRGenerator                = (*QRGenerator)(nil)
)
