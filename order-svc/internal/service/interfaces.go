package service

import (
	"context"
	"time"

	"tableside/order-svc/internal/domain"
	"tableside/order-svc/internal/storage"
)

type OrderRepository interface {
	CreateOrder(req domain.CreateOrderRequest) (*domain.Order, error)
	GetOrder(id string) (*domain.Order, error)
	ListOrdersByStatus(statuses []domain.Status, newestFirst bool, limit int) ([]domain.Order, error)
	ListOrdersCreatedBetween(from, to time.Time) ([]domain.Order, error)
	UpdateStatus(id string, from, to domain.Status) (int64, error)
	MarkPaid(id string) (int64, error)
	SetAdditionalMessage(id, message string, allowed []domain.Status) (int64, error)
	ArchiveCompleted() (int64, error)
	ArchivePaid() (int64, error)
}

type MenuRepository interface {
	ListCategories() ([]domain.Category, error)
	CreateCategory(c *domain.Category) error
	UpdateCategory(c *domain.Category) (int64, error)
	DeleteCategory(id int) (int64, error)
	ListDishes(categoryID *int) ([]domain.Dish, error)
	GetDish(id int) (*domain.Dish, error)
	CreateDish(dish *domain.Dish) error
	UpdateDish(dish *domain.Dish) (int64, error)
	DeleteDish(id int) (int64, error)
	UpdateDishImage(id int, imageURL string) (int64, error)
}

type SettingsRepository interface {
	GetSettings() (*domain.RestaurantSettings, error)
	UpdateSettings(s *domain.RestaurantSettings) error
	UpdatePINHash(kind domain.PINKind, hash string) error
	SeedSettings(s *domain.RestaurantSettings) error
}

type ProjectionCache interface {
	ProjectionKey(view string, parts ...string) string
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Generation(ctx context.Context) (int64, error)
	SetIfGeneration(ctx context.Context, key string, value interface{}, generation int64) (bool, error)
	Delete(ctx context.Context, keys ...string) error
	DeleteMatching(ctx context.Context, pattern string) error
}

type AttemptLimiter interface {
	Attempt(ctx context.Context, key string) (bool, error)
	Reset(ctx context.Context, key string) error
}

// Invalidator drops cached views affected by a change.
type Invalidator interface {
	Invalidate(ctx context.Context, event domain.ChangeEvent)
}

type OrderServiceInterface interface {
	Create(ctx context.Context, req domain.CreateOrderRequest) (*domain.Order, error)
	Get(ctx context.Context, id string) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status domain.Status) (*domain.Order, error)
	MarkPaid(ctx context.Context, session Session, id string) (*domain.Order, error)
	SetAdditionalMessage(ctx context.Context, id, text string) (*domain.Order, error)
	ArchiveCompleted(ctx context.Context) (int64, error)
	ArchivePaid(ctx context.Context, session Session) (int64, error)
}

type ProjectionServiceInterface interface {
	KitchenActive(ctx context.Context) ([]OrderView, error)
	KitchenHistory(ctx context.Context) ([]OrderView, error)
	Caisse(ctx context.Context, session Session) (*CaisseView, error)
	GuestStatus(ctx context.Context, id string) (*OrderView, error)
	Invalidate(ctx context.Context, event domain.ChangeEvent)
}

type MenuServiceInterface interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	CreateCategory(ctx context.Context, session Session, name string) (*domain.Category, error)
	UpdateCategory(ctx context.Context, session Session, c domain.Category) (*domain.Category, error)
	DeleteCategory(ctx context.Context, session Session, id int) error
	ListDishes(ctx context.Context, categoryID *int) ([]DishView, error)
	CreateDish(ctx context.Context, session Session, input DishInput) (*DishView, error)
	UpdateDish(ctx context.Context, session Session, id int, input DishInput) (*DishView, error)
	DeleteDish(ctx context.Context, session Session, id int) error
	UpdateDishImage(ctx context.Context, session Session, id int, imageURL string) error
}

type AdminServiceInterface interface {
	Login(ctx context.Context, pin, clientKey string) (Session, error)
	UnlockSecurity(ctx context.Context, session Session, pin, clientKey string) (Session, error)
	ParseSession(token string) (Session, error)
	Settings(ctx context.Context) (*domain.RestaurantSettings, error)
	UpdateSettings(ctx context.Context, session Session, input SettingsInput) (*domain.RestaurantSettings, error)
	ChangePIN(ctx context.Context, session Session, input PINChange, clientKey string) error
}

var (
	_ OrderRepository    = (*storage.PostgresRepository)(nil)
	_ MenuRepository     = (*storage.PostgresRepository)(nil)
	_ SettingsRepository = (*storage.PostgresRepository)(nil)
	_ ProjectionCache    = (*storage.RedisCache)(nil)
	_ AttemptLimiter     = (*storage.AttemptLimiter)(nil)

	_ OrderServiceInterface      = (*OrderService)(nil)
	_ ProjectionServiceInterface = (*ProjectionService)(nil)
	_ MenuServiceInterface       = (*MenuService)(nil)
	_ AdminServiceInterface      = (*AdminService)(nil)
)
