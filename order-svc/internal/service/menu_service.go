package service

import (
	"context"
	"strings"
	"time"

	"tableside/order-svc/internal/currency"
	"tableside/order-svc/internal/domain"
)

type DishView struct {
	domain.Dish
	Price    currency.Money `json:"price"`
	Category string         `json:"category_label"`
}

// DishInput carries a dish as typed by staff. Price is in the display
// currency currently configured for the restaurant.
type DishInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	CategoryID  *int    `json:"category_id"`
	IsAvailable *bool   `json:"is_available"`
}

type MenuService struct {
	repo        MenuRepository
	settings    SettingsRepository
	invalidator Invalidator
	now         func() time.Time
}

func NewMenuService(repo MenuRepository, settings SettingsRepository, invalidator Invalidator) *MenuService {
	return &MenuService{repo: repo, settings: settings, invalidator: invalidator, now: time.Now}
}

func (s *MenuService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.repo.ListCategories()
	return categories, storeError("list categories", err)
}

func (s *MenuService) CreateCategory(ctx context.Context, session Session, name string) (*domain.Category, error) {
	if err := session.Require(ScopeAdmin, s.now()); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.NewValidationError("name", "category name is required")
	}
	category := &domain.Category{Name: name}
	if err := s.repo.CreateCategory(category); err != nil {
		return nil, storeError("create category", err)
	}
	return category, nil
}

func (s *MenuService) UpdateCategory(ctx context.Context, session Session, c domain.Category) (*domain.Category, error) {
	if err := session.Require(ScopeAdmin, s.now()); err != nil {
		return nil, err
	}
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return nil, domain.NewValidationError("name", "category name is required")
	}
	rows, err := s.repo.UpdateCategory(&c)
	if err != nil {
		return nil, storeError("update category", err)
	}
	if rows == 0 {
		return nil, domain.ErrCategoryNotFound
	}
	return &c, nil
}

func (s *MenuService) DeleteCategory(ctx context.Context, session Session, id int) error {
	if err := session.Require(ScopeAdmin, s.now()); err != nil {
		return err
	}
	rows, err := s.repo.DeleteCategory(id)
	if err != nil {
		return storeError("delete category", err)
	}
	if rows == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}

func (s *MenuService) ListDishes(ctx context.Context, categoryID *int) ([]DishView, error) {
	dishes, err := s.repo.ListDishes(categoryID)
	if err != nil {
		return nil, storeError("list dishes", err)
	}
	settings, _ := s.settings.GetSettings()
	views := make([]DishView, 0, len(dishes))
	for _, dish := range dishes {
		views = append(views, dishView(dish, settings))
	}
	return views, nil
}

func (s *MenuService) CreateDish(ctx context.Context, session Session, input DishInput) (*DishView, error) {
	if err := session.Require(ScopeAdmin, s.now()); err != nil {
		return nil, err
	}
	dish := domain.Dish{IsAvailable: true}
	settings, err := s.applyInput(&dish, input)
	if err != nil {
		return nil, err
	}
	if err := s.repo.CreateDish(&dish); err != nil {
		return nil, storeError("create dish", err)
	}
	view := dishView(dish, settings)
	return &view, nil
}

func (s *MenuService) UpdateDish(ctx context.Context, session Session, id int, input DishInput) (*DishView, error) {
	if err := session.Require(ScopeAdmin, s.now()); err != nil {
		return nil, err
	}
	existing, err := s.repo.GetDish(id)
	if err != nil {
		return nil, storeError("load dish", err)
	}
	dish := *existing
	settings, err := s.applyInput(&dish, input)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.UpdateDish(&dish)
	if err != nil {
		return nil, storeError("update dish", err)
	}
	if rows == 0 {
		return nil, domain.ErrDishNotFound
	}
	s.menuChanged(ctx)
	view := dishView(dish, settings)
	return &view, nil
}

// DeleteDish removes a dish from the menu. Past orders keep their lines and
// show them as an unknown dish.
func (s *MenuService) DeleteDish(ctx context.Context, session Session, id int) error {
	if err := session.Require(ScopeAdmin, s.now()); err != nil {
		return err
	}
	rows, err := s.repo.DeleteDish(id)
	if err != nil {
		return storeError("delete dish", err)
	}
	if rows == 0 {
		return domain.ErrDishNotFound
	}
	s.menuChanged(ctx)
	return nil
}

func (s *MenuService) UpdateDishImage(ctx context.Context, session Session, id int, imageURL string) error {
	if err := session.Require(ScopeAdmin, s.now()); err != nil {
		return err
	}
	rows, err := s.repo.UpdateDishImage(id, imageURL)
	if err != nil {
		return storeError("update dish image", err)
	}
	if rows == 0 {
		return domain.ErrDishNotFound
	}
	return nil
}

// applyInput validates input and converts its price to EUR with the same
// settings record that is returned for rendering the saved dish.
func (s *MenuService) applyInput(dish *domain.Dish, input DishInput) (*domain.RestaurantSettings, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.NewValidationError("name", "dish name is required")
	}
	if input.Price < 0 {
		return nil, domain.NewValidationError("price", "price cannot be negative")
	}
	settings, err := s.settings.GetSettings()
	if err != nil {
		return nil, storeError("load settings", err)
	}
	priceEUR, err := currency.ToEUR(input.Price, settings)
	if err != nil {
		return nil, domain.NewValidationError("price", err.Error())
	}

	dish.Name = name
	dish.Description = strings.TrimSpace(input.Description)
	dish.PriceEUR = priceEUR
	dish.CategoryID = input.CategoryID
	if input.IsAvailable != nil {
		dish.IsAvailable = *input.IsAvailable
	}
	return settings, nil
}

func (s *MenuService) menuChanged(ctx context.Context) {
	if s.invalidator != nil {
		s.invalidator.Invalidate(ctx, domain.ResyncEvent())
	}
}

func dishView(dish domain.Dish, settings *domain.RestaurantSettings) DishView {
	return DishView{
		Dish:     dish,
		Price:    currency.FromEUR(dish.PriceEUR, settings),
		Category: dish.CategoryLabel(),
	}
}
