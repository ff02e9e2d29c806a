package tests

import (
	"context"
	"testing"

	"tableside/order-svc/internal/domain"
	"tableside/order-svc/internal/mocks"
	"tableside/order-svc/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMenuService_CreateDish_ConvertsDisplayPriceToEUR(t *testing.T) {
	ctx := context.Background()
	repo := mocks.NewMenuRepository(t)
	settings := mocks.NewSettingsRepository(t)
	categoryID := 2

	settings.On("GetSettings").Return(djfSettings(), nil).Once()
	repo.On("CreateDish", mock.MatchedBy(func(d *domain.Dish) bool {
		return d.Name == "Skoudehkaris" && d.PriceEUR == 7.5 && d.IsAvailable && *d.CategoryID == 2
	})).Run(func(args mock.Arguments) {
		args.Get(0).(*domain.Dish).ID = 12
	}).Return(nil).Once()

	view, err := service.NewMenuService(repo, settings, nil).CreateDish(ctx, adminSession(t), service.DishInput{
		Name:       " Skoudehkaris ",
		Price:      1500,
		CategoryID: &categoryID,
	})

	require.NoError(t, err)
	assert.Equal(t, 12, view.ID)
	assert.Equal(t, 7.5, view.PriceEUR)
	assert.Equal(t, 1500.0, view.Price.Amount)
	assert.Equal(t, domain.CurrencyDJF, view.Price.Currency)
}

func TestMenuService_CreateDish_Validation(t *testing.T) {
	ctx := context.Background()
	settings := mocks.NewSettingsRepository(t)
	svc := service.NewMenuService(mocks.NewMenuRepository(t), settings, nil)

	_, err := svc.CreateDish(ctx, adminSession(t), service.DishInput{Name: "  ", Price: 3})
	assert.True(t, domain.IsValidation(err))

	_, err = svc.CreateDish(ctx, adminSession(t), service.DishInput{Name: "Tea", Price: -1})
	assert.True(t, domain.IsValidation(err))

	broken := djfSettings()
	broken.EURToDJF = 0
	settings.On("GetSettings").Return(broken, nil).Once()
	_, err = svc.CreateDish(ctx, adminSession(t), service.DishInput{Name: "Tea", Price: 300})
	assert.True(t, domain.IsValidation(err))

	_, err = svc.CreateDish(ctx, service.Session{}, service.DishInput{Name: "Tea", Price: 3})
	assert.ErrorIs(t, err, domain.ErrSessionExpired)
}

func TestMenuService_UpdateDish(t *testing.T) {
	ctx := context.Background()
	available := false

	t.Run("success_keeps_image_and_invalidates", func(t *testing.T) {
		repo := mocks.NewMenuRepository(t)
		settings := mocks.NewSettingsRepository(t)
		inv := mocks.NewInvalidator(t)

		repo.On("GetDish", 4).Return(&domain.Dish{ID: 4, Name: "Tea", PriceEUR: 2, ImageURL: "/uploads/dish_4.png", IsAvailable: true}, nil).Once()
		settings.On("GetSettings").Return(&domain.RestaurantSettings{Currency: domain.CurrencyEUR, EURToDJF: 200, EURToUSD: 1.1}, nil).Once()
		repo.On("UpdateDish", mock.MatchedBy(func(d *domain.Dish) bool {
			return d.ID == 4 && d.Name == "Mint tea" && d.PriceEUR == 2.5 && !d.IsAvailable && d.ImageURL == "/uploads/dish_4.png"
		})).Return(int64(1), nil).Once()
		inv.On("Invalidate", ctx, mock.MatchedBy(func(e domain.ChangeEvent) bool { return e.IsResync() })).Once()

		view, err := service.NewMenuService(repo, settings, inv).UpdateDish(ctx, adminSession(t), 4, service.DishInput{
			Name: "Mint tea", Price: 2.5, IsAvailable: &available,
		})

		require.NoError(t, err)
		assert.Equal(t, domain.UnknownCategory, view.Category)
	})

	t.Run("error_missing_dish", func(t *testing.T) {
		repo := mocks.NewMenuRepository(t)
		repo.On("GetDish", 9).Return(nil, domain.ErrDishNotFound).Once()

		_, err := service.NewMenuService(repo, mocks.NewSettingsRepository(t), nil).UpdateDish(ctx, adminSession(t), 9, service.DishInput{Name: "x"})

		assert.ErrorIs(t, err, domain.ErrDishNotFound)
	})
}

func TestMenuService_DeleteDish(t *testing.T) {
	ctx := context.Background()
	repo := mocks.NewMenuRepository(t)
	inv := mocks.NewInvalidator(t)
	svc := service.NewMenuService(repo, mocks.NewSettingsRepository(t), inv)

	repo.On("DeleteDish", 3).Return(int64(1), nil).Once()
	inv.On("Invalidate", ctx, mock.Anything).Once()
	assert.NoError(t, svc.DeleteDish(ctx, adminSession(t), 3))

	repo.On("DeleteDish", 3).Return(int64(0), nil).Once()
	assert.ErrorIs(t, svc.DeleteDish(ctx, adminSession(t), 3), domain.ErrDishNotFound)
}

func TestMenuService_Categories(t *testing.T) {
	ctx := context.Background()
	repo := mocks.NewMenuRepository(t)
	svc := service.NewMenuService(repo, mocks.NewSettingsRepository(t), nil)

	_, err := svc.CreateCategory(ctx, adminSession(t), "   ")
	assert.True(t, domain.IsValidation(err))

	repo.On("CreateCategory", &domain.Category{Name: "Drinks"}).Return(nil).Once()
	category, err := svc.CreateCategory(ctx, adminSession(t), "Drinks")
	require.NoError(t, err)
	assert.Equal(t, "Drinks", category.Name)

	repo.On("UpdateCategory", mock.Anything).Return(int64(0), nil).Once()
	_, err = svc.UpdateCategory(ctx, adminSession(t), domain.Category{ID: 8, Name: "Hot drinks"})
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)

	repo.On("DeleteCategory", 8).Return(int64(1), nil).Once()
	assert.NoError(t, svc.DeleteCategory(ctx, adminSession(t), 8))
}

func TestMenuService_ListDishes_FallsBackToEUR(t *testing.T) {
	repo := mocks.NewMenuRepository(t)
	settings := mocks.NewSettingsRepository(t)
	repo.On("ListDishes", (*int)(nil)).Return([]domain.Dish{{ID: 1, Name: "Tea", PriceEUR: 2}}, nil).Once()
	settings.On("GetSettings").Return(nil, assert.AnError).Once()

	views, err := service.NewMenuService(repo, settings, nil).ListDishes(context.Background(), nil)

	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "2.00 €", views[0].Price.String())
}
