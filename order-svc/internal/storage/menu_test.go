package storage

import (
	"database/sql"
	"testing"
	"time"

	"tableside/order-svc/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var dishRowColumns = []string{"id", "name", "description", "price_eur", "category_id",
	"category_name", "image_url", "is_available", "created_at"}

func TestListDishes_ByCategory(t *testing.T) {
	repo, mock := setupRepository(t)
	categoryID := 2
	now := time.Now()

	mock.ExpectQuery(`WHERE d.category_id = \$1 ORDER BY d.name`).
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows(dishRowColumns).
			AddRow(1, "Burger", "", 12.5, 2, "Mains", "", true, now).
			AddRow(4, "Orphan", "", 3.0, nil, "", "", true, now))

	dishes, err := repo.ListDishes(&categoryID)

	require.NoError(t, err)
	require.Len(t, dishes, 2)
	assert.Equal(t, "Mains", dishes[0].CategoryLabel())
	assert.Nil(t, dishes[1].CategoryID)
	assert.Equal(t, domain.UnknownCategory, dishes[1].CategoryLabel())
}

func TestGetDish_NotFound(t *testing.T) {
	repo, mock := setupRepository(t)

	mock.ExpectQuery(`WHERE d.id = \$1`).
		WithArgs(42).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetDish(42)

	assert.ErrorIs(t, err, domain.ErrDishNotFound)
}

func TestCreateCategory_AppendsDisplayOrder(t *testing.T) {
	repo, mock := setupRepository(t)
	now := time.Now()

	mock.ExpectQuery("INSERT INTO categories").
		WithArgs("Desserts").
		WillReturnRows(sqlmock.NewRows([]string{"id", "display_order", "created_at"}).AddRow(3, 3, now))

	category := &domain.Category{Name: "Desserts"}
	require.NoError(t, repo.CreateCategory(category))

	assert.Equal(t, 3, category.ID)
	assert.Equal(t, 3, category.DisplayOrder)
}

func TestCreateDish_WithoutCategory(t *testing.T) {
	repo, mock := setupRepository(t)
	now := time.Now()

	mock.ExpectQuery("INSERT INTO dishes").
		WithArgs("Tea", "", 2.5, nil, "", true).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(11, now))

	dish := &domain.Dish{Name: "Tea", PriceEUR: 2.5, IsAvailable: true}
	require.NoError(t, repo.CreateDish(dish))

	assert.Equal(t, 11, dish.ID)
}

func TestDeleteDish_ReportsMissingRow(t *testing.T) {
	repo, mock := setupRepository(t)

	mock.ExpectExec("DELETE FROM dishes").
		WithArgs(5).
		WillReturnResult(sqlmock.NewResult(0, 0))

	n, err := repo.DeleteDish(5)

	require.NoError(t, err)
	assert.Zero(t, n)
}
