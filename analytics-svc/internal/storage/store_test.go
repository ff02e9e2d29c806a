package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"tableside/analytics-svc/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const orderID = "3b241101-e2bb-4255-8caf-4136c566a962"

func setupStore(t *testing.T) (*Store, sqlmock.Sqlmock, *miniredis.Miniredis) {
	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	t.Cleanup(func() {
		rdb.Close()
		assert.NoError(t, sqlMock.ExpectationsWereMet())
		db.Close()
	})
	return NewStore(db, rdb), sqlMock, mr
}

func TestStore_OrderLines(t *testing.T) {
	store, sqlMock, _ := setupStore(t)

	sqlMock.ExpectQuery("SELECT dish_id, quantity FROM order_items WHERE order_id = \\$1 AND dish_id IS NOT NULL").
		WithArgs(orderID).
		WillReturnRows(sqlmock.NewRows([]string{"dish_id", "quantity"}).
			AddRow(1, 2).
			AddRow(4, 1))

	lines, err := store.OrderLines(orderID)

	require.NoError(t, err)
	assert.Equal(t, []domain.OrderLine{{DishID: 1, Quantity: 2}, {DishID: 4, Quantity: 1}}, lines)
}

func TestStore_OrderLines_QueryError(t *testing.T) {
	store, sqlMock, _ := setupStore(t)

	sqlMock.ExpectQuery("SELECT dish_id, quantity FROM order_items").
		WithArgs(orderID).
		WillReturnError(errors.New("connection reset"))

	_, err := store.OrderLines(orderID)
	assert.EqualError(t, err, "connection reset")
}

func TestStore_MarkCounted(t *testing.T) {
	store, _, mr := setupStore(t)
	ctx := context.Background()

	first, err := store.MarkCounted(ctx, orderID)
	require.NoError(t, err)
	assert.True(t, first)

	again, err := store.MarkCounted(ctx, orderID)
	require.NoError(t, err)
	assert.False(t, again)

	assert.Equal(t, 7*24*time.Hour, mr.TTL(countedPrefix+orderID))
}

func TestStore_IncrementDailyAndTopDaily(t *testing.T) {
	store, _, mr := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.IncrementDaily(ctx, "2026-03-02", []domain.OrderLine{
		{DishID: 1, Quantity: 2},
		{DishID: 4, Quantity: 1},
	}))
	require.NoError(t, store.IncrementDaily(ctx, "2026-03-02", []domain.OrderLine{
		{DishID: 4, Quantity: 3},
	}))

	assert.Equal(t, 7*24*time.Hour, mr.TTL(DailyKey("2026-03-02")))

	top, err := store.TopDaily(ctx, "2026-03-02", 10)
	require.NoError(t, err)
	assert.Equal(t, []domain.DishPopularity{
		{DishID: 4, Quantity: 4},
		{DishID: 1, Quantity: 2},
	}, top)

	limited, err := store.TopDaily(ctx, "2026-03-02", 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	empty, err := store.TopDaily(ctx, "2026-03-03", 10)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestStore_TopDaily_BadMember(t *testing.T) {
	store, _, mr := setupStore(t)

	_, err := mr.ZAdd(DailyKey("2026-03-02"), 3, "burger")
	require.NoError(t, err)

	_, err = store.TopDaily(context.Background(), "2026-03-02", 10)
	assert.ErrorContains(t, err, "bad member")
}

func TestStore_DishNames(t *testing.T) {
	store, sqlMock, _ := setupStore(t)

	sqlMock.ExpectQuery("SELECT id, name FROM dishes WHERE id = ANY\\(\\$1\\)").
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(4, "Burger"))

	names, err := store.DishNames([]int{4, 9})

	require.NoError(t, err)
	assert.Equal(t, map[int]string{4: "Burger"}, names)
}

func TestStore_DishNames_Empty(t *testing.T) {
	store, _, _ := setupStore(t)

	names, err := store.DishNames(nil)

	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestStore_TopDailyFromDB(t *testing.T) {
	store, sqlMock, _ := setupStore(t)
	from := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 1)

	sqlMock.ExpectQuery("SELECT d.id, d.name, SUM\\(oi.quantity\\) AS quantity FROM order_items oi").
		WithArgs(from, to, 10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "quantity"}).
			AddRow(4, "Burger", 5).
			AddRow(1, "Salade", 2))

	top, err := store.TopDailyFromDB(from, to, 10)

	require.NoError(t, err)
	assert.Equal(t, []domain.DishPopularity{
		{DishID: 4, DishName: "Burger", Quantity: 5},
		{DishID: 1, DishName: "Salade", Quantity: 2},
	}, top)
}

func TestStore_TopDailyFromDB_NoOrders(t *testing.T) {
	store, sqlMock, _ := setupStore(t)

	sqlMock.ExpectQuery("SELECT d.id, d.name").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "quantity"}))

	top, err := store.TopDailyFromDB(time.Now(), time.Now(), 10)

	require.NoError(t, err)
	assert.NotNil(t, top)
	assert.Empty(t, top)
}
