package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"tableside/analytics-svc/internal/domain"

	"github.com/lib/pq"
	"github.com/redis/go-redis/v9"
)

const (
	dailyRetention = 7 * 24 * time.Hour
	countedPrefix  = "analytics:counted:"
)

func DailyKey(date string) string {
	return "analytics:daily:" + date
}

type Store struct {
	db  *sql.DB
	rdb *redis.Client
}

func NewStore(db *sql.DB, rdb *redis.Client) *Store {
	return &Store{db: db, rdb: rdb}
}

// OrderLines returns the items of an order whose dish still exists.
func (s *Store) OrderLines(orderID string) ([]domain.OrderLine, error) {
	rows, err := s.db.Query(`
		SELECT dish_id, quantity
		FROM order_items
		WHERE order_id = $1 AND dish_id IS NOT NULL
		ORDER BY id
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []domain.OrderLine
	for rows.Next() {
		var l domain.OrderLine
		if err := rows.Scan(&l.DishID, &l.Quantity); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

// MarkCounted reports whether this is the first time orderID is seen. Kafka
// delivers at least once, so a replayed insert must not count twice.
func (s *Store) MarkCounted(ctx context.Context, orderID string) (bool, error) {
	return s.rdb.SetNX(ctx, countedPrefix+orderID, 1, dailyRetention).Result()
}

func (s *Store) IncrementDaily(ctx context.Context, date string, lines []domain.OrderLine) error {
	key := DailyKey(date)
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, l := range lines {
			pipe.ZIncrBy(ctx, key, float64(l.Quantity), strconv.Itoa(l.DishID))
		}
		pipe.Expire(ctx, key, dailyRetention)
		return nil
	})
	return err
}

// TopDaily reads the counters for date, best first. Names are left empty.
func (s *Store) TopDaily(ctx context.Context, date string, limit int) ([]domain.DishPopularity, error) {
	result, err := s.rdb.ZRevRangeWithScores(ctx, DailyKey(date), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	top := make([]domain.DishPopularity, 0, len(result))
	for _, z := range result {
		member, _ := z.Member.(string)
		dishID, err := strconv.Atoi(member)
		if err != nil {
			return nil, fmt.Errorf("bad member %q in %s: %w", member, DailyKey(date), err)
		}
		top = append(top, domain.DishPopularity{DishID: dishID, Quantity: int64(z.Score)})
	}
	return top, nil
}

func (s *Store) DishNames(ids []int) (map[int]string, error) {
	names := make(map[int]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	keys := make([]int64, len(ids))
	for i, id := range ids {
		keys[i] = int64(id)
	}

	rows, err := s.db.Query("SELECT id, name FROM dishes WHERE id = ANY($1)", pq.Array(keys))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id int
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		names[id] = name
	}
	return names, rows.Err()
}

// TopDailyFromDB aggregates ordered quantities for orders created in
// [from, to). Deleted dishes are left out.
func (s *Store) TopDailyFromDB(from, to time.Time, limit int) ([]domain.DishPopularity, error) {
	rows, err := s.db.Query(`
		SELECT d.id, d.name, SUM(oi.quantity) AS quantity
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		JOIN dishes d ON d.id = oi.dish_id
		WHERE o.created_at >= $1 AND o.created_at < $2
		GROUP BY d.id, d.name
		ORDER BY quantity DESC, d.id
		LIMIT $3
	`, from, to, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	top := []domain.DishPopularity{}
	for rows.Next() {
		var d domain.DishPopularity
		if err := rows.Scan(&d.DishID, &d.DishName, &d.Quantity); err != nil {
			return nil, err
		}
		top = append(top, d)
	}
	return top, rows.Err()
}
