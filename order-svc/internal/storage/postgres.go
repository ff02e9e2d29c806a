package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"tableside/order-svc/internal/domain"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const orderColumns = `id, table_number, status, total_price, COALESCE(customer_message, ''),
	COALESCE(additional_message, ''), is_paid, is_archived, created_at, updated_at`

type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(row rowScanner) (domain.Order, error) {
	var order domain.Order
	err := row.Scan(&order.ID, &order.TableNumber, &order.Status, &order.TotalPrice, &order.CustomerMessage,
		&order.AdditionalMessage, &order.IsPaid, &order.IsArchived, &order.CreatedAt, &order.UpdatedAt)
	return order, err
}

// CreateOrder prices every line from the dishes table and writes the order
// with its items in one transaction. Nothing is visible unless all of it is.
func (r *PostgresRepository) CreateOrder(req domain.CreateOrderRequest) (*domain.Order, error) {
	tx, err := r.DB.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	ids := make([]int64, 0, len(req.Items))
	seen := make(map[int]bool, len(req.Items))
	for _, item := range req.Items {
		if !seen[item.DishID] {
			seen[item.DishID] = true
			ids = append(ids, int64(item.DishID))
		}
	}

	rows, err := tx.Query(`
		SELECT id, name, price_eur, is_available
		FROM dishes
		WHERE id = ANY($1)
		FOR SHARE`, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	dishes := make(map[int]domain.Dish, len(ids))
	for rows.Next() {
		var dish domain.Dish
		if err := rows.Scan(&dish.ID, &dish.Name, &dish.PriceEUR, &dish.IsAvailable); err != nil {
			rows.Close()
			return nil, err
		}
		dishes[dish.ID] = dish
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	order := &domain.Order{
		ID:              uuid.NewString(),
		TableNumber:     req.TableNumber,
		Status:          domain.StatusPending,
		CustomerMessage: req.CustomerMessage,
		Items:           make([]domain.OrderItem, 0, len(req.Items)),
	}
	for _, line := range req.Items {
		dish, ok := dishes[line.DishID]
		if !ok {
			return nil, domain.NewValidationError("items", fmt.Sprintf("dish %d does not exist", line.DishID))
		}
		if !dish.IsAvailable {
			return nil, domain.NewValidationError("items", fmt.Sprintf("%s is not available", dish.Name))
		}
		dishID := dish.ID
		order.Items = append(order.Items, domain.OrderItem{
			OrderID:   order.ID,
			DishID:    &dishID,
			DishName:  dish.Name,
			UnitPrice: dish.PriceEUR,
			Quantity:  line.Quantity,
			Notes:     line.Notes,
		})
	}
	order.TotalPrice = domain.ComputeTotal(order.Items)

	if err := tx.QueryRow(`
		INSERT INTO orders (id, table_number, status, total_price, customer_message)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''))
		RETURNING created_at, updated_at
	`, order.ID, order.TableNumber, order.Status, order.TotalPrice, order.CustomerMessage).
		Scan(&order.CreatedAt, &order.UpdatedAt); err != nil {
		return nil, err
	}

	for i := range order.Items {
		item := &order.Items[i]
		if err := tx.QueryRow(`
			INSERT INTO order_items (order_id, dish_id, quantity, unit_price_eur, notes)
			VALUES ($1, $2, $3, $4, NULLIF($5, ''))
			RETURNING id
		`, order.ID, *item.DishID, item.Quantity, item.UnitPrice, item.Notes).Scan(&item.ID); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *PostgresRepository) GetOrder(id string) (*domain.Order, error) {
	order, err := scanOrder(r.DB.QueryRow(`SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	orders := []domain.Order{order}
	if err := r.attachItems(orders); err != nil {
		return nil, err
	}
	return &orders[0], nil
}

// ListOrdersByStatus returns non-archived orders in the given statuses,
// oldest first unless newestFirst is set. A limit <= 0 means no limit.
func (r *PostgresRepository) ListOrdersByStatus(statuses []domain.Status, newestFirst bool, limit int) ([]domain.Order, error) {
	direction := "ASC"
	if newestFirst {
		direction = "DESC"
	}
	query := `SELECT ` + orderColumns + `
		FROM orders
		WHERE status = ANY($1) AND is_archived = FALSE
		ORDER BY created_at ` + direction
	args := []interface{}{pq.Array(domain.StatusStrings(statuses))}
	if limit > 0 {
		query += " LIMIT $2"
		args = append(args, limit)
	}
	return r.queryOrders(query, args...)
}

// ListOrdersCreatedBetween covers [from, to) and skips archived rows.
func (r *PostgresRepository) ListOrdersCreatedBetween(from, to time.Time) ([]domain.Order, error) {
	return r.queryOrders(`SELECT `+orderColumns+`
		FROM orders
		WHERE created_at >= $1 AND created_at < $2 AND is_archived = FALSE
		ORDER BY created_at DESC`, from, to)
}

func (r *PostgresRepository) queryOrders(query string, args ...interface{}) ([]domain.Order, error) {
	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.attachItems(orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// attachItems loads the lines of all given orders with one query. Deleted
// dishes come back with a nil DishID and an empty name.
func (r *PostgresRepository) attachItems(orders []domain.Order) error {
	if len(orders) == 0 {
		return nil
	}
	ids := make([]string, len(orders))
	index := make(map[string]int, len(orders))
	for i := range orders {
		ids[i] = orders[i].ID
		index[orders[i].ID] = i
		orders[i].Items = []domain.OrderItem{}
	}

	rows, err := r.DB.Query(`
		SELECT oi.id, oi.order_id, oi.dish_id, COALESCE(d.name, ''), oi.unit_price_eur, oi.quantity, COALESCE(oi.notes, '')
		FROM order_items oi
		LEFT JOIN dishes d ON d.id = oi.dish_id
		WHERE oi.order_id = ANY($1::uuid[])
		ORDER BY oi.id`, pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.OrderItem
		var dishID sql.NullInt64
		if err := rows.Scan(&item.ID, &item.OrderID, &dishID, &item.DishName, &item.UnitPrice, &item.Quantity, &item.Notes); err != nil {
			return err
		}
		if dishID.Valid {
			id := int(dishID.Int64)
			item.DishID = &id
		}
		if i, ok := index[item.OrderID]; ok {
			orders[i].Items = append(orders[i].Items, item)
		}
	}
	return rows.Err()
}

// UpdateStatus only applies when the row is still in the expected status.
func (r *PostgresRepository) UpdateStatus(id string, from, to domain.Status) (int64, error) {
	result, err := r.DB.Exec(`
		UPDATE orders SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status = $3`, to, id, from)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *PostgresRepository) MarkPaid(id string) (int64, error) {
	result, err := r.DB.Exec(`
		UPDATE orders SET is_paid = TRUE, updated_at = NOW()
		WHERE id = $1 AND status = $2`, id, domain.StatusCompleted)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *PostgresRepository) SetAdditionalMessage(id, message string, allowed []domain.Status) (int64, error) {
	result, err := r.DB.Exec(`
		UPDATE orders SET additional_message = $1, updated_at = NOW()
		WHERE id = $2 AND status = ANY($3)`, message, id, pq.Array(domain.StatusStrings(allowed)))
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *PostgresRepository) ArchiveCompleted() (int64, error) {
	return r.archiveWhere("status = $1", domain.StatusCompleted)
}

func (r *PostgresRepository) ArchivePaid() (int64, error) {
	return r.archiveWhere("is_paid = $1", true)
}

func (r *PostgresRepository) archiveWhere(predicate string, arg interface{}) (int64, error) {
	result, err := r.DB.Exec(`
		UPDATE orders SET is_archived = TRUE, updated_at = NOW()
		WHERE `+predicate+` AND is_archived = FALSE`, arg)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
