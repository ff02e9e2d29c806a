package storage

import (
	"database/sql"
	"errors"

	"tableside/order-svc/internal/domain"
)

const dishColumns = `d.id, d.name, COALESCE(d.description, ''), d.price_eur, d.category_id,
	COALESCE(c.name, ''), COALESCE(d.image_url, ''), d.is_available, d.created_at`

func scanDish(row rowScanner) (domain.Dish, error) {
	var dish domain.Dish
	var categoryID sql.NullInt64
	err := row.Scan(&dish.ID, &dish.Name, &dish.Description, &dish.PriceEUR, &categoryID,
		&dish.CategoryName, &dish.ImageURL, &dish.IsAvailable, &dish.CreatedAt)
	if categoryID.Valid {
		id := int(categoryID.Int64)
		dish.CategoryID = &id
	}
	return dish, err
}

func (r *PostgresRepository) ListCategories() ([]domain.Category, error) {
	rows, err := r.DB.Query(`
		SELECT id, name, display_order, created_at
		FROM categories
		ORDER BY display_order, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []domain.Category{}
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.DisplayOrder, &c.CreatedAt); err != nil {
			continue
		}
		categories = append(categories, c)
	}
	return categories, nil
}

// CreateCategory appends the category after the current last one.
func (r *PostgresRepository) CreateCategory(c *domain.Category) error {
	return r.DB.QueryRow(`
		INSERT INTO categories (name, display_order)
		VALUES ($1, (SELECT COALESCE(MAX(display_order), 0) + 1 FROM categories))
		RETURNING id, display_order, created_at`, c.Name).
		Scan(&c.ID, &c.DisplayOrder, &c.CreatedAt)
}

func (r *PostgresRepository) UpdateCategory(c *domain.Category) (int64, error) {
	result, err := r.DB.Exec("UPDATE categories SET name = $1, display_order = $2 WHERE id = $3",
		c.Name, c.DisplayOrder, c.ID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// DeleteCategory leaves its dishes in place with a NULL category.
func (r *PostgresRepository) DeleteCategory(id int) (int64, error) {
	result, err := r.DB.Exec("DELETE FROM categories WHERE id = $1", id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *PostgresRepository) ListDishes(categoryID *int) ([]domain.Dish, error) {
	query := `SELECT ` + dishColumns + `
		FROM dishes d
		LEFT JOIN categories c ON c.id = d.category_id`
	var args []interface{}
	if categoryID != nil {
		query += " WHERE d.category_id = $1"
		args = append(args, *categoryID)
	}
	query += " ORDER BY d.name"

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	dishes := []domain.Dish{}
	for rows.Next() {
		dish, err := scanDish(rows)
		if err != nil {
			continue
		}
		dishes = append(dishes, dish)
	}
	return dishes, nil
}

func (r *PostgresRepository) GetDish(id int) (*domain.Dish, error) {
	dish, err := scanDish(r.DB.QueryRow(`SELECT `+dishColumns+`
		FROM dishes d
		LEFT JOIN categories c ON c.id = d.category_id
		WHERE d.id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrDishNotFound
	}
	if err != nil {
		return nil, err
	}
	return &dish, nil
}

func (r *PostgresRepository) CreateDish(dish *domain.Dish) error {
	return r.DB.QueryRow(`
		INSERT INTO dishes (name, description, price_eur, category_id, image_url, is_available)
		VALUES ($1, NULLIF($2, ''), $3, $4, NULLIF($5, ''), $6)
		RETURNING id, created_at`,
		dish.Name, dish.Description, dish.PriceEUR, dish.CategoryID, dish.ImageURL, dish.IsAvailable).
		Scan(&dish.ID, &dish.CreatedAt)
}

func (r *PostgresRepository) UpdateDish(dish *domain.Dish) (int64, error) {
	result, err := r.DB.Exec(`
		UPDATE dishes
		SET name = $1, description = NULLIF($2, ''), price_eur = $3, category_id = $4, is_available = $5
		WHERE id = $6`,
		dish.Name, dish.Description, dish.PriceEUR, dish.CategoryID, dish.IsAvailable, dish.ID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// DeleteDish keeps historical order lines; their dish_id becomes NULL.
func (r *PostgresRepository) DeleteDish(id int) (int64, error) {
	result, err := r.DB.Exec("DELETE FROM dishes WHERE id = $1", id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *PostgresRepository) UpdateDishImage(id int, imageURL string) (int64, error) {
	result, err := r.DB.Exec("UPDATE dishes SET image_url = $1 WHERE id = $2", imageURL, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
