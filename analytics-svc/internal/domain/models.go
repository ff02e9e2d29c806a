package domain

import "time"

const (
	TableOrders = "orders"
	OpInsert    = "INSERT"

	// UnknownDish labels counted dishes that were deleted since.
	UnknownDish = "Unknown dish"

	SourceCache    = "cache"
	SourceDatabase = "database"
)

// OrderChange is the message order-svc relays for every row change on the
// orders table.
type OrderChange struct {
	Table      string    `json:"table"`
	Op         string    `json:"op"`
	OrderID    string    `json:"id"`
	Status     string    `json:"status,omitempty"`
	IsPaid     bool      `json:"is_paid"`
	IsArchived bool      `json:"is_archived"`
	At         time.Time `json:"at"`
}

type OrderLine struct {
	DishID   int
	Quantity int
}

type DishPopularity struct {
	DishID   int    `json:"dish_id"`
	DishName string `json:"dish_name"`
	Quantity int64  `json:"quantity"`
}

type DailyReport struct {
	Date   string           `json:"date"`
	Source string           `json:"source"`
	Dishes []DishPopularity `json:"dishes"`
}
