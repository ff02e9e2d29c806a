package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Currency string

const (
	CurrencyEUR Currency = "EUR"
	CurrencyDJF Currency = "DJF"
	CurrencyUSD Currency = "USD"
)

func (c Currency) Valid() bool {
	switch c {
	case CurrencyEUR, CurrencyDJF, CurrencyUSD:
		return true
	}
	return false
}

type PINKind string

const (
	PINAdmin    PINKind = "admin"
	PINSecurity PINKind = "security"
)

const (
	UnknownDish     = "Unknown dish"
	UnknownCategory = "Unknown category"
)

// RestaurantSettings is the singleton configuration row. Prices are always
// stored in EUR; the rates map EUR to the other display currencies.
type RestaurantSettings struct {
	ID              int       `json:"id"`
	Name            string    `json:"restaurant_name"`
	Currency        Currency  `json:"currency"`
	EURToDJF        float64   `json:"eur_to_djf"`
	EURToUSD        float64   `json:"eur_to_usd"`
	AdminPINHash    string    `json:"-"`
	SecurityPINHash string    `json:"-"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type Category struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	DisplayOrder int       `json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
}

type Dish struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	PriceEUR     float64   `json:"price_eur"`
	CategoryID   *int      `json:"category_id"`
	CategoryName string    `json:"category_name"`
	ImageURL     string    `json:"image_url"`
	IsAvailable  bool      `json:"is_available"`
	CreatedAt    time.Time `json:"created_at"`
}

// CategoryLabel tolerates a dish whose category was deleted.
func (d Dish) CategoryLabel() string {
	if d.CategoryID == nil || d.CategoryName == "" {
		return UnknownCategory
	}
	return d.CategoryName
}

type Order struct {
	ID                string      `json:"id"`
	TableNumber       string      `json:"table_number"`
	Status            Status      `json:"status"`
	TotalPrice        float64     `json:"total_price"`
	CustomerMessage   string      `json:"customer_message,omitempty"`
	AdditionalMessage string      `json:"additional_message,omitempty"`
	IsPaid            bool        `json:"is_paid"`
	IsArchived        bool        `json:"is_archived"`
	CreatedAt         time.Time   `json:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at"`
	Items             []OrderItem `json:"items"`
}

// ShortID is the ticket number printed on kitchen and caisse cards.
func (o Order) ShortID() string {
	id := o.ID
	if len(id) > 8 {
		id = id[:8]
	}
	return strings.ToUpper(id)
}

// OrderItem keeps the unit price the dish had when the order was placed.
// DishID becomes nil once the dish is deleted from the menu.
type OrderItem struct {
	ID        int     `json:"id"`
	OrderID   string  `json:"order_id"`
	DishID    *int    `json:"dish_id"`
	DishName  string  `json:"dish_name"`
	UnitPrice float64 `json:"unit_price_eur"`
	Quantity  int     `json:"quantity"`
	Notes     string  `json:"notes,omitempty"`
}

func (i OrderItem) DisplayName() string {
	if i.DishID == nil || i.DishName == "" {
		return UnknownDish
	}
	return i.DishName
}

// ItemRequest is one cart line as submitted by a guest.
type ItemRequest struct {
	DishID   int    `json:"dish_id"`
	Quantity int    `json:"quantity"`
	Notes    string `json:"notes"`
}

type CreateOrderRequest struct {
	TableNumber     string        `json:"table_number"`
	Items           []ItemRequest `json:"items"`
	CustomerMessage string        `json:"customer_message"`
}

// ComputeTotal sums unit price times quantity without float drift.
func ComputeTotal(items []OrderItem) float64 {
	total := decimal.Zero
	for _, item := range items {
		line := decimal.NewFromFloat(item.UnitPrice).Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(line)
	}
	f, _ := total.Float64()
	return f
}
