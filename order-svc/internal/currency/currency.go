// Package currency converts between the canonical EUR prices and the
// restaurant's display currency. Amounts are kept unrounded; only Money's
// formatting rounds to two decimals.
package currency

import (
	"encoding/json"
	"fmt"

	"tableside/order-svc/internal/domain"

	"github.com/shopspring/decimal"
)

var symbols = map[domain.Currency]string{
	domain.CurrencyEUR: "€",
	domain.CurrencyDJF: "Fdj",
	domain.CurrencyUSD: "$",
}

type Money struct {
	Amount   float64         `json:"amount"`
	Currency domain.Currency `json:"currency"`
	Symbol   string          `json:"symbol"`
}

// Rounded is the presentation value, half away from zero.
func (m Money) Rounded() decimal.Decimal {
	return decimal.NewFromFloat(m.Amount).Round(2)
}

func (m Money) String() string {
	return m.Rounded().StringFixed(2) + " " + m.Symbol
}

func (m Money) MarshalJSON() ([]byte, error) {
	rounded, _ := m.Rounded().Float64()
	return json.Marshal(struct {
		Amount   float64         `json:"amount"`
		Currency domain.Currency `json:"currency"`
		Symbol   string          `json:"symbol"`
		Display  string          `json:"display"`
	}{rounded, m.Currency, m.Symbol, m.String()})
}

func Symbol(c domain.Currency) string {
	if s, ok := symbols[c]; ok {
		return s
	}
	return symbols[domain.CurrencyEUR]
}

// Rate returns the multiplier applied to EUR amounts for the configured
// display currency. Missing settings or an unknown currency map to EUR.
func Rate(settings *domain.RestaurantSettings) (domain.Currency, float64) {
	if settings == nil {
		return domain.CurrencyEUR, 1
	}
	switch settings.Currency {
	case domain.CurrencyDJF:
		return domain.CurrencyDJF, settings.EURToDJF
	case domain.CurrencyUSD:
		return domain.CurrencyUSD, settings.EURToUSD
	default:
		return domain.CurrencyEUR, 1
	}
}

func FromEUR(amountEUR float64, settings *domain.RestaurantSettings) Money {
	code, rate := Rate(settings)
	amount := decimal.NewFromFloat(amountEUR).Mul(decimal.NewFromFloat(rate))
	f, _ := amount.Float64()
	return Money{Amount: f, Currency: code, Symbol: Symbol(code)}
}

// ToEUR converts a price typed in the display currency back to EUR using
// the same rate FromEUR would use for these settings.
func ToEUR(amount float64, settings *domain.RestaurantSettings) (float64, error) {
	code, rate := Rate(settings)
	if rate <= 0 {
		return 0, fmt.Errorf("conversion rate for %s must be positive, got %v", code, rate)
	}
	eur := decimal.NewFromFloat(amount).Div(decimal.NewFromFloat(rate))
	f, _ := eur.Float64()
	return f, nil
}
