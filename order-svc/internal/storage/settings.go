package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"tableside/order-svc/internal/domain"
)

const settingsID = 1

var ErrSettingsMissing = errors.New("restaurant settings row is missing")

func (r *PostgresRepository) GetSettings() (*domain.RestaurantSettings, error) {
	var s domain.RestaurantSettings
	err := r.DB.QueryRow(`
		SELECT id, restaurant_name, currency, eur_to_djf, eur_to_usd, admin_pin_hash, security_pin_hash, updated_at
		FROM restaurant_settings
		WHERE id = $1`, settingsID).
		Scan(&s.ID, &s.Name, &s.Currency, &s.EURToDJF, &s.EURToUSD, &s.AdminPINHash, &s.SecurityPINHash, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSettingsMissing
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *PostgresRepository) UpdateSettings(s *domain.RestaurantSettings) error {
	return r.DB.QueryRow(`
		UPDATE restaurant_settings
		SET restaurant_name = $1, currency = $2, eur_to_djf = $3, eur_to_usd = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING updated_at`,
		s.Name, s.Currency, s.EURToDJF, s.EURToUSD, settingsID).Scan(&s.UpdatedAt)
}

func (r *PostgresRepository) UpdatePINHash(kind domain.PINKind, hash string) error {
	var column string
	switch kind {
	case domain.PINAdmin:
		column = "admin_pin_hash"
	case domain.PINSecurity:
		column = "security_pin_hash"
	default:
		return fmt.Errorf("unknown PIN kind %q", kind)
	}
	_, err := r.DB.Exec("UPDATE restaurant_settings SET "+column+" = $1, updated_at = NOW() WHERE id = $2", hash, settingsID)
	return err
}

// SeedSettings inserts the singleton row on first start and is a no-op
// afterwards, so PINs changed through the admin panel survive restarts.
func (r *PostgresRepository) SeedSettings(s *domain.RestaurantSettings) error {
	_, err := r.DB.Exec(`
		INSERT INTO restaurant_settings (id, restaurant_name, currency, eur_to_djf, eur_to_usd, admin_pin_hash, security_pin_hash)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO NOTHING`,
		settingsID, s.Name, s.Currency, s.EURToDJF, s.EURToUSD, s.AdminPINHash, s.SecurityPINHash)
	return err
}
