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

func TestGetSettings(t *testing.T) {
	repo, mock := setupRepository(t)
	now := time.Now()

	mock.ExpectQuery("FROM restaurant_settings").
		WithArgs(settingsID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "restaurant_name", "currency", "eur_to_djf",
			"eur_to_usd", "admin_pin_hash", "security_pin_hash", "updated_at"}).
			AddRow(1, "Chez Nous", "DJF", 198.5, 1.08, "a-hash", "s-hash", now))

	settings, err := repo.GetSettings()

	require.NoError(t, err)
	assert.Equal(t, "Chez Nous", settings.Name)
	assert.Equal(t, domain.CurrencyDJF, settings.Currency)
	assert.Equal(t, 198.5, settings.EURToDJF)
	assert.Equal(t, "s-hash", settings.SecurityPINHash)
}

func TestGetSettings_Missing(t *testing.T) {
	repo, mock := setupRepository(t)

	mock.ExpectQuery("FROM restaurant_settings").WillReturnError(sql.ErrNoRows)

	_, err := repo.GetSettings()

	assert.ErrorIs(t, err, ErrSettingsMissing)
}

func TestUpdatePINHash(t *testing.T) {
	repo, mock := setupRepository(t)

	mock.ExpectExec("UPDATE restaurant_settings SET security_pin_hash").
		WithArgs("new-hash", settingsID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdatePINHash(domain.PINSecurity, "new-hash"))
	assert.Error(t, repo.UpdatePINHash(domain.PINKind("root"), "x"))
}

func TestSeedSettings_KeepsExistingRow(t *testing.T) {
	repo, mock := setupRepository(t)

	mock.ExpectExec(`ON CONFLICT \(id\) DO NOTHING`).
		WithArgs(settingsID, "Chez Nous", domain.CurrencyEUR, 200.0, 1.1, "a", "s").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SeedSettings(&domain.RestaurantSettings{
		Name: "Chez Nous", Currency: domain.CurrencyEUR, EURToDJF: 200, EURToUSD: 1.1,
		AdminPINHash: "a", SecurityPINHash: "s",
	})

	assert.NoError(t, err)
}
