// internal/services/helpers_test.go
package services

import (
	"errors"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/fanrewards/fanmarket-backend/internal/config"
	"github.com/fanrewards/fanmarket-backend/internal/models"
	"github.com/fanrewards/fanmarket-backend/internal/utils"
)

// setupTestDB opens a fresh in-memory database, migrates the schema and seeds
// the market settings singleton with the mint counter at zero.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A single connection keeps every query on the same in-memory database.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.PaymentToken{},
		&models.Wallet{},
		&models.Token{},
		&models.MarketSettings{},
		&models.Sale{},
		&models.FanPoints{},
	))

	require.NoError(t, db.Create(&models.MarketSettings{
		Key:         models.MarketSettingsKey,
		NextTokenID: 0,
	}).Error)

	return db
}

func testConfig() *config.Config {
	return &config.Config{
		Environment: "test",
		JWT: config.JWTConfig{
			SecretKey:       "test-secret",
			AccessTokenTTL:  1,
			RefreshTokenTTL: 24,
		},
	}
}

func createTestUser(t *testing.T, db *gorm.DB, username string, userType models.UserType) *models.User {
	t.Helper()

	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		UserType: userType,
		Status:   models.UserStatusActive,
	}
	require.NoError(t, user.SetPassword("TestPass123!"))
	require.NoError(t, db.Create(user).Error)
	return user
}

func createLedgerToken(t *testing.T, db *gorm.DB, symbol string) *models.PaymentToken {
	t.Helper()

	token := &models.PaymentToken{
		Name:     symbol + " ledger token",
		Symbol:   symbol,
		Provider: models.PaymentProviderLedger,
		IsActive: true,
	}
	require.NoError(t, db.Create(token).Error)
	return token
}

func defaultPagination() utils.PaginationParams {
	return utils.PaginationParams{Page: 1, Limit: 20, Sort: "created_at", Order: "desc"}
}

type transferCall struct {
	From   uuid.UUID
	To     uuid.UUID
	Amount int64
}

// fakeTransferor records every transfer and optionally fails from a given
// call onward.
type fakeTransferor struct {
	calls    []transferCall
	failFrom int // 1-based call number to start failing at; 0 never fails
}

func (f *fakeTransferor) TransferFrom(tx *gorm.DB, token *models.PaymentToken, from, to uuid.UUID, amount int64) error {
	f.calls = append(f.calls, transferCall{From: from, To: to, Amount: amount})
	if f.failFrom > 0 && len(f.calls) >= f.failFrom {
		return errors.New("provider rejected transfer")
	}
	return nil
}
