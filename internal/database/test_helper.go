package database

import (
	"fmt"
	"testing"
	"time"

	"transaction-analytics/internal/config"
	"transaction-analytics/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func SetupTestDB(t *testing.T) *DB {
	t.Helper()

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	db, err := gorm.Open(sqlite.Open(":memory:"), gormConfig)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	testDB := &DB{
		DB: db,
		config: &config.DatabaseConfig{
			MaxConnections: 1,
			MaxIdleConns:   1,
		},
	}

	if err := testDB.AutoMigrate(); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return testDB
}

func CreateTestUser(t *testing.T, db *DB, email string) *models.User {
	t.Helper()

	user := &models.User{
		Email:     email,
		FirstName: "Test",
		LastName:  "User",
		Role:      models.RoleCustomer,
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}

	return user
}

func CreateTestAccount(t *testing.T, db *DB, userID uuid.UUID, accountType string) *models.Account {
	t.Helper()

	account := &models.Account{
		AccountNumber: fmt.Sprintf("%010d", time.Now().UnixNano()%1e10),
		UserID:        userID,
		AccountType:   accountType,
		Balance:       decimal.NewFromInt(1000),
		Status:        models.AccountStatusActive,
	}

	if err := db.Create(account).Error; err != nil {
		t.Fatalf("failed to create test account: %v", err)
	}

	return account
}

func CreateTestCard(t *testing.T, db *DB, userID, accountID uuid.UUID, cardType string) *models.Card {
	t.Helper()

	card := &models.Card{
		UserID:       userID,
		AccountID:    accountID,
		MaskedNumber: "**** **** **** 4242",
		CardType:     cardType,
		Status:       models.CardStatusActive,
		ExpiresAt:    time.Now().AddDate(3, 0, 0),
	}

	if err := db.Create(card).Error; err != nil {
		t.Fatalf("failed to create test card: %v", err)
	}

	return card
}

func CreateTestTransaction(t *testing.T, db *DB, txn *models.Transaction) *models.Transaction {
	t.Helper()

	if err := db.Create(txn).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}

	return txn
}

// CleanupTestDB empties every table in FK-safe order so a suite can
// reuse one in-memory database across tests.
func CleanupTestDB(t *testing.T, db *DB) {
	t.Helper()

	for _, table := range []string{"transactions", "cards", "accounts", "users"} {
		if err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)).Error; err != nil {
			t.Logf("failed to cleanup table %s: %v", table, err)
		}
	}
}
