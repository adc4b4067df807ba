package database

import (
	"fmt"
	"log"
	"time"

	"transaction-analytics/internal/config"
	"transaction-analytics/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type DB struct {
	*gorm.DB
	config *config.DatabaseConfig
}

func New(cfg *config.DatabaseConfig) (*DB, error) {
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxConnections)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{
		DB:     db,
		config: cfg,
	}, nil
}

func (db *DB) AutoMigrate() error {
	return db.DB.AutoMigrate(
		&models.User{},
		&models.Account{},
		&models.Card{},
		&models.Transaction{},
	)
}

func (db *DB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (db *DB) HealthCheck() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func (db *DB) Transaction(fn func(*gorm.DB) error) error {
	return db.DB.Transaction(fn)
}

// CreateIndexes adds the indexes the analytics queries lean on. Index
// failures are logged and skipped so startup is never blocked.
func (db *DB) CreateIndexes() error {
	queries := []string{
		"CREATE INDEX IF NOT EXISTS idx_users_email ON users(email)",
		"CREATE INDEX IF NOT EXISTS idx_users_role ON users(role)",
		"CREATE INDEX IF NOT EXISTS idx_users_deleted_at ON users(deleted_at) WHERE deleted_at IS NULL",
		// Account indexes
		"CREATE INDEX IF NOT EXISTS idx_accounts_user_id ON accounts(user_id)",
		"CREATE INDEX IF NOT EXISTS idx_accounts_account_type ON accounts(account_type)",
		"CREATE INDEX IF NOT EXISTS idx_accounts_status ON accounts(status)",
		"CREATE INDEX IF NOT EXISTS idx_accounts_deleted_at ON accounts(deleted_at) WHERE deleted_at IS NULL",
		// Card indexes
		"CREATE INDEX IF NOT EXISTS idx_cards_user_id ON cards(user_id)",
		"CREATE INDEX IF NOT EXISTS idx_cards_account_id ON cards(account_id)",
		"CREATE INDEX IF NOT EXISTS idx_cards_status ON cards(status)",
		// Transaction indexes, the date range scan plus the filterable dimensions
		"CREATE INDEX IF NOT EXISTS idx_transactions_transaction_date ON transactions(transaction_date)",
		"CREATE INDEX IF NOT EXISTS idx_transactions_transaction_type ON transactions(transaction_type)",
		"CREATE INDEX IF NOT EXISTS idx_transactions_category ON transactions(category)",
		"CREATE INDEX IF NOT EXISTS idx_transactions_merchant_name ON transactions(merchant_name)",
		"CREATE INDEX IF NOT EXISTS idx_transactions_source ON transactions(source)",
		"CREATE INDEX IF NOT EXISTS idx_transactions_from_account_id ON transactions(from_account_id) WHERE from_account_id IS NOT NULL",
		"CREATE INDEX IF NOT EXISTS idx_transactions_to_account_id ON transactions(to_account_id) WHERE to_account_id IS NOT NULL",
		"CREATE INDEX IF NOT EXISTS idx_transactions_card_id ON transactions(card_id) WHERE card_id IS NOT NULL",
	}

	for _, query := range queries {
		if err := db.DB.Exec(query).Error; err != nil {
			log.Printf("Failed to create index: %s, error: %v", query, err)
		}
	}

	return nil
}

// Initialize opens the connection and brings the schema up to date,
// preferring versioned SQL migrations with AutoMigrate as the fallback.
func Initialize(cfg *config.Config) (*gorm.DB, error) {
	db, err := New(&cfg.Database)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	if err := RunMigrationsIfEnabled(sqlDB); err != nil {
		log.Printf("Warning: migration runner failed: %v", err)
		log.Println("Falling back to GORM AutoMigrate...")

		if err := db.AutoMigrate(); err != nil {
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	if err := db.CreateIndexes(); err != nil {
		log.Printf("Warning: failed to create some indexes: %v", err)
	}

	log.Println("Database initialized successfully")

	return db.DB, nil
}
