package database

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

const migrationsDir = "db/migrations"

var (
	readinessAttempts = 30
	readinessInterval = 2 * time.Second
)

// Migrator applies the versioned SQL migrations under db/migrations.
// Schema changes beyond what gorm's AutoMigrate can express (check
// constraints, partial indexes) live in the SQL files.
type Migrator struct {
	db  *sql.DB
	dir string
}

func NewMigrator(db *sql.DB) *Migrator {
	return &Migrator{db: db, dir: migrationsDir}
}

// WaitForDatabase blocks until the database answers pings or the
// retries are exhausted. Containerized deployments start the service
// before Postgres finishes booting.
func (m *Migrator) WaitForDatabase() error {
	for attempt := 1; attempt <= readinessAttempts; attempt++ {
		err := m.db.Ping()
		if err == nil {
			return nil
		}
		log.Printf("Database not ready (attempt %d/%d): %v", attempt, readinessAttempts, err)
		time.Sleep(readinessInterval)
	}
	return fmt.Errorf("database not ready after %d attempts", readinessAttempts)
}

// Up applies all pending migrations. A missing migrations directory is
// not an error; schema management then falls to AutoMigrate.
func (m *Migrator) Up() error {
	if _, err := os.Stat(m.dir); os.IsNotExist(err) {
		log.Printf("Migrations directory %s not found, skipping", m.dir)
		return nil
	}

	instance, err := m.instance()
	if err != nil {
		return err
	}

	version, dirty, err := instance.Version()
	if err != nil && err != migrate.ErrNilVersion {
		return fmt.Errorf("failed to read migration version: %w", err)
	}
	if dirty {
		// A previous run died mid-migration; pin the version so Up can proceed.
		log.Printf("Database dirty at version %d, forcing version", version)
		if err := instance.Force(int(version)); err != nil {
			return fmt.Errorf("failed to force migration version: %w", err)
		}
	}

	err = instance.Up()
	switch {
	case err == migrate.ErrNoChange:
		log.Println("No new migrations to apply")
	case err != nil:
		return fmt.Errorf("migration failed: %w", err)
	default:
		newVersion, _, _ := instance.Version()
		log.Printf("Migrations applied, now at version %d", newVersion)
	}
	return nil
}

// Version reports the current migration version and dirty flag.
func (m *Migrator) Version() (uint, bool, error) {
	if _, err := os.Stat(m.dir); os.IsNotExist(err) {
		return 0, false, fmt.Errorf("migrations directory not found")
	}

	instance, err := m.instance()
	if err != nil {
		return 0, false, err
	}
	return instance.Version()
}

func (m *Migrator) instance() (*migrate.Migrate, error) {
	absDir, err := filepath.Abs(m.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve migrations path: %w", err)
	}

	driver, err := postgres.WithInstance(m.db, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres driver: %w", err)
	}

	instance, err := migrate.NewWithDatabaseInstance("file://"+absDir, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migration instance: %w", err)
	}
	return instance, nil
}

// RunMigrationsIfEnabled runs the migrator when AUTO_MIGRATE=true.
func RunMigrationsIfEnabled(db *sql.DB) error {
	if os.Getenv("AUTO_MIGRATE") != "true" {
		log.Println("Auto-migration disabled (AUTO_MIGRATE != true)")
		return nil
	}

	migrator := NewMigrator(db)

	if err := migrator.WaitForDatabase(); err != nil {
		return fmt.Errorf("database readiness check failed: %w", err)
	}
	if err := migrator.Up(); err != nil {
		return fmt.Errorf("migration execution failed: %w", err)
	}

	if version, dirty, err := migrator.Version(); err == nil {
		log.Printf("Migration status - version %d, dirty %v", version, dirty)
	}
	return nil
}
