package db

import (
	"errors"
	"fmt"

	"github.com/firstlight/backend/migrations"

	"github.com/golang-migrate/migrate/v4"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
)

// Migrate applies every pending migration embedded in the binary.
func Migrate(dbConn *sqlx.DB, dbName string) error {
	src, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("open migrations source failed: %w", err)
	}

	driver, err := migratemysql.WithInstance(dbConn.DB, &migratemysql.Config{DatabaseName: dbName})
	if err != nil {
		return fmt.Errorf("create migrate driver failed: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "mysql", driver)
	if err != nil {
		return fmt.Errorf("create migrator failed: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations failed: %w", err)
	}

	return nil
}
