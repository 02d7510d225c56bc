// Package migrations embeds the SQL schema and applies it with
// golang-migrate over the modernc sqlite driver.
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed files/*.sql
var files embed.FS

// Up brings the database schema to the latest version. Running against an
// up-to-date database is a no-op.
func Up(db *sql.DB) error {
	src, err := iofs.New(files, "files")
	if err != nil {
		return fmt.Errorf("reading migration files: %w", err)
	}

	driver, err := sqlite.WithInstance(db, &sqlite.Config{})
	if err != nil {
		src.Close()
		return fmt.Errorf("preparing migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		src.Close()
		return fmt.Errorf("preparing migrations: %w", err)
	}
	// Closing m would close the caller-owned db connection, so don't.

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("applying migrations: %w", err)
	}
	return nil
}
