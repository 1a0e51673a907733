// Package migrations embeds the SQL schema and applies it with golang-migrate.
// GORM AutoMigrate is not used: the schema (checks, partial uniqueness,
// decimal precision) is owned by these files.
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"net/http"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/httpfs"
	"github.com/rs/zerolog/log"
)

//go:embed *.sql
var archivos embed.FS

type embedFSDriver struct {
	httpfs.PartialDriver
}

func init() {
	source.Register("embed", &embedFSDriver{})
}

func (d *embedFSDriver) Open(_ string) (source.Driver, error) {
	if err := d.PartialDriver.Init(http.FS(archivos), "."); err != nil {
		return nil, err
	}
	return d, nil
}

// Up applies every pending migration on sqlDB. The connection is borrowed
// from the caller (the gorm pool) and stays open.
func Up(sqlDB *sql.DB) error {
	d, err := postgres.WithInstance(sqlDB, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("create driver: %w", err)
	}
	m, err := migrate.NewWithDatabaseInstance("embed://", "postgres", d)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	err = m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		log.Info().Msg("migrations: schema up to date")
		return nil
	}
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	v, _, _ := m.Version()
	log.Info().Uint("version", v).Msg("migrations: applied")
	return nil
}
