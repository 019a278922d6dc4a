package migration

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/smallbiznis/roommanager/internal/config"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:embed migrations/*.sql
var embedded embed.FS

// Files is the customer_offers migration set.
func Files() (fs.FS, error) {
	return fs.Sub(embedded, "migrations")
}

// Apply brings the customer_offers schema up to date. Only postgres is migrated;
// other dialects are expected to be provisioned out of band.
func Apply(conn *gorm.DB, cfg config.Config, log *zap.Logger) error {
	log = log.Named("migration")
	if !cfg.DBMigrate || cfg.DBType != "postgres" {
		log.Info("skipped", zap.String("db_type", cfg.DBType), zap.Bool("enabled", cfg.DBMigrate))
		return nil
	}
	sqlDB, err := conn.DB()
	if err != nil {
		return err
	}
	version, err := Up(sqlDB)
	if err != nil {
		return err
	}
	log.Info("schema up to date", zap.Uint("version", version))
	return nil
}

// Up applies pending migrations and reports the resulting version. The migrator is
// not closed since that would close db.
func Up(db *sql.DB) (uint, error) {
	if db == nil {
		return 0, errors.New("migration: nil database handle")
	}
	files, err := Files()
	if err != nil {
		return 0, err
	}
	src, err := iofs.New(files, ".")
	if err != nil {
		return 0, fmt.Errorf("migration source: %w", err)
	}
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return 0, fmt.Errorf("migration driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		return 0, err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return 0, fmt.Errorf("migrate up: %w", err)
	}
	version, _, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return 0, err
	}
	return version, nil
}
