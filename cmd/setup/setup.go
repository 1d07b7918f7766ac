package setup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"eventfinder/internal/config"
	"eventfinder/migrations"
)

func Setup(ctx context.Context, conf *config.Config, args *config.Args) error {
	return RunMigrations(args.MigrationsDir, ConnString(conf.SQLite3Path))
}

// ConnString is the golang-migrate URL for a sqlite database file.
func ConnString(path string) string {
	return fmt.Sprintf("sqlite3://%s?x-no-tx-wrap=true", path)
}

// RunMigrations applies the migrations found in migrationsPath, or the
// embedded ones when the path is empty.
func RunMigrations(migrationsPath, dbConnectionString string) error {
	m, err := newMigrate(migrationsPath, dbConnectionString)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}

	defer func() {
		sourceErr, dbErr := m.Close()
		if sourceErr != nil {
			slog.Error("Error closing migration source", "err", sourceErr)
		}
		if dbErr != nil {
			slog.Error("Error closing migration database", "err", dbErr)
		}
	}()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			slog.Info("No migrations to apply")
			return nil
		}
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	slog.Info("Migrations applied successfully")
	return nil
}

func newMigrate(migrationsPath, dbConnectionString string) (*migrate.Migrate, error) {
	if migrationsPath == "" {
		source, err := iofs.New(migrations.FS, ".")
		if err != nil {
			return nil, err
		}
		return migrate.NewWithSourceInstance("iofs", source, dbConnectionString)
	}

	if !filepath.IsAbs(migrationsPath) && !strings.Contains(migrationsPath, "://") {
		absPath, err := filepath.Abs(migrationsPath)
		if err != nil {
			return nil, fmt.Errorf("failed to get absolute path: %w", err)
		}
		migrationsPath = absPath
	}

	if !strings.Contains(migrationsPath, "://") {
		migrationsPath = "file://" + migrationsPath
	}

	return migrate.New(migrationsPath, dbConnectionString)
}
