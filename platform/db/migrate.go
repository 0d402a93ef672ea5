// Package db provides database connection infrastructure.
package db

import (
	"context"
	"database/sql"
	"io/fs"

	"shopwise_backend/platform/config"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// RunMigrations applies all pending goose migrations from the given filesystem.
func RunMigrations(ctx context.Context, cfg config.DatabaseConfig, migrations fs.FS, dir string) error {
	sqlDB, err := sql.Open("pgx", cfg.GetDatabaseURL())
	if err != nil {
		return err
	}
	defer func() {
		_ = sqlDB.Close()
	}()

	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	return goose.UpContext(ctx, sqlDB, dir)
}
