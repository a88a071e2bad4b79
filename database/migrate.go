package database

import (
	"context"
	"embed"

	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"
	"gorm.io/gorm"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migrate applies every pending goose migration embedded in the binary.
func Migrate(ctx context.Context, db *gorm.DB) error {
	wrapMsg := "unable to apply database migrations"

	sqlDB, err := db.DB()
	if err != nil {
		return errors.Wrap(err, wrapMsg)
	}

	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return errors.Wrap(err, wrapMsg)
	}
	if err := goose.UpContext(ctx, sqlDB, "migrations"); err != nil {
		return errors.Wrap(err, wrapMsg)
	}
	return nil
}

// Version reports the currently applied migration version.
func Version(ctx context.Context, db *gorm.DB) (int64, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return 0, err
	}
	return goose.GetDBVersionContext(ctx, sqlDB)
}
