package storageimpl

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/orgball2608/insta-feed/internal/migrations"
	"github.com/pressly/goose/v3"
)

// Migrate applies the registered Go migrations to db.
func Migrate(ctx context.Context, db *sql.DB, dialect string) error {
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	goose.SetLogger(goose.NopLogger())

	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}
