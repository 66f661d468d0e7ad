package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upIndexPreferences, downIndexPreferences)
}

func upIndexPreferences(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
		CREATE INDEX IF NOT EXISTS preferences_updated_at_idx ON preferences (updated_at);
	`)
	if err != nil {
		return err
	}
	return nil
}

func downIndexPreferences(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
		DROP INDEX IF EXISTS preferences_updated_at_idx;
	`)
	if err != nil {
		return err
	}
	return nil
}
