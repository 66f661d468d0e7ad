package storageimpl

import (
	"context"
	"database/sql"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"
	"github.com/orgball2608/insta-feed/internal/repository"
	"github.com/orgball2608/insta-feed/internal/storage"
	"github.com/orgball2608/insta-feed/pkg/logger"
)

type SQLite struct {
	db     *sql.DB
	logger logger.Logger
}

func NewSQLite(path string, logger logger.Logger) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	// A single writer keeps last-writer-wins ordering identical to call order.
	db.SetMaxOpenConns(1)

	return &SQLite{
		db:     db,
		logger: logger.WithComponent("SQLitePreferences"),
	}, nil
}

var _ storage.Repository = (*SQLite)(nil)

// Migrate creates the preferences schema.
func (s *SQLite) Migrate(ctx context.Context) error {
	return Migrate(ctx, s.db, "sqlite3")
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) Get(ctx context.Context, key string) ([]byte, error) {
	query, args, err := repository.SqliteBuilder.
		Select("value").
		From(repository.PreferencesTable).
		Where(sq.Eq{"key": key}).
		ToSql()
	if err != nil {
		return nil, repository.ErrBadQuery
	}

	var value string
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}

	return []byte(value), nil
}

func (s *SQLite) Set(ctx context.Context, key string, value []byte) error {
	query, args, err := repository.SqliteBuilder.
		Insert(repository.PreferencesTable).
		Columns("key", "value", "updated_at").
		Values(key, string(value), time.Now().UTC()).
		Suffix(repository.UpsertSuffix).
		ToSql()
	if err != nil {
		return repository.ErrBadQuery
	}

	_, err = s.db.ExecContext(ctx, query, args...)
	return err
}

func (s *SQLite) Clear(ctx context.Context) error {
	query, args, err := repository.SqliteBuilder.
		Delete(repository.PreferencesTable).
		ToSql()
	if err != nil {
		return repository.ErrBadQuery
	}

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	if rows, err := result.RowsAffected(); err == nil {
		s.logger.Info("Cleared preferences", "rows_deleted", rows)
	}
	return nil
}
