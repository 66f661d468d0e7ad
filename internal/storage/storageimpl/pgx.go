package storageimpl

import (
	"context"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/orgball2608/insta-feed/internal/repository"
	"github.com/orgball2608/insta-feed/internal/storage"
	"github.com/orgball2608/insta-feed/pkg/logger"
)

type Pgx struct {
	pg     *pgxpool.Pool
	logger logger.Logger
}

func NewPgx(pg *pgxpool.Pool, logger logger.Logger) *Pgx {
	return &Pgx{
		pg:     pg,
		logger: logger.WithComponent("PgxPreferences"),
	}
}

var _ storage.Repository = (*Pgx)(nil)

func (p *Pgx) Get(ctx context.Context, key string) ([]byte, error) {
	query, args, err := repository.SqBuilder.
		Select("value").
		From(repository.PreferencesTable).
		Where(sq.Eq{"key": key}).
		ToSql()
	if err != nil {
		return nil, repository.ErrBadQuery
	}

	var value string
	if err := p.pg.QueryRow(ctx, query, args...).Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}

	return []byte(value), nil
}

func (p *Pgx) Set(ctx context.Context, key string, value []byte) error {
	query, args, err := repository.SqBuilder.
		Insert(repository.PreferencesTable).
		Columns("key", "value", "updated_at").
		Values(key, string(value), time.Now().UTC()).
		Suffix(repository.UpsertSuffix).
		ToSql()
	if err != nil {
		return repository.ErrBadQuery
	}

	_, err = p.pg.Exec(ctx, query, args...)
	return err
}

func (p *Pgx) Clear(ctx context.Context) error {
	query, args, err := repository.SqBuilder.
		Delete(repository.PreferencesTable).
		ToSql()
	if err != nil {
		return repository.ErrBadQuery
	}

	result, err := p.pg.Exec(ctx, query, args...)
	if err != nil {
		return err
	}

	p.logger.Info("Cleared preferences", "rows_deleted", result.RowsAffected())
	return nil
}
