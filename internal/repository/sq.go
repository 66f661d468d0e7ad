package repository

import (
	"errors"

	"github.com/Masterminds/squirrel"
)

// SqBuilder builds Postgres statements.
var SqBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// SqliteBuilder builds SQLite statements.
var SqliteBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

var ErrBadQuery = errors.New("bad query")

// PreferencesTable holds one row per durable key.
const PreferencesTable = "preferences"

// UpsertSuffix turns an INSERT into last-writer-wins. Both Postgres and
// SQLite accept it.
const UpsertSuffix = "ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at"
