package storage

import (
	"context"
	"errors"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

var ErrNotFound = errors.New("preference not found")

// Repository is the durable key-value surface behind the session store.
// Values are opaque JSON documents; writes are last-writer-wins.
//
//go:generate go run go.uber.org/mock/mockgen -source=storage.go -destination=mocks/mock.go
type Repository interface {
	// Get returns the stored value or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set creates or replaces the value stored under key.
	Set(ctx context.Context, key string, value []byte) error

	// Clear removes every stored key.
	Clear(ctx context.Context) error
}
