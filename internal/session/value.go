package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/orgball2608/insta-feed/internal/storage"
	apperrors "github.com/orgball2608/insta-feed/pkg/errors"
	"github.com/orgball2608/insta-feed/pkg/logger"
)

// Value is one durable preference. The first Get hydrates it from storage;
// afterwards the in-memory copy is authoritative and every write goes straight
// through to storage.
type Value[T any] struct {
	repo   storage.Repository
	logger logger.Logger
	key    string
	def    func() T
	clone  func(T) T
	valid  func(T) bool

	mu      sync.Mutex
	loaded  bool
	current T
}

func newValue[T any](repo storage.Repository, log logger.Logger, key string, def func() T, clone func(T) T, valid func(T) bool) *Value[T] {
	if clone == nil {
		clone = func(v T) T { return v }
	}
	if valid == nil {
		valid = func(T) bool { return true }
	}
	return &Value[T]{
		repo:   repo,
		logger: log,
		key:    key,
		def:    def,
		clone:  clone,
		valid:  valid,
	}
}

func (v *Value[T]) Key() string {
	return v.key
}

// Get returns the current value. A missing durable entry is replaced by the
// default, which is written back. A malformed entry yields the default without
// touching storage.
func (v *Value[T]) Get(ctx context.Context) T {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.load(ctx)
	return v.clone(v.current)
}

// Set replaces the value and persists it synchronously.
func (v *Value[T]) Set(ctx context.Context, value T) error {
	_, err := v.Update(ctx, func(T) T { return v.clone(value) })
	return err
}

// Update applies fn to the previous value and persists the result. fn must be
// a pure function of prev; it runs under the value's lock so concurrent
// updates never lose each other's writes. The in-memory value changes even
// when the durable write fails.
func (v *Value[T]) Update(ctx context.Context, fn func(prev T) T) (T, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.load(ctx)
	v.current = fn(v.clone(v.current))

	if err := v.persist(ctx, v.current); err != nil {
		return v.clone(v.current), err
	}
	return v.clone(v.current), nil
}

// forget drops the hydrated copy so the next Get reads storage again.
func (v *Value[T]) forget() {
	v.mu.Lock()
	defer v.mu.Unlock()

	var zero T
	v.current = zero
	v.loaded = false
}

func (v *Value[T]) load(ctx context.Context) {
	if v.loaded {
		return
	}
	v.loaded = true
	v.current = v.def()

	raw, err := v.repo.Get(ctx, v.key)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		if err := v.persist(ctx, v.current); err != nil {
			v.logger.Warn("Failed to write default preference", "key", v.key, "error", err)
		}
		return
	case err != nil:
		v.logger.Warn("Failed to read preference, using default", "key", v.key, "error", err)
		return
	}

	decoded, err := v.decode(raw)
	if err != nil {
		v.logger.Warn("Malformed preference, using default", "key", v.key, "error", err)
		return
	}
	v.current = decoded
}

// decode parses a stored entry. Entries that parse but fail the validity
// check, such as a stored null user, count as malformed.
func (v *Value[T]) decode(raw []byte) (T, error) {
	var decoded T
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return decoded, apperrors.WrapWithCode(apperrors.ErrMalformed, apperrors.CodeDecode, err.Error())
	}
	if !v.valid(decoded) {
		return decoded, apperrors.WrapWithCode(apperrors.ErrMalformed, apperrors.CodeDecode, "invalid "+v.key)
	}
	return decoded, nil
}

func (v *Value[T]) persist(ctx context.Context, value T) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return apperrors.WrapWithCode(err, apperrors.CodeDecode, fmt.Sprintf("encode %s", v.key))
	}
	if err := v.repo.Set(ctx, v.key, raw); err != nil {
		return apperrors.WrapWithCode(err, apperrors.CodeStorage, fmt.Sprintf("write %s", v.key))
	}
	return nil
}
