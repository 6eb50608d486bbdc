package kvstore

import (
	"context"
	"errors"
)

// ErrNotFound is returned by GetItem when no value is stored under the key.
var ErrNotFound = errors.New("kvstore: key not found")

// Store is an asynchronous string key-value store. It backs user-scoped
// preference state such as dashboard layouts and the active-store pointer.
// Implementations may fail with storage-level errors on any call; callers
// decide whether those are fatal.
type Store interface {
	GetItem(ctx context.Context, key string) (string, error)
	SetItem(ctx context.Context, key string, value string) error
	RemoveItem(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
