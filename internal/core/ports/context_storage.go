package ports

import (
	"context"
	"errors"
)

// ErrStorageMiss is returned by ContextStorage.Get when no value is stored.
var ErrStorageMiss = errors.New("storage: key not found")

// ContextStorage is a key/value store partitioned by browser context.
// Writes overwrite the whole value; there are no partial updates.
type ContextStorage interface {
	Get(ctx context.Context, contextID, key string) ([]byte, error)
	Set(ctx context.Context, contextID, key string, value []byte) error
	Delete(ctx context.Context, contextID, key string) error
}
