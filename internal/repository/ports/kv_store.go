package ports

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by Get when the key holds no value.
var ErrKeyNotFound = errors.New("key not found")

// KeyValueStore is the durable backend behind client local storage. Each
// Set is a full overwrite of the key and must be atomic at the key level.
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	GetMany(ctx context.Context, keys []string) (map[string][]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
