package repository

import "context"

// SnapshotStore is the persistent key-value store holding the cached area list.
type SnapshotStore interface {
	// Get returns nil, nil on a miss
	Get(ctx context.Context, key string) ([]byte, error)

	// Set replaces the value atomically
	Set(ctx context.Context, key string, value []byte) error
}
