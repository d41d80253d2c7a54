package cache

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/tripautostrade/area-directory/internal/domain/repository"
	"go.uber.org/zap"
)

// snapshotStore хранит JSON-снимок списка в Redis без TTL:
// снимок живёт до следующего успешного обновления.
type snapshotStore struct {
	client *redis.Client
	logger *zap.Logger
}

func NewSnapshotStore(r *Redis) repository.SnapshotStore {
	return &snapshotStore{
		client: r.Client(),
		logger: r.logger,
	}
}

func (s *snapshotStore) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		s.logger.Debug("Snapshot miss", zap.String("key", key))
		return nil, nil
	}
	if err != nil {
		s.logger.Error("Failed to read snapshot", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("snapshot get error: %w", err)
	}

	s.logger.Debug("Snapshot hit", zap.String("key", key), zap.Int("bytes", len(val)))
	return val, nil
}

// Set overwrites the key with a single SET, so readers never observe a partial value.
func (s *snapshotStore) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, key, value, 0).Err(); err != nil {
		s.logger.Error("Failed to write snapshot", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("snapshot set error: %w", err)
	}

	s.logger.Debug("Snapshot written", zap.String("key", key), zap.Int("bytes", len(value)))
	return nil
}
