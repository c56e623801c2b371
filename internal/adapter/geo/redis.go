package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cairnhealth/altitude-risk-service/internal/domain"
)

// redisTTL bounds staleness of cached elevations; place elevations do not
// change, but upstream corrections should eventually propagate.
const redisTTL = 24 * time.Hour

// RedisStore is a shared Store backend so multiple service replicas reuse
// each other's resolutions.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a Store backed by the given Redis client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, key string) (domain.PlaceElevation, bool, error) {
	data, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return domain.PlaceElevation{}, false, nil
	}
	if err != nil {
		return domain.PlaceElevation{}, false, fmt.Errorf("redis get: %w", err)
	}

	var value domain.PlaceElevation
	if err := json.Unmarshal([]byte(data), &value); err != nil {
		return domain.PlaceElevation{}, false, fmt.Errorf("unmarshal cached place: %w", err)
	}
	return value, true, nil
}

func (s *RedisStore) Put(ctx context.Context, key string, value domain.PlaceElevation) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal place: %w", err)
	}
	if err := s.client.Set(ctx, key, data, redisTTL).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Ping verifies the Redis connection, used by the readiness check.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
