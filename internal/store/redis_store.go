package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

type redisStore struct {
	client *redis.Client
}

// NewRedisStore keeps slots as plain redis keys with no TTL. This is
// persistence, not caching, so values never expire on their own.
func NewRedisStore(client *redis.Client) Store {
	return &redisStore{client: client}
}

func (r *redisStore) Read(ctx context.Context, slot string, dest any) (bool, error) {
	data, err := r.client.Get(ctx, slot).Bytes()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}

		return false, fmt.Errorf("failed to get slot %s from redis: %w", slot, err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		slog.Warn("Discarding malformed slot data", slog.String("slot", slot), slog.String("error", err.Error()))
		return false, nil
	}

	return true, nil
}

func (r *redisStore) Write(ctx context.Context, slot string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value for slot %s: %w", slot, err)
	}

	if err := r.client.Set(ctx, slot, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to set slot %s in redis: %w", slot, err)
	}

	return nil
}

func (r *redisStore) Delete(ctx context.Context, slot string) error {
	if err := r.client.Del(ctx, slot).Err(); err != nil {
		return fmt.Errorf("failed to delete slot %s from redis: %w", slot, err)
	}

	return nil
}

func (r *redisStore) Close() error {
	return r.client.Close()
}
