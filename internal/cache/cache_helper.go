// Package cache provides a nil-safe read-through cache over Redis. Exam
// definitions change rarely and are read on every list/detail request, so
// they are the only cached entity. A missing Redis client degrades to
// pass-through.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrCacheNotAvailable = errors.New("cache not available")
	ErrCacheNotFound     = errors.New("cache entry not found")
)

const (
	// ExamTTL bounds staleness of cached exam reads.
	ExamTTL = 5 * time.Minute
)

// Helper provides marshal/unmarshal caching over a Redis client. All methods
// tolerate a nil client.
type Helper struct {
	client *redis.Client
	prefix string
}

func NewHelper(client *redis.Client, prefix string) *Helper {
	return &Helper{client: client, prefix: prefix}
}

func (h *Helper) key(key string) string {
	return h.prefix + key
}

// Get retrieves and unmarshals a cached value into dest.
func (h *Helper) Get(ctx context.Context, key string, dest interface{}) error {
	if h.client == nil {
		return ErrCacheNotAvailable
	}

	data, err := h.client.Get(ctx, h.key(key)).Result()
	if err != nil {
		if err == redis.Nil {
			return ErrCacheNotFound
		}
		return fmt.Errorf("cache get: %w", err)
	}

	if err := json.Unmarshal([]byte(data), dest); err != nil {
		return fmt.Errorf("cache unmarshal: %w", err)
	}
	return nil
}

// Set marshals and stores a value. Silently a no-op without a client.
func (h *Helper) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if h.client == nil {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache marshal: %w", err)
	}
	return h.client.Set(ctx, h.key(key), data, ttl).Err()
}

// Delete drops the given keys.
func (h *Helper) Delete(ctx context.Context, keys ...string) error {
	if h.client == nil || len(keys) == 0 {
		return nil
	}

	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = h.key(k)
	}
	return h.client.Del(ctx, prefixed...).Err()
}
