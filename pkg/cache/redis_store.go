// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/xataio/holocron/internal/json"
)

// DefaultRedisKey is the redis key holding the cache document when none is
// configured.
const DefaultRedisKey = "holocron:cache"

// RedisStore keeps the cache document as a single JSON value under one redis
// key, so that several machines can share the same cache.
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore connects to the redis server at the url on input, and checks
// the connection is usable.
func NewRedisStore(ctx context.Context, redisURL, key string) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}

	if key == "" {
		key = DefaultRedisKey
	}

	return &RedisStore{
		client: client,
		key:    key,
	}, nil
}

func (s *RedisStore) Load(ctx context.Context) (map[string]any, error) {
	b, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return map[string]any{}, nil
		}
		return nil, fmt.Errorf("reading cache document from redis: %w", err)
	}

	entries := map[string]any{}
	if err := json.Unmarshal(b, &entries); err != nil {
		return nil, fmt.Errorf("decoding cache document from redis: %w", err)
	}
	return entries, nil
}

func (s *RedisStore) Save(ctx context.Context, entries map[string]any) error {
	b, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encoding cache document: %w", err)
	}
	if err := s.client.Set(ctx, s.key, b, 0).Err(); err != nil {
		return fmt.Errorf("writing cache document to redis: %w", err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
