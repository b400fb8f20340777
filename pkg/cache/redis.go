package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const scanBatch = 256

// DefaultRedisTTL bounds how long an entry outlives the store that wrote it.
const DefaultRedisTTL = 24 * time.Hour

// RedisStore keeps rendered source in Redis instead of process memory.
//
// Cache keys carry class identities, which are minted per process, so a
// store can never serve entries written by another process or by an earlier
// run. Each RedisStore therefore writes under its own namespace
// (<prefix><instance>:), Clear only removes that namespace, and every entry
// expires after the TTL so namespaces left behind by exited processes are
// reclaimed.
type RedisStore struct {
	client    redis.UniversalClient
	namespace string
	ttl       time.Duration
}

// RedisOption customises a RedisStore.
type RedisOption func(*RedisStore)

// WithTTL sets the entry lifetime. Zero or negative values keep
// DefaultRedisTTL.
func WithTTL(ttl time.Duration) RedisOption {
	return func(s *RedisStore) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// NewRedisStore wraps an existing client. The prefix defaults to "modelgen:".
func NewRedisStore(client redis.UniversalClient, prefix string, options ...RedisOption) *RedisStore {
	if prefix == "" {
		prefix = keyPrefix
	}
	s := &RedisStore{
		client:    client,
		namespace: prefix + uuid.NewString() + ":",
		ttl:       DefaultRedisTTL,
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// NewRedisStoreFromOptions dials a single Redis server.
func NewRedisStoreFromOptions(opts *redis.Options, options ...RedisOption) *RedisStore {
	return NewRedisStore(redis.NewClient(opts), "", options...)
}

// Namespace returns the key prefix this store writes under.
func (s *RedisStore) Namespace() string {
	return s.namespace
}

// TTL returns the lifetime applied to every entry.
func (s *RedisStore) TTL() time.Duration {
	return s.ttl
}

// Ping checks connectivity.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close releases the underlying client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// Key maps a cache key into the store namespace.
func (s *RedisStore) Key(key string) string {
	return s.namespace + strings.TrimPrefix(key, keyPrefix)
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, s.Key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cache: redis get %s: %w", key, err)
	}
	return data, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, s.Key(key), value, s.ttl).Err(); err != nil {
		return fmt.Errorf("cache: redis set %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context) error {
	var cursor uint64
	for {
		keys, next, err := s.client.Scan(ctx, cursor, s.namespace+"*", scanBatch).Result()
		if err != nil {
			return fmt.Errorf("cache: redis scan: %w", err)
		}
		if len(keys) > 0 {
			if err := s.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("cache: redis del: %w", err)
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}
