// Package cache memoises generated model descriptors and rendered model
// source. Descriptors are kept as msgpack snapshots and decoded afresh on
// every hit, so callers never share a mutable descriptor. Rendered text lives
// in a pluggable Store. Clear is the only invalidation path for a running
// process; only RedisStore entries also expire.
package cache

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/goliatone/go-modelgen/pkg/model"
	"github.com/goliatone/go-modelgen/pkg/render"
)

const keyPrefix = "modelgen:"

// Key identifies one rendered output.
type Key struct {
	Class   string
	Dialect render.Dialect
	Minify  bool
}

// String returns the store key: modelgen:<class>:<dialect>:<minify>.
func (k Key) String() string {
	return keyPrefix + k.Class + ":" + string(k.Dialect) + ":" + strconv.FormatBool(k.Minify)
}

// Option customises a Cache.
type Option func(*Cache)

// WithStore replaces the in-memory text store.
func WithStore(store Store) Option {
	return func(c *Cache) {
		if store != nil {
			c.store = store
		}
	}
}

// WithLogger sets the logger used for cache diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Cache) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Cache is safe for concurrent use. Concurrent misses on the same key share a
// single computation.
type Cache struct {
	store  Store
	logger *slog.Logger

	// mu orders publication against Clear: writers hold it shared while they
	// check the generation and publish, Clear holds it exclusively.
	mu         sync.RWMutex
	generation atomic.Uint64
	models     sync.Map // generation-qualified class key -> []byte snapshot
	group      singleflight.Group
}

// New creates a Cache backed by a MemoryStore unless WithStore is given.
func New(options ...Option) *Cache {
	c := &Cache{
		store:  NewMemoryStore(),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range options {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Model returns the descriptor cached for classKey, calling build on a miss.
// An empty classKey disables caching for the call. The returned descriptor is
// always a fresh copy.
func (c *Cache) Model(ctx context.Context, classKey string, build func() (model.ModelDescriptor, error)) (model.ModelDescriptor, error) {
	if classKey == "" {
		return build()
	}

	gen := c.generation.Load()
	slot := strconv.FormatUint(gen, 10) + "|" + classKey
	if data, ok := c.models.Load(slot); ok {
		return decodeModel(data.([]byte))
	}

	v, err, shared := c.group.Do("model|"+slot, func() (any, error) {
		if data, ok := c.models.Load(slot); ok {
			return data, nil
		}
		c.logger.DebugContext(ctx, "modelgen cache miss", "kind", "model", "class", classKey)
		desc, err := build()
		if err != nil {
			return nil, err
		}
		data, err := encodeModel(desc)
		if err != nil {
			return nil, err
		}

		c.mu.RLock()
		if c.generation.Load() == gen {
			c.models.Store(slot, data)
		}
		c.mu.RUnlock()
		return data, nil
	})
	if err != nil {
		return model.ModelDescriptor{}, err
	}
	if shared {
		c.logger.DebugContext(ctx, "modelgen cache shared build", "class", classKey)
	}
	return decodeModel(v.([]byte))
}

// Source returns the rendered text cached for key, calling render on a miss.
// An empty key.Class disables caching for the call.
func (c *Cache) Source(ctx context.Context, key Key, render func() ([]byte, error)) ([]byte, error) {
	if key.Class == "" {
		return render()
	}

	storeKey := key.String()
	if data, ok := c.lookup(ctx, storeKey); ok {
		return data, nil
	}

	gen := c.generation.Load()
	v, err, _ := c.group.Do("source|"+strconv.FormatUint(gen, 10)+"|"+storeKey, func() (any, error) {
		if data, ok := c.lookup(ctx, storeKey); ok {
			return data, nil
		}
		c.logger.DebugContext(ctx, "modelgen cache miss", "kind", "source", "key", storeKey)
		data, err := render()
		if err != nil {
			return nil, err
		}

		c.mu.RLock()
		defer c.mu.RUnlock()
		if c.generation.Load() == gen {
			if err := c.store.Set(ctx, storeKey, data); err != nil {
				c.logger.WarnContext(ctx, "modelgen cache store failed", "key", storeKey, "error", err)
			}
		}
		return data, nil
	})
	if err != nil {
		return nil, err
	}
	return append([]byte(nil), v.([]byte)...), nil
}

func (c *Cache) lookup(ctx context.Context, key string) ([]byte, bool) {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		c.logger.WarnContext(ctx, "modelgen cache lookup failed", "key", key, "error", err)
		return nil, false
	}
	if data == nil {
		return nil, false
	}
	return data, true
}

// Clear drops every cached descriptor and rendered text. Results computed
// concurrently with Clear are not published.
func (c *Cache) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.generation.Add(1)
	c.models.Clear()
	if err := c.store.Clear(ctx); err != nil {
		return fmt.Errorf("cache: clear store: %w", err)
	}
	c.logger.DebugContext(ctx, "modelgen cache cleared", "generation", c.generation.Load())
	return nil
}
