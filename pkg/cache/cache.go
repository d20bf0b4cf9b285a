// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"context"
	"fmt"
	"sort"
	"time"

	loglib "github.com/xataio/holocron/pkg/log"
)

// ResourceCache memoises remote resources by request identity. Entries are
// loaded from the store at creation, never expire, and the whole document is
// persisted on every miss. Callers always receive values that do not share
// any mutable state with the cached entries. It is not concurrency safe.
type ResourceCache struct {
	store   Store
	fetcher Fetcher
	logger  loglib.Logger
	timeout time.Duration
	entries map[string]any

	hits   int64
	misses int64
}

// Stats holds the cache counters since creation.
type Stats struct {
	Hits   int64
	Misses int64
	Size   int
}

// HitRate returns the hit rate as a percentage.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total) * 100
}

type Option func(*ResourceCache)

// DefaultTimeout bounds each fetch when no timeout is configured.
const DefaultTimeout = 10 * time.Second

// New returns a cache backed by the store on input. If the store cannot be
// loaded the cache starts empty.
func New(ctx context.Context, store Store, fetcher Fetcher, opts ...Option) *ResourceCache {
	c := &ResourceCache{
		store:   store,
		fetcher: fetcher,
		logger:  loglib.NewNoopLogger(),
		timeout: DefaultTimeout,
		entries: map[string]any{},
	}

	for _, opt := range opts {
		opt(c)
	}

	entries, err := store.Load(ctx)
	if err != nil {
		c.logger.Warn(err, "loading resource cache, starting empty")
		return c
	}
	if entries != nil {
		c.entries = entries
	}
	c.logger.Debug("resource cache loaded", loglib.Fields{"entries": len(c.entries)})

	return c
}

func WithLogger(l loglib.Logger) Option {
	return func(c *ResourceCache) {
		c.logger = loglib.NewLogger(l).WithFields(loglib.Fields{
			loglib.ModuleField: "resource_cache",
		})
	}
}

// WithTimeout sets the per request timeout used by Get.
func WithTimeout(d time.Duration) Option {
	return func(c *ResourceCache) {
		c.timeout = d
	}
}

// Get returns the resource for the url and parameters, using the default
// timeout on a miss.
func (c *ResourceCache) Get(ctx context.Context, url string, params Params) (any, error) {
	return c.GetWithTimeout(ctx, url, params, c.timeout)
}

// GetWithTimeout returns a copy of the cached resource on a hit. On a miss the
// resource is fetched, a copy is cached and the store is saved before the
// fetched value is returned.
func (c *ResourceCache) GetWithTimeout(ctx context.Context, url string, params Params, timeout time.Duration) (any, error) {
	key := Key(url, params)

	if v, found := c.entries[key]; found {
		c.hits++
		c.logger.Trace("cache hit", loglib.Fields{loglib.KeyField: key})
		return DeepCopy(v), nil
	}

	c.misses++
	c.logger.Debug("cache miss, fetching resource", loglib.Fields{
		loglib.KeyField: key,
		loglib.URLField: url,
	})

	resource, err := c.fetcher.Fetch(ctx, url, params, timeout)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}

	c.entries[key] = DeepCopy(resource)
	if err := c.store.Save(ctx, c.entries); err != nil {
		return nil, fmt.Errorf("persisting resource cache: %w", err)
	}

	return resource, nil
}

// Flush persists the current entries.
func (c *ResourceCache) Flush(ctx context.Context) error {
	if err := c.store.Save(ctx, c.entries); err != nil {
		return fmt.Errorf("flushing resource cache: %w", err)
	}
	c.logger.Debug("resource cache flushed", loglib.Fields{"entries": len(c.entries)})
	return nil
}

func (c *ResourceCache) Stats() Stats {
	return Stats{
		Hits:   c.hits,
		Misses: c.misses,
		Size:   len(c.entries),
	}
}

// Keys returns the cached keys in lexical order.
func (c *ResourceCache) Keys() []string {
	keys := make([]string, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Close closes the underlying store.
func (c *ResourceCache) Close() error {
	return c.store.Close()
}
