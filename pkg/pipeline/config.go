// SPDX-License-Identifier: Apache-2.0

package pipeline

import (
	"errors"
	"fmt"
	"time"

	"github.com/xataio/holocron/pkg/transform"
)

type Config struct {
	// MappingFile is the JSON or YAML mapping table. When empty the built in
	// table is used.
	MappingFile string
	// NoneValues replaces the default none value set when not empty.
	NoneValues      []string
	Cache           CacheConfig
	FetchTimeout    time.Duration
	ReferencePolicy transform.ReferencePolicy
	// Supplements maps entity kinds to auxiliary dataset files.
	Supplements map[transform.Kind]string
	// Rules overrides the coercion rules of individual fields, keyed by kind
	// and source field.
	Rules map[transform.Kind]transform.Rules
}

type StoreType string

const (
	FileStore   StoreType = "file"
	RedisStore  StoreType = "redis"
	MemoryStore StoreType = "memory"
)

type CacheConfig struct {
	Store    StoreType
	Path     string
	RedisURL string
	RedisKey string
}

const (
	defaultCachePath    = "CACHE.json"
	defaultFetchTimeout = 10 * time.Second
)

func (c *Config) fetchTimeout() time.Duration {
	if c.FetchTimeout > 0 {
		return c.FetchTimeout
	}
	return defaultFetchTimeout
}

func (c *CacheConfig) path() string {
	if c.Path != "" {
		return c.Path
	}
	return defaultCachePath
}

func (c *CacheConfig) storeType() StoreType {
	if c.Store != "" {
		return c.Store
	}
	return FileStore
}

func (c *Config) IsValid() error {
	switch c.Cache.storeType() {
	case FileStore, MemoryStore:
	case RedisStore:
		if c.Cache.RedisURL == "" {
			return errors.New("redis cache store requires a redis url")
		}
	default:
		return fmt.Errorf("unsupported cache store: %q", c.Cache.Store)
	}

	if _, err := transform.ParseReferencePolicy(string(c.ReferencePolicy)); err != nil {
		return err
	}

	if c.FetchTimeout < 0 {
		return errors.New("fetch timeout cannot be negative")
	}

	return nil
}
