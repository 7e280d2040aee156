/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package cache

import (
	"time"

	"github.com/dgraph-io/ristretto/v2"
	"golang.org/x/sync/singleflight"
)

const (
	// ZeroCost with this ristretto uses the Cost function defined in its configuration
	ZeroCost = 0

	DefaultNumCounters = 1e5
	DefaultMaxCost     = 1e4
	DefaultBufferItems = 64
)

// Cache is a bounded, concurrency safe cache with optional expiration.
// Writes are visible to readers as soon as the write call returns.
type Cache[T any] struct {
	cache *ristretto.Cache[string, T]
	sfg   singleflight.Group
}

// New returns a cache holding at most maxItems entries
func New[T any](maxItems int64) (*Cache[T], error) {
	if maxItems <= 0 {
		maxItems = DefaultMaxCost
	}
	numCounters := maxItems * 10
	if numCounters < DefaultNumCounters {
		numCounters = DefaultNumCounters
	}
	rCache, err := ristretto.NewCache[string, T](&ristretto.Config[string, T]{
		NumCounters: numCounters,
		MaxCost:     maxItems,
		BufferItems: DefaultBufferItems,
		Cost: func(value T) int64 {
			return 1
		},
	})
	if err != nil {
		return nil, err
	}
	return &Cache[T]{cache: rCache}, nil
}

func (c *Cache[T]) Get(key string) (T, bool) {
	return c.cache.Get(key)
}

// Add stores value under key without expiration
func (c *Cache[T]) Add(key string, value T) {
	c.cache.Set(key, value, ZeroCost)
	c.cache.Wait()
}

// AddWithTTL stores value under key, the entry expires after ttl
func (c *Cache[T]) AddWithTTL(key string, value T, ttl time.Duration) {
	c.cache.SetWithTTL(key, value, ZeroCost, ttl)
	c.cache.Wait()
}

func (c *Cache[T]) Delete(key string) {
	c.cache.Del(key)
	c.cache.Wait()
}

func (c *Cache[T]) Close() {
	c.cache.Close()
}

// GetOrLoad returns the cached value or loads it, concurrent loads of the same key are collapsed.
// keep decides whether a loaded value is stored.
func (c *Cache[T]) GetOrLoad(key string, loader func() (T, error), keep func(T) bool) (T, bool, error) {
	var zero T

	if value, found := c.Get(key); found {
		return value, true, nil
	}

	res, err, _ := c.sfg.Do(key, func() (interface{}, error) {
		newValue, loadErr := loader()
		if loadErr != nil {
			return nil, loadErr
		}
		if keep == nil || keep(newValue) {
			c.Add(key, newValue)
		}
		return newValue, nil
	})
	if err != nil {
		return zero, false, err
	}
	return res.(T), false, nil
}
