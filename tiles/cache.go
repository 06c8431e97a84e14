// Copyright 2021 Airbus Defence and Space
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package tiles

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru"
	"github.com/vburenin/nsync"
)

// Cache wraps a Source with an in-memory lru cache, ensuring that concurrent
// requests for the same tile only result in a single call to the underlying
// source. Missing tiles are cached negatively so that repeated requests for a
// hole in the pyramid do not hit the backend again.
type Cache struct {
	src Source
	lru *lru.Cache
	mu  *nsync.NamedOnceMutex
}

var _ Source = &Cache{}

// missing marks a negatively cached tile. Payloads are stored as []byte, so
// empty or nil payloads of existing tiles are never mistaken for a hole.
type missing struct{}

// NewCache creates a Cache retaining up to entries tiles of src
func NewCache(src Source, entries int) (*Cache, error) {
	c, err := lru.New(entries)
	if err != nil {
		return nil, fmt.Errorf("lru.new: %w", err)
	}
	return &Cache{src: src, lru: c, mu: nsync.NewNamedOnceMutex()}, nil
}

// Format exposes the underlying source's format if it has one
func (c *Cache) Format() string {
	if f, ok := c.src.(Formatter); ok {
		return f.Format()
	}
	return ""
}

// Purge empties the cache
func (c *Cache) Purge() {
	c.lru.Purge()
}

// ReadTile implements Source
func (c *Cache) ReadTile(ctx context.Context, t Tile) ([]byte, error) {
	key := t.String()
	if v, ok := c.lru.Get(key); ok {
		if data, ok := v.([]byte); ok {
			return data, nil
		}
		return nil, errNotFound(t)
	}
	if c.mu.Lock(key) {
		data, err := c.src.ReadTile(ctx, t)
		if err != nil {
			if IsNotFound(err) {
				c.lru.Add(key, missing{})
			}
			c.mu.Unlock(key)
			return nil, err
		}
		c.lru.Add(key, data)
		c.mu.Unlock(key)
		return data, nil
	}
	//else (lock not acquired, recheck from cache)
	return c.ReadTile(ctx, t)
}
