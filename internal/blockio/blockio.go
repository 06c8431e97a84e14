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

// Package blockio caches fixed-size chunks of remote objects so that
// neighbouring reads are served from memory instead of hitting the backing
// store again.
package blockio

import (
	"errors"
	"fmt"
	"io"

	"github.com/vburenin/nsync"
)

// KeyReaderAt is the interface that wraps the basic ReadAt method for the
// specified key
//
// ReadAt reads len(p) bytes from the resource identified by key into p
// starting at offset off. It returns the number of bytes read
// (0 <= n <= len(p)) and any error encountered. When ReadAt returns
// n < len(p), it returns a non-nil error explaining why more bytes were not
// returned.
//
// Clients of ReadAt can execute parallel ReadAt calls on the same input
// source. Implementations must not retain p.
type KeyReaderAt interface {
	ReadAt(key string, p []byte, off int64) (int, error)
}

// Cacher is the interface that wraps block caching functionality
//
// Add inserts data to the cache for the given key and blockID.
//
// Get fetches the data for the given key and blockID. It returns the data and
// wether the data was found in the cache or not
//
// Purge empties the underlying cache for the given key
type Cacher interface {
	Add(key string, blockID uint, data []byte)
	Get(key string, blockID uint) ([]byte, bool)
	PurgeKey(key string)
	Purge()
}

// NamedOnceMutex is a locker on arbitrary lock names.
type NamedOnceMutex interface {
	//Lock tries to acquire a lock on a keyed resource. If the keyed resource is not already locked,
	//Lock aquires a lock to the resource and returns true. If the keyed resource is already locked,
	//Lock waits until the resource has been unlocked and returns false
	Lock(key interface{}) bool
	//Unlock a keyed resource. Should be called by a client whose call to Lock returned true once the
	//resource is ready for consumption by other clients
	Unlock(key interface{})
}

// BlockCache caches fixed-sized chunks of a KeyReaderAt, and exposes a
// KeyReaderAt that feeds primarily from its internal cache, ensuring that
// concurrent requests for the same chunk only result in a single call to the
// source reader.
type BlockCache struct {
	blockSize int64
	blmu      NamedOnceMutex
	cache     Cacher
	reader    KeyReaderAt
}

// New creates a BlockCache of blockSize chunks of reader, backed by cache
func New(reader KeyReaderAt, cache Cacher, blockSize uint) *BlockCache {
	if blockSize == 0 {
		blockSize = 64 * 1024
	}
	return &BlockCache{
		blmu:      nsync.NewNamedOnceMutex(),
		cache:     cache,
		blockSize: int64(blockSize),
		reader:    reader,
	}
}

// SetLocker overrides the default in-process named mutex
func (b *BlockCache) SetLocker(mu NamedOnceMutex) {
	b.blmu = mu
}

// PurgeKey evicts all blocks of key
func (b *BlockCache) PurgeKey(key string) {
	b.cache.PurgeKey(key)
}

// Purge evicts everything
func (b *BlockCache) Purge() {
	b.cache.Purge()
}

// ReadAt reads len(p) bytes of key starting at off, pulling missing blocks
// from the underlying reader. A short read with io.EOF is returned when key
// ends before off+len(p).
func (b *BlockCache) ReadAt(key string, p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, fmt.Errorf("negative offset %d", off)
	}
	written := 0
	for written < len(p) {
		cur := off + int64(written)
		blockID := cur / b.blockSize
		data, err := b.getBlock(key, blockID)
		if err != nil {
			return written, err
		}
		blockOff := cur - blockID*b.blockSize
		if int64(len(data)) <= blockOff {
			return written, io.EOF
		}
		n := copy(p[written:], data[blockOff:])
		written += n
		if int64(len(data)) < b.blockSize {
			//short block: key ends inside this block
			if written < len(p) {
				return written, io.EOF
			}
			break
		}
	}
	return written, nil
}

func (b *BlockCache) blockKey(key string, id int64) string {
	return fmt.Sprintf("%s-%d", key, id)
}

func (b *BlockCache) getBlock(key string, id int64) ([]byte, error) {
	blockData, ok := b.cache.Get(key, uint(id))
	if ok {
		return blockData, nil
	}
	blockID := b.blockKey(key, id)
	if b.blmu.Lock(blockID) {
		buf := make([]byte, b.blockSize)
		n, err := b.reader.ReadAt(key, buf, id*b.blockSize)
		if err != nil && !errors.Is(err, io.EOF) {
			b.blmu.Unlock(blockID)
			return nil, err
		}
		buf = buf[0:n]
		b.cache.Add(key, uint(id), buf)
		b.blmu.Unlock(blockID)
		return buf, nil
	}
	//else (lock not acquired, recheck from cache)
	return b.getBlock(key, id)
}
