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

package blockio_test

import (
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/airbusgeo/gdalkit/internal/blockio"
	"github.com/stretchr/testify/assert"
)

type reader struct {
	data  []byte
	calls int64
}

func (r *reader) ReadAt(key string, buf []byte, off int64) (int, error) {
	atomic.AddInt64(&r.calls, 1)
	if key == "enoent" {
		return 0, errors.New("no such key")
	}
	if int(off) >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(buf, r.data[off:])
	if n < len(buf) {
		return n, io.EOF
	}
	return n, nil
}

func testdata(n int) []byte {
	d := make([]byte, n)
	for i := range d {
		d[i] = byte(i % 251)
	}
	return d
}

func TestReadAt(t *testing.T) {
	src := &reader{data: testdata(1000)}
	cache, _ := blockio.NewCache(100)
	bc := blockio.New(src, cache, 16)

	buf := make([]byte, 10)
	n, err := bc.ReadAt("k", buf, 0)
	assert.NoError(t, err)
	assert.Equal(t, 10, n)
	assert.Equal(t, src.data[0:10], buf)

	// spans multiple blocks
	buf = make([]byte, 100)
	n, err = bc.ReadAt("k", buf, 10)
	assert.NoError(t, err)
	assert.Equal(t, 100, n)
	assert.Equal(t, src.data[10:110], buf)

	// short read at the end of the key
	buf = make([]byte, 100)
	n, err = bc.ReadAt("k", buf, 950)
	assert.Equal(t, io.EOF, err)
	assert.Equal(t, 50, n)
	assert.Equal(t, src.data[950:1000], buf[0:50])

	// past the end
	n, err = bc.ReadAt("k", buf, 2000)
	assert.Equal(t, io.EOF, err)
	assert.Equal(t, 0, n)

	_, err = bc.ReadAt("k", buf, -1)
	assert.Error(t, err)

	_, err = bc.ReadAt("enoent", buf, 0)
	assert.Error(t, err)
}

func TestReadAtCaching(t *testing.T) {
	src := &reader{data: testdata(256)}
	cache, _ := blockio.NewCache(100)
	bc := blockio.New(src, cache, 64)

	buf := make([]byte, 64)
	_, err := bc.ReadAt("k", buf, 0)
	assert.NoError(t, err)
	calls := atomic.LoadInt64(&src.calls)

	// re-read fully served from cache
	_, err = bc.ReadAt("k", buf, 0)
	assert.NoError(t, err)
	_, err = bc.ReadAt("k", buf[0:10], 32)
	assert.NoError(t, err)
	assert.Equal(t, calls, atomic.LoadInt64(&src.calls))

	bc.PurgeKey("k")
	_, err = bc.ReadAt("k", buf, 0)
	assert.NoError(t, err)
	if atomic.LoadInt64(&src.calls) == calls {
		t.Error("purged block not re-fetched")
	}
	bc.Purge()
}

func TestConcurrentReads(t *testing.T) {
	src := &reader{data: testdata(4096)}
	cache, _ := blockio.NewCache(1000)
	bc := blockio.New(src, cache, 64)

	wg := sync.WaitGroup{}
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			buf := make([]byte, 128)
			off := int64((i % 10) * 128)
			n, err := bc.ReadAt("k", buf, off)
			assert.NoError(t, err)
			assert.Equal(t, 128, n)
			assert.Equal(t, src.data[off:off+128], buf)
		}(i)
	}
	wg.Wait()
	// 10 distinct 128 byte windows over 64 byte blocks
	if calls := atomic.LoadInt64(&src.calls); calls > 20 {
		t.Errorf("%d backend calls for 20 blocks", calls)
	}
}

func TestCacheEntries(t *testing.T) {
	_, err := blockio.NewCache(0)
	assert.Error(t, err)
	c, err := blockio.NewCache(4)
	assert.NoError(t, err)
	c.Add("foo", 0, []byte{1})
	d, ok := c.Get("foo", 0)
	assert.True(t, ok)
	assert.Equal(t, []byte{1}, d)
	_, ok = c.Get("foo", 1)
	assert.False(t, ok)
}
