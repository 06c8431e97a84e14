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

// Package gcs reads objects from google cloud storage buckets through a
// block cache, for use as a tile store backend. Keys are "bucket/object"
// paths.
package gcs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"syscall"

	"github.com/airbusgeo/gdalkit/internal/blockio"

	"cloud.google.com/go/storage"
	lru "github.com/hashicorp/golang-lru"
	"google.golang.org/api/googleapi"
)

// Handler serves ranged and whole-object reads from cloud storage, caching
// fixed-size blocks and object sizes in memory. The negative size cache also
// covers non-existing objects, so probing twice for a missing key results in
// a single API call.
type Handler struct {
	ctx                context.Context
	client             *storage.Client
	cacher             blockio.Cacher
	blockSize          int
	maxCachedBlocks    int
	maxCachedMetadatas int
	blockCache         *blockio.BlockCache
	sizecache          *lru.Cache
	billingProjectID   string
}

//Option is an option that can be passed to New
type Option func(o *Handler)

// Client sets the cloud.google.com/go/storage.Client that will be used
// by the handler
func Client(cl *storage.Client) Option {
	return func(o *Handler) {
		o.client = cl
	}
}

// Cacher allows to plugin a custom cache mechanism instead of the default in
// memory lru cache. MaxCachedBlocks() will not be honored if you provide your
// own cacher, it is up to your cacher implementation to handle block eviction
func Cacher(cacher blockio.Cacher) Option {
	return func(o *Handler) {
		o.cacher = cacher
	}
}

// BlockSize sets the size of requests that will go out to the storage API.
// Defaults to 1Mb
func BlockSize(bs int) Option {
	if bs < 1 {
		panic("invalid blocksize")
	}
	return func(o *Handler) {
		o.blockSize = bs
	}
}

// MaxCachedBlocks sets the number of blocks to keep in the lru cache.
// Defaults to 1000
func MaxCachedBlocks(n int) Option {
	if n < 1 {
		panic("inavlid max cached blocks")
	}
	return func(o *Handler) {
		o.maxCachedBlocks = n
	}
}

// BillingProject sets the project name which should be billed for the requests.
// This is mandatory if the bucket is in requester-pays mode.
func BillingProject(projectID string) Option {
	return func(o *Handler) {
		o.billingProjectID = projectID
	}
}

//MaxCachedMetadatas sets the number of keys whose size will be kept in cache.
//This also accounts for non-existing objects (i.e. probing twice for a missing
//key will not result in an API call going to the storage endpoint the second
//time)
func MaxCachedMetadatas(n int) Option {
	if n < 1 {
		panic("invalid max cached metadatas")
	}
	return func(o *Handler) {
		o.maxCachedMetadatas = n
	}
}

// New creates a Handler with the given options
func New(ctx context.Context, opts ...Option) (*Handler, error) {
	handler := &Handler{
		ctx:                ctx,
		blockSize:          1024 * 1024,
		maxCachedBlocks:    1000,
		maxCachedMetadatas: 10000,
	}
	for _, o := range opts {
		o(handler)
	}
	handler.sizecache, _ = lru.New(handler.maxCachedMetadatas)
	if handler.client == nil {
		cl, err := storage.NewClient(ctx)
		if err != nil {
			return nil, fmt.Errorf("storage.newclient: %w", err)
		}
		handler.client = cl
	}
	if handler.cacher == nil {
		handler.cacher, _ = blockio.NewCache(uint(handler.maxCachedBlocks))
	}
	handler.blockCache = blockio.New(handler, handler.cacher, uint(handler.blockSize))
	return handler, nil
}

// Parse splits a "bucket/object" or "/bucket/object" key
func Parse(key string) (bucket, object string) {
	if len(key) > 0 && key[0] == '/' {
		key = key[1:]
	}
	firstSlash := strings.Index(key, "/")
	if firstSlash == -1 {
		bucket = key
		object = ""
	} else {
		bucket = key[0:firstSlash]
		object = key[firstSlash+1:]
	}
	return
}

func (h *Handler) precheck(key string, off int64) error {
	s, ok := h.sizecache.Get(key)
	if ok {
		s64 := s.(int64)
		if s64 == -1 {
			return syscall.ENOENT
		}
		if off >= s64 {
			return io.EOF
		}
	}
	return nil
}

// ReadAt reads len(p) bytes of key starting at off directly from the storage
// API, bypassing the block cache. It implements blockio.KeyReaderAt and is
// what the handler's own block cache feeds from; most callers want the cached
// Reader or ReadAll instead. Missing objects are reported as syscall.ENOENT.
func (h *Handler) ReadAt(key string, p []byte, off int64) (int, error) {
	if err := h.precheck(key, off); err != nil {
		return 0, err
	}
	bucket, object := Parse(key)
	if len(bucket) == 0 || len(object) == 0 {
		return 0, fmt.Errorf("invalid key %s", key)
	}
	gbucket := h.client.Bucket(bucket)
	if h.billingProjectID != "" {
		gbucket = gbucket.UserProject(h.billingProjectID)
	}
	r, err := gbucket.Object(object).NewRangeReader(h.ctx, off, int64(len(p)))
	if err != nil {
		var gerr *googleapi.Error
		if off > 0 && errors.As(err, &gerr) && gerr.Code == 416 {
			return 0, io.EOF
		}
		if errors.Is(err, storage.ErrObjectNotExist) {
			h.sizecache.Add(key, int64(-1))
			return 0, syscall.ENOENT
		}
		return 0, fmt.Errorf("new reader for gs://%s/%s: %w", bucket, object, err)
	}
	if sz := r.Attrs.Size; sz > 0 {
		h.sizecache.Add(key, sz)
	}
	defer r.Close()
	n, err := io.ReadFull(r, p)
	if err == io.ErrUnexpectedEOF {
		err = io.EOF
	}
	return n, err
}

// Size returns the size of the object at key, probing the storage endpoint
// if the size cache holds no entry for it
func (h *Handler) Size(key string) (int64, error) {
	s, ok := h.sizecache.Get(key)
	if !ok {
		buf := make([]byte, 1)
		_, _ = h.ReadAt(key, buf, 0) //ignore errors as we just want to populate the size cache
		s, ok = h.sizecache.Get(key)
	}
	if ok {
		size := s.(int64)
		if size == -1 {
			return 0, syscall.ENOENT
		}
		return size, nil
	}
	return 0, fmt.Errorf("size cache miss for %s", key)
}

// ReadAll returns the full contents of the object at key, served from the
// block cache. It implements tiles.BlobReader.
func (h *Handler) ReadAll(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	size, err := h.Size(key)
	if err != nil {
		return nil, err
	}
	buf := make([]byte, size)
	n, err := h.blockCache.ReadAt(key, buf, 0)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	return buf[0:n], nil
}

// Reader returns a cached io.ReaderAt over the object at key
func (h *Handler) Reader(key string) Reader {
	return Reader{key: key, h: h}
}

// Reader adapts a Handler to the io.ReaderAt interface for a single key,
// feeding from the handler's block cache
type Reader struct {
	key string
	h   *Handler
}

func (r Reader) ReadAt(p []byte, off int64) (int, error) {
	if err := r.h.precheck(r.key, off); err != nil {
		return 0, err
	}
	return r.h.blockCache.ReadAt(r.key, p, off)
}

// Size returns the object size
func (r Reader) Size() (int64, error) {
	return r.h.Size(r.key)
}
