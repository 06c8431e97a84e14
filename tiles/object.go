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
	"errors"
	"fmt"
	"strings"
	"syscall"
)

// BlobReader fetches whole objects by key. gcs.Handler implements this
// interface; missing objects are reported as syscall.ENOENT.
type BlobReader interface {
	ReadAll(ctx context.Context, key string) ([]byte, error)
}

// ObjectSource reads tiles stored as individual objects laid out as
// {prefix}/{z}/{x}/{y}.{ext}
type ObjectSource struct {
	store  BlobReader
	prefix string
	ext    string
}

var _ Source = &ObjectSource{}
var _ Formatter = &ObjectSource{}

// NewObjectSource creates an ObjectSource fetching keys under prefix with
// extension ext (without the leading dot)
func NewObjectSource(store BlobReader, prefix, ext string) *ObjectSource {
	return &ObjectSource{
		store:  store,
		prefix: strings.TrimSuffix(prefix, "/"),
		ext:    strings.TrimPrefix(ext, "."),
	}
}

// Format returns the object extension
func (o *ObjectSource) Format() string {
	return o.ext
}

// Key returns the object key addressing t
func (o *ObjectSource) Key(t Tile) string {
	return fmt.Sprintf("%s/%d/%d/%d.%s", o.prefix, t.Z, t.X, t.Y, o.ext)
}

// ReadTile implements Source
func (o *ObjectSource) ReadTile(ctx context.Context, t Tile) ([]byte, error) {
	if !t.Valid() {
		return nil, errInvalidTile(t)
	}
	data, err := o.store.ReadAll(ctx, o.Key(t))
	if errors.Is(err, syscall.ENOENT) {
		return nil, errNotFound(t)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", o.Key(t), err)
	}
	return data, nil
}
