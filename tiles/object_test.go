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
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeBlobs map[string][]byte

func (f fakeBlobs) ReadAll(ctx context.Context, key string) ([]byte, error) {
	d, ok := f[key]
	if !ok {
		return nil, syscall.ENOENT
	}
	return d, nil
}

func TestObjectSource(t *testing.T) {
	ctx := context.Background()
	store := fakeBlobs{
		"bucket/basemap/3/1/2.png": []byte("object tile"),
	}
	src := NewObjectSource(store, "bucket/basemap/", "png")
	assert.Equal(t, "png", src.Format())
	assert.Equal(t, "bucket/basemap/3/1/2.png", src.Key(Tile{3, 1, 2}))

	d, err := src.ReadTile(ctx, Tile{3, 1, 2})
	assert.NoError(t, err)
	assert.Equal(t, []byte("object tile"), d)

	_, err = src.ReadTile(ctx, Tile{3, 0, 0})
	assert.True(t, IsNotFound(err))

	_, err = src.ReadTile(ctx, Tile{3, -1, 0})
	assert.Error(t, err)
	assert.False(t, IsNotFound(err))

	src = NewObjectSource(store, "bucket/basemap", ".png")
	assert.Equal(t, "bucket/basemap/3/1/2.png", src.Key(Tile{3, 1, 2}))
}
