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

package gcs_test

import (
	"context"
	"testing"

	"cloud.google.com/go/storage"
	"github.com/airbusgeo/gdalkit/gcs"
	"github.com/airbusgeo/gdalkit/tiles"
	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	b, o := gcs.Parse("bucket/path/to/object.png")
	assert.Equal(t, "bucket", b)
	assert.Equal(t, "path/to/object.png", o)

	b, o = gcs.Parse("/bucket/object")
	assert.Equal(t, "bucket", b)
	assert.Equal(t, "object", o)

	b, o = gcs.Parse("bucketonly")
	assert.Equal(t, "bucketonly", b)
	assert.Equal(t, "", o)

	b, o = gcs.Parse("")
	assert.Equal(t, "", b)
	assert.Equal(t, "", o)
}

func TestOptionValidation(t *testing.T) {
	assert.Panics(t, func() { gcs.BlockSize(0) })
	assert.Panics(t, func() { gcs.MaxCachedBlocks(0) })
	assert.Panics(t, func() { gcs.MaxCachedMetadatas(0) })
	assert.NotPanics(t, func() { gcs.BlockSize(1024) })
}

func TestHandler(t *testing.T) {
	ctx := context.Background()
	cl, err := storage.NewClient(ctx)
	if err != nil {
		t.Skipf("skip test on missing credentials: %v", err)
	}
	h, err := gcs.New(ctx, gcs.Client(cl), gcs.BlockSize(64*1024))
	if err != nil {
		t.Fatal(err)
	}
	var _ tiles.BlobReader = h

	_, err = h.ReadAll(ctx, "gdalkit-fake-test-bucket/doesnotexist.png")
	if err == nil {
		t.Error("ENOENT not raised")
	}
	// second probe must be served from the negative metadata cache
	_, err = h.Size("gdalkit-fake-test-bucket/doesnotexist.png")
	if err == nil {
		t.Error("ENOENT not raised from cache")
	}
}
