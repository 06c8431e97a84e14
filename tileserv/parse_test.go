package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGSParse(t *testing.T) {

	tc := func(in string, expBucket, expObject string) {
		t.Helper()
		b, o := gsparse(in)
		assert.Equal(t, expBucket, b)
		assert.Equal(t, expObject, o)
	}
	tc("sdgfdsf", "", "")
	tc("gs://", "", "")
	tc("gs://a", "", "")
	tc("gs://a/", "", "")
	tc("gs://a/b", "a", "b")
	tc("gs://a/b/c", "a", "b/c")
	tc("gs://a/b/", "a", "b")
	tc("gs://a/b/c/", "a", "b/c")

}

func TestLayerParse(t *testing.T) {
	name, spec, err := layerparse("base=tiles.mbtiles")
	assert.NoError(t, err)
	assert.Equal(t, "base", name)
	assert.Equal(t, "tiles.mbtiles", spec)

	name, spec, err = layerparse("ortho=gs://bucket/prefix")
	assert.NoError(t, err)
	assert.Equal(t, "ortho", name)
	assert.Equal(t, "gs://bucket/prefix", spec)

	_, _, err = layerparse("noequals")
	assert.Error(t, err)
	_, _, err = layerparse("=spec")
	assert.Error(t, err)
	_, _, err = layerparse("name=")
	assert.Error(t, err)
}
