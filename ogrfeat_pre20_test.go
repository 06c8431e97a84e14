//go:build gdal_pre20

package gdalkit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNonExistingFeatureNotRecognized(t *testing.T) {
	// gdal<2.0 builds stop at OGRERR_INVALID_HANDLE, code 9 is unrecognized
	e, err := OGRErrFromCode(9)
	assert.Error(t, err)
	assert.Equal(t, OGRERR_FAILURE, e)
}
