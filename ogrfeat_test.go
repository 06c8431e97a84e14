//go:build !gdal_pre20

package gdalkit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNonExistingFeatureRecognized(t *testing.T) {
	e, err := OGRErrFromCode(9)
	assert.NoError(t, err)
	assert.Equal(t, OGRERR_NON_EXISTING_FEATURE, e)
}
