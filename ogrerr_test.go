package gdalkit

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOGRErrRoundTrip(t *testing.T) {
	// every variant of the current build round trips through its code
	for v := OGRERR_NONE; v <= maxKnownOGRErr; v++ {
		e, err := OGRErrFromCode(v.Code())
		assert.NoError(t, err)
		if e != v {
			t.Errorf("round trip failed for %s: got %s", v, e)
		}
	}
}

func TestOGRErrCodes(t *testing.T) {
	// numeric values are the upstream OGRERR_* constants and must not drift
	assert.Equal(t, 0, OGRERR_NONE.Code())
	assert.Equal(t, 1, OGRERR_NOT_ENOUGH_DATA.Code())
	assert.Equal(t, 2, OGRERR_NOT_ENOUGH_MEMORY.Code())
	assert.Equal(t, 3, OGRERR_UNSUPPORTED_GEOMETRY_TYPE.Code())
	assert.Equal(t, 4, OGRERR_UNSUPPORTED_OPERATION.Code())
	assert.Equal(t, 5, OGRERR_CORRUPT_DATA.Code())
	assert.Equal(t, 6, OGRERR_FAILURE.Code())
	assert.Equal(t, 7, OGRERR_UNSUPPORTED_SRS.Code())
	assert.Equal(t, 8, OGRERR_INVALID_HANDLE.Code())
	assert.Equal(t, 9, OGRERR_NON_EXISTING_FEATURE.Code())

	e, err := OGRErrFromCode(0)
	assert.NoError(t, err)
	assert.Equal(t, OGRERR_NONE, e)
}

func TestOGRErrUnrecognizedCodes(t *testing.T) {
	for _, code := range []int{-1, int(maxKnownOGRErr) + 1, 666, -2147483648, 2147483647} {
		e, err := OGRErrFromCode(code)
		assert.Error(t, err, "code %d", code)
		assert.Equal(t, OGRERR_FAILURE, e)
	}
}

func TestOGRErrWrapping(t *testing.T) {
	err := fmt.Errorf("deserialize geometry: %w", OGRERR_NOT_ENOUGH_DATA)
	assert.True(t, errors.Is(err, OGRERR_NOT_ENOUGH_DATA))
	assert.False(t, errors.Is(err, OGRERR_CORRUPT_DATA))
	assert.Contains(t, err.Error(), "not enough data")

	assert.NoError(t, ogrError(0, "op"))
	assert.Error(t, ogrError(6, "op"))
	assert.ErrorIs(t, ogrError(6, "op"), OGRERR_FAILURE)
	assert.Error(t, ogrError(-3, "op"))
}
