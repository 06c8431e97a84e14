package gdalkit

import "fmt"

// OGRErr wraps OGR's weakly typed integer return codes into a closed enum.
// The zero value is OGRERR_NONE. Every variant except OGRERR_NONE is a go
// error, so codes can be wrapped with %w and tested with errors.Is.
type OGRErr int

const (
	// OGRERR_NONE is the successful return code
	OGRERR_NONE = OGRErr(0)
	// OGRERR_NOT_ENOUGH_DATA means there was not enough data to deserialize
	OGRERR_NOT_ENOUGH_DATA = OGRErr(1)
	// OGRERR_NOT_ENOUGH_MEMORY is an allocation failure
	OGRERR_NOT_ENOUGH_MEMORY = OGRErr(2)
	// OGRERR_UNSUPPORTED_GEOMETRY_TYPE is returned for geometry types the library cannot handle
	OGRERR_UNSUPPORTED_GEOMETRY_TYPE = OGRErr(3)
	// OGRERR_UNSUPPORTED_OPERATION is returned for operations not supported on the target object
	OGRERR_UNSUPPORTED_OPERATION = OGRErr(4)
	// OGRERR_CORRUPT_DATA means the input could not be decoded
	OGRERR_CORRUPT_DATA = OGRErr(5)
	// OGRERR_FAILURE is a generic failure
	OGRERR_FAILURE = OGRErr(6)
	// OGRERR_UNSUPPORTED_SRS is returned for unsupported spatial reference systems
	OGRERR_UNSUPPORTED_SRS = OGRErr(7)
	// OGRERR_INVALID_HANDLE means an invalid or closed handle was passed in
	OGRERR_INVALID_HANDLE = OGRErr(8)
	// OGRERR_NON_EXISTING_FEATURE is returned when addressing a feature that does
	// not exist. Only defined for gdal>=2.0, see the gdal_pre20 build tag.
	OGRERR_NON_EXISTING_FEATURE = OGRErr(9)
)

// OGRErrFromCode converts a raw OGR return code to its OGRErr variant. It is
// total: codes outside the set defined by the mirrored gdal version return
// OGRERR_FAILURE and a non-nil error, they are never clamped onto a variant.
func OGRErrFromCode(code int) (OGRErr, error) {
	if code < int(OGRERR_NONE) || code > int(maxKnownOGRErr) {
		return OGRERR_FAILURE, fmt.Errorf("unrecognized ogr error code %d", code)
	}
	return OGRErr(code), nil
}

// Code returns the raw integer value expected by the OGR C contract. It is
// the inverse of OGRErrFromCode for all compiled-in variants.
func (e OGRErr) Code() int {
	return int(e)
}

func (e OGRErr) String() string {
	switch e {
	case OGRERR_NONE:
		return "none"
	case OGRERR_NOT_ENOUGH_DATA:
		return "not enough data"
	case OGRERR_NOT_ENOUGH_MEMORY:
		return "not enough memory"
	case OGRERR_UNSUPPORTED_GEOMETRY_TYPE:
		return "unsupported geometry type"
	case OGRERR_UNSUPPORTED_OPERATION:
		return "unsupported operation"
	case OGRERR_CORRUPT_DATA:
		return "corrupt data"
	case OGRERR_FAILURE:
		return "failure"
	case OGRERR_UNSUPPORTED_SRS:
		return "unsupported srs"
	case OGRERR_INVALID_HANDLE:
		return "invalid handle"
	case OGRERR_NON_EXISTING_FEATURE:
		return "non-existing feature"
	}
	return fmt.Sprintf("unknown ogr error %d", int(e))
}

// Error implements error. OGRERR_NONE also satisfies the interface: callers
// converting a code to a returned error should use ogrError to get nil on
// success instead.
func (e OGRErr) Error() string {
	return "OGR error: " + e.String()
}

// ogrError converts an OGR return code from method to a go error, nil for
// OGRERR_NONE
func ogrError(code int, method string) error {
	if code == int(OGRERR_NONE) {
		return nil
	}
	e, err := OGRErrFromCode(code)
	if err != nil {
		return fmt.Errorf("%s: %w", method, err)
	}
	return fmt.Errorf("%s: %w", method, e)
}
