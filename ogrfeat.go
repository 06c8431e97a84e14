//go:build !gdal_pre20

package gdalkit

// gdal>=2.0 defines OGRERR_NON_EXISTING_FEATURE
const maxKnownOGRErr = OGRERR_NON_EXISTING_FEATURE
