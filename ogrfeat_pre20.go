//go:build gdal_pre20

package gdalkit

// gdal<2.0 stops at OGRERR_INVALID_HANDLE
const maxKnownOGRErr = OGRERR_INVALID_HANDLE
