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

// Package gdalkit is the pure-go companion of a gdal binding stack. It mirrors
// the CPL/OGR contracts that do not require linking the gdal C library: error
// codes and classes, configuration options, KEY=VALUE option lists, affine
// geotransforms and well-known-binary probing.
package gdalkit

import (
	"fmt"
	"strconv"
)

// LibVersion is the GDAL lib versioning scheme
type LibVersion int

// The GDAL release whose C contract this package mirrors. The OGR error
// codes, CPL error classes and config option semantics implemented here
// track this version.
const (
	libReleaseName = "3.7.2"
	libReleaseDate = "20230905"
	libVersionNum  = LibVersion(3070200)
)

// Major returns the GDAL major version (e.g. "3" in 3.2.1)
func (lv LibVersion) Major() int {
	return int(lv) / 1000000
}

// Minor return the GDAL minor version (e.g. "2" in 3.2.1)
func (lv LibVersion) Minor() int {
	return (int(lv) - lv.Major()*1000000) / 10000
}

// Revision returns the GDAL revision number (e.g. "1" in 3.2.1)
func (lv LibVersion) Revision() int {
	return (int(lv) - lv.Major()*1000000 - lv.Minor()*10000) / 100
}

// Version returns the version of the gdal contract mirrored by this package
func Version() LibVersion {
	return libVersionNum
}

// VersionInfo returns metadata about the mirrored gdal release. Supported
// keys are VERSION_NUM, RELEASE_NAME, RELEASE_DATE and --version, any other
// key returns an empty string.
func VersionInfo(key string) string {
	switch key {
	case "VERSION_NUM":
		return strconv.Itoa(int(libVersionNum))
	case "RELEASE_NAME":
		return libReleaseName
	case "RELEASE_DATE":
		return libReleaseDate
	case "--version":
		return fmt.Sprintf("GDAL %s, released %s/%s/%s",
			libReleaseName, libReleaseDate[0:4], libReleaseDate[4:6], libReleaseDate[6:8])
	}
	return ""
}

// AssertMinVersion will panic if the mirrored version is not at least major.minor.revision
func AssertMinVersion(major, minor, revision int) {
	if !CheckMinVersion(major, minor, revision) {
		version := Version()
		panic(fmt.Errorf("version %d.%d.%d is not compatible with required version %d.%d.%d",
			version.Major(), version.Minor(), version.Revision(), major, minor, revision))
	}
}

// CheckMinVersion will return true if the mirrored version is at least major.minor.revision
func CheckMinVersion(major, minor, revision int) bool {
	version := Version()
	if version.Major() < major ||
		(version.Major() == major && version.Minor() < minor) ||
		(version.Major() == major && version.Minor() == minor && version.Revision() < revision) {
		return false
	}
	return true
}
