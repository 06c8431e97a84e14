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

package gdalkit

import "encoding/binary"

// GeometryType is an OGR wkb geometry type
type GeometryType uint32

const (
	// GTUnknown geometry type
	GTUnknown = GeometryType(0)
	// GTPoint geometry type
	GTPoint = GeometryType(1)
	// GTLineString geometry type
	GTLineString = GeometryType(2)
	// GTPolygon geometry type
	GTPolygon = GeometryType(3)
	// GTMultiPoint geometry type
	GTMultiPoint = GeometryType(4)
	// GTMultiLineString geometry type
	GTMultiLineString = GeometryType(5)
	// GTMultiPolygon geometry type
	GTMultiPolygon = GeometryType(6)
	// GTGeometryCollection geometry type
	GTGeometryCollection = GeometryType(7)
)

// wkb25DBit flags a 2.5D (z-aware) geometry in pre-iso wkb
const wkb25DBit = 0x80000000

func (gt GeometryType) String() string {
	switch gt {
	case GTPoint:
		return "Point"
	case GTLineString:
		return "LineString"
	case GTPolygon:
		return "Polygon"
	case GTMultiPoint:
		return "MultiPoint"
	case GTMultiLineString:
		return "MultiLineString"
	case GTMultiPolygon:
		return "MultiPolygon"
	case GTGeometryCollection:
		return "GeometryCollection"
	}
	return "Unknown"
}

// WKBGeometryType inspects the header of a well-known-binary geometry blob
// and returns its flattened geometry type. Z/M dimensioned types (iso 1000
// offsets or the 2.5D flag bit) are reduced to their 2D base type.
//
// Errors wrap the corresponding OGRErr variant: OGRERR_NOT_ENOUGH_DATA for a
// truncated header, OGRERR_CORRUPT_DATA for an invalid byte-order marker and
// OGRERR_UNSUPPORTED_GEOMETRY_TYPE for types outside the known set.
func WKBGeometryType(wkb []byte) (GeometryType, error) {
	if len(wkb) < 5 {
		return GTUnknown, ogrError(OGRERR_NOT_ENOUGH_DATA.Code(), "wkb header")
	}
	var order binary.ByteOrder
	switch wkb[0] {
	case 0:
		order = binary.BigEndian
	case 1:
		order = binary.LittleEndian
	default:
		return GTUnknown, ogrError(OGRERR_CORRUPT_DATA.Code(), "wkb byte order")
	}
	raw := order.Uint32(wkb[1:5])
	flat := raw &^ wkb25DBit
	flat %= 1000
	if flat > uint32(GTGeometryCollection) {
		return GTUnknown, ogrError(OGRERR_UNSUPPORTED_GEOMETRY_TYPE.Code(), "wkb geometry type")
	}
	return GeometryType(flat), nil
}
