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

// Package tiles addresses, fetches and caches slippy-map tiles from local and
// cloud-hosted tile stores.
package tiles

import (
	"fmt"
	"math"

	"github.com/airbusgeo/gdalkit"
)

// webmercator spheroid radius and extent
const earthRadius = 6378137.0

var originShift = math.Pi * earthRadius

// MaxZoom is the deepest addressable zoom level
const MaxZoom = 30

// Tile addresses a single tile in the XYZ (google/OSM) scheme: Y grows
// southward from the top-left corner of the web mercator extent.
type Tile struct {
	Z, X, Y int
}

func (t Tile) String() string {
	return fmt.Sprintf("%d/%d/%d", t.Z, t.X, t.Y)
}

// Valid returns wether t's coordinates exist at zoom level t.Z
func (t Tile) Valid() bool {
	if t.Z < 0 || t.Z > MaxZoom {
		return false
	}
	n := 1 << uint(t.Z)
	return t.X >= 0 && t.X < n && t.Y >= 0 && t.Y < n
}

// Bounds returns the tile extent in web mercator (EPSG:3857)
func (t Tile) Bounds() gdalkit.Bounds {
	n := float64(int(1) << uint(t.Z))
	size := 2 * originShift / n
	minx := -originShift + float64(t.X)*size
	maxy := originShift - float64(t.Y)*size
	return gdalkit.Bounds{minx, maxy - size, minx + size, maxy}
}

// GeoTransform returns the affine transform of the tile rendered as a
// tileSize x tileSize raster
func (t Tile) GeoTransform(tileSize int) gdalkit.GeoTransform {
	b := t.Bounds()
	res := (b.MaxX() - b.MinX()) / float64(tileSize)
	return gdalkit.GeoTransform{b.MinX(), res, 0, b.MaxY(), 0, -res}
}

// Parent returns the tile containing t at the previous zoom level. The
// parent of 0/0/0 is itself.
func (t Tile) Parent() Tile {
	if t.Z == 0 {
		return t
	}
	return Tile{Z: t.Z - 1, X: t.X / 2, Y: t.Y / 2}
}

// Children returns the four tiles covering t at the next zoom level
func (t Tile) Children() [4]Tile {
	return [4]Tile{
		{Z: t.Z + 1, X: 2 * t.X, Y: 2 * t.Y},
		{Z: t.Z + 1, X: 2*t.X + 1, Y: 2 * t.Y},
		{Z: t.Z + 1, X: 2 * t.X, Y: 2*t.Y + 1},
		{Z: t.Z + 1, X: 2*t.X + 1, Y: 2*t.Y + 1},
	}
}

// FromLonLat returns the tile containing the lon,lat (EPSG:4326) point at
// zoom z. Latitudes beyond the web mercator domain are clamped to the edge
// tiles.
func FromLonLat(lon, lat float64, z int) Tile {
	n := float64(int(1) << uint(z))
	x := int(math.Floor((lon + 180) / 360 * n))
	latrad := lat * math.Pi / 180
	y := int(math.Floor((1 - math.Log(math.Tan(latrad)+1/math.Cos(latrad))/math.Pi) / 2 * n))
	clamp := func(v int) int {
		if v < 0 {
			return 0
		}
		if v > int(n)-1 {
			return int(n) - 1
		}
		return v
	}
	return Tile{Z: z, X: clamp(x), Y: clamp(y)}
}
