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

import (
	"errors"
	"math"
)

// GeoTransform is the affine transform mapping pixel/line raster coordinates
// to georeferenced coordinates:
//
//	X = gt[0] + pixel*gt[1] + line*gt[2]
//	Y = gt[3] + pixel*gt[4] + line*gt[5]
//
// gt[5] is negative for a north-up image.
type GeoTransform [6]float64

// Apply transforms a pixel/line coordinate to a georeferenced X/Y coordinate
func (gt GeoTransform) Apply(pixel, line float64) (float64, float64) {
	return gt[0] + pixel*gt[1] + line*gt[2],
		gt[3] + pixel*gt[4] + line*gt[5]
}

// Origin returns the georeferenced coordinate of the upper-left corner of the
// upper-left pixel
func (gt GeoTransform) Origin() (float64, float64) {
	return gt[0], gt[3]
}

// PixelSize returns the W-E and N-S pixel resolutions
func (gt GeoTransform) PixelSize() (float64, float64) {
	return gt[1], gt[5]
}

// Invert returns the transform mapping georeferenced coordinates back to
// pixel/line coordinates, or an error if the transform is not invertible
func (gt GeoTransform) Invert() (GeoTransform, error) {
	det := gt[1]*gt[5] - gt[2]*gt[4]
	if math.Abs(det) < 1e-15 {
		return GeoTransform{}, errors.New("non invertible geotransform")
	}
	inv := 1.0 / det
	return GeoTransform{
		(gt[2]*gt[3] - gt[0]*gt[5]) * inv,
		gt[5] * inv,
		-gt[2] * inv,
		(-gt[1]*gt[3] + gt[0]*gt[4]) * inv,
		-gt[4] * inv,
		gt[1] * inv,
	}, nil
}

// Bounds returns the georeferenced envelope of a width x height raster
func (gt GeoTransform) Bounds(width, height int) Bounds {
	x0, y0 := gt.Apply(0, 0)
	x1, y1 := gt.Apply(float64(width), float64(height))
	return Bounds{
		math.Min(x0, x1),
		math.Min(y0, y1),
		math.Max(x0, x1),
		math.Max(y0, y1),
	}
}
