package gdalkit

import "math"

// Bounds represents an envelope in the order minx,miny,maxx,maxy
type Bounds [4]float64

func (b Bounds) MinX() float64 {
	return b[0]
}

func (b Bounds) MinY() float64 {
	return b[1]
}

func (b Bounds) MaxX() float64 {
	return b[2]
}

func (b Bounds) MaxY() float64 {
	return b[3]
}

// Union returns the union of these bounds with other ones
func (b Bounds) Union(other Bounds) Bounds {
	return [4]float64{
		math.Min(b.MinX(), other.MinX()),
		math.Min(b.MinY(), other.MinY()),
		math.Max(b.MaxX(), other.MaxX()),
		math.Max(b.MaxY(), other.MaxY()),
	}
}

// Intersect returns the intersection of these bounds with other ones, and
// false if they do not overlap
func (b Bounds) Intersect(other Bounds) (Bounds, bool) {
	i := Bounds{
		math.Max(b.MinX(), other.MinX()),
		math.Max(b.MinY(), other.MinY()),
		math.Min(b.MaxX(), other.MaxX()),
		math.Min(b.MaxY(), other.MaxY()),
	}
	if i.MinX() >= i.MaxX() || i.MinY() >= i.MaxY() {
		return Bounds{}, false
	}
	return i, true
}

// Contains returns wether the x,y point lies inside the bounds
func (b Bounds) Contains(x, y float64) bool {
	return x >= b.MinX() && x <= b.MaxX() && y >= b.MinY() && y <= b.MaxY()
}
