package geom

import "math"

// AABB is an axis-aligned bounding box, used by the BVH build and
// traversal.
type AABB struct {
	Min, Max Vec3
}

// EmptyAABB returns an AABB that Union-s correctly as the identity
// element (any real point expands it).
func EmptyAABB() AABB {
	inf := Real(math.Inf(1))
	return AABB{
		Min: Vec3{inf, inf, inf},
		Max: Vec3{-inf, -inf, -inf},
	}
}

// ExpandPoint grows the box to include p.
func (b AABB) ExpandPoint(p Vec3) AABB {
	return AABB{
		Min: Vec3{min3(b.Min.X, p.X), min3(b.Min.Y, p.Y), min3(b.Min.Z, p.Z)},
		Max: Vec3{max3(b.Max.X, p.X), max3(b.Max.Y, p.Y), max3(b.Max.Z, p.Z)},
	}
}

// Union returns the smallest box containing both a and b.
func (a AABB) Union(b AABB) AABB {
	return AABB{
		Min: Vec3{min3(a.Min.X, b.Min.X), min3(a.Min.Y, b.Min.Y), min3(a.Min.Z, b.Min.Z)},
		Max: Vec3{max3(a.Max.X, b.Max.X), max3(a.Max.Y, b.Max.Y), max3(a.Max.Z, b.Max.Z)},
	}
}

// Centroid returns the box's centre point.
func (b AABB) Centroid() Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Extent returns the per-axis side lengths.
func (b AABB) Extent() Vec3 {
	return b.Max.Sub(b.Min)
}

// LongestAxis returns 0, 1, or 2 for X, Y, Z, the axis the BVH builder
// splits along.
func (b AABB) LongestAxis() int {
	e := b.Extent()
	if e.X >= e.Y && e.X >= e.Z {
		return 0
	}
	if e.Y >= e.Z {
		return 1
	}
	return 2
}

// Diagonal returns the box's diagonal length, used to derive the
// scene-extent-relative intersection epsilon.
func (b AABB) Diagonal() Real {
	return b.Extent().Len()
}

// IntersectRay performs a slab test, returning whether the ray
// (origin, dir) intersects b within [tMin, tMax].
func (b AABB) IntersectRay(origin, dir Vec3, tMin, tMax Real) bool {
	for axis := 0; axis < 3; axis++ {
		o, d, lo, hi := axisComponents(origin, dir, b, axis)
		if d == 0 {
			if o < lo || o > hi {
				return false
			}
			continue
		}
		inv := 1 / d
		t0 := (lo - o) * inv
		t1 := (hi - o) * inv
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		if t0 > tMin {
			tMin = t0
		}
		if t1 < tMax {
			tMax = t1
		}
		if tMin > tMax {
			return false
		}
	}
	return true
}

func axisComponents(origin, dir Vec3, b AABB, axis int) (o, d, lo, hi Real) {
	switch axis {
	case 0:
		return origin.X, dir.X, b.Min.X, b.Max.X
	case 1:
		return origin.Y, dir.Y, b.Min.Y, b.Max.Y
	default:
		return origin.Z, dir.Z, b.Min.Z, b.Max.Z
	}
}

func min3(a, b Real) Real {
	if a < b {
		return a
	}
	return b
}

func max3(a, b Real) Real {
	if a > b {
		return a
	}
	return b
}
