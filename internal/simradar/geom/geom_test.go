package geom

import (
	"math"
	"testing"
)

func TestVec3Basics(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{4, 5, 6}

	if got := a.Add(b); got != (Vec3{5, 7, 9}) {
		t.Errorf("Add: got %+v", got)
	}
	if got := a.Dot(b); got != 32 {
		t.Errorf("Dot: got %v, want 32", got)
	}
	if got := a.Cross(b); got != (Vec3{-3, 6, -3}) {
		t.Errorf("Cross: got %+v", got)
	}
	if got := (Vec3{3, 4, 0}).Len(); got != 5 {
		t.Errorf("Len: got %v, want 5", got)
	}
}

func TestVec3NormalizeZero(t *testing.T) {
	z := Vec3{}
	if got := z.Normalize(); got != z {
		t.Errorf("Normalize of zero vector should stay zero, got %+v", got)
	}
}

func TestEulerRotationMatrixIdentity(t *testing.T) {
	m := Euler{}.RotationMatrix()
	v := Vec3{1, 2, 3}
	if got := m.Apply(v); got != v {
		t.Errorf("identity rotation should not move the vector, got %+v", got)
	}
}

func TestEulerYawRotatesXIntoY(t *testing.T) {
	m := Euler{Yaw: Real(math.Pi / 2)}.RotationMatrix()
	got := m.Apply(Vec3{1, 0, 0})
	if math.Abs(float64(got.X)) > 1e-5 || math.Abs(float64(got.Y)-1) > 1e-5 {
		t.Errorf("90deg yaw of +X should land near +Y, got %+v", got)
	}
}

func TestAABBUnionAndLongestAxis(t *testing.T) {
	a := EmptyAABB().ExpandPoint(Vec3{0, 0, 0}).ExpandPoint(Vec3{10, 1, 2})
	if a.LongestAxis() != 0 {
		t.Errorf("expected X to be the longest axis, got %d", a.LongestAxis())
	}
	b := EmptyAABB().ExpandPoint(Vec3{5, 5, 5}).ExpandPoint(Vec3{6, 6, 6})
	u := a.Union(b)
	if u.Min != (Vec3{0, 0, 0}) || u.Max != (Vec3{10, 6, 6}) {
		t.Errorf("union mismatch: %+v", u)
	}
}

func TestIntersectTriangleHit(t *testing.T) {
	v0 := Vec3{-1, -1, 5}
	v1 := Vec3{1, -1, 5}
	v2 := Vec3{0, 1, 5}

	hit, ok := IntersectTriangle(Vec3{0, 0, 0}, Vec3{0, 0, 1}, v0, v1, v2, 1e-5)
	if !ok {
		t.Fatal("expected a hit along +Z through the triangle")
	}
	if math.Abs(float64(hit.T)-5) > 1e-4 {
		t.Errorf("expected t≈5, got %v", hit.T)
	}
}

func TestIntersectTriangleMissParallel(t *testing.T) {
	v0 := Vec3{-1, -1, 5}
	v1 := Vec3{1, -1, 5}
	v2 := Vec3{0, 1, 5}

	// Ray travels in the triangle's own plane (parallel), must miss.
	_, ok := IntersectTriangle(Vec3{0, 0, 5}, Vec3{1, 0, 0}, v0, v1, v2, 1e-5)
	if ok {
		t.Error("expected a parallel-ray miss")
	}
}

func TestIntersectTriangleMissOutsideEdges(t *testing.T) {
	v0 := Vec3{-1, -1, 5}
	v1 := Vec3{1, -1, 5}
	v2 := Vec3{0, 1, 5}

	_, ok := IntersectTriangle(Vec3{10, 10, 0}, Vec3{0, 0, 1}, v0, v1, v2, 1e-5)
	if ok {
		t.Error("expected a miss outside the triangle's edges")
	}
}

func TestMat3TransposeInvertsRotation(t *testing.T) {
	e := Euler{Yaw: Real(math.Pi / 3), Pitch: Real(math.Pi / 7), Roll: Real(math.Pi / 11)}
	m := e.RotationMatrix()
	v := Vec3{1, 2, 3}
	world := m.Apply(v)
	back := m.Transpose().Apply(world)
	if math.Abs(float64(back.X-v.X)) > 1e-4 || math.Abs(float64(back.Y-v.Y)) > 1e-4 || math.Abs(float64(back.Z-v.Z)) > 1e-4 {
		t.Errorf("transpose should invert the rotation, got %+v want %+v", back, v)
	}
}

func TestVec3CIsZero(t *testing.T) {
	if !(Vec3C{}).IsZero() {
		t.Error("zero-valued Vec3C should report IsZero")
	}
	if (Vec3C{X: 1}).IsZero() {
		t.Error("non-zero Vec3C should not report IsZero")
	}
}
