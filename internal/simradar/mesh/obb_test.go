package mesh

import (
	"math"
	"testing"

	"github.com/banshee-data/radarsim/internal/simradar/geom"
)

func elongatedRect() (*Mesh, error) {
	points := []geom.Vec3{
		{-2, -0.5, 0}, {2, -0.5, 0}, {2, 0.5, 0}, {-2, 0.5, 0},
	}
	cells := []Cell{{0, 1, 2}, {0, 2, 3}}
	return NewMesh(points, cells)
}

func TestComputeOBBAlignsWithElongatedAxis(t *testing.T) {
	m, err := elongatedRect()
	if err != nil {
		t.Fatal(err)
	}
	obb := m.ComputeOBB()

	if math.Abs(float64(obb.Axes[0].Y)) > 0.01 || math.Abs(float64(obb.Axes[0].Z)) > 0.01 {
		t.Errorf("expected the principal axis to align with X for a rectangle elongated along X, got %+v", obb.Axes[0])
	}
	if obb.HalfExtent[0] < 1.99 || obb.HalfExtent[0] > 2.01 {
		t.Errorf("expected a half-extent of ~2 along the principal axis, got %v", obb.HalfExtent[0])
	}
	if obb.HalfExtent[1] < 0.49 || obb.HalfExtent[1] > 0.51 {
		t.Errorf("expected a half-extent of ~0.5 along the minor axis, got %v", obb.HalfExtent[1])
	}

	wantDiag := math.Sqrt(4*4 + 1*1)
	if got := float64(obb.Diagonal()); math.Abs(got-wantDiag) > 0.05 {
		t.Errorf("expected diagonal ~%v, got %v", wantDiag, got)
	}
}

func TestComputeOBBSinglePointIsDegenerate(t *testing.T) {
	m, err := NewMesh([]geom.Vec3{{1, 2, 3}, {1, 2, 3}, {1, 2, 3}}, []Cell{{0, 1, 2}})
	if err != nil {
		t.Fatal(err)
	}
	obb := m.ComputeOBB()
	if obb.HalfExtent[0] != 0 || obb.HalfExtent[1] != 0 || obb.HalfExtent[2] != 0 {
		t.Errorf("expected zero extent for coincident points, got %+v", obb.HalfExtent)
	}
}
