package lidarsim

import (
	"testing"

	"github.com/banshee-data/radarsim/internal/simradar/geom"
	"github.com/banshee-data/radarsim/internal/simradar/mesh"
	"github.com/banshee-data/radarsim/internal/simradar/raytrace"
)

func flatPlateBVH(t *testing.T) []raytrace.BVHEntry {
	t.Helper()
	points := []geom.Vec3{{-5, -5, 5}, {5, -5, 5}, {5, 5, 5}, {-5, 5, 5}}
	cells := []mesh.Cell{{0, 1, 2}, {0, 2, 3}}
	m, err := mesh.NewMesh(points, cells)
	if err != nil {
		t.Fatal(err)
	}
	verts := m.WorldVertices(geom.Vec3{}, geom.Euler{}.RotationMatrix(), geom.Vec3{})
	return []raytrace.BVHEntry{{Target: 0, BVH: mesh.Build(m, verts)}}
}

func TestTraceHitsAndMisses(t *testing.T) {
	bvhs := flatPlateBVH(t)
	sensor := Sensor{
		Position: geom.Vec3{},
		Phi:      []float64{0, 0},
		Theta:    []float64{1.5707963267948966, 0}, // straight up (hits), then horizontal (misses)
	}
	rays, err := Trace(sensor, bvhs, 1000)
	if err != nil {
		t.Fatal(err)
	}
	if !rays[0].Hit {
		t.Error("expected the straight-up beam to hit the plate")
	}
	if rays[1].Hit {
		t.Error("expected the horizontal beam to miss the plate")
	}
}

func TestTraceRejectsMismatchedLengths(t *testing.T) {
	sensor := Sensor{Phi: []float64{0, 1}, Theta: []float64{0}}
	_, err := Trace(sensor, nil, 1000)
	if err == nil {
		t.Fatal("expected an error for mismatched phi/theta lengths")
	}
}
