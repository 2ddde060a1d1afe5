package raytrace

import (
	"testing"

	"github.com/banshee-data/radarsim/internal/simradar/geom"
	"github.com/banshee-data/radarsim/internal/simradar/mesh"
	"github.com/banshee-data/radarsim/internal/simradar/waveform"
)

func flatPlate(t *testing.T) (*mesh.Mesh, *mesh.BVH) {
	t.Helper()
	points := []geom.Vec3{{-5, -5, 0}, {5, -5, 0}, {5, 5, 0}, {-5, 5, 0}}
	cells := []mesh.Cell{{0, 1, 2}, {0, 2, 3}}
	m, err := mesh.NewMesh(points, cells)
	if err != nil {
		t.Fatal(err)
	}
	verts := m.WorldVertices(geom.Vec3{}, geom.Euler{}.RotationMatrix(), geom.Vec3{})
	return m, mesh.Build(m, verts)
}

func widePattern(t *testing.T) waveform.AntennaPattern {
	t.Helper()
	p, err := waveform.NewAntennaPattern([]float64{-1, 0, 1}, []float64{-3, 0, -3})
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestEmitRaysProducesAtLeastOneRay(t *testing.T) {
	pat := widePattern(t)
	ch := waveform.TxChannel{
		AzPattern: pat, ElPattern: pat,
		GridSpacing:  0.2,
		Polarization: geom.Vec3C{X: 1},
	}
	rays := EmitRays(ch, geom.Vec3{}, geom.Euler{}.RotationMatrix(), 10e9, 1, 1)
	if len(rays) == 0 {
		t.Fatal("expected at least one emitted ray")
	}
}

func TestEmitRaysDropsBelowGainFloor(t *testing.T) {
	narrow, err := waveform.NewAntennaPattern([]float64{-1, -0.25, 0, 0.25, 1}, []float64{-100, -100, 0, -100, -100})
	if err != nil {
		t.Fatal(err)
	}
	ch := waveform.TxChannel{
		AzPattern: narrow, ElPattern: narrow,
		GridSpacing:  0.5,
		Polarization: geom.Vec3C{X: 1},
	}
	// targetExtent 0 keeps the 0.5 rad GridSpacing, so the grid visits
	// -1, -0.5, 0, 0.5, 1 on each axis.
	rays := EmitRays(ch, geom.Vec3{}, geom.Euler{}.RotationMatrix(), 10e9, 1, 0)
	// At az=el=0 gain is 0dBi (kept, along the +X boresight); every other
	// grid point is at least -100dB relative, well below the -40dB floor,
	// and dropped.
	for _, r := range rays {
		if r.Dir.X < 0.99 {
			t.Errorf("expected only the boresight ray to survive, got a stray ray with dir %+v", r.Dir)
		}
	}
}

func TestTraceHitsAndTerminatesOnMiss(t *testing.T) {
	_, bvh := flatPlate(t)
	bvhs := []BVHEntry{{Target: 0, BVH: bvh}}

	var contributed int
	contribute := func(hit mesh.RayHit, targetIdx int, ray Ray) { contributed++ }
	reflect := func(dir geom.Vec3, field geom.Vec3C, normal geom.Vec3, targetIdx, face int) (geom.Vec3, geom.Vec3C, bool) {
		return geom.Vec3{Z: 1}, field, true // always terminate after first hit
	}

	rays := []Ray{
		{Origin: geom.Vec3{Z: -10}, Dir: geom.Vec3{Z: 1}, Field: geom.Vec3C{X: 1}},
		{Origin: geom.Vec3{X: 1000, Z: -10}, Dir: geom.Vec3{Z: 1}, Field: geom.Vec3C{X: 1}}, // misses
	}
	Trace(rays, bvhs, DefaultFilter, 1000, reflect, contribute)

	if contributed != 1 {
		t.Errorf("expected exactly one contribution (the hit ray), got %d", contributed)
	}
}

func TestTraceRespectsMaxReflections(t *testing.T) {
	m, bvh := flatPlate(t)
	below := mesh.Build(m, m.WorldVertices(geom.Vec3{}, geom.Euler{}.RotationMatrix(), geom.Vec3{Z: -2}))
	bvhs := []BVHEntry{{Target: 0, BVH: bvh}, {Target: 1, BVH: below}}

	var contributed int
	contribute := func(hit mesh.RayHit, targetIdx int, ray Ray) { contributed++ }
	// Bounce straight back every time, so the ray ping-pongs between the
	// plate at z=0 and the one at z=-2 forever, to exercise the filter.Max
	// cutoff rather than relying on a natural miss.
	reflect := func(dir geom.Vec3, field geom.Vec3C, normal geom.Vec3, targetIdx, face int) (geom.Vec3, geom.Vec3C, bool) {
		return dir.Scale(-1), field, false
	}

	rays := []Ray{{Origin: geom.Vec3{Z: -1}, Dir: geom.Vec3{Z: 1}, Field: geom.Vec3C{X: 1}}}
	Trace(rays, bvhs, Filter{Min: 0, Max: 2}, 1000, reflect, contribute)

	if contributed != 3 { // reflections 0, 1, 2 all within [0,2]
		t.Errorf("expected 3 contributions (reflections 0..2), got %d", contributed)
	}
}

func TestBackPropagateDetectsOcclusion(t *testing.T) {
	_, bvh := flatPlate(t)
	bvhs := []BVHEntry{{Target: 0, BVH: bvh}}

	clear := BackPropagate(geom.Vec3{Z: 10}, geom.Vec3{Z: 20}, bvhs, 1000)
	if !clear {
		t.Error("expected a clear line of sight above the plate")
	}

	occluded := BackPropagate(geom.Vec3{Z: -10}, geom.Vec3{Z: 10}, bvhs, 1000)
	if occluded {
		t.Error("expected the plate to occlude a path straight through it")
	}
}
