package simradar

import (
	"math"
	"testing"

	"github.com/banshee-data/radarsim/internal/simradar/geom"
	"github.com/banshee-data/radarsim/internal/simradar/mesh"
	"github.com/banshee-data/radarsim/internal/simradar/physopt"
	"github.com/banshee-data/radarsim/internal/simradar/rcs"
	"github.com/banshee-data/radarsim/internal/simradar/simconfig"
)

func pecPlate(t *testing.T) *mesh.Mesh {
	t.Helper()
	m, err := mesh.NewMesh(
		[]geom.Vec3{{0, -1, -1}, {0, 1, -1}, {0, 1, 1}, {0, -1, 1}},
		[]mesh.Cell{{0, 1, 2}, {0, 2, 3}},
	)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestSimRCSMonostaticPECPlateIsNonZero(t *testing.T) {
	e := New(*simconfig.DefaultConfig(), nil)
	targets := []rcs.Target{{
		Mesh:     pecPlate(t),
		Material: physopt.Material{Epsilon: complex(math.Inf(1), 0)},
	}}

	out, err := e.SimRCS(SimRCSInput{
		Targets: targets,
		Freq:    10e9,
		IncDir:  []geom.Vec3{{X: -1}},
		ObsDir:  []geom.Vec3{{X: -1}},
		IncPol:  []geom.Vec3C{{Z: 1}},
		ObsPol:  []geom.Vec3C{{Z: 1}},
		Density: 1,
	})
	if err != nil {
		t.Fatalf("SimRCS returned an error: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 result, got %d", len(out))
	}
	if out[0] <= 0 {
		t.Errorf("expected a positive monostatic RCS for a broadside PEC plate, got %v", out[0])
	}
}

func TestSimRCSEnforcesFreeTier(t *testing.T) {
	e := New(*simconfig.DefaultConfig(), nil)
	limit := 0
	e.SetFreeTier(&limit)

	targets := []rcs.Target{{}, {}, {}, {}}
	_, err := e.SimRCS(SimRCSInput{
		Targets: targets,
		Freq:    10e9,
		IncDir:  make([]geom.Vec3, 4),
		ObsDir:  make([]geom.Vec3, 4),
		IncPol:  make([]geom.Vec3C, 4),
		ObsPol:  make([]geom.Vec3C, 4),
	})
	requireTierExceeded(t, err)
}
