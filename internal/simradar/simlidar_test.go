package simradar

import (
	"math"
	"testing"

	"github.com/banshee-data/radarsim/internal/simradar/geom"
	"github.com/banshee-data/radarsim/internal/simradar/lidarsim"
	"github.com/banshee-data/radarsim/internal/simradar/motion"
	"github.com/banshee-data/radarsim/internal/simradar/simconfig"
)

func TestSimLidarHitsFacingPlateAndMissesAway(t *testing.T) {
	e := New(*simconfig.DefaultConfig(), nil)
	target := Target{
		Mesh: pecPlate(t),
		Body: motion.Body{Location: motion.Const(geom.Vec3{X: 10})},
	}

	out, err := e.SimLidar(SimLidarInput{
		Sensor: lidarsim.Sensor{
			Position: geom.Vec3{},
			Phi:      []float64{0, math.Pi},
			Theta:    []float64{0, 0},
		},
		Targets: []Target{target},
	})
	if err != nil {
		t.Fatalf("SimLidar returned an error: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 rays, got %d", len(out))
	}
	if !out[0].Hit {
		t.Error("expected the forward-facing beam to hit the plate")
	}
	if out[1].Hit {
		t.Error("expected the beam aimed away from the plate to miss")
	}
}

func TestSimLidarRejectsPhiThetaLengthMismatch(t *testing.T) {
	e := New(*simconfig.DefaultConfig(), nil)
	_, err := e.SimLidar(SimLidarInput{
		Sensor: lidarsim.Sensor{Phi: []float64{0, 1}, Theta: []float64{0}},
	})
	if err == nil {
		t.Fatal("expected an error for mismatched phi/theta lengths")
	}
}

func TestSimLidarRejectsNilMesh(t *testing.T) {
	e := New(*simconfig.DefaultConfig(), nil)
	_, err := e.SimLidar(SimLidarInput{
		Sensor:  lidarsim.Sensor{Phi: []float64{0}, Theta: []float64{0}},
		Targets: []Target{{}},
	})
	if err == nil {
		t.Fatal("expected an error for a target with no mesh")
	}
}
