package physopt

import (
	"math"
	"testing"

	"github.com/banshee-data/radarsim/internal/simradar/geom"
)

func TestFresnelCoefficientsPEC(t *testing.T) {
	rs, rp := FresnelCoefficients(Material{Epsilon: complex(math.Inf(1), 0)}, 0.3)
	if rs != -1 || rp != 1 {
		t.Errorf("expected PEC r_s=-1, r_p=+1, got r_s=%v r_p=%v", rs, rp)
	}
}

func TestFresnelCoefficientsNormalIncidenceDielectric(t *testing.T) {
	mat := Material{Epsilon: complex(4, 0), Mu: complex(1, 0)}
	rs, rp := FresnelCoefficients(mat, 0)
	if math.Abs(real(rs)+real(rp)) > 1e-9 {
		t.Errorf("at normal incidence r_p should equal -r_s under the PEC-consistent sign convention, got %v vs %v", rs, rp)
	}
}

func TestReflectMirrorsDirection(t *testing.T) {
	incident := geom.Vec3{X: 0, Y: 0, Z: 1}
	normal := geom.Vec3{X: 0, Y: 0, Z: -1}
	pec := Material{Epsilon: complex(math.Inf(1), 0)}

	dir, _ := Reflect(incident, geom.Vec3C{X: 1}, normal, pec)
	if dir.Z >= 0 {
		t.Errorf("expected reflected direction to flip Z, got %+v", dir)
	}
}

func TestGroundBlocksSuppressesDownwardReflection(t *testing.T) {
	normal := geom.Vec3{Z: 1}
	down := geom.Vec3{Z: -1}
	if !GroundBlocks(true, normal, down) {
		t.Error("expected a downward reflection off a ground face to be blocked")
	}
	up := geom.Vec3{Z: 1}
	if GroundBlocks(true, normal, up) {
		t.Error("expected an upward reflection not to be blocked")
	}
	if GroundBlocks(false, normal, down) {
		t.Error("non-ground faces should never block")
	}
}

func TestScatteredFieldFallsOffWithDistance(t *testing.T) {
	near := ScatteredField(1.0, geom.Vec3C{X: 1}, 10e9, 10)
	far := ScatteredField(1.0, geom.Vec3C{X: 1}, 10e9, 100)
	if cmplxAbs(near.X) <= cmplxAbs(far.X) {
		t.Errorf("expected field magnitude to fall off with distance, near=%v far=%v", near.X, far.X)
	}
}

func cmplxAbs(c complex128) float64 {
	return real(c)*real(c) + imag(c)*imag(c)
}

func TestScatteredFieldZeroDistanceIsZero(t *testing.T) {
	v := ScatteredField(1.0, geom.Vec3C{X: 1}, 10e9, 0)
	if !v.IsZero() {
		t.Errorf("expected zero-distance to return zero field, got %+v", v)
	}
}
