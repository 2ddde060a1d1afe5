// Package physopt evaluates, per ray/face hit, the Fresnel-reflected
// E-field and the physical-optics scattered-field contribution toward an
// observer.
package physopt

import (
	"math"
	"math/cmplx"

	"github.com/banshee-data/radarsim/internal/simradar/geom"
)

// Material is a face's electromagnetic material: complex permittivity and
// permeability, relative to free space. A permittivity whose real part is
// +Inf encodes a perfect electric conductor, per the data model's PEC
// sentinel.
type Material struct {
	Epsilon complex128
	Mu      complex128
}

// IsPEC reports whether m is the perfect-electric-conductor sentinel.
func (m Material) IsPEC() bool {
	return math.IsInf(real(m.Epsilon), 1)
}

// FresnelCoefficients returns the TE (r_s) and TM (r_p) reflection
// coefficients for a face with material m at incidence angle thetaI
// (radians from the face normal), against free space (air, relative
// permittivity/permeability both 1). PEC short-circuits to r_s=-1,
// r_p=+1 exactly, per the engine's PEC resolution.
func FresnelCoefficients(m Material, thetaI float64) (rs, rp complex128) {
	if m.IsPEC() {
		return complex(-1, 0), complex(1, 0)
	}

	n1 := complex(1, 0)
	n2 := cmplx.Sqrt(m.Epsilon * m.Mu)
	cosI := complex(math.Cos(thetaI), 0)
	sinI := complex(math.Sin(thetaI), 0)

	sinT := (n1 * sinI) / n2
	cosT := cmplx.Sqrt(1 - sinT*sinT)

	rs = (n1*cosI - n2*cosT) / (n1*cosI + n2*cosT)
	rp = (n2*cosI - n1*cosT) / (n2*cosI + n1*cosT)
	return rs, rp
}

// localBasis builds an orthonormal (te, tm) pair perpendicular to
// incidentDir, with te chosen perpendicular to the plane of incidence
// (the plane spanned by incidentDir and normal).
func localBasis(incidentDir, normal geom.Vec3) (te, tm geom.Vec3) {
	te = incidentDir.Cross(normal)
	if te.Len() < 1e-8 {
		// Normal incidence: plane of incidence is undefined, pick an
		// arbitrary perpendicular basis.
		arbitrary := geom.Vec3{X: 1}
		if math.Abs(float64(incidentDir.X)) > 0.9 {
			arbitrary = geom.Vec3{Y: 1}
		}
		te = incidentDir.Cross(arbitrary)
	}
	te = te.Normalize()
	tm = te.Cross(incidentDir).Normalize()
	return te, tm
}

// Reflect computes the mirror-reflected ray direction and the
// Fresnel-reflected E-field for a ray with direction incidentDir and
// field incidentE hitting a face with the given normal and material.
// normal is assumed to point toward the incident ray's origin side.
func Reflect(incidentDir geom.Vec3, incidentE geom.Vec3C, normal geom.Vec3, mat Material) (reflectedDir geom.Vec3, reflectedE geom.Vec3C) {
	cosI := -incidentDir.Dot(normal)
	thetaI := math.Acos(math.Max(-1, math.Min(1, float64(cosI))))

	reflectedDir = incidentDir.Sub(normal.Scale(2 * incidentDir.Dot(normal)))

	te, tm := localBasis(incidentDir, normal)
	teC, tmC := geom.VecFromReal(te), geom.VecFromReal(tm)

	eTE := incidentE.Dot(teC)
	eTM := incidentE.Dot(tmC)

	rs, rp := FresnelCoefficients(mat, thetaI)

	// The reflected field's transverse components live in the basis of
	// the reflected direction; te stays the same (perpendicular to the
	// plane of incidence is preserved under reflection), tm flips with
	// the direction.
	teOut, tmOut := localBasis(reflectedDir, normal)
	teOutC, tmOutC := geom.VecFromReal(teOut), geom.VecFromReal(tmOut)

	reflectedE = teOutC.Scale(eTE * rs).Add(tmOutC.Scale(eTM * rp))
	return reflectedDir, reflectedE
}

// GroundBlocks reports whether a ground-flagged face's reflected
// direction points into the half-space below the face (into the ground),
// which per spec.md §4.4 suppresses the contribution entirely.
func GroundBlocks(isGround bool, normal, reflectedDir geom.Vec3) bool {
	return isGround && reflectedDir.Dot(normal) < 0
}

// ScatteredField approximates the PO far-field integral
// (k/2π)·faceArea·J·exp(-jkR)/R toward an observer at distance r
// (meters) for frequency freq (Hz). surfaceCurrent stands in for the
// local induced current density derived from the reflected field. The
// k/2π amplitude factor (equivalently freq/c) is the standard physical-
// optics aperture prefactor: without it the returned field carries no
// wavelength dependence at all, and the normal-incidence flat-plate
// cross-section degenerates to 4π·faceArea² instead of the correct
// 4π·faceArea²/λ² (spec.md §4.5, verified against spec.md §8 scenario
// S4: a 1 m² PEC plate at 10 GHz has σ≈13963 m²).
func ScatteredField(faceArea float64, surfaceCurrent geom.Vec3C, freq, r float64) geom.Vec3C {
	if r <= 0 {
		return geom.Vec3C{}
	}
	k := 2 * math.Pi * freq / geom.SpeedOfLight
	phase := cmplx.Exp(complex(0, -k*r))
	scale := complex(k*faceArea/(2*math.Pi*r), 0) * phase
	return surfaceCurrent.Scale(scale)
}
