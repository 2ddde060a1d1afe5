// Package rcs reduces the physical-optics evaluator to a single-frequency
// monostatic/bistatic scalar cross-section for a static scene of meshes,
// per spec.md §4.10 — no motion sampling, no multi-bounce state machine,
// just a per-face PO sum illuminated by a single plane wave per
// (incidence, observation) direction pair.
package rcs

import (
	"fmt"
	"math"

	"github.com/banshee-data/radarsim/internal/simradar/geom"
	"github.com/banshee-data/radarsim/internal/simradar/mesh"
	"github.com/banshee-data/radarsim/internal/simradar/physopt"
)

// Target is a static scattering mesh with a uniform material, used only
// by the RCS evaluator (the full simulator's motion-sampled Target lives
// in the composition root).
type Target struct {
	Mesh     *mesh.Mesh
	Material physopt.Material
	IsGround bool
}

// Evaluate computes the bistatic RCS (m^2, linear — not dBsm) for each
// (incDir[i], obsDir[i]) pair against the assembled scene, per spec.md
// §4.10. incDir/obsDir/incPol/obsPol must all have equal length;
// mismatched lengths fail fast with an error the caller maps onto
// simerr.InvalidInput.
//
// Each face is treated as illuminated by a unit-amplitude plane wave
// along incDir[i] if it faces the source; its PO contribution is summed
// with a phase referenced to the scene origin (the standard physical-
// optics array-factor phase exp(-jk·x·(obsDir-incDir))), and the
// resulting far-field scattered amplitude is projected onto obsPol[i] to
// get the RCS via the usual sigma = 4*pi*|Escat|^2/|Einc|^2 relation
// (range-normalized: this evaluator fixes the PO integral's 1/R term to
// R=1, valid under the same far-field limit the monostatic/bistatic
// scalar result assumes).
func Evaluate(targets []Target, freq float64, incDir, obsDir []geom.Vec3, incPol, obsPol []geom.Vec3C, density float64) ([]float64, error) {
	n := len(incDir)
	if len(obsDir) != n || len(incPol) != n || len(obsPol) != n {
		return nil, fmt.Errorf("rcs: mismatched array lengths: incDir=%d obsDir=%d incPol=%d obsPol=%d", n, len(obsDir), len(incPol), len(obsPol))
	}
	if len(targets) == 0 {
		return nil, fmt.Errorf("rcs: no targets")
	}

	k := 2 * math.Pi * freq / geom.SpeedOfLight
	out := make([]float64, n)

	for i := 0; i < n; i++ {
		inc := incDir[i].Normalize()
		obs := obsDir[i].Normalize()
		diff := obs.Sub(inc)

		var escat geom.Vec3C
		for _, tgt := range targets {
			for f := 0; f < tgt.Mesh.NumFaces(); f++ {
				normal := tgt.Mesh.FaceNormal(f)
				// Illuminated faces are those whose outward normal has a
				// negative component along the incident direction (facing
				// the source).
				if normal.Dot(inc) >= 0 {
					continue
				}
				area := float64(tgt.Mesh.FaceArea(f))
				if area <= 0 {
					continue
				}

				_, reflectedE := physopt.Reflect(inc, incPol[i], normal, tgt.Material)
				if physopt.GroundBlocks(tgt.IsGround, normal, obs) {
					continue
				}

				centroid := faceCentroid(tgt.Mesh, f)
				phase := -k * float64(centroid.Dot(diff))
				weight := complex(math.Cos(phase), math.Sin(phase))

				contribution := physopt.ScatteredField(area, reflectedE, freq, 1)
				escat = escat.Add(contribution.Scale(weight))
			}
		}

		escatScalar := escat.Dot(obsPol[i])
		incMagSq := real(incPol[i].Dot(incPol[i]))
		if incMagSq == 0 {
			out[i] = 0
			continue
		}
		escatMagSq := real(escatScalar)*real(escatScalar) + imag(escatScalar)*imag(escatScalar)
		out[i] = 4 * math.Pi * escatMagSq / incMagSq
	}

	return out, nil
}

func faceCentroid(m *mesh.Mesh, face int) geom.Vec3 {
	c := m.Cells[face]
	v0, v1, v2 := m.Points[c[0]], m.Points[c[1]], m.Points[c[2]]
	return v0.Add(v1).Add(v2).Scale(1.0 / 3.0)
}
