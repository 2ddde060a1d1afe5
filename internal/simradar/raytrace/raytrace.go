// Package raytrace implements shoot-and-bounce-ray generation and the
// explicit bounce/back-propagation work queue. It knows how to tessellate
// an antenna's solid angle and how to walk a ray through a scene of
// BVHs; it never computes Fresnel reflection or the PO integral itself —
// those live in physopt and are wired in by the caller via Reflector and
// Contributor so this package never needs to import physopt (the
// composition root is the only package allowed to cross leaf-package
// boundaries).
package raytrace

import (
	"math"

	"github.com/banshee-data/radarsim/internal/simradar/geom"
	"github.com/banshee-data/radarsim/internal/simradar/mesh"
	"github.com/banshee-data/radarsim/internal/simradar/waveform"
)

// Ray is the SBR ray carrier: origin, direction, a 3-component complex
// E-field, and how many reflections it has already undergone. Recursion
// is replaced by an explicit work queue (see Trace) to avoid deep call
// stacks on long bounce chains.
type Ray struct {
	Origin      geom.Vec3
	Dir         geom.Vec3
	Field       geom.Vec3C
	Reflections int
	// PathLen is the distance already travelled from the emitting Tx
	// channel to Origin, accumulated bounce by bounce so Contributor can
	// recover the total Tx-to-hit path length (PathLen + the segment
	// length to the hit point) for delay/phase computation without
	// re-walking the bounce chain itself.
	PathLen geom.Real
	// EmitIdx identifies which emitted ray (the index EmitRays gave it)
	// this bounce chain descends from, carried unchanged through every
	// reflection so a ray-log record can be attributed to its origin ray
	// even after several bounces.
	EmitIdx int
}

// Filter bounds which reflection counts contribute to the baseband.
type Filter struct {
	Min int
	Max int
}

// DefaultFilter is ray_filter's documented default: every reflection
// count up to the default bounce cap of 10 contributes.
var DefaultFilter = Filter{Min: 0, Max: 10}

// GainBelowFloorDBi is the pattern-gain cutoff, relative to the channel's
// peak gain, below which an emitted ray is dropped outright rather than
// traced.
const GainBelowFloorDBi = -40

// EmitRays tessellates a Tx channel's antenna solid angle at a spacing of
// min(channel.GridSpacing, λ/density/targetExtent) and emits one ray per
// grid cell, weighted by the antenna pattern and carrying the channel's
// polarisation as its initial field. Rays whose combined pattern gain
// falls more than 40 dB below the pattern's peak are dropped before
// tracing.
func EmitRays(channel waveform.TxChannel, origin geom.Vec3, rot geom.Mat3, fInstantaneous, density float64, targetExtent geom.Real) []Ray {
	lambda := geom.SpeedOfLight / fInstantaneous
	spacing := channel.GridSpacing
	if targetExtent > 0 && density > 0 {
		diffraction := lambda / (density * float64(targetExtent))
		if diffraction < spacing {
			spacing = diffraction
		}
	}
	if spacing <= 0 {
		spacing = channel.GridSpacing
	}
	if spacing <= 0 {
		return nil
	}

	azMin, azMax := channel.AzPattern.Bounds()
	elMin, elMax := channel.ElPattern.Bounds()

	var rays []Ray
	for az := azMin; az <= azMax; az += spacing {
		for el := elMin; el <= elMax; el += spacing {
			gain := channel.Gain(az, el)
			gainDBi := 10*math.Log10(math.Max(gain, 1e-300)) - channel.GainDBi
			if gainDBi < GainBelowFloorDBi {
				continue
			}

			localDir := geom.Vec3{
				X: geom.Real(math.Cos(el) * math.Cos(az)),
				Y: geom.Real(math.Cos(el) * math.Sin(az)),
				Z: geom.Real(math.Sin(el)),
			}
			dir := rot.Apply(localDir).Normalize()

			rays = append(rays, Ray{
				Origin:      origin,
				Dir:         dir,
				Field:       channel.Polarization.Scale(complex(math.Sqrt(gain), 0)),
				Reflections: 0,
				EmitIdx:     len(rays),
			})
		}
	}
	return rays
}

// BVHEntry names which target (by caller-assigned index into its own
// target list) a BVH belongs to, so Reflector/Contributor callbacks can
// look up that target's material and ground flag.
type BVHEntry struct {
	Target int
	BVH    *mesh.BVH
}

// Reflector computes the reflected direction and field for a hit on
// targetIdx/face, or reports blocked=true if the bounce should be
// discarded (e.g. a ground face reflecting downward).
type Reflector func(incidentDir geom.Vec3, incidentField geom.Vec3C, normal geom.Vec3, targetIdx, face int) (dir geom.Vec3, field geom.Vec3C, blocked bool)

// Contributor is invoked once per hit whose reflection count falls
// within the active Filter, to accumulate the scattered contribution
// toward every Rx channel. It never changes the ray's trajectory.
type Contributor func(hit mesh.RayHit, targetIdx int, ray Ray)

// Trace walks every ray in rays through the scene described by bvhs,
// using an explicit stack rather than recursion. At each hit within
// filter's reflection-count bounds, contribute is called; unless the ray
// has reached filter.Max reflections, reflect computes the next segment
// and it is pushed back onto the stack. Terminated rays (miss, beyond
// filter.Max, or blocked) are simply dropped. tMax bounds each segment's
// search distance (e.g. scene diagonal).
func Trace(rays []Ray, bvhs []BVHEntry, filter Filter, tMax geom.Real, reflect Reflector, contribute Contributor) {
	stack := make([]Ray, len(rays))
	copy(stack, rays)

	for len(stack) > 0 {
		r := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		hit, targetIdx, hitBVH, ok := intersectScene(bvhs, r.Origin, r.Dir, tMax)
		if !ok {
			continue // Terminated(lost)
		}

		if r.Reflections >= filter.Min && r.Reflections <= filter.Max {
			contribute(hit, targetIdx, r)
		}
		if r.Reflections >= filter.Max {
			continue // Terminated(bounced-out)
		}

		normal := hitBVH.WorldFaceNormal(hit.Face)
		dir, field, blocked := reflect(r.Dir, r.Field, normal, targetIdx, hit.Face)
		if blocked {
			continue // Terminated(filtered)
		}

		stack = append(stack, Ray{
			Origin:      hit.Point,
			Dir:         dir,
			Field:       field,
			Reflections: r.Reflections + 1,
			PathLen:     r.PathLen + hit.Hit.T,
			EmitIdx:     r.EmitIdx,
		})
	}
}

// BackPropagate traces one additional ray from a hit point toward the
// radar's receive aperture for each hit Trace's contribute callback
// observes, per spec.md §4.4's back-propagation option: it returns
// whether the straight path from point to radarPos is unoccluded by any
// BVH in the scene (a clear line of sight), the condition under which its
// contribution is added.
func BackPropagate(point, radarPos geom.Vec3, bvhs []BVHEntry, tMax geom.Real) bool {
	dir := radarPos.Sub(point)
	dist := dir.Len()
	if dist == 0 {
		return true
	}
	dir = dir.Normalize()
	_, _, _, hit := intersectScene(bvhs, point, dir, geom.Real(math.Min(float64(tMax), float64(dist)-1e-4)))
	return !hit
}

// FirstHit finds the closest hit across every BVH in bvhs along
// (origin, dir), for callers that only need a single first-hit query
// rather than the full bounce state machine (e.g. lidarsim).
func FirstHit(bvhs []BVHEntry, origin, dir geom.Vec3, tMax geom.Real) (mesh.RayHit, int, bool) {
	hit, targetIdx, _, ok := intersectScene(bvhs, origin, dir, tMax)
	return hit, targetIdx, ok
}

// intersectScene finds the closest hit across every BVH in bvhs,
// returning which target (and which BVH) it belongs to.
func intersectScene(bvhs []BVHEntry, origin, dir geom.Vec3, tMax geom.Real) (mesh.RayHit, int, *mesh.BVH, bool) {
	var best mesh.RayHit
	bestTarget := -1
	var bestBVH *mesh.BVH
	bestT := tMax
	found := false

	for _, entry := range bvhs {
		hit, ok := entry.BVH.Intersect(origin, dir, bestT)
		if !ok {
			continue
		}
		if found && hit.Hit.T >= bestT {
			continue
		}
		best = hit
		bestT = hit.Hit.T
		bestTarget = entry.Target
		bestBVH = entry.BVH
		found = true
	}
	return best, bestTarget, bestBVH, found
}
