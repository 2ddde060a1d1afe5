package simradar

import (
	"github.com/banshee-data/radarsim/internal/simradar/geom"
	"github.com/banshee-data/radarsim/internal/simradar/rcs"
	"github.com/banshee-data/radarsim/internal/simradar/simerr"
)

// SimRCSInput is sim_rcs's full argument list, per spec.md §6 operation 2:
// a static scene of meshes illuminated by parallel arrays of incidence
// direction, observation direction, incident polarisation, and observed
// polarisation, all at a single frequency.
type SimRCSInput struct {
	Targets []rcs.Target
	Freq    float64
	IncDir  []geom.Vec3
	ObsDir  []geom.Vec3
	IncPol  []geom.Vec3C
	ObsPol  []geom.Vec3C
	Density float64
}

// SimRCS evaluates bistatic RCS for every (IncDir[i], ObsDir[i]) pair
// against a static scene, reducing rcs.Evaluate's pure function to an
// Engine method so it shares the free-tier advisory with sim_radar.
func (e *Engine) SimRCS(in SimRCSInput) ([]float64, error) {
	const op = "sim_rcs"
	cfg := e.configSnapshot()

	if err := checkFreeTierRCS(cfg.FreeTierLimit, in.Targets); err != nil {
		return nil, err
	}

	out, err := rcs.Evaluate(in.Targets, in.Freq, in.IncDir, in.ObsDir, in.IncPol, in.ObsPol, in.Density)
	if err != nil {
		return nil, simerr.New(op, simerr.InvalidInput, err)
	}
	return out, nil
}
