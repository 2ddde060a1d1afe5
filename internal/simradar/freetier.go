package simradar

import (
	"github.com/banshee-data/radarsim/internal/simradar/pointsim"
	"github.com/banshee-data/radarsim/internal/simradar/rcs"
	"github.com/banshee-data/radarsim/internal/simradar/simerr"
)

// Free-tier advisory limits, per simconfig.Config.WithFreeTierLimit's
// documented thresholds and spec.md §6 operation 4.
const (
	freeTierMaxFaces        = 8
	freeTierMaxPointTargets = 2
	freeTierMaxChannels     = 1
	freeTierMaxRCSTargets   = 3
)

// checkFreeTierRadar enforces the free-tier advisory for sim_radar:
// meshes over freeTierMaxFaces faces, more than freeTierMaxPointTargets
// point targets, or more than freeTierMaxChannels Tx/Rx channels each
// fail fast with TierLimitExceeded before any ray is traced.
func checkFreeTierRadar(limit *int, targets []Target, pointTargets []pointsim.Target, radar Radar) error {
	if limit == nil {
		return nil
	}
	for _, t := range targets {
		if t.Mesh.NumFaces() > freeTierMaxFaces {
			return simerr.Newf("sim_radar", simerr.TierLimitExceeded,
				"mesh has %d faces, free tier allows at most %d", t.Mesh.NumFaces(), freeTierMaxFaces)
		}
	}
	if len(pointTargets) > freeTierMaxPointTargets {
		return simerr.Newf("sim_radar", simerr.TierLimitExceeded,
			"%d point targets exceeds free-tier limit of %d", len(pointTargets), freeTierMaxPointTargets)
	}
	if len(radar.Transmitter.Channels) > freeTierMaxChannels || len(radar.Receiver.Channels) > freeTierMaxChannels {
		return simerr.Newf("sim_radar", simerr.TierLimitExceeded,
			"free tier allows at most %d Tx/Rx channel(s)", freeTierMaxChannels)
	}
	return nil
}

// checkFreeTierRCS enforces the free-tier advisory for sim_rcs: more than
// freeTierMaxRCSTargets targets fails with TierLimitExceeded.
func checkFreeTierRCS(limit *int, targets []rcs.Target) error {
	if limit == nil {
		return nil
	}
	if len(targets) > freeTierMaxRCSTargets {
		return simerr.Newf("sim_rcs", simerr.TierLimitExceeded,
			"%d targets exceeds free-tier limit of %d", len(targets), freeTierMaxRCSTargets)
	}
	return nil
}
