// Package pointsim implements the closed-form point-target baseband
// contribution: no ray tracing, no mesh, just direct range/Doppler/Friis
// algebra summed over every Tx×Rx channel pair and every time slot.
package pointsim

import (
	"fmt"
	"math"

	"github.com/banshee-data/radarsim/internal/simradar/geom"
	"github.com/banshee-data/radarsim/internal/simradar/motion"
	"github.com/banshee-data/radarsim/internal/simradar/waveform"
)

// Target is a point scatterer: location/velocity and RCS/phase, each
// either constant across the run or a dense per-slot grid, per the point
// target data model (constant form carries one entry; time-varying form
// carries frames·channels·pulses·samples entries).
type Target struct {
	Location motion.Field[geom.Vec3]
	Velocity motion.Field[geom.Vec3]
	RCSDBsm  motion.Field[float64]
	PhaseDeg motion.Field[float64]
}

// PositionAt returns the target's world position for slot (fc, p, samp)
// at absolute timestamp t, applying the same grid-overrides-velocity rule
// the motion sampler uses for meshed targets.
func (tgt Target) PositionAt(fc, p, samp int, t0, timestamp float64) geom.Vec3 {
	loc := tgt.Location.At(fc, p, samp)
	if tgt.Location.IsGrid() {
		return loc
	}
	v := tgt.Velocity.At(fc, p, samp)
	dt := geom.Real(timestamp - t0)
	return loc.Add(v.Scale(dt))
}

// RCSLinear returns the target's linear radar cross-section (m^2) for
// slot (fc, p, samp).
func (tgt Target) RCSLinear(fc, p, samp int) float64 {
	dBsm := tgt.RCSDBsm.At(fc, p, samp)
	return math.Pow(10, dBsm/10)
}

// PhaseRad returns the target's fixed phase offset (radians) for slot
// (fc, p, samp).
func (tgt Target) PhaseRad(fc, p, samp int) float64 {
	return tgt.PhaseDeg.At(fc, p, samp) * math.Pi / 180
}

// Accumulator receives one point-target contribution at a time, keyed by
// the raw (frame, tx, rx, pulse, sample) coordinate rather than a
// pre-flattened baseband row, so pointsim never needs to know the grid's
// row-major layout — that mapping is baseband's concern.
type Accumulator interface {
	Add(frame, txIdx, rxIdx, pulse, sample int, v complex128)
}

// Context bundles everything Simulate needs to evaluate one slot: the
// radar body's motion sampler, the transmit/receive chain, and the time
// grid's dimensions.
type Context struct {
	Radar       motion.Sampler
	Transmitter waveform.Transmitter
	Receiver    waveform.Receiver
	T0          float64
	Frames      int
	Pulses      int
	Samples     int
}

// SlotTime returns the absolute timestamp of sample `samp` within pulse
// `p` of frame `fr`: frame start + pulse start + sample/fs.
func (c Context) SlotTime(fr, p, samp int) float64 {
	return c.Transmitter.FrameStartTime[fr] + c.Transmitter.PulseStartTime[p] + float64(samp)/c.Receiver.Fs
}

// AzEl resolves a world-frame direction (from a channel toward a point)
// into the channel's local (azimuth, elevation) angles, by rotating the
// direction back into the body frame with the inverse (transpose) of the
// body's rotation matrix. Exported so interference.Simulate can reuse
// the same angle-resolution kernel rather than re-deriving it.
func AzEl(bodyRot geom.Mat3, worldDir geom.Vec3) (az, el float64) {
	local := bodyRot.Transpose().Apply(worldDir.Normalize())
	az = math.Atan2(float64(local.Y), float64(local.X))
	el = math.Asin(math.Max(-1, math.Min(1, float64(local.Z))))
	return az, el
}

// Simulate evaluates every (point target, Tx channel, Rx channel, slot)
// combination per spec.md §4.6's closed form and delivers each
// contribution to acc. Real-output receivers are collapsed by the caller
// via ctx.Receiver.ApplyOutputType before storage, not here, so
// Accumulator implementations can reuse the same contribution for both
// baseband types.
func Simulate(ctx Context, targets []Target, acc Accumulator) error {
	if err := ctx.Transmitter.Validate(); err != nil {
		return fmt.Errorf("pointsim: %w", err)
	}
	if err := ctx.Receiver.Validate(); err != nil {
		return fmt.Errorf("pointsim: %w", err)
	}

	numTx := len(ctx.Transmitter.Channels)
	numRx := len(ctx.Receiver.Channels)
	numCh := numTx * numRx

	for _, tgt := range targets {
		for fr := 0; fr < ctx.Frames; fr++ {
			for p := 0; p < ctx.Pulses; p++ {
				for samp := 0; samp < ctx.Samples; samp++ {
					tSample := ctx.SlotTime(fr, p, samp)
					bodyPose := ctx.Radar.Pose(fr, p, samp, tSample)
					bodyRot := bodyPose.Rotation.RotationMatrix()
					pointPos := tgt.PositionAt(fr, p, samp, ctx.T0, tSample)
					sigma := tgt.RCSLinear(fr, p, samp)
					phaseOffset := tgt.PhaseRad(fr, p, samp)

					for txIdx, txCh := range ctx.Transmitter.Channels {
						txPos := bodyRot.Apply(txCh.Location).Add(bodyPose.Location)
						rTx := float64(pointPos.Sub(txPos).Len())
						if rTx == 0 {
							continue
						}
						azTx, elTx := AzEl(bodyRot, pointPos.Sub(txPos))
						gTx := txCh.Gain(azTx, elTx)

						for rxIdx, rxCh := range ctx.Receiver.Channels {
							rxPos := bodyRot.Apply(rxCh.Location).Add(bodyPose.Location)
							rRx := float64(pointPos.Sub(rxPos).Len())
							if rRx == 0 {
								continue
							}
							azRx, elRx := AzEl(bodyRot, pointPos.Sub(rxPos))
							gRx := rxCh.Gain(azRx, elRx)

							tau := (rTx + rRx) / geom.SpeedOfLight
							tWave := tSample - tau - txCh.PulseDelay - ctx.Transmitter.PulseStartTime[p] - ctx.Transmitter.FrameStartTime[fr]
							f, err := ctx.Transmitter.FreqAt(p, tWave)
							if err != nil {
								return fmt.Errorf("pointsim: %w", err)
							}
							lambda := geom.SpeedOfLight / f

							phase := -2*math.Pi*f*tau + phaseOffset
							txPowerLinear := math.Pow(10, ctx.Transmitter.TxPowerDBm/10) * 1e-3

							amp := math.Sqrt(txPowerLinear * gTx * gRx * sigma * lambda * lambda /
								(math.Pow(4*math.Pi, 3) * rTx * rTx * rRx * rRx))

							mod, err := txCh.ModulationAt(p, tSample-ctx.Transmitter.PulseStartTime[p]-ctx.Transmitter.FrameStartTime[fr]-txCh.PulseDelay)
							if err != nil {
								return fmt.Errorf("pointsim: %w", err)
							}
							fcIdx := fr*numCh + txIdx*numRx + rxIdx
							phaseNoise := ctx.Transmitter.PhaseNoiseAt(fcIdx, p, samp)

							contribution := complex(amp*math.Cos(phase), amp*math.Sin(phase)) * mod * phaseNoise
							acc.Add(fr, txIdx, rxIdx, p, samp, contribution)
						}
					}
				}
			}
		}
	}
	return nil
}
