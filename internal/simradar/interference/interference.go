// Package interference simulates radar-on-radar coupling: another
// transmitter's waveform arriving directly at this receiver, with no
// target scattering in between. It reuses pointsim's closed-form kernel
// with the interferer's Tx standing in for the point target and the
// return path collapsed to a single leg (R_rx=0, sigma=1), per spec.md
// §4.9.
package interference

import (
	"fmt"
	"math"

	"github.com/banshee-data/radarsim/internal/simradar/geom"
	"github.com/banshee-data/radarsim/internal/simradar/motion"
	"github.com/banshee-data/radarsim/internal/simradar/pointsim"
	"github.com/banshee-data/radarsim/internal/simradar/waveform"
)

// Source is the interfering radar: its own transmitter (waveform table,
// channels, modulation) and the motion sampler for its body.
type Source struct {
	Body        motion.Sampler
	Transmitter waveform.Transmitter
}

// Accumulator receives one interference contribution per (frame, tx, rx,
// pulse, sample), mirroring pointsim.Accumulator's shape so the same
// baseband.Integrator wiring (via AddInterference) can implement both.
type Accumulator interface {
	Add(frame, txIdx, rxIdx, pulse, sample int, v complex128)
}

// Context bundles the victim receiver's body/chain and the shared time
// grid dimensions, analogous to pointsim.Context.
type Context struct {
	Receiver motion.Sampler
	Rx       waveform.Receiver
	T0       float64
	Frames   int
	Pulses   int
	Samples  int
}

// SlotTime returns the absolute timestamp of sample `samp` within pulse
// `p` of frame `fr`, using the interferer's own frame/pulse schedule
// (the interfering waveform runs on its own clock).
func SlotTime(tx waveform.Transmitter, rx waveform.Receiver, fr, p, samp int) float64 {
	return tx.FrameStartTime[fr] + tx.PulseStartTime[p] + float64(samp)/rx.Fs
}

// Simulate evaluates every (interferer Tx channel, victim Rx channel,
// slot) combination: R_tx is the distance from the interferer's Tx
// channel to the victim's Rx channel, R_rx is collapsed to 0 (no second
// leg), and sigma=1 (no scattering), per spec.md §4.9. The result is
// delivered to acc for storage in a dedicated interference buffer.
func Simulate(src Source, ctx Context, acc Accumulator) error {
	if err := src.Transmitter.Validate(); err != nil {
		return fmt.Errorf("interference: %w", err)
	}
	if err := ctx.Rx.Validate(); err != nil {
		return fmt.Errorf("interference: %w", err)
	}

	numTx := len(src.Transmitter.Channels)
	numRx := len(ctx.Rx.Channels)
	numCh := numTx * numRx

	for fr := 0; fr < ctx.Frames; fr++ {
		for p := 0; p < ctx.Pulses; p++ {
			for samp := 0; samp < ctx.Samples; samp++ {
				tSample := SlotTime(src.Transmitter, ctx.Rx, fr, p, samp)

				srcPose := src.Body.Pose(fr, p, samp, tSample)
				srcRot := srcPose.Rotation.RotationMatrix()
				victimPose := ctx.Receiver.Pose(fr, p, samp, tSample)
				victimRot := victimPose.Rotation.RotationMatrix()

				for txIdx, txCh := range src.Transmitter.Channels {
					txPos := srcRot.Apply(txCh.Location).Add(srcPose.Location)

					for rxIdx, rxCh := range ctx.Rx.Channels {
						rxPos := victimRot.Apply(rxCh.Location).Add(victimPose.Location)

						rTx := float64(rxPos.Sub(txPos).Len())
						if rTx == 0 {
							continue
						}

						azTx, elTx := pointsim.AzEl(srcRot, rxPos.Sub(txPos))
						gTx := txCh.Gain(azTx, elTx)

						azRx, elRx := pointsim.AzEl(victimRot, txPos.Sub(rxPos))
						gRx := rxCh.Gain(azRx, elRx)

						tau := rTx / geom.SpeedOfLight
						tWave := tSample - tau - txCh.PulseDelay - src.Transmitter.PulseStartTime[p] - src.Transmitter.FrameStartTime[fr]
						f, err := src.Transmitter.FreqAt(p, tWave)
						if err != nil {
							return fmt.Errorf("interference: %w", err)
						}
						lambda := geom.SpeedOfLight / f

						phase := -2 * math.Pi * f * tau
						txPowerLinear := math.Pow(10, src.Transmitter.TxPowerDBm/10) * 1e-3

						// One-way Friis with sigma=1, R_rx=1 collapsed out of
						// the denominator (R_rx^2 -> 1), per spec.md §4.9.
						amp := math.Sqrt(txPowerLinear * gTx * gRx * lambda * lambda /
							(math.Pow(4*math.Pi, 3) * rTx * rTx))

						mod, err := txCh.ModulationAt(p, tSample-src.Transmitter.PulseStartTime[p]-src.Transmitter.FrameStartTime[fr]-txCh.PulseDelay)
						if err != nil {
							return fmt.Errorf("interference: %w", err)
						}
						fcIdx := fr*numCh + txIdx*numRx + rxIdx
						phaseNoise := src.Transmitter.PhaseNoiseAt(fcIdx, p, samp)

						contribution := complex(amp*math.Cos(phase), amp*math.Sin(phase)) * mod * phaseNoise
						acc.Add(fr, txIdx, rxIdx, p, samp, contribution)
					}
				}
			}
		}
	}
	return nil
}
