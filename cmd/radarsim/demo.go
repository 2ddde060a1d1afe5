package main

import (
	"math"

	"github.com/banshee-data/radarsim/internal/simradar"
	"github.com/banshee-data/radarsim/internal/simradar/geom"
	"github.com/banshee-data/radarsim/internal/simradar/mesh"
	"github.com/banshee-data/radarsim/internal/simradar/motion"
	"github.com/banshee-data/radarsim/internal/simradar/physopt"
	"github.com/banshee-data/radarsim/internal/simradar/pointsim"
	"github.com/banshee-data/radarsim/internal/simradar/waveform"
)

// demoPRI, demoBandwidth, and demoCenterFreq describe a 10 GHz FMCW
// chirp radar, loosely matching an automotive-band demo scenario.
const (
	demoCenterFreq = 10e9
	demoBandwidth  = 200e6
	demoPRI        = 1e-3
	demoSampleRate = 20e6
)

// demoAntennaPattern builds a cosine-ish beam 60 degrees wide, peak-
// normalized to 1, reused for both Tx and Rx.
func demoAntennaPattern() (waveform.AntennaPattern, error) {
	const deg = math.Pi / 180
	angles := []float64{-90 * deg, -30 * deg, 0, 30 * deg, 90 * deg}
	gains := []float64{-30, -3, 0, -3, -30}
	return waveform.NewAntennaPattern(angles, gains)
}

// demoRadar builds a single Tx/Rx channel FMCW radar with pulses linear
// chirps spanning demoBandwidth around demoCenterFreq.
func demoRadar(pulses, samples int) (simradar.Radar, error) {
	pattern, err := demoAntennaPattern()
	if err != nil {
		return simradar.Radar{}, err
	}

	pulseDuration := float64(samples) / demoSampleRate
	freqTable, err := waveform.NewTable(
		[]float64{0, pulseDuration},
		[]float64{demoCenterFreq - demoBandwidth/2, demoCenterFreq + demoBandwidth/2},
	)
	if err != nil {
		return simradar.Radar{}, err
	}

	pulseStart := make([]float64, pulses)
	freqOffset := make([]float64, pulses)
	pulseMod := make([]complex128, pulses)
	for i := range pulseStart {
		pulseStart[i] = float64(i) * demoPRI
		pulseMod[i] = 1
	}

	radar := simradar.Radar{
		Transmitter: waveform.Transmitter{
			Channels: []waveform.TxChannel{{
				Polarization: geom.Vec3C{Z: 1},
				AzPattern:    pattern,
				ElPattern:    pattern,
				PulseMod:     pulseMod,
				GridSpacing:  0.03,
			}},
			TxPowerDBm:         20,
			Freq:               freqTable,
			FreqOffsetPerPulse: freqOffset,
			PulseStartTime:     pulseStart,
			FrameStartTime:     []float64{0},
		},
		Receiver: waveform.Receiver{
			Channels:         []waveform.RxChannel{{Polarization: geom.Vec3C{Z: 1}, AzPattern: pattern, ElPattern: pattern}},
			Fs:               demoSampleRate,
			LoadOhm:          50,
			NoiseBandwidthHz: demoSampleRate,
		},
		SamplesPerPulse: samples,
	}
	return radar, nil
}

// demoPlateTarget builds a 2x2 meter PEC plate standing in the Y-Z plane
// at range meters down +X, closing on the radar at closingSpeed m/s.
func demoPlateTarget(rangeMeters, closingSpeed float64) (simradar.Target, error) {
	m, err := mesh.NewMesh(
		[]geom.Vec3{{0, -1, -1}, {0, 1, -1}, {0, 1, 1}, {0, -1, 1}},
		[]mesh.Cell{{0, 1, 2}, {0, 2, 3}},
	)
	if err != nil {
		return simradar.Target{}, err
	}
	return simradar.Target{
		Mesh: m,
		Body: motion.Body{
			Location: motion.Const(geom.Vec3{X: geom.Real(rangeMeters)}),
			Velocity: motion.Const(geom.Vec3{X: geom.Real(-closingSpeed)}),
		},
		Material: physopt.Material{Epsilon: complex(math.Inf(1), 0)},
	}, nil
}

// demoPointTarget is a closed-form point scatterer further out, used
// alongside demoPlateTarget to exercise sim_radar's other contribution
// path in the same run.
func demoPointTarget(rangeMeters float64) pointsim.Target {
	return pointsim.Target{
		Location: motion.Const(geom.Vec3{X: geom.Real(rangeMeters)}),
		RCSDBsm:  motion.Const(5.0),
	}
}
