package pointsim

import (
	"testing"

	"github.com/banshee-data/radarsim/internal/simradar/geom"
	"github.com/banshee-data/radarsim/internal/simradar/motion"
	"github.com/banshee-data/radarsim/internal/simradar/waveform"
)

type recordingAccumulator struct {
	calls int
	last  complex128
}

func (a *recordingAccumulator) Add(frame, txIdx, rxIdx, pulse, sample int, v complex128) {
	a.calls++
	a.last = v
}

func singleChannelPattern(t *testing.T) waveform.AntennaPattern {
	t.Helper()
	p, err := waveform.NewAntennaPattern([]float64{-3.14, 0, 3.14}, []float64{0, 0, 0})
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestSimulateProducesOneContributionPerSlotAndChannelPair(t *testing.T) {
	pattern := singleChannelPattern(t)

	tx := waveform.Transmitter{
		Channels: []waveform.TxChannel{{
			AzPattern: pattern, ElPattern: pattern,
			PulseMod: []complex128{1},
		}},
		TxPowerDBm:         30,
		Freq:               mustTable(t, []float64{0, 1e-6}, []float64{10e9, 10e9}),
		FreqOffsetPerPulse: []float64{0},
		PulseStartTime:     []float64{0},
		FrameStartTime:     []float64{0},
	}
	rx := waveform.Receiver{
		Channels:         []waveform.RxChannel{{AzPattern: pattern, ElPattern: pattern}},
		Fs:               1e6,
		LoadOhm:          50,
		NoiseBandwidthHz: 1e6,
	}

	ctx := Context{
		Radar:       motion.Sampler{},
		Transmitter: tx,
		Receiver:    rx,
		Frames:      1,
		Pulses:      1,
		Samples:     2,
	}

	targets := []Target{{
		Location: motion.Const(geom.Vec3{X: 1000}),
		RCSDBsm:  motion.Const(0.0),
	}}

	acc := &recordingAccumulator{}
	if err := Simulate(ctx, targets, acc); err != nil {
		t.Fatal(err)
	}
	if acc.calls != 2 {
		t.Errorf("expected 2 contributions (one per sample), got %d", acc.calls)
	}
}

// TestSimulateAppliesPulseDelay confirms TxChannel.PulseDelay actually
// shifts the frequency/modulation lookup: with a chirped frequency table,
// two otherwise-identical channels differing only in PulseDelay must
// radiate different contributions. The target sits 30 m out (tau = 0.2 µs)
// and the second sample lands at 1 µs, so both lookups fall inside the
// chirp (0.8 µs vs 0.3 µs) rather than clamping to its start.
func TestSimulateAppliesPulseDelay(t *testing.T) {
	pattern := singleChannelPattern(t)
	chirp := mustTable(t, []float64{0, 1e-6}, []float64{9e9, 11e9})

	run := func(delay float64) complex128 {
		tx := waveform.Transmitter{
			Channels: []waveform.TxChannel{{
				AzPattern: pattern, ElPattern: pattern,
				PulseMod:   []complex128{1},
				PulseDelay: delay,
			}},
			TxPowerDBm:         30,
			Freq:               chirp,
			FreqOffsetPerPulse: []float64{0},
			PulseStartTime:     []float64{0},
			FrameStartTime:     []float64{0},
		}
		rx := waveform.Receiver{
			Channels:         []waveform.RxChannel{{AzPattern: pattern, ElPattern: pattern}},
			Fs:               1e6,
			LoadOhm:          50,
			NoiseBandwidthHz: 1e6,
		}
		ctx := Context{
			Radar:       motion.Sampler{},
			Transmitter: tx,
			Receiver:    rx,
			Frames:      1,
			Pulses:      1,
			Samples:     2,
		}
		targets := []Target{{
			Location: motion.Const(geom.Vec3{X: 30}),
			RCSDBsm:  motion.Const(0.0),
		}}
		acc := &recordingAccumulator{}
		if err := Simulate(ctx, targets, acc); err != nil {
			t.Fatal(err)
		}
		return acc.last
	}

	undelayed := run(0)
	delayed := run(5e-7)
	if undelayed == delayed {
		t.Error("expected PulseDelay to change the radiated contribution, got identical values")
	}
}

func mustTable(t *testing.T, times, freqs []float64) waveform.Table {
	t.Helper()
	tbl, err := waveform.NewTable(times, freqs)
	if err != nil {
		t.Fatal(err)
	}
	return tbl
}
