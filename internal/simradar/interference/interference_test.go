package interference

import (
	"testing"

	"github.com/banshee-data/radarsim/internal/simradar/geom"
	"github.com/banshee-data/radarsim/internal/simradar/motion"
	"github.com/banshee-data/radarsim/internal/simradar/waveform"
)

type recordingAccumulator struct {
	calls int
}

func (a *recordingAccumulator) Add(frame, txIdx, rxIdx, pulse, sample int, v complex128) {
	a.calls++
}

func flatPattern(t *testing.T) waveform.AntennaPattern {
	t.Helper()
	p, err := waveform.NewAntennaPattern([]float64{-3.14, 0, 3.14}, []float64{0, 0, 0})
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestSimulateOneContributionPerSlotAndChannelPair(t *testing.T) {
	pattern := flatPattern(t)

	srcTx := waveform.Transmitter{
		Channels: []waveform.TxChannel{{
			AzPattern: pattern, ElPattern: pattern,
			PulseMod: []complex128{1},
		}},
		TxPowerDBm:         20,
		Freq:               mustTable(t),
		FreqOffsetPerPulse: []float64{0},
		PulseStartTime:     []float64{0},
		FrameStartTime:     []float64{0},
	}
	src := Source{
		Body:        motion.Sampler{Body: motion.Body{Location: motion.Const(geom.Vec3{X: -500})}},
		Transmitter: srcTx,
	}

	victimRx := waveform.Receiver{
		Channels:         []waveform.RxChannel{{AzPattern: pattern, ElPattern: pattern}},
		Fs:               1e6,
		LoadOhm:          50,
		NoiseBandwidthHz: 1e6,
	}
	ctx := Context{
		Receiver: motion.Sampler{},
		Rx:       victimRx,
		Frames:   1,
		Pulses:   1,
		Samples:  3,
	}

	acc := &recordingAccumulator{}
	if err := Simulate(src, ctx, acc); err != nil {
		t.Fatal(err)
	}
	if acc.calls != 3 {
		t.Errorf("expected 3 contributions (one per sample), got %d", acc.calls)
	}
}

func mustTable(t *testing.T) waveform.Table {
	t.Helper()
	tbl, err := waveform.NewTable([]float64{0, 1e-6}, []float64{10e9, 10e9})
	if err != nil {
		t.Fatal(err)
	}
	return tbl
}
