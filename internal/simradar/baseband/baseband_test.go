package baseband

import (
	"math"
	"testing"

	"github.com/banshee-data/radarsim/internal/simradar/waveform"
)

func testShape() Shape {
	return Shape{Frames: 1, ChannelsTotal: 2, NumRx: 2, Pulses: 2, Samples: 4}
}

func TestGridAddAccumulates(t *testing.T) {
	g := NewGrid(testShape())
	g.Add(0, 0, 0, complex(1, 2))
	g.Add(0, 0, 0, complex(3, -1))
	if got := g.At(0, 0, 0); got != complex(4, 1) {
		t.Errorf("expected accumulation 4+1i, got %v", got)
	}
}

func TestShapeRowOrderingRxFastest(t *testing.T) {
	s := testShape()
	if s.Row(0, 0, 0) != 0 || s.Row(0, 0, 1) != 1 || s.Row(0, 1, 0) != 2 {
		t.Errorf("expected rx to vary fastest within a tx, got rows %d %d %d", s.Row(0, 0, 0), s.Row(0, 0, 1), s.Row(0, 1, 0))
	}
}

func TestIntegratorAddAppliesRealOutputType(t *testing.T) {
	rx := waveform.Receiver{BasebandType: waveform.BasebandReal}
	it := NewIntegrator(testShape(), rx)
	it.Add(0, 0, 0, 0, 0, complex(3, 4))
	if got := it.Baseband.At(0, 0, 0); got != complex(3, 0) {
		t.Errorf("expected imaginary part dropped for a real-output receiver, got %v", got)
	}
}

func TestFrameNoiseSigmaMatchesTarget(t *testing.T) {
	sigma := Sigma(NoiseParams{NoiseBandwidthHz: 1e6, RFGainLinear: 1, BasebandGainLinear: 1, LoadOhm: 50})
	vecs := FrameNoise(1, 0, 1e-3, 1e6, sigma, 42)
	if len(vecs) != 1 || len(vecs[0]) == 0 {
		t.Fatal("expected a non-empty noise vector")
	}
	var sumSq float64
	for _, v := range vecs[0] {
		sumSq += real(v)*real(v) + imag(v)*imag(v)
	}
	meanSq := sumSq / float64(len(vecs[0]))
	// E[|z|^2] for complex z with independent real/imag N(0, sigma/sqrt2)
	// is sigma^2; allow generous tolerance since this is a random draw.
	if math.Abs(meanSq-sigma*sigma) > 0.5*sigma*sigma {
		t.Errorf("expected mean-square magnitude near sigma^2=%v, got %v", sigma*sigma, meanSq)
	}
}

func TestWindowIndexClamps(t *testing.T) {
	if WindowIndex(-5, 0, 1e6, 10) != 0 {
		t.Error("expected clamp to 0 for a timestamp before tsMin")
	}
	if WindowIndex(1000, 0, 1e6, 10) != 9 {
		t.Error("expected clamp to n-1 for a timestamp past the vector's span")
	}
}
