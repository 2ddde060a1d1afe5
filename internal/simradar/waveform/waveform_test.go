package waveform

import (
	"testing"
)

func TestAntennaPatternInterpolatesAndClamps(t *testing.T) {
	p, err := NewAntennaPattern([]float64{-1, 0, 1}, []float64{-10, 0, -10})
	if err != nil {
		t.Fatal(err)
	}
	if g := p.Gain(0); g < 0.99 || g > 1.01 {
		t.Errorf("expected peak gain ~1 at boresight, got %v", g)
	}
	if g := p.Gain(-5); g != p.Gain(-1) {
		t.Errorf("expected clamping below table range, got %v vs %v", g, p.Gain(-1))
	}
	if g := p.Gain(5); g != p.Gain(1) {
		t.Errorf("expected clamping above table range, got %v vs %v", g, p.Gain(1))
	}
	mid := p.Gain(0.5)
	if mid <= p.Gain(1) || mid >= p.Gain(0) {
		t.Errorf("expected interpolated midpoint strictly between endpoints, got %v", mid)
	}
}

func TestAntennaPatternRejectsMismatchedLengths(t *testing.T) {
	if _, err := NewAntennaPattern([]float64{0, 1}, []float64{0}); err == nil {
		t.Fatal("expected an error for mismatched angle/gain lengths")
	}
}

func TestTableFreqAtInterpolatesAndClamps(t *testing.T) {
	tbl, err := NewTable([]float64{0, 1e-6}, []float64{1e9, 2e9})
	if err != nil {
		t.Fatal(err)
	}
	if f := tbl.FreqAt(5e-7); f < 1.49e9 || f > 1.51e9 {
		t.Errorf("expected midpoint freq ~1.5GHz, got %v", f)
	}
	if f := tbl.FreqAt(-1); f != 1e9 {
		t.Errorf("expected clamp to first sample, got %v", f)
	}
	if f := tbl.FreqAt(1); f != 2e9 {
		t.Errorf("expected clamp to last sample, got %v", f)
	}
}

func TestArbModAppliesPiecewiseInterval(t *testing.T) {
	m := ArbMod{Enabled: true, T: []float64{0, 1e-6, 2e-6}, Var: []complex128{1, 1i, -1}}
	if v := m.At(5e-7); v != 1 {
		t.Errorf("expected first-interval value, got %v", v)
	}
	if v := m.At(1.5e-6); v != 1i {
		t.Errorf("expected second-interval value, got %v", v)
	}
	if v := m.At(3e-6); v != -1 {
		t.Errorf("expected clamp to last interval past range, got %v", v)
	}
}

func TestArbModDisabledIsIdentity(t *testing.T) {
	m := ArbMod{}
	if v := m.At(42); v != 1 {
		t.Errorf("expected identity multiplier when disabled, got %v", v)
	}
}

func TestTxChannelModulationAtCollapsesOverlays(t *testing.T) {
	ch := TxChannel{
		PulseMod: []complex128{2, 3},
		ArbMod:   ArbMod{Enabled: true, T: []float64{0, 1}, Var: []complex128{1, 2}},
	}
	got, err := ch.ModulationAt(1, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	if got != 3 {
		t.Errorf("expected pulse_mod[1]*arb_mod(0.5)=3*1=3, got %v", got)
	}
}

func TestTxChannelModulationAtRejectsOutOfRangePulse(t *testing.T) {
	ch := TxChannel{PulseMod: []complex128{1}}
	if _, err := ch.ModulationAt(5, 0); err == nil {
		t.Fatal("expected an error for an out-of-range pulse index")
	}
}

func TestReceiverApplyOutputTypeRealDropsImaginary(t *testing.T) {
	r := Receiver{BasebandType: BasebandReal}
	got := r.ApplyOutputType(complex(3, 4))
	if real(got) != 3 || imag(got) != 0 {
		t.Errorf("expected imaginary part dropped, got %v", got)
	}
}

func TestReceiverValidateRejectsNoChannels(t *testing.T) {
	r := Receiver{Fs: 1, LoadOhm: 1, NoiseBandwidthHz: 1}
	if err := r.Validate(); err == nil {
		t.Fatal("expected an error for a receiver with no channels")
	}
}
